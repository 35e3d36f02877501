package analyzers

import (
	"math"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	return math.Sqrt(variance / float64(len(values)))
}

func round(v float64) int {
	return int(math.Round(v))
}

// dayKey is the local calendar date used to bucket records.
func dayKey(t time.Time) string {
	return t.Local().Format(models.DateLayout)
}

// dayBucket accumulates one calendar day in first-seen category order.
type dayBucket struct {
	date       time.Time
	categories map[models.Category]float64
	order      []models.Category
	total      float64
}

func (d *dayBucket) add(cat models.Category, seconds float64) {
	if _, ok := d.categories[cat]; !ok {
		d.order = append(d.order, cat)
	}
	d.categories[cat] += seconds
	d.total += seconds
}

func (d *dayBucket) productiveHours() float64 {
	hours := 0.0
	for cat, secs := range d.categories {
		if cat.IsProductive() {
			hours += secs / 3600
		}
	}
	return hours
}

// groupDays buckets records by local date, skipping the calendar day of now
// when excludeToday is set. keys preserves first-seen order.
func groupDays(records []models.ActivityRecord, now time.Time, excludeToday bool) (map[string]*dayBucket, []string) {
	today := dayKey(now)
	days := make(map[string]*dayBucket)
	var keys []string
	for _, r := range records {
		key := dayKey(r.Timestamp)
		if excludeToday && key == today {
			continue
		}
		d, ok := days[key]
		if !ok {
			d = &dayBucket{date: r.Timestamp, categories: make(map[models.Category]float64)}
			days[key] = d
			keys = append(keys, key)
		}
		d.add(classify.CategorizeApp(r.AppName), r.Duration)
	}
	return days, keys
}
