// Package aggregate rolls activity records up into per-day, per-hour,
// per-app, per-category and per-language summaries. Daily averages are
// always normalized by the number of distinct dates present in the input,
// never by the wall-clock span, because activity logs have gaps.
package aggregate

import (
	"sort"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// DayKey returns the local calendar date of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Local().Format(models.DateLayout)
}

// DaysTracked counts the distinct local dates in records.
func DaysTracked(records []models.ActivityRecord) int {
	days := make(map[string]struct{})
	for _, r := range records {
		days[DayKey(r.Timestamp)] = struct{}{}
	}
	return len(days)
}

// normalizer is DaysTracked floored at 1.
func normalizer(records []models.ActivityRecord) float64 {
	if n := DaysTracked(records); n > 0 {
		return float64(n)
	}
	return 1
}

// Daily groups records by local date, ascending. Category totals are seconds.
func Daily(records []models.ActivityRecord) []models.DailyAggregate {
	byDay := make(map[string]*models.DailyAggregate)
	for _, r := range records {
		key := DayKey(r.Timestamp)
		day, ok := byDay[key]
		if !ok {
			day = &models.DailyAggregate{
				Date:           models.StartOfDay(r.Timestamp.Local()),
				CategoryTotals: make(map[models.Category]float64),
			}
			byDay[key] = day
		}
		day.CategoryTotals[classify.CategorizeApp(r.AppName)] += r.Duration
		day.Total += r.Duration
	}

	out := make([]models.DailyAggregate, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// CategoryTotals sums seconds per category.
func CategoryTotals(records []models.ActivityRecord) map[models.Category]float64 {
	totals := make(map[models.Category]float64)
	for _, r := range records {
		totals[classify.CategorizeApp(r.AppName)] += r.Duration
	}
	return totals
}

// HourBucket holds minutes per category for one hour of the day.
type HourBucket struct {
	Hour       int                          `json:"hour" yaml:"hour"`
	Categories map[models.Category]float64 `json:"categories" yaml:"categories"` // minutes
}

// Total returns the summed minutes across categories.
func (b HourBucket) Total() float64 {
	total := 0.0
	for _, v := range b.Categories {
		total += v
	}
	return total
}

// Hourly buckets minutes per category by local hour. With normalize set the
// minutes are per tracked day.
func Hourly(records []models.ActivityRecord, normalize bool) [24]HourBucket {
	var buckets [24]HourBucket
	for h := range buckets {
		buckets[h] = HourBucket{Hour: h, Categories: make(map[models.Category]float64)}
	}
	for _, r := range records {
		h := r.Timestamp.Local().Hour()
		buckets[h].Categories[classify.CategorizeApp(r.AppName)] += r.Duration / 60
	}
	if !normalize {
		return buckets
	}

	days := normalizer(records)
	for h := range buckets {
		for cat, v := range buckets[h].Categories {
			buckets[h].Categories[cat] = v / days
		}
	}
	return buckets
}

// AppTotal is the lifetime rollup of one application.
type AppTotal struct {
	App      string          `json:"app" yaml:"app"`
	Category models.Category `json:"category" yaml:"category"`
	Seconds  float64         `json:"seconds" yaml:"seconds"`
	Days     int             `json:"days" yaml:"days"`
	DailyAvg float64         `json:"dailyAvg" yaml:"dailyAvg"` // seconds per tracked day
}

// AppDaily rolls records up per app, sorted by total time descending.
// DailyAvg divides by the days tracked across the whole input.
func AppDaily(records []models.ActivityRecord) []AppTotal {
	type acc struct {
		seconds float64
		days    map[string]struct{}
	}
	apps := make(map[string]*acc)
	var order []string
	for _, r := range records {
		a, ok := apps[r.AppName]
		if !ok {
			a = &acc{days: make(map[string]struct{})}
			apps[r.AppName] = a
			order = append(order, r.AppName)
		}
		a.seconds += r.Duration
		a.days[DayKey(r.Timestamp)] = struct{}{}
	}

	days := normalizer(records)
	out := make([]AppTotal, 0, len(order))
	for _, name := range order {
		a := apps[name]
		out = append(out, AppTotal{
			App:      name,
			Category: classify.CategorizeApp(name),
			Seconds:  a.seconds,
			Days:     len(a.days),
			DailyAvg: a.seconds / days,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seconds > out[j].Seconds })
	return out
}
