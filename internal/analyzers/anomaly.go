package analyzers

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// AnomalyType is the direction of an outlier day.
type AnomalyType string

// Anomaly directions.
const (
	AnomalyHigh AnomalyType = "high"
	AnomalyLow  AnomalyType = "low"
)

const maxAnomalies = 3

// CategoryHours is a category with its hours on a given day.
type CategoryHours struct {
	Category models.Category `json:"category" yaml:"category"`
	Hours    float64         `json:"hours" yaml:"hours"`
}

// Anomaly is one statistically unusual day.
type Anomaly struct {
	Date          time.Time       `json:"date" yaml:"date"`
	DateLabel     string          `json:"dateStr" yaml:"dateStr"`
	DayName       string          `json:"dayName" yaml:"dayName"`
	TotalHours    float64         `json:"totalHours" yaml:"totalHours"`
	Deviation     float64         `json:"deviation" yaml:"deviation"` // percent vs mean
	Type          AnomalyType     `json:"type" yaml:"type"`
	TopCategories []CategoryHours `json:"topCategories" yaml:"topCategories"`
	Insight       string          `json:"insight" yaml:"insight"`
}

// AnomalyReport holds the flagged days and the baseline they were measured
// against.
type AnomalyReport struct {
	Anomalies    []Anomaly `json:"anomalies" yaml:"anomalies"`
	Mean         float64   `json:"mean" yaml:"mean"`
	StdDev       float64   `json:"stdDev" yaml:"stdDev"`
	Threshold    float64   `json:"threshold" yaml:"threshold"`
	DaysAnalyzed int       `json:"daysAnalyzed" yaml:"daysAnalyzed"`
}

// AnomalyThreshold returns the sigma multiplier for a history of n days.
// Longer histories get a stricter cutoff.
func AnomalyThreshold(n int) float64 {
	switch {
	case n < 7:
		return 1.0
	case n < 14:
		return 1.25
	default:
		return 1.5
	}
}

// DetectAnomalies flags completed days whose total hours sit more than the
// adaptive threshold of standard deviations from the mean. The current day
// is excluded and at least two completed days are required. The three most
// recent anomalies are returned.
func DetectAnomalies(records []models.ActivityRecord, now time.Time) AnomalyReport {
	days, keys := groupDays(records, now, true)
	report := AnomalyReport{DaysAnalyzed: len(keys), Anomalies: []Anomaly{}}
	if len(keys) < 2 {
		return report
	}

	totals := make([]float64, len(keys))
	for i, k := range keys {
		totals[i] = days[k].total / 3600
	}
	report.Mean = mean(totals)
	report.StdDev = stdDev(totals)
	report.Threshold = AnomalyThreshold(len(keys))

	for _, k := range keys {
		d := days[k]
		hours := d.total / 3600
		if math.Abs(hours-report.Mean) <= report.Threshold*report.StdDev {
			continue
		}

		deviation := 0.0
		if report.Mean != 0 {
			deviation = (hours - report.Mean) / report.Mean * 100
		}
		kind := AnomalyLow
		if hours > report.Mean {
			kind = AnomalyHigh
		}

		top := topCategoryHours(d, 3)
		local := d.date.Local()
		report.Anomalies = append(report.Anomalies, Anomaly{
			Date:          local,
			DateLabel:     local.Format("Jan 2"),
			DayName:       local.Weekday().String(),
			TotalHours:    hours,
			Deviation:     deviation,
			Type:          kind,
			TopCategories: top,
			Insight:       anomalyInsight(kind, deviation, top, hours),
		})
	}

	sort.SliceStable(report.Anomalies, func(i, j int) bool {
		return report.Anomalies[i].Date.After(report.Anomalies[j].Date)
	})
	if len(report.Anomalies) > maxAnomalies {
		report.Anomalies = report.Anomalies[:maxAnomalies]
	}
	return report
}

func topCategoryHours(d *dayBucket, n int) []CategoryHours {
	out := make([]CategoryHours, 0, len(d.order))
	for _, cat := range d.order {
		out = append(out, CategoryHours{Category: cat, Hours: d.categories[cat] / 3600})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hours > out[j].Hours })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func anomalyInsight(kind AnomalyType, deviation float64, top []CategoryHours, totalHours float64) string {
	abs := math.Abs(deviation)

	if len(top) > 0 {
		share := 0.0
		if totalHours > 0 {
			share = top[0].Hours / totalHours * 100
		}
		if kind == AnomalyHigh {
			switch {
			case share > 70:
				return fmt.Sprintf("Concentrated activity in %s (%s) drove %.0f%% increase above baseline.",
					top[0].Category, classify.FormatHours(top[0].Hours), abs)
			case abs > 70:
				return fmt.Sprintf("Significant deviation detected (%.0f%% above typical), suggesting schedule variation or special event.", abs)
			}
		} else if abs > 70 {
			return fmt.Sprintf("Minimal activity detected (%.0f%% below typical), possibly indicating downtime or schedule gap.", abs)
		}
	}

	if kind == AnomalyHigh {
		return fmt.Sprintf("Activity exceeded baseline by %.0f%%, representing elevated engagement for this period.", abs)
	}
	return fmt.Sprintf("Activity registered %.0f%% below baseline, indicating reduced engagement for this period.", abs)
}
