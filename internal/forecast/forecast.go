// Package forecast predicts per-category activity for the coming week from
// the day-of-week and weekday/weekend history of the log.
package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/aggregate"
	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

const (
	// Horizon is the number of forecast days, starting tomorrow.
	Horizon = 7

	recentSamples = 2
	recentWeight  = 0.7
	dayWeight     = 0.7
)

// Day is the prediction for one calendar day. Category hours are rounded
// to two decimals and Total is their sum.
type Day struct {
	Date       time.Time                   `json:"date" yaml:"date"`
	DayName    string                      `json:"fullDay" yaml:"fullDay"`
	IsWeekend  bool                        `json:"isWeekend" yaml:"isWeekend"`
	Categories map[models.Category]float64 `json:"categories" yaml:"categories"`
	Total      float64                     `json:"total" yaml:"total"`
	Insight    string                      `json:"insight" yaml:"insight"`
}

// Label renders the day as "Wed (15/05)".
func (d Day) Label() string {
	return d.Date.Format("Mon (02/01)")
}

// Forecast is the seven-day outlook.
type Forecast struct {
	Days             [Horizon]Day      `json:"days" yaml:"days"`
	WeeklyTotal      float64           `json:"weeklyTotal" yaml:"weeklyTotal"`
	DailyAverage     float64           `json:"dailyAverage" yaml:"dailyAverage"`
	TomorrowRate     int               `json:"tomorrowRate" yaml:"tomorrowRate"` // percent of daily average
	WeekendVariance  float64           `json:"weekendVariance" yaml:"weekendVariance"`
	Consistency      float64           `json:"consistency" yaml:"consistency"`
	ActiveCategories []models.Category `json:"activeCategories" yaml:"activeCategories"`
	Insight          string            `json:"insight" yaml:"insight"`
}

// Totals returns the day totals in order, for charting.
func (f Forecast) Totals() []float64 {
	out := make([]float64, Horizon)
	for i, d := range f.Days {
		out[i] = d.Total
	}
	return out
}

// RecencyWeighted blends the mean of the last two samples (70%) with the
// mean of the earlier ones (30%). With fewer than three samples the earlier
// mean falls back to the recent one.
func RecencyWeighted(samples []float64) float64 {
	switch len(samples) {
	case 0:
		return 0
	case 1:
		return samples[0]
	}
	split := max(len(samples)-recentSamples, 0)
	recent := mean(samples[split:])
	older := recent
	if split > 0 {
		older = mean(samples[:split])
	}
	return recent*recentWeight + older*(1-recentWeight)
}

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

type history struct {
	days []models.DailyAggregate
	seen map[models.Category]bool
}

func newHistory(records []models.ActivityRecord) history {
	h := history{days: aggregate.Daily(records), seen: make(map[models.Category]bool)}
	for _, d := range h.days {
		for cat := range d.CategoryTotals {
			h.seen[cat] = true
		}
	}
	return h
}

// samples collects non-zero hours of cat on matching days, oldest first.
func (h history) samples(cat models.Category, match func(time.Time) bool) []float64 {
	var out []float64
	for _, d := range h.days {
		if !match(d.Date) {
			continue
		}
		if v := d.CategoryTotals[cat]; v > 0 {
			out = append(out, v/3600)
		}
	}
	return out
}

// predict blends day-of-week samples (70%) with same-context samples (30%).
// Categories with no matching samples are left out.
func (h history) predict(date time.Time) map[models.Category]float64 {
	weekday := date.Weekday()
	weekend := models.IsWeekend(weekday)
	sameDay := func(t time.Time) bool { return t.Weekday() == weekday }
	sameContext := func(t time.Time) bool { return models.IsWeekend(t.Weekday()) == weekend }

	out := make(map[models.Category]float64)
	for _, cat := range models.AllCategories() {
		if !h.seen[cat] {
			continue
		}
		ds := h.samples(cat, sameDay)
		ctx := h.samples(cat, sameContext)
		switch {
		case len(ds) > 0:
			out[cat] = dayWeight*RecencyWeighted(ds) + (1-dayWeight)*RecencyWeighted(ctx)
		case len(ctx) > 0:
			out[cat] = RecencyWeighted(ctx)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PredictNext7Days forecasts the seven days after now's calendar day. The
// whole log, today included, forms the history.
func PredictNext7Days(records []models.ActivityRecord, now time.Time) Forecast {
	h := newHistory(records)
	today := models.StartOfDay(now.Local())

	var f Forecast
	for i := range f.Days {
		date := today.AddDate(0, 0, i+1)
		day := Day{
			Date:       date,
			DayName:    date.Weekday().String(),
			IsWeekend:  models.IsWeekend(date.Weekday()),
			Categories: make(map[models.Category]float64),
		}
		prediction := h.predict(date)
		for _, cat := range models.AllCategories() {
			hours, ok := prediction[cat]
			if !ok {
				continue
			}
			hours = round2(hours)
			day.Categories[cat] = hours
			day.Total += hours
		}
		f.Days[i] = day
		f.WeeklyTotal += day.Total
	}

	for _, cat := range models.DisplayOrder() {
		if h.seen[cat] {
			f.ActiveCategories = append(f.ActiveCategories, cat)
		}
	}

	f.DailyAverage = f.WeeklyTotal / Horizon
	if f.DailyAverage > 0 {
		f.TomorrowRate = int(math.Round(f.Days[0].Total / f.DailyAverage * 100))
	}

	var weekday, weekend []float64
	for _, d := range f.Days {
		if d.IsWeekend {
			weekend = append(weekend, d.Total)
		} else {
			weekday = append(weekday, d.Total)
		}
	}
	weekdayAvg := mean(weekday)
	if weekdayAvg > 0 && len(weekend) > 0 {
		f.WeekendVariance = (mean(weekend) - weekdayAvg) / weekdayAvg * 100
	}

	if f.DailyAverage > 0 {
		variance := 0.0
		for _, d := range f.Days {
			variance += (d.Total - f.DailyAverage) * (d.Total - f.DailyAverage)
		}
		sigma := math.Sqrt(variance / Horizon)
		f.Consistency = math.Max(0, math.Min(100, 100-sigma/f.DailyAverage*100))
	}

	f.Insight = f.insight()
	for i := range f.Days {
		f.Days[i].Insight = f.dayInsight(i, weekdayAvg)
	}
	return f
}

func signed(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.0f", v)
	}
	return fmt.Sprintf("%.0f", v)
}

func (f Forecast) insight() string {
	tomorrow := f.Days[0].Total
	switch {
	case math.Abs(f.WeekendVariance) > 150:
		trend := "reduced"
		if f.WeekendVariance > 0 {
			trend = "elevated"
		}
		return fmt.Sprintf("Hybrid prediction model detects %s weekend activity (%s%%), weighted by recent behavior patterns and day-specific context.",
			trend, signed(f.WeekendVariance))
	case f.Consistency > 80:
		return fmt.Sprintf("High consistency score (%.0f%%) with recent-weighted predictions showing stable activity patterns. Day-specific and contextual factors align closely.",
			f.Consistency)
	case tomorrow > f.DailyAverage*1.5:
		return fmt.Sprintf("Tomorrow's prediction (%s) uses 70%% day-specific and 30%% weekday-context weighting, indicating above-average activity ahead.",
			classify.FormatHours(tomorrow))
	default:
		return "Predictions blend recent behavior (70% weight) with historical patterns (30%), incorporating both day-specific and weekday/weekend contextual factors."
	}
}

func (f Forecast) dayInsight(i int, weekdayAvg float64) string {
	d := f.Days[i]
	vsAvg := 0.0
	if f.DailyAverage > 0 {
		vsAvg = (d.Total/f.DailyAverage - 1) * 100
	}

	switch {
	case i == 0:
		return fmt.Sprintf("Tomorrow's prediction uses recent %s patterns with 70%% recency weighting. Expected productivity rate: %d%% of weekly average.",
			d.DayName, f.TomorrowRate)
	case d.IsWeekend:
		diff := 0.0
		if weekdayAvg > 0 {
			diff = (d.Total/weekdayAvg - 1) * 100
		}
		return fmt.Sprintf("%s forecast shows %s%% variance from weekday average, consistent with weekend activity patterns.",
			d.DayName, signed(diff))
	case math.Abs(vsAvg) > 25:
		side := "below"
		if vsAvg > 0 {
			side = "above"
		}
		return fmt.Sprintf("This %s is predicted to be %s average (%s%%), based on historical %s patterns and weekday context.",
			d.DayName, side, signed(vsAvg), d.DayName)
	default:
		return fmt.Sprintf("%s forecast aligns closely with weekly average, combining day-specific patterns with weekday contextual baseline.", d.DayName)
	}
}
