package analyzers

import (
	"math"
	"sort"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// LoyaltyTier buckets loyalty scores.
type LoyaltyTier string

// Loyalty tiers from strongest to weakest.
const (
	TierLoyal     LoyaltyTier = "loyal"
	TierCommitted LoyaltyTier = "committed"
	TierRegular   LoyaltyTier = "regular"
	TierCasual    LoyaltyTier = "casual"
)

// Emoji returns the badge shown next to the tier.
func (t LoyaltyTier) Emoji() string {
	switch t {
	case TierLoyal:
		return "👑"
	case TierCommitted:
		return "💎"
	case TierRegular:
		return "⭐"
	default:
		return "🌙"
	}
}

// TierForScore maps a loyalty score to its tier.
func TierForScore(score float64) LoyaltyTier {
	switch {
	case score >= 75:
		return TierLoyal
	case score >= 50:
		return TierCommitted
	case score >= 25:
		return TierRegular
	default:
		return TierCasual
	}
}

// MinDailyOptions are the daily-usage filters offered in the UI, in minutes.
var MinDailyOptions = []float64{0, 30, 60, 180}

const noWeekday = "N/A"

var shortWeekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// LoyaltyParams tunes ScoreLoyalty.
type LoyaltyParams struct {
	MinDailyMinutes float64
	Limit           int
}

// AppLoyalty is the loyalty profile of one application.
type AppLoyalty struct {
	App             string          `json:"appName" yaml:"appName"`
	Category        models.Category `json:"category" yaml:"category"`
	TotalMinutes    float64         `json:"totalTime" yaml:"totalTime"`
	Sessions        int             `json:"sessionCount" yaml:"sessionCount"`
	DaysActive      int             `json:"daysActive" yaml:"daysActive"`
	Score           float64         `json:"loyaltyScore" yaml:"loyaltyScore"`
	AvgSession      float64         `json:"avgSessionLength" yaml:"avgSessionLength"` // minutes
	AvgDaily        float64         `json:"avgDailyTime" yaml:"avgDailyTime"`         // minutes per active day
	SessionsPerDay  float64         `json:"avgSessionsPerDay" yaml:"avgSessionsPerDay"`
	Tier            LoyaltyTier     `json:"tier" yaml:"tier"`
	PeakDay         string          `json:"peakDay" yaml:"peakDay"`
	PeakDayMinutes  float64         `json:"peakDayAvgTime" yaml:"peakDayAvgTime"`
	LeastDay        string          `json:"leastDay" yaml:"leastDay"`
	LeastDayMinutes float64         `json:"leastDayAvgTime" yaml:"leastDayAvgTime"`
}

// LoyaltyReport lists the most loyal apps with tier counts over the result.
type LoyaltyReport struct {
	Apps       []AppLoyalty        `json:"apps" yaml:"apps"`
	TierCounts map[LoyaltyTier]int `json:"tierCounts" yaml:"tierCounts"`
	TotalDays  int                 `json:"totalDays" yaml:"totalDays"`
}

type appUsage struct {
	minutes      float64
	sessions     int
	days         map[string]struct{}
	weekday      [7]float64
	weekdaySeen  [7]bool
	weekdayOrder []time.Weekday
}

// ScoreLoyalty rates how consistently each app is returned to. The score
// blends active-day share (50%), sessions per tracked day (30%) and minutes
// per tracked day (20%).
func ScoreLoyalty(records []models.ActivityRecord, params LoyaltyParams) LoyaltyReport {
	if params.Limit <= 0 {
		params.Limit = 15
	}

	apps := make(map[string]*appUsage)
	var order []string
	allDays := make(map[string]time.Weekday)

	for _, r := range records {
		local := r.Timestamp.Local()
		key := dayKey(r.Timestamp)
		allDays[key] = local.Weekday()

		u, ok := apps[r.AppName]
		if !ok {
			u = &appUsage{days: make(map[string]struct{})}
			apps[r.AppName] = u
			order = append(order, r.AppName)
		}
		minutes := r.Duration / 60
		u.minutes += minutes
		u.sessions++
		u.days[key] = struct{}{}

		wd := local.Weekday()
		if !u.weekdaySeen[wd] {
			u.weekdaySeen[wd] = true
			u.weekdayOrder = append(u.weekdayOrder, wd)
		}
		u.weekday[wd] += minutes
	}

	report := LoyaltyReport{
		Apps:       []AppLoyalty{},
		TierCounts: map[LoyaltyTier]int{TierLoyal: 0, TierCommitted: 0, TierRegular: 0, TierCasual: 0},
		TotalDays:  len(allDays),
	}
	if len(allDays) == 0 {
		return report
	}

	var weekdayCounts [7]int
	for _, wd := range allDays {
		weekdayCounts[wd]++
	}
	totalDays := float64(len(allDays))

	for _, name := range order {
		u := apps[name]
		active := float64(len(u.days))
		score := 0.5*(active/totalDays*100) +
			0.3*math.Min(float64(u.sessions)/totalDays*10, 100) +
			0.2*math.Min(u.minutes/totalDays*2, 100)

		app := AppLoyalty{
			App:            name,
			Category:       classify.CategorizeApp(name),
			TotalMinutes:   u.minutes,
			Sessions:       u.sessions,
			DaysActive:     len(u.days),
			Score:          score,
			AvgSession:     u.minutes / float64(u.sessions),
			AvgDaily:       u.minutes / active,
			SessionsPerDay: float64(u.sessions) / totalDays,
			Tier:           TierForScore(score),
		}
		app.PeakDay, app.PeakDayMinutes, app.LeastDay, app.LeastDayMinutes = u.weekdayExtremes(weekdayCounts)

		if app.AvgDaily >= params.MinDailyMinutes {
			report.Apps = append(report.Apps, app)
		}
	}

	sort.SliceStable(report.Apps, func(i, j int) bool { return report.Apps[i].Score > report.Apps[j].Score })
	if len(report.Apps) > params.Limit {
		report.Apps = report.Apps[:params.Limit]
	}
	for _, a := range report.Apps {
		report.TierCounts[a.Tier]++
	}
	return report
}

// weekdayExtremes averages the app's minutes per occurrence of each weekday
// in the dataset. Apps never used on some weekday report the first such
// weekday (Sunday first) as least with zero minutes.
func (u *appUsage) weekdayExtremes(counts [7]int) (peak string, peakMin float64, least string, leastMin float64) {
	peak, least = noWeekday, noWeekday
	maxAvg, minAvg := 0.0, math.Inf(1)

	for _, wd := range u.weekdayOrder {
		n := counts[wd]
		if n == 0 {
			n = 1
		}
		avg := u.weekday[wd] / float64(n)
		if avg > maxAvg {
			maxAvg, peak, peakMin = avg, shortWeekdays[wd], avg
		}
		if avg < minAvg {
			minAvg, least, leastMin = avg, shortWeekdays[wd], avg
		}
	}

	if len(u.weekdayOrder) < 7 {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if !u.weekdaySeen[wd] {
				return peak, peakMin, shortWeekdays[wd], 0
			}
		}
	}
	return peak, peakMin, least, leastMin
}
