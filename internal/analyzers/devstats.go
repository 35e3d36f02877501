package analyzers

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/aggregate"
	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// LanguageParams sets the comparison window of the tech stack breakdown.
type LanguageParams struct {
	Days int
}

// DefaultLanguageParams compares the last 30 days with the 30 before.
func DefaultLanguageParams() LanguageParams {
	return LanguageParams{Days: 30}
}

// LanguageShare is one language in the tech stack breakdown.
type LanguageShare struct {
	Language      string  `json:"language" yaml:"language"`
	Hours         float64 `json:"hours" yaml:"hours"`
	Percent       float64 `json:"percentage" yaml:"percentage"`
	Color         string  `json:"color" yaml:"color"`
	PrevHours     float64 `json:"prevHours" yaml:"prevHours"`
	ChangePercent float64 `json:"changePercent" yaml:"changePercent"`
	DaysActive    int     `json:"daysActive" yaml:"daysActive"`
	AvgSession    float64 `json:"avgSessionLength" yaml:"avgSessionLength"` // hours
}

// TechStackReport breaks development time down by language.
type TechStackReport struct {
	Days          int             `json:"days" yaml:"days"`
	Languages     []LanguageShare `json:"languages" yaml:"languages"`
	TotalHours    float64         `json:"totalHours" yaml:"totalHours"`
	PrevHours     float64         `json:"prevTotalHours" yaml:"prevTotalHours"`
	DetectionRate float64         `json:"detectionRate" yaml:"detectionRate"`
}

// TechStack compares language usage in [today-Days, now] against the
// preceding window of the same length.
func TechStack(records []models.ActivityRecord, params LanguageParams, now time.Time) TechStackReport {
	if params.Days <= 0 {
		params = DefaultLanguageParams()
	}
	today := models.StartOfDay(now.Local())
	cutoff := today.AddDate(0, 0, -params.Days)
	prevCutoff := cutoff.AddDate(0, 0, -params.Days)

	var current []models.ActivityRecord
	for _, r := range records {
		if !r.Timestamp.Before(cutoff) {
			current = append(current, r)
		}
	}
	cur := aggregate.Languages(current)
	prev := aggregate.Languages(aggregate.Window(records, prevCutoff, cutoff))

	report := TechStackReport{
		Days:          params.Days,
		TotalHours:    cur.Detected / 3600,
		PrevHours:     prev.Detected / 3600,
		DetectionRate: cur.DetectionRate(),
	}
	for _, l := range cur.Languages {
		hours := l.Seconds / 3600
		prevHours := prev.Lookup(l.Language).Seconds / 3600
		share := LanguageShare{
			Language:   l.Language,
			Hours:      hours,
			Color:      classify.LanguageColor(l.Language),
			PrevHours:  prevHours,
			DaysActive: l.Days,
			AvgSession: l.AvgSession() / 3600,
		}
		if cur.Detected > 0 {
			share.Percent = l.Seconds / cur.Detected * 100
		}
		share.ChangePercent = changePercent(hours, prevHours)
		report.Languages = append(report.Languages, share)
	}
	return report
}

// changePercent is the relative change from prev to cur; growth from zero
// counts as 100%.
func changePercent(cur, prev float64) float64 {
	switch {
	case prev > 0:
		return (cur - prev) / prev * 100
	case cur > 0:
		return 100
	default:
		return 0
	}
}

// Momentum classifies week-over-week language change.
type Momentum string

// Momentum values.
const (
	MomentumGrowing   Momentum = "growing"
	MomentumDeclining Momentum = "declining"
	MomentumSteady    Momentum = "steady"
)

const (
	velocityDays   = 30
	velocityTrends = 5
)

// LanguageTrend is the recent trajectory of one language.
type LanguageTrend struct {
	Language        string   `json:"language" yaml:"language"`
	TotalHours      float64  `json:"totalHours" yaml:"totalHours"`
	WeekOverWeek    float64  `json:"weekOverWeekChange" yaml:"weekOverWeekChange"`
	Momentum        Momentum `json:"momentum" yaml:"momentum"`
	ConsecutiveDays int      `json:"consecutiveDays" yaml:"consecutiveDays"`
}

// VelocityDay holds per-language hours for one of the last 30 days.
type VelocityDay struct {
	Date  time.Time          `json:"date" yaml:"date"`
	Hours map[string]float64 `json:"hours" yaml:"hours"`
}

// VelocityReport is the 30-day language velocity.
type VelocityReport struct {
	Days      []VelocityDay   `json:"days" yaml:"days"`
	Languages []string        `json:"languages" yaml:"languages"` // by total hours, descending
	Trends    []LanguageTrend `json:"trends" yaml:"trends"`
	Insights  []string        `json:"insights" yaml:"insights"`
}

// Series returns the daily hours of lang across the window, oldest first.
func (v VelocityReport) Series(lang string) []float64 {
	out := make([]float64, len(v.Days))
	for i, d := range v.Days {
		out[i] = d.Hours[lang]
	}
	return out
}

// LanguageVelocity tracks daily development hours per language over the 30
// days ending today and derives week-over-week trends for the top five.
func LanguageVelocity(records []models.ActivityRecord, now time.Time) VelocityReport {
	today := models.StartOfDay(now.Local())
	report := VelocityReport{Days: make([]VelocityDay, velocityDays)}
	index := make(map[string]int, velocityDays)
	for i := range report.Days {
		date := today.AddDate(0, 0, i-(velocityDays-1))
		report.Days[i] = VelocityDay{Date: date, Hours: make(map[string]float64)}
		index[date.Format(models.DateLayout)] = i
	}

	totals := make(map[string]float64)
	for _, r := range records {
		if !classify.IsDevApp(r.AppName) {
			continue
		}
		i, ok := index[dayKey(r.Timestamp)]
		if !ok {
			continue
		}
		lang := classify.LanguageFromActivity(r.Title, r.AppName)
		if _, seen := totals[lang]; !seen {
			report.Languages = append(report.Languages, lang)
		}
		report.Days[i].Hours[lang] += r.Duration / 3600
		totals[lang] += r.Duration / 3600
	}
	sort.SliceStable(report.Languages, func(i, j int) bool {
		return totals[report.Languages[i]] > totals[report.Languages[j]]
	})

	for i, lang := range report.Languages {
		if i == velocityTrends {
			break
		}
		series := report.Series(lang)
		last, prev := 0.0, 0.0
		for _, h := range series[velocityDays-7:] {
			last += h
		}
		for _, h := range series[velocityDays-14 : velocityDays-7] {
			prev += h
		}
		change := changePercent(last, prev)

		consecutive := 0
		for j := len(series) - 1; j >= 0 && series[j] > 0; j-- {
			consecutive++
		}

		report.Trends = append(report.Trends, LanguageTrend{
			Language:        lang,
			TotalHours:      totals[lang],
			WeekOverWeek:    change,
			Momentum:        momentumFor(change),
			ConsecutiveDays: consecutive,
		})
	}
	report.Insights = velocityInsights(report.Trends)
	return report
}

func momentumFor(change float64) Momentum {
	switch {
	case change > 10:
		return MomentumGrowing
	case change < -10:
		return MomentumDeclining
	default:
		return MomentumSteady
	}
}

func velocityInsights(trends []LanguageTrend) []string {
	var out []string

	var growing, declining, focused, steady *LanguageTrend
	for i := range trends {
		t := &trends[i]
		if t.Momentum == MomentumGrowing && (growing == nil || t.WeekOverWeek > growing.WeekOverWeek) {
			growing = t
		}
		if t.Momentum == MomentumDeclining && declining == nil {
			declining = t
		}
		if t.ConsecutiveDays >= 3 && (focused == nil || t.ConsecutiveDays > focused.ConsecutiveDays) {
			focused = t
		}
		if t.Momentum == MomentumSteady && t.TotalHours > 1 && steady == nil {
			steady = t
		}
	}

	if growing != nil {
		out = append(out, fmt.Sprintf("🚀 %s momentum: +%d%% vs last week", growing.Language, round(growing.WeekOverWeek)))
	}
	if declining != nil {
		out = append(out, fmt.Sprintf("📉 %s: %d%% vs last week", declining.Language, round(declining.WeekOverWeek)))
	}
	if focused != nil {
		out = append(out, fmt.Sprintf("🎯 Learning focus: %s (%d consecutive days)", focused.Language, focused.ConsecutiveDays))
	}
	if steady != nil && len(out) < 3 {
		out = append(out, fmt.Sprintf("⚖️ %s: Steady usage (%d%% change)", steady.Language, round(steady.WeekOverWeek)))
	}
	return out
}

var fileNamePattern = regexp.MustCompile(`([^\\/]+)\.\w+\s*[-*]`)

// LanguageHours pairs a language with its lifetime hours.
type LanguageHours struct {
	Language string  `json:"language" yaml:"language"`
	Hours    float64 `json:"hours" yaml:"hours"`
}

// DevStatsReport summarizes lifetime development activity.
type DevStatsReport struct {
	TotalHours     float64         `json:"totalHours" yaml:"totalHours"`
	LanguageCount  int             `json:"languageCount" yaml:"languageCount"`
	TopLanguage    *LanguageHours  `json:"topLanguage,omitempty" yaml:"topLanguage,omitempty"`
	Breakdown      []LanguageHours `json:"languageBreakdown" yaml:"languageBreakdown"` // top 5
	UniqueFiles    int             `json:"uniqueFiles" yaml:"uniqueFiles"`
	ActiveDays     int             `json:"activeDays" yaml:"activeDays"`
	MaxDayHours    float64         `json:"maxDayHours" yaml:"maxDayHours"`
	AvgDayHours    float64         `json:"avgDayHours" yaml:"avgDayHours"`
	LongestStreak  int             `json:"longestStreak" yaml:"longestStreak"`
	FirstActivity  time.Time       `json:"firstActivity" yaml:"firstActivity"`
	LastActivity   time.Time       `json:"lastActivity" yaml:"lastActivity"`
	DaysSinceFirst int             `json:"daysSinceFirst" yaml:"daysSinceFirst"`
	Insight        string          `json:"insight" yaml:"insight"`
}

// DevStats computes lifetime development statistics over development apps.
func DevStats(records []models.ActivityRecord, now time.Time) DevStatsReport {
	var (
		out    DevStatsReport
		totals = make(map[string]float64)
		langs  []string
		files  = make(map[string]struct{})
		daily  = make(map[string]float64)
	)

	for _, r := range records {
		if !classify.IsDevApp(r.AppName) {
			continue
		}
		lang := classify.LanguageFromActivity(r.Title, r.AppName)
		if _, ok := totals[lang]; !ok {
			langs = append(langs, lang)
		}
		totals[lang] += r.Duration / 3600
		daily[dayKey(r.Timestamp)] += r.Duration / 3600
		if m := fileNamePattern.FindStringSubmatch(r.Title); m != nil {
			files[m[1]] = struct{}{}
		}
		if out.FirstActivity.IsZero() || r.Timestamp.Before(out.FirstActivity) {
			out.FirstActivity = r.Timestamp
		}
		if r.Timestamp.After(out.LastActivity) {
			out.LastActivity = r.Timestamp
		}
	}

	sort.SliceStable(langs, func(i, j int) bool { return totals[langs[i]] > totals[langs[j]] })
	for _, lang := range langs {
		out.TotalHours += totals[lang]
		if len(out.Breakdown) < 5 {
			out.Breakdown = append(out.Breakdown, LanguageHours{Language: lang, Hours: totals[lang]})
		}
	}
	out.LanguageCount = len(langs)
	if len(langs) > 0 {
		out.TopLanguage = &LanguageHours{Language: langs[0], Hours: totals[langs[0]]}
	}
	out.UniqueFiles = len(files)
	out.ActiveDays = len(daily)

	dates := make([]string, 0, len(daily))
	sum := 0.0
	for date, h := range daily {
		dates = append(dates, date)
		out.MaxDayHours = math.Max(out.MaxDayHours, h)
		sum += h
	}
	if len(daily) > 0 {
		out.AvgDayHours = sum / float64(len(daily))
	}
	sort.Strings(dates)
	out.LongestStreak = longestRun(dates)

	if !out.FirstActivity.IsZero() {
		out.DaysSinceFirst = int(now.Sub(out.FirstActivity).Hours() / 24)
	}
	out.Insight = devInsight(out)
	return out
}

// longestRun counts the longest run of consecutive calendar dates in sorted
// YYYY-MM-DD keys.
func longestRun(dates []string) int {
	longest, current := 0, 0
	var prev time.Time
	for i, key := range dates {
		d, err := time.ParseInLocation(models.DateLayout, key, time.Local)
		if err != nil {
			continue
		}
		if i > 0 && models.StartOfDay(prev.AddDate(0, 0, 1)).Equal(d) {
			current++
		} else {
			current = 1
		}
		longest = max(longest, current)
		prev = d
	}
	return longest
}

func devInsight(s DevStatsReport) string {
	switch {
	case s.ActiveDays >= 7:
		perWeek := float64(s.ActiveDays) / math.Max(float64(s.DaysSinceFirst)/7, 1)
		perDay := s.TotalHours / float64(s.ActiveDays)
		return fmt.Sprintf("You code an average of %.1f days/week with %.1fh per active day", perWeek, perDay)
	case s.TotalHours >= 100:
		return fmt.Sprintf("You've invested %.0f hours across %d languages", s.TotalHours, s.LanguageCount)
	case s.LongestStreak > 1:
		return fmt.Sprintf("Your longest coding streak is %d consecutive days", s.LongestStreak)
	default:
		return "Your lifetime development statistics"
	}
}
