package analyzers

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// SwitchFilterSeconds drops very short records from the switching card.
const SwitchFilterSeconds = 3.0

const topAppsLimit = 6

// TotalTime is the headline time card. Minute values are rounded.
type TotalTime struct {
	TotalSeconds   float64   `json:"totalSeconds" yaml:"totalSeconds"`
	WeekdayAvgMin  int       `json:"weekdayAvgMinutes" yaml:"weekdayAvgMinutes"`
	WeekendAvgMin  int       `json:"weekendAvgMinutes" yaml:"weekendAvgMinutes"`
	OverallAvgMin  int       `json:"overallAvgMinutes" yaml:"overallAvgMinutes"`
	TodayMin       int       `json:"todayMinutes" yaml:"todayMinutes"`
	TodayPercent   int       `json:"todayPercent" yaml:"todayPercent"`
	First          time.Time `json:"first" yaml:"first"`
	Last           time.Time `json:"last" yaml:"last"`
	DaysTracked    int       `json:"daysTracked" yaml:"daysTracked"`
	AvgHoursPerDay float64   `json:"avgHoursPerDay" yaml:"avgHoursPerDay"`
}

// DateRange renders First..Last as "Jan 2 - Mar 4, 2024".
func (t TotalTime) DateRange() string {
	if t.First.IsZero() {
		return "No data"
	}
	return t.First.Format("Jan 2") + " - " + t.Last.Format("Jan 2, 2006")
}

// Balance splits focused time into productive and leisure.
type Balance struct {
	ProductiveSeconds float64 `json:"productiveSeconds" yaml:"productiveSeconds"`
	LeisureSeconds    float64 `json:"leisureSeconds" yaml:"leisureSeconds"`
	ProductivePercent int     `json:"productivePercent" yaml:"productivePercent"`
	LeisurePercent    int     `json:"leisurePercent" yaml:"leisurePercent"`
}

// Switching is the app-switching card.
type Switching struct {
	AvgSwitchesPerDay int `json:"avgSwitchesPerDay" yaml:"avgSwitchesPerDay"`
	AvgTimePerApp     int `json:"avgTimePerApp" yaml:"avgTimePerApp"` // seconds
	AvgUniqueApps     int `json:"avgUniqueApps" yaml:"avgUniqueApps"`
}

// CategoryShare is one slice of the category donut.
type CategoryShare struct {
	Category models.Category `json:"category" yaml:"category"`
	Minutes  int             `json:"minutes" yaml:"minutes"` // per tracked day
	Percent  int             `json:"percent" yaml:"percent"`
}

// AppShare is one bar of the top-apps chart.
type AppShare struct {
	App      string          `json:"app" yaml:"app"`
	Category models.Category `json:"category" yaml:"category"`
	Minutes  int             `json:"minutes" yaml:"minutes"` // per tracked day
	Percent  int             `json:"percent" yaml:"percent"`
}

// HourActivity is the productive/leisure split of one hour, in average
// minutes per tracked day.
type HourActivity struct {
	Hour       int `json:"hour" yaml:"hour"`
	Productive int `json:"productive" yaml:"productive"`
	Leisure    int `json:"leisure" yaml:"leisure"`
	Total      int `json:"total" yaml:"total"`
}

// Summary is the overview page.
type Summary struct {
	TotalTime        TotalTime       `json:"totalTime" yaml:"totalTime"`
	Balance          Balance         `json:"balance" yaml:"balance"`
	Switching        Switching       `json:"switching" yaml:"switching"`
	Categories       []CategoryShare `json:"categories" yaml:"categories"`
	CategoryInsight  string          `json:"categoryInsight" yaml:"categoryInsight"`
	TopApps          []AppShare      `json:"topApps" yaml:"topApps"`
	Hourly           []HourActivity  `json:"hourly" yaml:"hourly"`
	PeakHour         int             `json:"peakHour" yaml:"peakHour"` // -1 without data
	PeakProductivePc int             `json:"peakProductivePercent" yaml:"peakProductivePercent"`
}

// Summarize builds the overview cards. Focused records only contribute to
// time totals; daily averages divide by the days present in the data.
func Summarize(records []models.ActivityRecord, now time.Time) Summary {
	focused := models.FocusedOnly(records)
	s := Summary{
		TotalTime: summarizeTotalTime(focused, now),
		Balance:   summarizeBalance(focused),
		Switching: summarizeSwitching(records),
		PeakHour:  -1,
	}
	s.Categories, s.CategoryInsight = summarizeCategories(records)
	s.TopApps = summarizeTopApps(focused)
	s.Hourly = summarizeHourly(focused)

	peak := -1
	for i, h := range s.Hourly {
		if peak < 0 || h.Total > s.Hourly[peak].Total {
			peak = i
		}
	}
	if peak >= 0 {
		p := s.Hourly[peak]
		s.PeakHour = p.Hour
		if sum := p.Productive + p.Leisure; sum > 0 {
			s.PeakProductivePc = round(float64(p.Productive) / float64(sum) * 100)
		}
	}
	return s
}

func summarizeTotalTime(focused []models.ActivityRecord, now time.Time) TotalTime {
	var (
		t                                TotalTime
		weekdaySec, weekendSec, todaySec float64
		weekdayDays                      = make(map[string]struct{})
		weekendDays                      = make(map[string]struct{})
		today                            = dayKey(now)
	)

	for i, r := range focused {
		local := r.Timestamp.Local()
		key := dayKey(r.Timestamp)
		t.TotalSeconds += r.Duration
		if key == today {
			todaySec += r.Duration
		}
		if models.IsWeekend(local.Weekday()) {
			weekendSec += r.Duration
			weekendDays[key] = struct{}{}
		} else {
			weekdaySec += r.Duration
			weekdayDays[key] = struct{}{}
		}
		if i == 0 || local.Before(t.First) {
			t.First = local
		}
		if i == 0 || local.After(t.Last) {
			t.Last = local
		}
	}

	if n := len(weekdayDays); n > 0 {
		t.WeekdayAvgMin = round(weekdaySec / 60 / float64(n))
	}
	if n := len(weekendDays); n > 0 {
		t.WeekendAvgMin = round(weekendSec / 60 / float64(n))
	}
	t.DaysTracked = len(weekdayDays) + len(weekendDays)
	if t.DaysTracked > 0 {
		t.OverallAvgMin = round(t.TotalSeconds / 60 / float64(t.DaysTracked))
		t.AvgHoursPerDay = t.TotalSeconds / 3600 / float64(t.DaysTracked)
	}
	t.TodayMin = round(todaySec / 60)
	if t.OverallAvgMin > 0 {
		t.TodayPercent = round(float64(t.TodayMin) / float64(t.OverallAvgMin) * 100)
	}
	return t
}

func summarizeBalance(focused []models.ActivityRecord) Balance {
	var b Balance
	for _, r := range focused {
		if classify.CategorizeActivity(r.AppName) == models.KindProductive {
			b.ProductiveSeconds += r.Duration
		} else {
			b.LeisureSeconds += r.Duration
		}
	}
	if total := b.ProductiveSeconds + b.LeisureSeconds; total > 0 {
		b.ProductivePercent = round(b.ProductiveSeconds / total * 100)
		b.LeisurePercent = round(b.LeisureSeconds / total * 100)
	}
	return b
}

func summarizeSwitching(records []models.ActivityRecord) Switching {
	var s Switching
	if len(records) < 2 {
		return s
	}

	byDay := make(map[string][]models.ActivityRecord)
	for _, r := range records {
		key := dayKey(r.Timestamp)
		byDay[key] = append(byDay[key], r)
	}

	switches, unique := 0, 0
	for _, day := range byDay {
		apps := make(map[string]struct{})
		kept := 0
		for _, r := range day {
			if r.Duration > SwitchFilterSeconds {
				kept++
				apps[r.AppName] = struct{}{}
			}
		}
		switches += max(0, kept-1)
		unique += len(apps)
	}
	days := float64(len(byDay))
	s.AvgSwitchesPerDay = round(float64(switches) / days)
	s.AvgUniqueApps = round(float64(unique) / days)

	total, n := 0.0, 0
	for _, r := range records {
		if r.Duration > SwitchFilterSeconds {
			total += r.Duration
			n++
		}
	}
	if n > 0 {
		s.AvgTimePerApp = round(total / float64(n))
	}
	return s
}

func summarizeCategories(records []models.ActivityRecord) ([]CategoryShare, string) {
	days := make(map[string]struct{})
	totals := make(map[models.Category]float64)
	for _, r := range records {
		days[dayKey(r.Timestamp)] = struct{}{}
		totals[classify.CategorizeApp(r.AppName)] += r.Duration
	}
	n := math.Max(float64(len(days)), 1)

	totalMinutes := 0.0
	for cat, secs := range totals {
		totals[cat] = math.Round(secs/n*10) / 10
		totalMinutes += totals[cat] / 60
	}

	shares := []CategoryShare{}
	for _, cat := range models.DisplayOrder() {
		minutes := round(totals[cat] / 60)
		if minutes <= 0 {
			continue
		}
		pct := 0
		if totalMinutes > 0 {
			pct = round(float64(minutes) / totalMinutes * 100)
		}
		shares = append(shares, CategoryShare{Category: cat, Minutes: minutes, Percent: pct})
	}
	return shares, categoryInsight(shares)
}

func categoryInsight(shares []CategoryShare) string {
	if len(shares) == 0 {
		return "No category data available."
	}
	sorted := make([]CategoryShare, len(shares))
	copy(sorted, shares)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Percent > sorted[j].Percent })

	top := sorted[0]
	msg := fmt.Sprintf("%s leads with %s/day (%d%%)", top.Category, perDay(top.Minutes), top.Percent)
	if len(sorted) > 1 {
		second := sorted[1]
		msg += fmt.Sprintf(", followed by %s at %s/day (%d%%).", second.Category, perDay(second.Minutes), second.Percent)
		least := sorted[len(sorted)-1]
		msg += fmt.Sprintf(" %s accounts for only %s/day (%d%% of time).", least.Category, perDay(least.Minutes), least.Percent)
	} else {
		msg += "."
	}
	return msg
}

func perDay(minutes int) string {
	if minutes >= 60 {
		if m := minutes % 60; m > 0 {
			return fmt.Sprintf("%dh %dm", minutes/60, m)
		}
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dm", minutes)
}

func summarizeTopApps(focused []models.ActivityRecord) []AppShare {
	days := make(map[string]struct{})
	totals := make(map[string]float64)
	var order []string
	for _, r := range focused {
		days[dayKey(r.Timestamp)] = struct{}{}
		if _, ok := totals[r.AppName]; !ok {
			order = append(order, r.AppName)
		}
		totals[r.AppName] += r.Duration
	}
	n := math.Max(float64(len(days)), 1)

	for _, app := range order {
		totals[app] = math.Round(totals[app]/n*10) / 10
	}
	sort.SliceStable(order, func(i, j int) bool { return totals[order[i]] > totals[order[j]] })
	if len(order) > topAppsLimit {
		order = order[:topAppsLimit]
	}

	sum := 0.0
	for _, app := range order {
		sum += totals[app]
	}
	out := make([]AppShare, 0, len(order))
	for _, app := range order {
		share := AppShare{App: app, Category: classify.CategorizeApp(app), Minutes: round(totals[app] / 60)}
		if sum > 0 {
			share.Percent = round(totals[app] / sum * 100)
		}
		out = append(out, share)
	}
	return out
}

func summarizeHourly(focused []models.ActivityRecord) []HourActivity {
	days := make(map[string]struct{})
	var productive, leisure [24]float64
	var seen [24]bool
	for _, r := range focused {
		days[dayKey(r.Timestamp)] = struct{}{}
		h := r.Timestamp.Local().Hour()
		seen[h] = true
		if classify.CategorizeActivity(r.AppName) == models.KindProductive {
			productive[h] += r.Duration
		} else {
			leisure[h] += r.Duration
		}
	}
	if len(days) == 0 {
		return []HourActivity{}
	}
	n := float64(len(days))

	out := []HourActivity{}
	for h := 0; h < 24; h++ {
		if !seen[h] {
			continue
		}
		out = append(out, HourActivity{
			Hour:       h,
			Productive: round(productive[h] / 60 / n),
			Leisure:    round(leisure[h] / 60 / n),
			Total:      round((productive[h] + leisure[h]) / 60 / n),
		})
	}
	return out
}
