package analyzers

import (
	"fmt"
	"sort"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// ProductiveDayHours is the productive-category time a day needs to count
// as productive.
const ProductiveDayHours = 4.0

const calendarDays = 14

// DayStatus classifies a calendar day.
type DayStatus string

// Day statuses.
const (
	DayProductive DayStatus = "productive"
	DayActive     DayStatus = "active"
	DayInactive   DayStatus = "inactive"
)

// CalendarDay is one cell of the two-week consistency calendar.
type CalendarDay struct {
	Date     time.Time `json:"date" yaml:"date"`
	Status   DayStatus `json:"status" yaml:"status"`
	IsToday  bool      `json:"isToday" yaml:"isToday"`
	DayLabel string    `json:"dayLabel" yaml:"dayLabel"`
}

// CategoryConsistency counts the calendar days a category was seen.
type CategoryConsistency struct {
	Category   models.Category `json:"category" yaml:"category"`
	DaysActive int             `json:"daysActive" yaml:"daysActive"`
	TotalDays  int             `json:"totalDays" yaml:"totalDays"`
	Percentage int             `json:"percentage" yaml:"percentage"`
}

// ConsistencyReport is the streak and calendar view.
type ConsistencyReport struct {
	Streak           int                   `json:"streak" yaml:"streak"`
	StreakEmoji      string                `json:"streakEmoji" yaml:"streakEmoji"`
	WeeklyProductive int                   `json:"weeklyProductive" yaml:"weeklyProductive"`
	Consistency      int                   `json:"consistency" yaml:"consistency"` // percent of 14 days
	Calendar         []CalendarDay         `json:"calendar" yaml:"calendar"`
	TopCategories    []CategoryConsistency `json:"topCategories" yaml:"topCategories"`
	Insight          string                `json:"insight" yaml:"insight"`
}

// TrackConsistency computes the productive streak ending yesterday, a
// fourteen-day calendar ending today and per-category presence. Today is
// shown in the calendar but never counted.
func TrackConsistency(records []models.ActivityRecord, now time.Time) ConsistencyReport {
	days, keys := groupDays(records, now, true)
	today := models.StartOfDay(now.Local())

	productive := make(map[string]bool, len(days))
	for k, d := range days {
		productive[k] = d.productiveHours() >= ProductiveDayHours
	}

	streak := 0
	for check := today.AddDate(0, 0, -1); productive[check.Format(models.DateLayout)]; check = check.AddDate(0, 0, -1) {
		streak++
	}

	report := ConsistencyReport{Streak: streak, StreakEmoji: StreakEmoji(streak)}

	active := 0
	for i := calendarDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		key := date.Format(models.DateLayout)
		status := DayInactive
		if _, ok := days[key]; ok {
			status = DayActive
			if productive[key] {
				status = DayProductive
			}
		}
		isToday := i == 0
		report.Calendar = append(report.Calendar, CalendarDay{
			Date:     date,
			Status:   status,
			IsToday:  isToday,
			DayLabel: date.Weekday().String()[:1],
		})
		if isToday {
			continue
		}
		if status != DayInactive {
			active++
		}
		// The seven days before today.
		if i <= 7 && status == DayProductive {
			report.WeeklyProductive++
		}
	}
	report.Consistency = round(float64(active) / calendarDays * 100)
	report.TopCategories = categoryPresence(days, keys, report.Calendar)
	report.Insight = consistencyInsight(report)
	return report
}

func categoryPresence(days map[string]*dayBucket, keys []string, calendar []CalendarDay) []CategoryConsistency {
	var order []models.Category
	seen := make(map[models.Category]bool)
	for _, k := range keys {
		for _, cat := range days[k].order {
			if !seen[cat] {
				seen[cat] = true
				order = append(order, cat)
			}
		}
	}

	stats := make([]CategoryConsistency, 0, len(order))
	for _, cat := range order {
		activeDays := 0
		for _, day := range calendar {
			if day.IsToday {
				continue
			}
			if d, ok := days[day.Date.Format(models.DateLayout)]; ok {
				if _, has := d.categories[cat]; has {
					activeDays++
				}
			}
		}
		stats = append(stats, CategoryConsistency{
			Category:   cat,
			DaysActive: activeDays,
			TotalDays:  calendarDays,
			Percentage: round(float64(activeDays) / calendarDays * 100),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].DaysActive > stats[j].DaysActive })
	if len(stats) > 3 {
		stats = stats[:3]
	}
	return stats
}

func consistencyInsight(r ConsistencyReport) string {
	switch {
	case r.Streak >= 7:
		return fmt.Sprintf("💡 %d consecutive productive days recorded, representing sustained engagement with technical activities exceeding %.0fh daily threshold.",
			r.Streak, ProductiveDayHours)
	case r.Streak >= 3:
		return fmt.Sprintf("💡 Current %d-day productive streak indicates consistent engagement. %d of last 7 days met productivity threshold.",
			r.Streak, r.WeeklyProductive)
	case r.WeeklyProductive >= 5:
		return fmt.Sprintf("💡 %d productive days achieved this week (%d%% weekly engagement rate) with %.0fh+ daily activity in technical categories.",
			r.WeeklyProductive, round(float64(r.WeeklyProductive)/7*100), ProductiveDayHours)
	case r.Consistency < 30:
		top, pct := models.CategoryDevelopment.String(), 0
		if len(r.TopCategories) > 0 {
			top, pct = r.TopCategories[0].Category.String(), r.TopCategories[0].Percentage
		}
		return fmt.Sprintf("💡 Activity recorded on %d%% of tracked days. %s represents primary engagement category at %d%% consistency.",
			r.Consistency, top, pct)
	default:
		return fmt.Sprintf("%d of 7 days this week met productivity criteria. Overall consistency at %d%% across %d active categories.",
			r.WeeklyProductive, r.Consistency, len(r.TopCategories))
	}
}

// StreakEmoji picks the badge for a streak length.
func StreakEmoji(streak int) string {
	switch {
	case streak <= 0:
		return "💤"
	case streak == 1:
		return "🌱"
	case streak <= 3:
		return "✨"
	case streak <= 6:
		return "⚡"
	case streak <= 13:
		return "🔥"
	case streak <= 29:
		return "💪"
	default:
		return "🏆"
	}
}
