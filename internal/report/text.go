package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/forecast"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

// RenderText renders the selected sections as styled terminal text.
func RenderText(r Report, sections ...Section) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Activity report · %d records over %d days", r.Records, r.DaysTracked)))
	b.WriteString("\n")
	for _, s := range sections {
		switch s {
		case SectionOverview:
			b.WriteString(renderOverview(r))
		case SectionPatterns:
			b.WriteString(renderPatterns(r))
		case SectionSessions:
			b.WriteString(renderSessions(r))
		case SectionApps:
			b.WriteString(renderApps(r))
		case SectionForecast:
			b.WriteString(RenderForecast(r.Forecast))
		case SectionDev:
			b.WriteString(renderDev(r))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func heading(s string) string {
	return styles.SubTitleStyle.Render(s) + "\n"
}

func kv(label, value string) string {
	return styles.HelpDescStyle.Render(fmt.Sprintf("%-22s", label)) + value + "\n"
}

func renderOverview(r Report) string {
	s := r.Summary
	var b strings.Builder
	b.WriteString(heading("Overview"))
	b.WriteString(kv("Date range", s.TotalTime.DateRange()))
	b.WriteString(kv("Average per day", classify.FormatHours(s.TotalTime.AvgHoursPerDay)))
	b.WriteString(kv("Weekday / weekend", fmt.Sprintf("%s / %s",
		classify.FormatMinutes(float64(s.TotalTime.WeekdayAvgMin)), classify.FormatMinutes(float64(s.TotalTime.WeekendAvgMin)))))
	b.WriteString(kv("Today", fmt.Sprintf("%s (%d%% of average)", classify.FormatMinutes(float64(s.TotalTime.TodayMin)), s.TotalTime.TodayPercent)))
	b.WriteString(kv("Work / life", fmt.Sprintf("%s / %s",
		styles.KindStyle(models.KindProductive).Render(fmt.Sprintf("%d%%", s.Balance.ProductivePercent)),
		styles.KindStyle(models.KindLeisure).Render(fmt.Sprintf("%d%%", s.Balance.LeisurePercent)))))
	b.WriteString(kv("Switches per day", fmt.Sprintf("%d (%d apps, %s per app)",
		s.Switching.AvgSwitchesPerDay, s.Switching.AvgUniqueApps, classify.FormatSeconds(float64(s.Switching.AvgTimePerApp)))))
	if s.PeakHour >= 0 {
		b.WriteString(kv("Peak hour", fmt.Sprintf("%02d:00 (%d%% productive)", s.PeakHour, s.PeakProductivePc)))
	}

	cats := components.NewTable("Category", "Per day", "Share")
	for _, c := range s.Categories {
		cats.Row(styles.CategoryStyle(c.Category).Render(c.Category.String()), classify.FormatMinutes(float64(c.Minutes)), fmt.Sprintf("%d%%", c.Percent))
	}
	apps := components.NewTable("App", "Category", "Per day", "Share")
	for _, a := range s.TopApps {
		apps.Row(a.App, a.Category.String(), classify.FormatMinutes(float64(a.Minutes)), fmt.Sprintf("%d%%", a.Percent))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cats.Render(), " ", apps.Render()))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(s.CategoryInsight))
	b.WriteString("\n")
	return b.String()
}

func renderPatterns(r Report) string {
	var b strings.Builder
	b.WriteString(heading("Patterns"))

	c := r.Consistency
	b.WriteString(kv("Streak", fmt.Sprintf("%s %d days", c.StreakEmoji, c.Streak)))
	b.WriteString(kv("Productive this week", fmt.Sprintf("%d of 7", c.WeeklyProductive)))
	b.WriteString(kv("Consistency", fmt.Sprintf("%d%%", c.Consistency)))
	cal := make([]string, 0, len(c.Calendar))
	for _, d := range c.Calendar {
		cell := styles.DayStatusStyle(string(d.Status)).Render("■")
		if d.IsToday {
			cell = styles.FocusedStyle.Render("□")
		}
		cal = append(cal, cell)
	}
	b.WriteString(kv("Last 14 days", strings.Join(cal, " ")))
	b.WriteString(styles.HelpStyle.Render(c.Insight) + "\n\n")

	if len(r.Anomalies.Anomalies) == 0 {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("No anomalies across %d days.", r.Anomalies.DaysAnalyzed)) + "\n")
	} else {
		t := components.NewTable("Date", "Day", "Hours", "Deviation", "Type")
		for _, a := range r.Anomalies.Anomalies {
			kind := styles.SuccessTextStyle.Render(string(a.Type))
			if a.Type == analyzers.AnomalyHigh {
				kind = styles.AnomalyHighStyle.Render(string(a.Type))
			}
			t.Row(a.DateLabel, a.DayName, fmt.Sprintf("%.1f", a.TotalHours), fmt.Sprintf("%+.0f%%", a.Deviation), kind)
		}
		b.WriteString(t.Render() + "\n")
		for _, a := range r.Anomalies.Anomalies {
			b.WriteString(styles.HelpStyle.Render("• "+a.Insight) + "\n")
		}
	}

	b.WriteString("\n")
	for _, in := range r.Insights {
		b.WriteString(fmt.Sprintf("%s %s\n", in.Icon, styles.CardTitleStyle.UnsetMarginBottom().Render(in.Title)))
		b.WriteString(styles.HelpStyle.Render("  "+in.Description) + "\n")
	}
	return b.String()
}

func renderSessions(r Report) string {
	var b strings.Builder
	b.WriteString(heading("Sessions"))
	bs := r.BlockStats
	b.WriteString(kv("Work blocks", fmt.Sprintf("%d (%.1f per week)", bs.Count, bs.PerWeek)))
	b.WriteString(kv("Longest / average", fmt.Sprintf("%s / %s", classify.FormatMinutes(bs.Longest), classify.FormatMinutes(bs.AvgDuration))))

	blocks := components.NewTable("Start", "Length", "Dominant", "Events")
	for _, blk := range r.Blocks {
		blocks.Row(blk.Start.Local().Format("Jan 2 15:04"), classify.FormatMinutes(blk.Duration),
			styles.CategoryStyle(blk.DominantCategory).Render(blk.DominantCategory.String()), fmt.Sprint(blk.EventCount))
	}
	b.WriteString(blocks.Render() + "\n")

	seqs := components.NewTable("Sequence", "Count", "Pattern")
	for _, s := range r.Transitions {
		seqs.Row(strings.Join(s.Apps, " → "), fmt.Sprint(s.Count), string(s.Pattern))
	}
	b.WriteString(seqs.Render() + "\n")

	cs := r.ContextSwitches
	b.WriteString(kv(fmt.Sprintf("%s → %s", cs.From, cs.To), fmt.Sprintf("%d switches, avg %s (%s)",
		cs.TotalSwitches, classify.FormatSeconds(cs.AvgGap), cs.Level)))
	if cs.Insight != "" {
		b.WriteString(styles.HelpStyle.Render(cs.Insight) + "\n")
	}

	sl := r.SessionLengths
	lengths := components.NewTable("Length", "Sessions/day")
	for _, row := range sl.Rows {
		lengths.Row(row.Label, fmt.Sprint(row.Total()))
	}
	b.WriteString(lengths.Render() + "\n")
	b.WriteString(kv("Avg / median session", fmt.Sprintf("%.1fs / %.1fs", sl.AvgDuration, sl.MedianDuration)))
	return b.String()
}

func renderApps(r Report) string {
	var b strings.Builder
	b.WriteString(heading("App loyalty"))
	t := components.NewTable("App", "Tier", "Score", "Days", "Per day", "Peak", "Least")
	for _, a := range r.Loyalty.Apps {
		t.Row(a.App,
			styles.GetTierStyle(string(a.Tier)).Render(a.Tier.Emoji()+" "+string(a.Tier)),
			fmt.Sprintf("%.0f", a.Score),
			fmt.Sprintf("%d/%d", a.DaysActive, r.Loyalty.TotalDays),
			classify.FormatMinutes(a.AvgDaily),
			a.PeakDay, a.LeastDay)
	}
	b.WriteString(t.Render() + "\n")
	return b.String()
}

// RenderForecast renders the seven-day outlook table.
func RenderForecast(f forecast.Forecast) string {
	var b strings.Builder
	b.WriteString(heading("7-day forecast"))
	t := components.NewTable("Day", "Total", "Top category")
	for _, d := range f.Days {
		top, topHours := "-", 0.0
		for _, cat := range models.DisplayOrder() {
			if h := d.Categories[cat]; h > topHours {
				top, topHours = cat.String(), h
			}
		}
		t.Row(d.Label(), classify.FormatHours(d.Total), top)
	}
	b.WriteString(t.Render() + "\n")
	b.WriteString(kv("Weekly total", classify.FormatHours(f.WeeklyTotal)))
	b.WriteString(kv("Tomorrow vs average", fmt.Sprintf("%d%%", f.TomorrowRate)))
	b.WriteString(kv("Consistency", fmt.Sprintf("%.0f%%", f.Consistency)))
	b.WriteString(styles.HelpStyle.Render(f.Insight) + "\n")
	return b.String()
}

func renderDev(r Report) string {
	var b strings.Builder
	b.WriteString(heading(fmt.Sprintf("Development (last %d days)", r.TechStack.Days)))
	t := components.NewTable("Language", "Time", "Share", "Change", "Days", "Avg session")
	for _, l := range r.TechStack.Languages {
		t.Row(
			lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render(l.Language),
			classify.FormatHours(l.Hours),
			fmt.Sprintf("%.1f%%", l.Percent),
			styles.ChangeStyle(l.ChangePercent).Render(fmt.Sprintf("%+.0f%%", l.ChangePercent)),
			fmt.Sprint(l.DaysActive),
			classify.FormatHours(l.AvgSession))
	}
	b.WriteString(t.Render() + "\n")
	b.WriteString(kv("Detection rate", fmt.Sprintf("%.0f%%", r.TechStack.DetectionRate)))
	for _, line := range r.Velocity.Insights {
		b.WriteString("• " + line + "\n")
	}
	ds := r.DevStats
	b.WriteString(kv("Lifetime", fmt.Sprintf("%s across %d languages", classify.FormatHours(ds.TotalHours), ds.LanguageCount)))
	b.WriteString(kv("Active days", fmt.Sprintf("%d (longest streak %d)", ds.ActiveDays, ds.LongestStreak)))
	b.WriteString(kv("Files touched", fmt.Sprint(ds.UniqueFiles)))
	b.WriteString(styles.HelpStyle.Render(ds.Insight) + "\n")
	return b.String()
}
