package dev

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

// View renders the development tab.
func (m *Model) View() string {
	r := m.state.GetReport()
	if r == nil {
		return m.page.Loading()
	}
	if r.DevStats.TotalHours == 0 && len(r.TechStack.Languages) == 0 {
		return components.RenderEmpty("No development activity detected", m.page.Width, m.page.Height)
	}

	width := m.page.CardWidth(60, 110)
	sections := []string{
		styles.TitleStyle.Render("Development"),
		"",
		renderStats(r.DevStats, width),
		renderStack(r.TechStack, width),
		renderVelocity(r.Velocity, width),
	}
	return m.page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func kv(label, value string) string {
	return styles.HelpDescStyle.Render(fmt.Sprintf("%-18s", label)) + value
}

func renderStats(s analyzers.DevStatsReport, width int) string {
	rows := []string{
		styles.CardTitleStyle.Render("Coding"),
		kv("Total", classify.FormatHours(s.TotalHours)),
		kv("Languages", fmt.Sprint(s.LanguageCount)),
	}
	if s.TopLanguage != nil {
		rows = append(rows, kv("Top language", lipgloss.NewStyle().
			Foreground(lipgloss.Color(classify.LanguageColor(s.TopLanguage.Language))).
			Render(fmt.Sprintf("%s (%s)", s.TopLanguage.Language, classify.FormatHours(s.TopLanguage.Hours)))))
	}
	rows = append(rows,
		kv("Files touched", fmt.Sprint(s.UniqueFiles)),
		kv("Active days", fmt.Sprintf("%d, longest run %d", s.ActiveDays, s.LongestStreak)),
		kv("Per active day", fmt.Sprintf("%s average, %s max", classify.FormatHours(s.AvgDayHours), classify.FormatHours(s.MaxDayHours))),
	)
	if !s.FirstActivity.IsZero() {
		rows = append(rows, kv("Tracked since", fmt.Sprintf("%s (%d days), last %s",
			s.FirstActivity.Format(models.DateLayout), s.DaysSinceFirst, s.LastActivity.Format("2006-01-02 15:04"))))
	}
	if s.Insight != "" {
		rows = append(rows, "", styles.HelpStyle.Render(s.Insight))
	}
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderStack(ts analyzers.TechStackReport, width int) string {
	rows := []string{
		styles.CardTitleStyle.Render(fmt.Sprintf("Tech stack, last %d days", ts.Days)),
		styles.HelpDescStyle.Render(fmt.Sprintf("%s coded · %s the %d days before",
			classify.FormatHours(ts.TotalHours), classify.FormatHours(ts.PrevHours), ts.Days)),
		components.NewShareBar().View(ts.DetectionRate, "Detected", width-8),
		"",
	}
	if len(ts.Languages) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No languages detected in this window"))
		return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	for _, l := range ts.Languages {
		rows = append(rows, components.NewColorBar(l.Color).View(l.Percent, l.Language, width-8))
	}

	t := components.NewTable("Language", "Time", "Change", "Days", "Avg session")
	for _, l := range ts.Languages {
		change := "new"
		if l.PrevHours > 0 {
			change = styles.ChangeStyle(l.ChangePercent).Render(fmt.Sprintf("%+.0f%%", l.ChangePercent))
		}
		t.Row(
			lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render(l.Language),
			classify.FormatHours(l.Hours),
			change,
			fmt.Sprint(l.DaysActive),
			classify.FormatHours(l.AvgSession),
		)
	}
	rows = append(rows, "", t.Render())
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func momentumStyle(m analyzers.Momentum) lipgloss.Style {
	switch m {
	case analyzers.MomentumGrowing:
		return styles.TrendUpStyle
	case analyzers.MomentumDeclining:
		return styles.TrendDownStyle
	default:
		return styles.TrendSteadyStyle
	}
}

func renderVelocity(v analyzers.VelocityReport, width int) string {
	rows := []string{styles.CardTitleStyle.Render(fmt.Sprintf("Velocity, last %d days", len(v.Days)))}
	if len(v.Trends) == 0 {
		rows = append(rows, styles.HelpStyle.Render("Not enough coding history for trends"))
		return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	sparkWidth := max(width-60, 10)
	for _, tr := range v.Trends {
		name := lipgloss.NewStyle().
			Foreground(lipgloss.Color(classify.LanguageColor(tr.Language))).
			Width(14).
			Render(tr.Language)
		stats := fmt.Sprintf(" %7s %s %s",
			classify.FormatHours(tr.TotalHours),
			styles.ChangeStyle(tr.WeekOverWeek).Render(fmt.Sprintf("%+5.0f%% wow", tr.WeekOverWeek)),
			momentumStyle(tr.Momentum).Render(string(tr.Momentum)))
		if tr.ConsecutiveDays > 1 {
			stats += styles.HelpStyle.Render(fmt.Sprintf(" · %d days running", tr.ConsecutiveDays))
		}
		rows = append(rows, name+components.RenderColoredSparkline(v.Series(tr.Language), sparkWidth)+stats)
	}

	if len(v.Insights) > 0 {
		rows = append(rows, "", styles.HelpStyle.Render(strings.Join(v.Insights, "\n")))
	}
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
