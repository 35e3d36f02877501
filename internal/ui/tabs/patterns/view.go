package patterns

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

// View renders the patterns tab.
func (m *Model) View() string {
	r := m.state.GetReport()
	if r == nil {
		return m.page.Loading()
	}
	if r.Records == 0 {
		return components.RenderEmpty("No activity in the selected period", m.page.Width, m.page.Height)
	}

	width := m.page.CardWidth(50, 100)
	sections := []string{
		styles.TitleStyle.Render("Patterns"),
		"",
		renderConsistency(r.Consistency, width),
		renderAnomalies(r.Anomalies, width),
		m.renderInsights(r.Insights, width),
	}
	return m.page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderConsistency(c analyzers.ConsistencyReport, width int) string {
	streak := fmt.Sprintf("%d day streak", c.Streak)
	if c.StreakEmoji != "" {
		streak = c.StreakEmoji + " " + streak
	}

	rows := []string{
		styles.CardTitleStyle.Render("Consistency"),
		styles.FocusedStyle.Render(streak),
		styles.HelpDescStyle.Render(fmt.Sprintf("%d productive days this week · %d%% active over two weeks",
			c.WeeklyProductive, c.Consistency)),
		"",
		renderCalendar(c.Calendar),
	}

	if len(c.TopCategories) > 0 {
		rows = append(rows, "")
		for _, tc := range c.TopCategories {
			rows = append(rows, fmt.Sprintf("%s %s",
				styles.CategoryStyle(tc.Category).Width(18).Render(tc.Category.String()),
				styles.HelpStyle.Render(fmt.Sprintf("%d/%d days (%d%%)", tc.DaysActive, tc.TotalDays, tc.Percentage))))
		}
	}
	if c.Insight != "" {
		rows = append(rows, "", styles.HelpStyle.Render(c.Insight))
	}
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderCalendar draws one cell per day with the weekday initial below.
func renderCalendar(days []analyzers.CalendarDay) string {
	if len(days) == 0 {
		return ""
	}
	var cells, labels strings.Builder
	for _, d := range days {
		cell := "■"
		if d.IsToday {
			cell = "◆"
		}
		cells.WriteString(styles.DayStatusStyle(string(d.Status)).Render(cell) + " ")
		labels.WriteString(styles.HelpDescStyle.Render(d.DayLabel) + " ")
	}
	legend := components.RenderLegend([]components.LegendItem{
		{Label: "productive", Color: styles.Success},
		{Label: "active", Color: styles.Warning},
		{Label: "inactive", Color: styles.Subtle},
	})
	return lipgloss.JoinVertical(lipgloss.Left, cells.String(), labels.String(), legend)
}

func renderAnomalies(a analyzers.AnomalyReport, width int) string {
	rows := []string{
		styles.CardTitleStyle.Render("Unusual days"),
		styles.HelpDescStyle.Render(fmt.Sprintf("%d days analyzed · mean %.1fh ± %.1fh · threshold %.1fσ",
			a.DaysAnalyzed, a.Mean, a.StdDev, a.Threshold)),
	}

	if len(a.Anomalies) == 0 {
		rows = append(rows, "", styles.SuccessTextStyle.Render("No unusual days in this period"))
		return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	for _, an := range a.Anomalies {
		style := styles.InfoTextStyle
		arrow := "▼"
		if an.Type == analyzers.AnomalyHigh {
			style = styles.AnomalyHighStyle
			arrow = "▲"
		}
		line := fmt.Sprintf("%s %s %-9s %5.1fh %+.0f%%", arrow, an.DateLabel, an.DayName, an.TotalHours, an.Deviation)
		rows = append(rows, "", style.Render(line))

		var cats []string
		for _, ch := range an.TopCategories {
			cats = append(cats, styles.CategoryStyle(ch.Category).Render(fmt.Sprintf("%s %.1fh", ch.Category, ch.Hours)))
		}
		if len(cats) > 0 {
			rows = append(rows, "  "+strings.Join(cats, styles.HelpStyle.Render(" · ")))
		}
		if an.Insight != "" {
			rows = append(rows, "  "+styles.HelpStyle.Render(an.Insight))
		}
	}
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func insightStyle(t models.InsightType) lipgloss.Style {
	switch t {
	case models.InsightHealth, models.InsightBalance:
		return styles.WarningTextStyle
	case models.InsightOptimization:
		return styles.InfoTextStyle
	case models.InsightHabit:
		return styles.SuccessTextStyle
	default:
		return styles.FocusedStyle
	}
}

func (m *Model) renderInsights(insights []models.Insight, width int) string {
	rows := []string{styles.CardTitleStyle.Render("Workflow insights")}
	if len(insights) == 0 {
		rows = append(rows, styles.HelpStyle.Render("Not enough history for workflow insights yet"))
		return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	shown := insights
	if !m.allInsights && len(shown) > collapsedInsights {
		shown = shown[:collapsedInsights]
	}
	desc := lipgloss.NewStyle().Width(width - 8).Foreground(styles.TextSecondary)
	for _, in := range shown {
		rows = append(rows,
			"",
			insightStyle(in.Type).Render(strings.TrimSpace(in.Icon+" "+in.Title)),
			desc.Render(in.Description),
		)
	}
	if hidden := len(insights) - len(shown); hidden > 0 {
		rows = append(rows, "", styles.HelpStyle.Render(fmt.Sprintf("%d more, press a to show all", hidden)))
	}
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
