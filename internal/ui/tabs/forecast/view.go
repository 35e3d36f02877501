package forecast

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	fc "github.com/j-veylop/activity-insights-tui/internal/forecast"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

// View renders the forecast tab.
func (m *Model) View() string {
	r := m.state.GetReport()
	if r == nil {
		return m.page.Loading()
	}
	if len(r.Daily) == 0 {
		return components.RenderEmpty("Not enough history to forecast", m.page.Width, m.page.Height)
	}

	width := m.page.CardWidth(60, 120)
	f := r.Forecast
	sections := []string{
		styles.TitleStyle.Render("Next 7 days"),
		"",
		renderHeadline(f),
		m.renderChart(r, width),
		renderTable(f),
	}
	if f.Insight != "" {
		sections = append(sections, "", styles.HelpStyle.Render(f.Insight))
	}
	return m.page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderHeadline(f fc.Forecast) string {
	card := func(label, value string) string {
		return styles.ForecastCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.HelpDescStyle.Render(label),
			styles.FocusedStyle.Render(value),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Week", classify.FormatHours(f.WeeklyTotal)),
		card("Per day", classify.FormatHours(f.DailyAverage)),
		card("Tomorrow", styles.ChangeStyle(float64(f.TomorrowRate-100)).Render(fmt.Sprintf("%d%% of avg", f.TomorrowRate))),
		card("Weekend vs weekday", styles.ChangeStyle(f.WeekendVariance).Render(fmt.Sprintf("%+.0f%%", f.WeekendVariance))),
		card("Consistency", fmt.Sprintf("%.0f%%", f.Consistency)),
	)
}

// series returns the charted history (hours per day, oldest first) and
// forecast for focus, or for the daily total when focus is nil.
func series(r *report.Report, focus *models.Category) (history, forecast []float64) {
	daily := r.Daily
	if len(daily) > historyDays {
		daily = daily[len(daily)-historyDays:]
	}
	history = make([]float64, len(daily))
	for i, d := range daily {
		if focus == nil {
			history[i] = d.Hours()
		} else {
			history[i] = d.CategoryTotals[*focus] / 3600
		}
	}

	if focus == nil {
		return history, r.Forecast.Totals()
	}
	forecast = make([]float64, fc.Horizon)
	for i, d := range r.Forecast.Days {
		forecast[i] = d.Categories[*focus]
	}
	return history, forecast
}

func (m *Model) renderChart(r *report.Report, width int) string {
	history, forecast := series(r, m.focus)

	caption := "Hours per day, all activity"
	if m.focus != nil {
		caption = "Hours per day, " + m.focus.String()
	}

	legend := components.RenderLegend([]components.LegendItem{
		{Label: fmt.Sprintf("last %d days", len(history)), Color: components.ChartHistoryColor},
		{Label: "forecast", Color: components.ChartForecastColor},
	})
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Trend"),
		components.RenderForecastChart(history, forecast, width-16, 10, caption),
		legend,
	)
	return styles.CardStyle.Width(width).Render(content)
}

func renderTable(f fc.Forecast) string {
	headers := []string{"Day"}
	for _, c := range f.ActiveCategories {
		headers = append(headers, c.String())
	}
	headers = append(headers, "Total", "")

	t := components.NewTable(headers...)
	for _, d := range f.Days {
		label := d.Label()
		if d.IsWeekend {
			label = styles.HelpStyle.Render(label)
		}
		row := []string{label}
		for _, c := range f.ActiveCategories {
			row = append(row, fmt.Sprintf("%.1fh", d.Categories[c]))
		}
		row = append(row, styles.FocusedStyle.Render(fmt.Sprintf("%.1fh", d.Total)), d.Insight)
		t.Row(row...)
	}
	return t.Render()
}
