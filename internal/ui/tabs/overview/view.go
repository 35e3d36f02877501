package overview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

// View renders the overview tab.
func (m *Model) View() string {
	r := m.state.GetReport()
	if r == nil {
		return m.page.Loading()
	}
	if r.Records == 0 {
		return components.RenderEmpty("No activity in the selected period", m.page.Width, m.page.Height)
	}

	cardWidth := m.page.CardWidth(50, 100)

	sections := []string{
		m.renderTitle(r),
		m.renderHeadline(r.Summary, cardWidth),
		m.renderCategories(r.Summary, cardWidth),
		m.renderTopApps(r.Summary, cardWidth),
		m.renderRhythm(r, cardWidth),
	}

	return m.page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle(r *report.Report) string {
	filter, timeRange := m.state.GetFilter()
	title := styles.TitleStyle.Render("Overview")
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%s · %d records over %d days · %s days, %s",
		r.Summary.TotalTime.DateRange(), r.Records, r.DaysTracked, filter, timeRange))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func stat(label, value string) string {
	return styles.HelpDescStyle.Render(label) + "\n" + styles.FocusedStyle.Render(value)
}

func (m *Model) renderHeadline(s analyzers.Summary, width int) string {
	t := s.TotalTime
	third := max(width/3-2, 14)
	card := styles.CardStyle.Width(third)

	todayStyle := styles.ChangeStyle(float64(t.TodayPercent - 100))
	timeCard := card.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Screen time"),
		stat("Average per day", classify.FormatHours(t.AvgHoursPerDay)),
		"",
		stat("Weekday / weekend", fmt.Sprintf("%s / %s",
			classify.FormatMinutes(float64(t.WeekdayAvgMin)), classify.FormatMinutes(float64(t.WeekendAvgMin)))),
		"",
		styles.HelpDescStyle.Render("Today")+"\n"+
			todayStyle.Render(fmt.Sprintf("%s (%d%%)", classify.FormatMinutes(float64(t.TodayMin)), t.TodayPercent)),
	))

	b := s.Balance
	balanceCard := card.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Work / life"),
		styles.KindStyle(models.KindProductive).Render(fmt.Sprintf("Productive %d%%", b.ProductivePercent)),
		styles.KindStyle(models.KindProductive).Render(strings.Repeat("█", b.ProductivePercent*third/100)),
		"",
		styles.KindStyle(models.KindLeisure).Render(fmt.Sprintf("Leisure %d%%", b.LeisurePercent)),
		styles.KindStyle(models.KindLeisure).Render(strings.Repeat("█", b.LeisurePercent*third/100)),
	))

	sw := s.Switching
	switchCard := card.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Switching"),
		stat("Switches per day", fmt.Sprint(sw.AvgSwitchesPerDay)),
		"",
		stat("Apps per day", fmt.Sprint(sw.AvgUniqueApps)),
		"",
		stat("Time per app", classify.FormatSeconds(float64(sw.AvgTimePerApp))),
	))

	return lipgloss.JoinHorizontal(lipgloss.Top, timeCard, balanceCard, switchCard)
}

func (m *Model) renderCategories(s analyzers.Summary, width int) string {
	rows := []string{styles.CardTitleStyle.Render("Categories (per tracked day)")}
	barWidth := width - 16
	for _, c := range s.Categories {
		bar := components.NewCategoryBar(c.Category).View(float64(c.Percent), c.Category.String(), barWidth)
		rows = append(rows, bar+" "+styles.HelpStyle.Render(classify.FormatMinutes(float64(c.Minutes))))
	}
	if s.CategoryInsight != "" {
		rows = append(rows, "", styles.HelpStyle.Render(s.CategoryInsight))
	}
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderTopApps(s analyzers.Summary, width int) string {
	if len(s.TopApps) == 0 {
		return ""
	}
	values := make([]float64, len(s.TopApps))
	labels := make([]string, len(s.TopApps))
	for i, a := range s.TopApps {
		values[i] = float64(a.Minutes)
		labels[i] = styles.CategoryStyle(a.Category).Render(a.App)
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Top apps (minutes per day)"),
		components.RenderBarChart(values, labels, width-8),
	)
	return styles.CardStyle.Width(width).Render(content)
}

func (m *Model) renderRhythm(r *report.Report, width int) string {
	hours := make([]float64, 24)
	for _, h := range r.Summary.Hourly {
		if h.Hour >= 0 && h.Hour < 24 {
			hours[h.Hour] = float64(h.Total)
		}
	}

	rows := []string{
		styles.CardTitleStyle.Render("Daily rhythm"),
		components.RenderHourlyHeatmap(hours),
	}
	if r.Summary.PeakHour >= 0 {
		rows = append(rows, styles.HelpStyle.Render(fmt.Sprintf("Peak at %02d:00, %d%% productive",
			r.Summary.PeakHour, r.Summary.PeakProductivePc)))
	}

	if len(r.Daily) > 1 {
		daily := make([]float64, len(r.Daily))
		for i, d := range r.Daily {
			daily[i] = d.Hours()
		}
		rows = append(rows, "",
			styles.HelpDescStyle.Render("Hours per day ")+components.RenderColoredSparkline(daily, width-20))
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
