package apps

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

var tiers = []analyzers.LoyaltyTier{
	analyzers.TierLoyal,
	analyzers.TierCommitted,
	analyzers.TierRegular,
	analyzers.TierCasual,
}

// View renders the apps tab.
func (m *Model) View() string {
	r := m.state.GetReport()
	if r == nil {
		return m.page.Loading()
	}
	if r.Records == 0 {
		return components.RenderEmpty("No activity in the selected period", m.page.Width, m.page.Height)
	}

	p := m.state.GetParams()
	width := m.page.CardWidth(60, 120)
	lr := r.Loyalty

	subtitle := fmt.Sprintf("%s · top %d over %d days", minDailyLabel(p.Loyalty.MinDailyMinutes), p.Loyalty.Limit, lr.TotalDays)
	sections := []string{
		styles.TitleStyle.Render("App loyalty"),
		styles.HelpStyle.Render(subtitle),
		"",
		renderTiers(lr),
	}

	if len(lr.Apps) == 0 {
		sections = append(sections, "", styles.HelpStyle.Render("No apps meet the minimum daily time, press m to lower it"))
		return m.page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	sel := min(m.selected, len(lr.Apps)-1)
	sections = append(sections,
		m.renderTable(lr.Apps, sel),
		renderDetail(lr.Apps[sel], width),
	)
	return m.page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderTiers(lr analyzers.LoyaltyReport) string {
	parts := make([]string, 0, len(tiers))
	for _, t := range tiers {
		parts = append(parts, styles.GetTierStyle(string(t)).Render(
			fmt.Sprintf("%s %s %d", t.Emoji(), t, lr.TierCounts[t])))
	}
	return strings.Join(parts, "   ")
}

func (m *Model) renderTable(apps []analyzers.AppLoyalty, selected int) string {
	t := components.NewTable("#", "App", "Category", "Tier", "Score", "Days", "Per day", "Sessions/day", "Avg session")
	for i, a := range apps {
		t.Row(
			fmt.Sprint(i+1),
			a.App,
			a.Category.String(),
			a.Tier.Emoji()+" "+string(a.Tier),
			fmt.Sprintf("%.0f", a.Score),
			fmt.Sprint(a.DaysActive),
			classify.FormatMinutes(a.AvgDaily),
			fmt.Sprintf("%.1f", a.SessionsPerDay),
			classify.FormatMinutes(a.AvgSession),
		)
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return styles.TableCellStyle.Bold(true).Foreground(styles.Primary)
		case row == selected:
			return styles.TableSelectedStyle
		case col == 2:
			return styles.TableCellStyle.Foreground(lipgloss.Color(apps[row].Category.Color()))
		case col == 3:
			return styles.TableCellStyle.Inherit(styles.GetTierStyle(string(apps[row].Tier)))
		default:
			return styles.TableCellStyle
		}
	}).Render()
}

func renderDetail(a analyzers.AppLoyalty, width int) string {
	kv := func(label, value string) string {
		return styles.HelpDescStyle.Render(fmt.Sprintf("%-16s", label)) + value
	}
	rows := []string{
		styles.CardTitleStyle.Render(a.App) + " " + styles.CategoryStyle(a.Category).Render(a.Category.String()),
		kv("Total", classify.FormatMinutes(a.TotalMinutes)),
		kv("Sessions", fmt.Sprintf("%d (%.1f per active day)", a.Sessions, a.SessionsPerDay)),
		kv("Loyalty", styles.GetTierStyle(string(a.Tier)).Render(fmt.Sprintf("%.0f/100 %s", a.Score, a.Tier))),
	}
	if a.PeakDay != "" {
		rows = append(rows, kv("Busiest day", fmt.Sprintf("%s (%s)", a.PeakDay, classify.FormatMinutes(a.PeakDayMinutes))))
	}
	if a.LeastDay != "" {
		rows = append(rows, kv("Quietest day", fmt.Sprintf("%s (%s)", a.LeastDay, classify.FormatMinutes(a.LeastDayMinutes))))
	}
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
