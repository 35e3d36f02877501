package sessions

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/sessions"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

// View renders the sessions tab.
func (m *Model) View() string {
	r := m.state.GetReport()
	if r == nil {
		return m.page.Loading()
	}
	if r.Records == 0 {
		return components.RenderEmpty("No activity in the selected period", m.page.Width, m.page.Height)
	}

	p := m.state.GetParams()
	width := m.page.CardWidth(60, 110)
	sections := []string{
		styles.TitleStyle.Render("Sessions"),
		"",
		renderBlocks(r, width),
		renderTransitions(r.Transitions, r.TransitionStats, p.Transitions, width),
		renderSwitches(r.ContextSwitches, width),
		renderLengths(r.SessionLengths, p.ExcludeShortSessions, width),
	}
	return m.page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func card(width int, rows ...string) string {
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderBlocks(r *report.Report, width int) string {
	s := r.BlockStats
	rows := []string{
		styles.CardTitleStyle.Render("Activity blocks"),
		styles.HelpDescStyle.Render(fmt.Sprintf("%d blocks · %.1f per week · longest %s · average %s",
			s.Count, s.PerWeek, classify.FormatMinutes(s.Longest), classify.FormatMinutes(s.AvgDuration))),
	}
	if len(r.Blocks) == 0 {
		rows = append(rows, "", styles.HelpStyle.Render("No blocks detected"))
		return card(width, rows...)
	}

	rows = append(rows, "")
	for _, b := range r.Blocks {
		head := fmt.Sprintf("%s–%s %8s ",
			b.Start.Format("Mon 02 Jan 15:04"), b.End.Format("15:04"), classify.FormatMinutes(b.Duration))
		rows = append(rows, styles.HelpDescStyle.Render(head)+
			styles.CategoryStyle(b.DominantCategory).Render(b.DominantCategory.String())+
			" "+breakdownBar(b, 24)+
			styles.HelpStyle.Render(fmt.Sprintf(" %d events", b.EventCount)))
	}
	return card(width, rows...)
}

// breakdownBar draws the block's category mix as a stacked bar.
func breakdownBar(b models.ActivityBlock, width int) string {
	if b.Duration <= 0 {
		return ""
	}
	var bar strings.Builder
	used := 0
	for _, c := range b.BreakdownOrder {
		n := int(b.CategoryBreakdown[c] / b.Duration * float64(width))
		n = min(n, width-used)
		if n <= 0 {
			continue
		}
		bar.WriteString(styles.CategoryStyle(c).Render(strings.Repeat("█", n)))
		used += n
	}
	if used < width {
		bar.WriteString(styles.HelpStyle.Render(strings.Repeat("░", width-used)))
	}
	return bar.String()
}

func patternStyle(p models.SequencePattern) lipgloss.Style {
	switch p {
	case models.PatternFocused:
		return styles.SuccessTextStyle
	case models.PatternLoop:
		return styles.WarningTextStyle
	case models.PatternDistraction:
		return styles.ErrorTextStyle
	default:
		return styles.InfoTextStyle
	}
}

func renderTransitions(seqs []models.TransitionSequence, s sessions.TransitionStats, p sessions.TransitionParams, width int) string {
	rows := []string{
		styles.CardTitleStyle.Render(fmt.Sprintf("App sequences (length %d, seen %d+ times)", p.Length, p.MinOccurrences)),
	}
	if len(seqs) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No repeated sequences, try a shorter length or fewer occurrences"))
		return card(width, rows...)
	}

	rows = append(rows, styles.HelpDescStyle.Render(fmt.Sprintf(
		"%d sequences over %d apps · %s average · %d rapid · %d%% flow disruption · %s distracted",
		s.TotalSequences, s.UniqueApps, classify.FormatSeconds(s.AvgSequenceTime), s.RapidSwitches,
		s.FlowDisruptionRate, classify.FormatSeconds(s.DistractionTime))))

	var counts []string
	for _, pat := range []models.SequencePattern{models.PatternFocused, models.PatternWorkflow, models.PatternLoop, models.PatternDistraction} {
		if n := s.PatternCounts[pat]; n > 0 {
			counts = append(counts, patternStyle(pat).Render(fmt.Sprintf("%s %d", pat, n)))
		}
	}
	if len(counts) > 0 {
		rows = append(rows, strings.Join(counts, "  "))
	}

	t := components.NewTable("Sequence", "Count", "Pattern", "Time")
	for _, seq := range seqs {
		apps := make([]string, len(seq.Apps))
		for i, a := range seq.Apps {
			apps[i] = a
			if i < len(seq.Categories) {
				apps[i] = styles.CategoryStyle(seq.Categories[i]).Render(a)
			}
		}
		t.Row(
			strings.Join(apps, " → "),
			fmt.Sprintf("×%d", seq.Count),
			patternStyle(seq.Pattern).Render(string(seq.Pattern)),
			classify.FormatSeconds(seq.TotalDuration()),
		)
	}
	rows = append(rows, t.Render())
	return card(width, rows...)
}

func renderSwitches(cs analyzers.ContextSwitchReport, width int) string {
	rows := []string{
		styles.CardTitleStyle.Render(fmt.Sprintf("Switches %s → %s", cs.From, cs.To)),
	}
	if cs.TotalSwitches == 0 {
		rows = append(rows, styles.HelpStyle.Render("No switches between these categories"))
		return card(width, rows...)
	}

	rows = append(rows, styles.HelpDescStyle.Render(fmt.Sprintf("%d switches · %s gap on average (%s) · %s to %s",
		cs.TotalSwitches, classify.FormatSeconds(cs.AvgGap), cs.Level,
		classify.FormatSeconds(cs.MinGap), classify.FormatSeconds(cs.MaxGap))))

	t := components.NewTable("App", "Switches", "Avg gap", "Min", "Max", "Time in app")
	for _, target := range cs.Targets {
		t.Row(
			styles.CategoryStyle(cs.To).Render(target.App),
			fmt.Sprint(target.SwitchCount),
			classify.FormatSeconds(target.AvgGap),
			classify.FormatSeconds(target.MinGap),
			classify.FormatSeconds(target.MaxGap),
			classify.FormatSeconds(target.TimeInApp),
		)
	}
	rows = append(rows, t.Render())
	if cs.Insight != "" {
		rows = append(rows, styles.HelpStyle.Render(cs.Insight))
	}
	return card(width, rows...)
}

func renderLengths(sl analyzers.SessionLengthReport, excludeShort bool, width int) string {
	title := "Session lengths"
	if excludeShort {
		title += fmt.Sprintf(" (over %.0fs)", analyzers.ShortSessionSeconds)
	}
	rows := []string{
		styles.CardTitleStyle.Render(title),
		styles.HelpDescStyle.Render(fmt.Sprintf("%d sessions · %d per day · average %s · median %s",
			sl.TotalSessions, sl.SessionsPerDay, classify.FormatSeconds(sl.AvgDuration), classify.FormatSeconds(sl.MedianDuration))),
	}

	var cats []models.Category
	for _, c := range models.DisplayOrder() {
		for _, row := range sl.Rows {
			if row.Categories[c] > 0 {
				cats = append(cats, c)
				break
			}
		}
	}

	headers := []string{"Length"}
	for _, c := range cats {
		headers = append(headers, c.String())
	}
	headers = append(headers, "Total")

	t := components.NewTable(headers...)
	for _, row := range sl.Rows {
		cells := []string{row.Label}
		for _, c := range cats {
			cells = append(cells, fmt.Sprint(row.Categories[c]))
		}
		cells = append(cells, fmt.Sprint(row.Total()))
		t.Row(cells...)
	}
	rows = append(rows, t.Render())
	return card(width, rows...)
}
