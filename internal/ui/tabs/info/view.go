package info

import (
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
	"github.com/j-veylop/activity-insights-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderSnapshotCard())
	sections = append(sections, m.renderAlertsCard())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderAboutCard())

	return m.page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Data source, alerts and configuration")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) card(rows ...string) string {
	return styles.CardStyle.Width(m.page.CardWidth(50, 90)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderSnapshotCard() string {
	rows := []string{styles.CardTitleStyle.Render("Activity log"), ""}

	snap := m.state.GetSnapshot()
	if snap.Path == "" {
		rows = append(rows, styles.HelpStyle.Render("No log loaded yet"))
		return m.card(rows...)
	}

	rows = append(rows,
		m.renderConfigRow("File", snap.Path),
		m.renderConfigRow("Format", snap.Format),
		m.renderConfigRow("Records", fmt.Sprintf("%d kept, %d dropped", snap.Records, snap.RowsDropped)),
		m.renderConfigRow("Unknown apps", fmt.Sprint(snap.UnknownApps)),
		m.renderConfigRow("Loaded", fmt.Sprintf("%s in %s", snap.LoadedAt.Format(time.TimeOnly), snap.Took.Round(time.Millisecond))),
	)
	if m.diag != nil {
		rows = append(rows, m.renderConfigRow("Analysis cache",
			fmt.Sprintf("%d entries, %d hits, %d misses", m.cache.Entries, m.cache.Hits, m.cache.Misses)))
	}
	if len(m.stored) > 0 {
		var hours float64
		for _, d := range m.stored {
			hours += d.Hours()
		}
		rows = append(rows, m.renderConfigRow("Stored",
			fmt.Sprintf("%d days, %s (last %d days)", len(m.stored), classify.FormatHours(hours), storedDays)))
	}

	if len(m.runs) > 0 {
		t := components.NewTable("Started", "Format", "Read", "Kept", "Took")
		for _, run := range m.runs {
			t.Row(
				run.StartedAt.Format("01-02 15:04:05"),
				run.Format,
				fmt.Sprint(run.RowsRead),
				fmt.Sprint(run.RowsKept),
				run.Duration.Round(time.Millisecond).String(),
			)
		}
		rows = append(rows, "", styles.HelpDescStyle.Render("Recent loads"), t.Render())
	}
	return m.card(rows...)
}

func (m *Model) renderAlertsCard() string {
	rows := []string{styles.CardTitleStyle.Render("Alerts"), ""}

	alerts := m.state.GetAlerts()
	if len(alerts) == 0 {
		rows = append(rows, styles.HelpStyle.Render("Nothing unusual so far"))
		return m.card(rows...)
	}
	for _, a := range alerts {
		style := styles.SuccessTextStyle
		if a.Kind == models.AlertAnomaly {
			style = styles.WarningTextStyle
		}
		rows = append(rows,
			style.Render(a.Title)+" "+styles.HelpStyle.Render(a.CreatedAt.Format("Jan 02 15:04")),
			styles.HelpDescStyle.Render("  "+a.Message),
		)
	}
	return m.card(rows...)
}

func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		c := m.config
		logFile := c.LogFile
		if logFile == "" {
			logFile = "stderr"
		}
		rows = append(rows, m.renderConfigRow("Activity log", c.ActivityLogPath))
		rows = append(rows, m.renderConfigRow("Database", c.DatabasePath))
		rows = append(rows, m.renderConfigRow("Log", fmt.Sprintf("%s (%s)", logFile, c.LogLevel)))
		rows = append(rows, m.renderConfigRow("Session gap", c.SessionGap.String()))
		rows = append(rows, m.renderConfigRow("Sequences", fmt.Sprintf("length %d, %d+ times, steps over %s",
			c.SequenceLength, c.MinTransitions, c.MinTransitionDuration)))
		rows = append(rows, m.renderConfigRow("Default view", fmt.Sprintf("%s days, last %d days", c.DayFilter, c.RangeDays)))
		rows = append(rows, m.renderConfigRow("Notifications", onOff(c.Notifications)))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return m.card(rows...)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About"))
	rows = append(rows, "")

	release := "development build"
	if version.IsRelease() {
		release = "release"
	}
	rows = append(rows, m.renderConfigRow("Version", fmt.Sprintf("%s (%s)", version.GetVersion(), release)))
	rows = append(rows, m.renderConfigRow("Build Date", version.GetDate()))
	rows = append(rows, m.renderConfigRow("Git Commit", version.GetCommit()))
	rows = append(rows, m.renderConfigRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))

	return m.card(rows...)
}
