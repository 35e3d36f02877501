package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

// NewTable returns a rounded table with a highlighted header row.
func NewTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Subtle)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableCellStyle.Bold(true).Foreground(styles.Primary)
			}
			return styles.TableCellStyle
		})
}
