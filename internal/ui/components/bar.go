package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

const (
	barLabelWidth   = 16
	barPercentWidth = 6
	minBarWidth     = 10
)

// ShareBar renders a labelled percentage bar.
type ShareBar struct {
	progress progress.Model
}

// NewShareBar creates a bar filled with a blue to pink gradient.
func NewShareBar() ShareBar {
	return ShareBar{progress: progress.New(
		progress.WithScaledGradient("#3b82f6", "#ec4899"),
		progress.WithoutPercentage(),
	)}
}

// NewColorBar creates a bar with a solid fill of the given hex color.
func NewColorBar(color string) ShareBar {
	return ShareBar{progress: progress.New(
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
	)}
}

// NewCategoryBar creates a bar filled with the category's chart color.
func NewCategoryBar(cat models.Category) ShareBar {
	return NewColorBar(cat.Color())
}

// View renders label, bar and percentage on one line. percent is 0-100.
func (b ShareBar) View(percent float64, label string, width int) string {
	b.progress.Width = max(width-barLabelWidth-barPercentWidth-1, minBarWidth)

	bar := b.progress.ViewAs(min(max(percent, 0), 100) / 100)
	labelStr := styles.ProgressLabelStyle.Width(barLabelWidth).MaxWidth(barLabelWidth).Render(label)
	percentStr := styles.ProgressPercentStyle.Width(barPercentWidth).Align(lipgloss.Right).
		Render(fmt.Sprintf("%.0f%%", percent))

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, bar, " ", percentStr)
}

// RenderCategoryBar is a one-shot category share bar.
func RenderCategoryBar(cat models.Category, percent float64, width int) string {
	return NewCategoryBar(cat).View(percent, cat.String(), width)
}

// RenderEmpty renders a centered placeholder message.
func RenderEmpty(message string, width, height int) string {
	return styles.CenterBoth(styles.HelpStyle.Render(message), width, height)
}
