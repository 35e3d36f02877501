// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

// Chart colors for the forecast plot.
var (
	ChartHistoryColor  = lipgloss.Color("#3b82f6")
	ChartForecastColor = lipgloss.Color("#f59e0b")
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func chartDims(width, height int) (int, int) {
	return max(width, 20), max(height, 3)
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	width, height = chartDims(width, height)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderForecastChart plots past daily hours followed by the predicted
// days. The forecast line starts at the last observed point so the two
// series join up.
func RenderForecastChart(history, forecast []float64, width, height int, caption string) string {
	if len(forecast) == 0 {
		return RenderLineChart(history, width, height, caption)
	}
	if len(history) == 0 {
		return RenderLineChart(forecast, width, height, caption)
	}

	width, height = chartDims(width, height)

	n := len(history) + len(forecast)
	past := make([]float64, n)
	next := make([]float64, n)
	for i := 0; i < n; i++ {
		past[i] = math.NaN()
		next[i] = math.NaN()
	}
	copy(past, history)
	next[len(history)-1] = history[len(history)-1]
	copy(next[len(history):], forecast)

	return asciigraph.PlotMany([][]float64{past, next},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Yellow),
	)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(l))
	}

	barWidth := max(width-maxLabelLen-10, 10)

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		paddedLabel := strings.Repeat(" ", maxLabelLen-lipgloss.Width(label)) + label
		barLen := max(int((v/maxVal)*float64(barWidth)), 0)

		lines = append(lines, paddedLabel+" │"+strings.Repeat("█", barLen)+fmt.Sprintf(" %.1f", v))
	}

	return strings.Join(lines, "\n")
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

func level(v, maxVal float64, levels int) int {
	if maxVal <= 0 {
		return 0
	}
	return min(max(int((v/maxVal)*float64(levels-1)), 0), levels-1)
}

func intensityStyle(lvl int) lipgloss.Style {
	switch lvl {
	case 1:
		return lipgloss.NewStyle().Foreground(styles.Info)
	case 2:
		return lipgloss.NewStyle().Foreground(styles.Warning)
	case 3:
		return lipgloss.NewStyle().Foreground(styles.Success)
	default:
		return lipgloss.NewStyle().Foreground(styles.Subtle)
	}
}

// RenderHourlyHeatmap creates a 24-hour activity heatmap.
func RenderHourlyHeatmap(hours []float64) string {
	if len(hours) != 24 {
		padded := make([]float64, 24)
		copy(padded, hours)
		hours = padded
	}

	maxVal := 0.0
	for _, v := range hours {
		maxVal = max(maxVal, v)
	}

	var result strings.Builder
	result.WriteString("00 ")

	for i, v := range hours {
		lvl := level(v, maxVal, len(HeatmapBlocks))
		result.WriteString(intensityStyle(lvl).Render(string(HeatmapBlocks[lvl])))

		// Gap at noon for readability
		if i == 11 {
			result.WriteString(" ")
		}
	}

	result.WriteString(" 23")
	return result.String()
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	return sparkline(values, width, false)
}

// RenderColoredSparkline creates a sparkline colored by intensity.
func RenderColoredSparkline(values []float64, width int) string {
	return sparkline(values, width, true)
}

func sparkline(values []float64, width int, colored bool) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}

	step := max(float64(len(values))/float64(width), 1)

	var result strings.Builder
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		v := values[int(float64(i)*step)]
		ch := string(sparkChars[level(v, maxVal, len(sparkChars))])
		if colored {
			ch = intensityStyle(level(v, maxVal, len(HeatmapBlocks))).Render(ch)
		}
		result.WriteString(ch)
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
