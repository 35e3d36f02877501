package classify

import (
	"fmt"
	"math"
)

// FormatHours renders an hour quantity as "2h 5m", "2h", "45m" or "30s".
func FormatHours(hours float64) string {
	total := int(math.Floor(hours * 3600))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		if m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatSeconds renders a gap length: "4.2s", "3m 12s" or "1h 2m 3s".
func FormatSeconds(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	total := int(math.Floor(seconds))
	if seconds >= 3600 {
		return fmt.Sprintf("%dh %dm %ds", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// FormatMinutes renders a minute quantity as "1h 30m", "45m" or "20s".
func FormatMinutes(minutes float64) string {
	h := int(math.Floor(minutes / 60))
	m := int(math.Floor(math.Mod(minutes, 60)))
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", int(math.Round(math.Mod(minutes, 1)*60)))
}
