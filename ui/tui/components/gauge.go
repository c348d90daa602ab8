package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gauge renders a horizontal bar filled to value/max in the given colour.
func Gauge(value, max float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if max > 0 {
		filled = int(float64(width) * value / max)
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	return bar + strings.Repeat("░", width-filled)
}
