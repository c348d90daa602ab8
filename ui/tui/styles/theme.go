package styles

import (
	"github.com/charmbracelet/lipgloss"

	"hwmonitor/internal/engine"
)

var (
	Subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	Special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	Alert     = lipgloss.Color("#ef4444")

	TitleStyle = lipgloss.NewStyle().
			MarginLeft(1).
			MarginRight(5).
			Padding(0, 1).
			Italic(true).
			Foreground(lipgloss.Color("#FFF7DB"))

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1).
			Margin(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666")).
			PaddingLeft(2)
)

// tempColors follows the gauge palette: green, amber, orange, red.
var tempColors = map[string]lipgloss.Color{
	engine.TempNormal:   lipgloss.Color("#4ade80"),
	engine.TempWarning:  lipgloss.Color("#fbbf24"),
	engine.TempDanger:   lipgloss.Color("#f97316"),
	engine.TempCritical: lipgloss.Color("#ef4444"),
}

// TempColor returns the gauge colour for a temperature class.
func TempColor(class string) lipgloss.Color {
	if c, ok := tempColors[class]; ok {
		return c
	}
	return lipgloss.Color("#888")
}

// CheckColor returns the colour for a check status.
func CheckColor(status string) lipgloss.Color {
	switch status {
	case engine.StatusWarning:
		return lipgloss.Color("220") // Gold
	case engine.StatusCritical:
		return lipgloss.Color("196") // Red
	default:
		return lipgloss.Color("46") // Green
	}
}
