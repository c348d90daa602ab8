package views

import (
	"github.com/charmbracelet/lipgloss"

	"hwmonitor/internal/simulator"
	"hwmonitor/ui/tui/state"
	"hwmonitor/ui/tui/styles"
)

// DetailView shows a few cards in full with their charts underneath.
type DetailView struct {
	Title string
	Kinds []simulator.Kind
}

func (v DetailView) Render(s state.AppState, props ViewProps) string {
	header := MenuHeaderStyle.Width(props.Width).Render(v.Title)
	status := RenderHeader(s, props.SpinnerView)

	if !s.HasData() {
		return lipgloss.JoinVertical(lipgloss.Left, header, status, "\n  Waiting for the first poll...")
	}

	var cards []string
	for _, sec := range sections(s.View, v.Kinds...) {
		parts := []string{cardTitle(sec)}
		if g := tempGauge(sec); g != "" {
			parts = append(parts, g)
		}
		parts = append(parts, RenderSection(sec))
		cards = append(cards, styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		status,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		lipgloss.JoinHorizontal(lipgloss.Top, props.ChartViews...),
		RenderFooter(s),
	)
}
