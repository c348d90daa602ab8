package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"hwmonitor/internal/output"
	"hwmonitor/internal/simulator"
	"hwmonitor/ui/tui/state"
	"hwmonitor/ui/tui/styles"
)

type DashboardView struct{}

// CardZoneID names the clickable zone of a dashboard card.
func CardZoneID(kind simulator.Kind) string {
	return "card_" + string(kind)
}

func (v DashboardView) Render(s state.AppState, props ViewProps) string {
	if s.Err != nil && !s.HasData() {
		return fmt.Sprintf("Error: %v", s.Err)
	}

	header := RenderHeader(s, props.SpinnerView)
	if !s.HasData() {
		return lipgloss.JoinVertical(lipgloss.Left, header, "\n  Waiting for the first poll...")
	}

	card := func(kind simulator.Kind) string {
		sec := s.View.SectionByID(kind)
		if sec == nil {
			return ""
		}
		parts := []string{cardTitle(sec)}
		if g := tempGauge(sec); g != "" {
			parts = append(parts, g)
		}
		parts = append(parts, RenderSection(sec))

		style := styles.CardStyle
		if sec.HighTemp {
			style = style.BorderForeground(styles.Alert)
		}
		return zone.Mark(CardZoneID(kind), style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	row1 := lipgloss.JoinHorizontal(lipgloss.Top, card(simulator.KindCPU), card(simulator.KindGPU), card(simulator.KindMemory))
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, card(simulator.KindStorage), card(simulator.KindMotherboard), card(simulator.KindFans))

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
		header,
		row1,
		row2,
		RenderFooter(s),
	))
}

// RenderHeader is the status line shared by every data page.
func RenderHeader(s state.AppState, spinnerView string) string {
	o := s.View.Overview
	status := "waiting"
	statusColor := lipgloss.Color("#888")
	if s.HasData() {
		status = string(o.Status)
		statusColor = lipgloss.Color(s.View.StatusColor)
	}

	paused := ""
	if s.Settings.Paused {
		paused = lipgloss.NewStyle().Bold(true).Foreground(BrandColor).Render("  ❚❚ PAUSED")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Left,
		spinnerView,
		styles.TitleStyle.Render("HWMonitor"),
		lipgloss.NewStyle().Bold(true).Foreground(statusColor).Render("● "+status),
		fmt.Sprintf("  load %s  ambient %.0f°C  every %s  up %s  avg %.1f°C / %.1f%%  %.0fW",
			s.Settings.Load, s.Settings.Ambient, s.Settings.Interval, s.View.Uptime,
			o.AvgTemperature, o.AvgUsage, o.TotalPower),
		paused,
	)
	if s.Payload != nil && s.Payload.Flags.Explanation != "" {
		line = lipgloss.JoinVertical(lipgloss.Left, line,
			lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#aaa")).
				Render(fmt.Sprintf("risk %d: %s", s.Payload.Flags.RiskScore, s.Payload.Flags.Explanation)))
	}
	return line
}

// RenderFooter shows the key help and the last notice or error.
func RenderFooter(s state.AppState) string {
	help := "[n/g/s] load • [+/-] ambient • [ [ / ] ] interval • [r] reset • [p] pause • [b] back • [q] quit"
	lines := []string{styles.HelpStyle.Render(help)}
	if s.Err != nil {
		lines = append(lines, styles.HelpStyle.Foreground(styles.Alert).Render("error: "+s.Err.Error()))
	} else if s.Notice != "" {
		lines = append(lines, styles.HelpStyle.Render(s.Notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// sections returns the named cards in order, skipping missing ones.
func sections(view output.DashboardView, kinds ...simulator.Kind) []*output.Section {
	var out []*output.Section
	for _, k := range kinds {
		if sec := view.SectionByID(k); sec != nil {
			out = append(out, sec)
		}
	}
	return out
}
