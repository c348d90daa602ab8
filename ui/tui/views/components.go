package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hwmonitor/internal/output"
	"hwmonitor/ui/tui/components"
	"hwmonitor/ui/tui/styles"
)

const gaugeWidth = 24

func ColorForStatus(status string) lipgloss.Style {
	return styles.StatusStyle.Foreground(styles.CheckColor(status))
}

// RenderSection draws the body of one hardware card.
func RenderSection(sec *output.Section) string {
	var b strings.Builder
	for _, item := range sec.Items {
		var val string
		switch {
		case item.Note != "":
			val = item.Note
		default:
			val = fmt.Sprintf("%.1f %s", item.Value, item.Unit)
		}
		if item.Status != "" {
			val = ColorForStatus(item.Status).Render(fmt.Sprintf("%s [%s]", val, item.Status))
		}
		fmt.Fprintf(&b, "%-16s %s\n", item.Label, val)
	}
	return strings.TrimRight(b.String(), "\n")
}

// cardTitle is the bold card heading with a status badge and the high
// temperature alert when raised.
func cardTitle(sec *output.Section) string {
	title := lipgloss.NewStyle().Bold(true).Render(sec.Title)
	badge := ColorForStatus(sec.Status).Render(" ● " + sec.Status)
	if sec.HighTemp {
		badge += lipgloss.NewStyle().Bold(true).Foreground(styles.Alert).Render("  ▲ HIGH TEMP")
	}
	return title + badge
}

// tempGauge renders the temperature bar for a card, or "" when the card has
// no temperature.
func tempGauge(sec *output.Section) string {
	if sec.TempClass == "" {
		return ""
	}
	return fmt.Sprintf("%s %5.1f°C", components.Gauge(sec.Temperature, 100, gaugeWidth, styles.TempColor(sec.TempClass)), sec.Temperature)
}
