// Package console prints a dashboard view as a compact text report.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"hwmonitor/internal/engine"
	"hwmonitor/internal/output"
	"hwmonitor/internal/simulator"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorOrange = "\033[38;5;208m"
	colorCyan   = "\033[36m"
)

// Printer writes reports to w, with ANSI colours when enabled.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter enables colour only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Printer{w: w, color: color}
}

// WithColor forces colour on or off.
func (p *Printer) WithColor(on bool) *Printer {
	p.color = on
	return p
}

// Print renders the dashboard view to the writer in a highly compact format.
func Print(w io.Writer, view output.DashboardView) {
	NewPrinter(w).Print(view)
}

func (p *Printer) paint(color, s string) string {
	if !p.color || color == "" {
		return s
	}
	return color + s + colorReset
}

func (p *Printer) Print(view output.DashboardView) {
	o := view.Overview
	fmt.Fprintf(p.w, "%s %s  %s  load=%s  up %s\n",
		p.paint(colorCyan, "■"),
		p.paint(colorCyan, "HARDWARE MONITOR"),
		p.paint(colorForOverview(o.Status), strings.ToUpper(string(o.Status))),
		o.Load,
		view.Uptime,
	)

	for _, sec := range view.Sections {
		header := "─ " + sec.Title
		if sec.HighTemp {
			header += " ▲ HIGH TEMP"
		}
		fmt.Fprintf(p.w, "%s %s\n", p.paint(colorCyan, header), p.marker(sec.Status))

		for _, it := range sec.Items {
			p.printItem(it)
		}
	}

	// Single-line Summary
	fmt.Fprintf(p.w, "%s: Avg %.1f°C | Usage %.1f%% | Power %.0fW | Ambient %.1f°C\n\n",
		p.paint(colorCyan, "─ Summary"),
		o.AvgTemperature, o.AvgUsage, o.TotalPower, o.AmbientTemperature,
	)
}

func (p *Printer) printItem(it output.Item) {
	// Compact Label (max 20 chars)
	label := it.Label
	if len([]rune(label)) > 20 {
		label = string([]rune(label)[:17]) + "..."
	}

	valStr := ""
	switch {
	case it.Unit != "":
		valStr = fmt.Sprintf("%.1f%s", it.Value, it.Unit)
	case it.Value != 0:
		valStr = fmt.Sprintf("%.1f", it.Value)
	case it.Note != "":
		valStr = it.Note
		if len([]rune(valStr)) > 25 {
			valStr = string([]rune(valStr)[:22]) + "..."
		}
	}

	dots := strings.Repeat("·", 22-len([]rune(label)))
	fmt.Fprintf(p.w, "  %s%s %10s%s\n", label, p.paint(colorCyan, dots), valStr, p.marker(it.Status))
}

func (p *Printer) marker(status string) string {
	switch status {
	case engine.StatusHealthy:
		return " " + p.paint(colorGreen, "✓")
	case engine.StatusWarning:
		return " " + p.paint(colorYellow, "!")
	case engine.StatusCritical:
		return " " + p.paint(colorRed, "X")
	default:
		return ""
	}
}

func colorFor(status string) string {
	switch status {
	case engine.StatusWarning:
		return colorYellow
	case engine.StatusCritical:
		return colorRed
	default:
		return colorGreen
	}
}

func colorForOverview(s simulator.Status) string {
	switch s {
	case simulator.StatusWarning:
		return colorYellow
	case simulator.StatusDanger:
		return colorOrange
	case simulator.StatusCritical:
		return colorRed
	default:
		return colorGreen
	}
}
