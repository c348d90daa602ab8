package state

import (
	"time"

	"hwmonitor/internal/output"
	"hwmonitor/internal/simulator"
)

type Page int

const (
	PageMenu      Page = iota
	PageConsole        // text report plus poll log
	PageDashboard      // all six cards
	PageCPU
	PageGPU
	PageStorage // memory and storage
	PageCooling // motherboard and fans
)

// Settings mirrors the generator knobs shown in the header.
type Settings struct {
	Load     simulator.LoadMode
	Ambient  float64
	Interval time.Duration
	Paused   bool
}

// AppState holds the latest poll and everything derived from it.
type AppState struct {
	Payload     *output.PipelinePayload
	View        output.DashboardView
	Settings    Settings
	LastUpdate  time.Time
	Err         error
	Notice      string
	ConsoleLogs []string
	CurrentPage Page
}

// HasData reports whether at least one poll has completed.
func (s AppState) HasData() bool {
	return s.Payload != nil
}
