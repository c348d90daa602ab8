package output

import (
	"fmt"
	"strings"
	"time"

	"hwmonitor/internal/engine"
	"hwmonitor/internal/simulator"
)

// UI/view-model types (no printing here)
type Item struct {
	Key    string
	Label  string
	Value  float64
	Unit   string
	Status string
	Note   string
}

type Section struct {
	ID          simulator.Kind
	Title       string
	Status      string // worst check status of the card
	Temperature float64
	TempClass   string // gauge colour bucket, empty when the card has no temperature
	HighTemp    bool
	Items       []Item
}

type DashboardView struct {
	Sections    []Section
	Overview    simulator.SystemOverview
	StatusColor string
	Uptime      string
	Timestamp   time.Time
}

var sectionTitles = map[simulator.Kind]string{
	simulator.KindCPU:         "Processor",
	simulator.KindGPU:         "Graphics",
	simulator.KindMemory:      "Memory",
	simulator.KindStorage:     "Storage",
	simulator.KindMotherboard: "Motherboard",
	simulator.KindFans:        "Cooling",
}

// BuildDashboard converts checks and a snapshot into UI-ready sections.
func BuildDashboard(results []engine.CheckResult, snap simulator.Snapshot, cfg engine.Config) DashboardView {
	byKind := make(map[simulator.Kind][]engine.CheckResult)
	for _, r := range results {
		byKind[r.Kind] = append(byKind[r.Kind], r)
	}

	view := DashboardView{
		Overview:    snap.System,
		StatusColor: StatusColor(snap.System.Status),
		Uptime:      FormatUptime(snap.System.Uptime()),
		Timestamp:   snap.Timestamp,
	}

	for _, reading := range snap.Readings() {
		kind := reading.Kind()
		sec := Section{
			ID:       kind,
			Title:    sectionTitles[kind],
			Status:   engine.Worst(byKind[kind]),
			HighTemp: engine.HighTemperature(reading, cfg),
		}
		for _, r := range byKind[kind] {
			sec.Items = append(sec.Items, Item{
				Key:    strings.ReplaceAll(strings.ToLower(r.Name), " ", "_"),
				Label:  r.Name,
				Value:  r.Value,
				Unit:   r.Unit,
				Status: r.Status,
			})
		}
		details, temp, hasTemp := describe(reading)
		if hasTemp {
			sec.Temperature = temp
			sec.TempClass = engine.TemperatureClass(temp)
		}
		sec.Items = append(sec.Items, details...)
		view.Sections = append(view.Sections, sec)
	}

	return view
}

// describe returns the informational items of a card and its temperature.
func describe(r simulator.Reading) ([]Item, float64, bool) {
	switch r := r.(type) {
	case simulator.CPUReading:
		return []Item{
			{Label: "Model", Note: r.Name},
			{Label: "Cores / Threads", Note: fmt.Sprintf("%d / %d", r.Cores, r.Threads)},
			{Label: "Frequency", Value: r.Frequency, Unit: "GHz"},
			{Label: "Power", Value: r.Power, Unit: "W"},
			{Label: "Avg Temp (5)", Value: r.AvgTemperature, Unit: "°C"},
			{Label: "Peak Temp", Value: r.PeakTemperature, Unit: "°C"},
		}, r.Temperature, true
	case simulator.GPUReading:
		return []Item{
			{Label: "Model", Note: r.Name},
			{Label: "VRAM", Note: fmt.Sprintf("%.1f / %.0f GB", r.MemoryUsed, r.Memory)},
			{Label: "Core Clock", Value: r.CoreClock, Unit: "MHz"},
			{Label: "Memory Clock", Value: r.MemoryClock, Unit: "MHz"},
			{Label: "Power", Value: r.Power, Unit: "W"},
			{Label: "Fan", Value: r.FanSpeed, Unit: "RPM"},
		}, r.Temperature, true
	case simulator.MemoryReading:
		return []Item{
			{Label: "Model", Note: r.Name},
			{Label: "Used", Note: fmt.Sprintf("%.1f / %.0f GB", r.Used, r.Total)},
			{Label: "Available", Value: r.Available, Unit: "GB"},
			{Label: "Clock", Value: r.EffectiveClock, Unit: "MHz"},
			{Label: "Channels", Note: fmt.Sprintf("%d x CL%d", r.Channels, r.Latency)},
		}, 0, false
	case simulator.StorageReading:
		return []Item{
			{Label: "Model", Note: r.Name},
			{Label: "Used", Note: fmt.Sprintf("%.1f / %.0f GB", r.Used, r.Total)},
			{Label: "Read", Value: r.ReadSpeed, Unit: "MB/s"},
			{Label: "Write", Value: r.WriteSpeed, Unit: "MB/s"},
		}, r.Temperature, true
	case simulator.MotherboardReading:
		return []Item{
			{Label: "Model", Note: r.Name},
			{Label: "Chipset", Note: r.Chipset},
			{Label: "BIOS", Note: r.BIOSVersion},
			{Label: "12V Rail", Value: r.Voltage, Unit: "V"},
			{Label: "5V Rail", Value: r.Rail5V, Unit: "V"},
			{Label: "3.3V Rail", Value: r.Rail3V3, Unit: "V"},
		}, r.Temperature, true
	case simulator.FanReading:
		items := []Item{
			{Label: "Mode", Note: r.Mode},
			{Label: "Status", Note: r.Status},
			{Label: "PWM", Value: r.PWM, Unit: "%"},
		}
		for _, f := range r.Fans {
			items = append(items, Item{Label: f.Name, Value: f.RPM, Unit: "RPM"})
		}
		return items, 0, false
	default:
		return nil, 0, false
	}
}

func (v DashboardView) SectionByID(id simulator.Kind) *Section {
	for i := range v.Sections {
		if v.Sections[i].ID == id {
			return &v.Sections[i]
		}
	}
	return nil
}

// StatusColor maps an overview status to the indicator colour.
func StatusColor(s simulator.Status) string {
	switch s {
	case simulator.StatusWarning:
		return "#fbbf24"
	case simulator.StatusDanger:
		return "#f97316"
	case simulator.StatusCritical:
		return "#ef4444"
	default:
		return "#4ade80"
	}
}

// FormatUptime renders d as HH:MM:SS. Hours may exceed 24.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
