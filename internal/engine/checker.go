package engine

import (
	"fmt"

	"hwmonitor/internal/simulator"
)

const (
	StatusHealthy  = "OK"
	StatusWarning  = "WARN"
	StatusCritical = "CRIT"
)

// Temperature classes used to colour gauges.
const (
	TempNormal   = "normal"
	TempWarning  = "warning"
	TempDanger   = "danger"
	TempCritical = "critical"
)

type CheckResult struct {
	Kind   simulator.Kind `json:"kind"`
	Name   string         `json:"name"`
	Value  float64        `json:"value"`
	Unit   string         `json:"unit"`
	Status string         `json:"status"`
}

func getStatus(value float64, t Thresholds) string {
	if value > t.Critical {
		return StatusCritical
	}
	if value > t.Warning {
		return StatusWarning
	}
	return StatusHealthy
}

// getStatusBelow is getStatus for metrics where lower values are worse.
func getStatusBelow(value float64, t Thresholds) string {
	if value < t.Critical {
		return StatusCritical
	}
	if value < t.Warning {
		return StatusWarning
	}
	return StatusHealthy
}

// TemperatureClass buckets a temperature for display.
func TemperatureClass(celsius float64) string {
	switch {
	case celsius < 50:
		return TempNormal
	case celsius < 70:
		return TempWarning
	case celsius < 85:
		return TempDanger
	default:
		return TempCritical
	}
}

// Evaluate runs every card check of a snapshot in display order.
func Evaluate(snap simulator.Snapshot, cfg Config) []CheckResult {
	var result []CheckResult
	for _, r := range snap.Readings() {
		result = append(result, Check(r, cfg)...)
	}
	return result
}

// Check runs the checks of a single card.
func Check(r simulator.Reading, cfg Config) []CheckResult {
	check := func(name string, value float64, unit, status string) CheckResult {
		return CheckResult{Kind: r.Kind(), Name: name, Value: value, Unit: unit, Status: status}
	}

	switch r := r.(type) {
	case simulator.CPUReading:
		return []CheckResult{
			check("CPU Usage", r.Usage, "%", getStatus(r.Usage, cfg.CPUUsage)),
			check("CPU Temperature", r.Temperature, "°C", getStatus(r.Temperature, cfg.Temperature)),
		}
	case simulator.GPUReading:
		return []CheckResult{
			check("GPU Usage", r.Usage, "%", getStatus(r.Usage, cfg.GPUUsage)),
			check("GPU Temperature", r.Temperature, "°C", getStatus(r.Temperature, cfg.Temperature)),
			check("GPU Memory", r.MemoryUsage, "%", getStatus(r.MemoryUsage, cfg.MemoryUsage)),
		}
	case simulator.MemoryReading:
		return []CheckResult{
			check("Memory Usage", r.Usage, "%", getStatus(r.Usage, cfg.MemoryUsage)),
		}
	case simulator.StorageReading:
		return []CheckResult{
			check("Storage Usage", r.Usage, "%", getStatus(r.Usage, cfg.StorageUsage)),
			check("Storage Temperature", r.Temperature, "°C", getStatus(r.Temperature, cfg.Temperature)),
			check("Storage Health", r.Health, "%", getStatusBelow(r.Health, cfg.StorageHealth)),
		}
	case simulator.MotherboardReading:
		return []CheckResult{
			check("Board Temperature", r.Temperature, "°C", getStatus(r.Temperature, cfg.Temperature)),
		}
	case simulator.FanReading:
		return []CheckResult{
			check("Fan Speed", r.RPM, "RPM", getStatus(r.RPM, cfg.FanRPM)),
		}
	default:
		return []CheckResult{{Name: fmt.Sprintf("Unknown reading %T", r), Status: StatusCritical}}
	}
}

// CardStatus is the worst status among the checks of one card.
func CardStatus(r simulator.Reading, cfg Config) string {
	return Worst(Check(r, cfg))
}

// Worst returns the most severe status in results.
func Worst(results []CheckResult) string {
	worst := StatusHealthy
	for _, res := range results {
		switch res.Status {
		case StatusCritical:
			return StatusCritical
		case StatusWarning:
			worst = StatusWarning
		}
	}
	return worst
}

// HighTemperature reports whether a card should raise the overheating alert.
func HighTemperature(r simulator.Reading, cfg Config) bool {
	switch r := r.(type) {
	case simulator.CPUReading:
		return r.Temperature > cfg.AlertTemperature || r.Usage > cfg.AlertUsage
	case simulator.GPUReading:
		return r.Temperature > cfg.AlertTemperature || r.Usage > cfg.AlertUsage
	case simulator.MemoryReading:
		return r.Usage > cfg.AlertUsage
	case simulator.StorageReading:
		return r.Temperature > cfg.AlertTemperature || r.Usage > cfg.AlertUsage
	case simulator.MotherboardReading:
		return r.Temperature > cfg.AlertTemperature
	default:
		// Fans carry no temperature.
		return false
	}
}
