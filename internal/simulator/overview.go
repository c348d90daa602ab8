package simulator

// otherComponentsPower covers board, drives, fans and RAM.
const otherComponentsPower = 50.0

// ClassifyOverview maps average temperature and usage to a status.
//
// The ladder is kept exactly as the dashboard has always shown it: "danger"
// is reached at lower thresholds than "warning" even though its name reads
// as more severe.
func ClassifyOverview(avgTemp, avgUsage float64) Status {
	switch {
	case avgTemp > 80 || avgUsage > 90:
		return StatusCritical
	case avgTemp > 70 || avgUsage > 70:
		return StatusWarning
	case avgTemp > 60 || avgUsage > 50:
		return StatusDanger
	default:
		return StatusNormal
	}
}

func (s *Simulator) overview(cpu CPUReading, gpu GPUReading) SystemOverview {
	avgTemp := (cpu.Temperature + gpu.Temperature) / 2
	avgUsage := (cpu.Usage + gpu.Usage) / 2
	return SystemOverview{
		Status:             ClassifyOverview(avgTemp, avgUsage),
		AvgTemperature:     round(avgTemp, 1),
		AvgUsage:           round(avgUsage, 1),
		TotalPower:         cpu.Power + gpu.Power + otherComponentsPower,
		UptimeSeconds:      round(s.elapsed(), 0),
		Load:               s.load,
		AmbientTemperature: s.ambient,
	}
}
