package engine

// Thresholds defines warning and critical levels for a metric.
type Thresholds struct {
	Warning  float64
	Critical float64
}

// Config holds the per-card status ladders.
type Config struct {
	CPUUsage      Thresholds
	GPUUsage      Thresholds
	MemoryUsage   Thresholds
	StorageUsage  Thresholds
	StorageHealth Thresholds // inverted: lower is worse
	Temperature   Thresholds
	FanRPM        Thresholds

	// A card raises the high-temperature alert above either limit.
	AlertTemperature float64
	AlertUsage       float64
}

func DefaultConfig() Config {
	return Config{
		CPUUsage:      Thresholds{Warning: 50, Critical: 80},
		GPUUsage:      Thresholds{Warning: 70, Critical: 90},
		MemoryUsage:   Thresholds{Warning: 60, Critical: 85},
		StorageUsage:  Thresholds{Warning: 80, Critical: 95},
		StorageHealth: Thresholds{Warning: 90, Critical: 86},
		Temperature:   Thresholds{Warning: 70, Critical: 85},
		FanRPM:        Thresholds{Warning: 2000, Critical: 2400},

		AlertTemperature: 80,
		AlertUsage:       90,
	}
}
