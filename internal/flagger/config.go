package flagger

import "hwmonitor/internal/engine"

type Config struct {
	CPUTemp       engine.Thresholds
	GPUTemp       engine.Thresholds
	Memory        engine.Thresholds // %
	StorageHealth engine.Thresholds // %, lower is worse
	FanRPM        engine.Thresholds
}

func DefaultConfig() Config {
	return Config{
		CPUTemp:       engine.Thresholds{Warning: 70, Critical: 85},
		GPUTemp:       engine.Thresholds{Warning: 70, Critical: 80},
		Memory:        engine.Thresholds{Warning: 60, Critical: 85},
		StorageHealth: engine.Thresholds{Warning: 90, Critical: 86},
		FanRPM:        engine.Thresholds{Warning: 2000, Critical: 2400},
	}
}
