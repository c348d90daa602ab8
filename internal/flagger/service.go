package flagger

import (
	"fmt"

	"hwmonitor/internal/simulator"
)

// Flags summarises what stands out in a snapshot.
type Flags struct {
	SeverityLevel      int    `json:"severityLevel"` // 0 ok, 1 info, 2 warning, 3 critical
	RiskScore          int    `json:"riskScore"`
	FlagCPUOverheat    bool   `json:"cpuOverheat"`
	FlagGPUOverheat    bool   `json:"gpuOverheat"`
	FlagMemoryPressure bool   `json:"memoryPressure"`
	FlagStorageWear    bool   `json:"storageWear"`
	FlagFansMaxed      bool   `json:"fansMaxed"`
	FlagStressLoad     bool   `json:"stressLoad"`
	Explanation        string `json:"explanation"`
}

// FlaggerService implements output.DataFlagger.
type FlaggerService struct {
	cfg Config
}

func NewFlaggerService(cfg Config) *FlaggerService {
	return &FlaggerService{cfg: cfg}
}

func (fs *FlaggerService) Flag(s simulator.Snapshot) *Flags {
	f := &Flags{}
	var explanations []string

	// 1. CPU
	if s.CPU.Temperature > fs.cfg.CPUTemp.Critical {
		f.FlagCPUOverheat = true
		f.SeverityLevel = 3
		explanations = append(explanations, fmt.Sprintf("CPU critical: %.1f°C", s.CPU.Temperature))
	} else if s.CPU.Temperature > fs.cfg.CPUTemp.Warning {
		f.SeverityLevel = max(f.SeverityLevel, 2)
		explanations = append(explanations, fmt.Sprintf("CPU warm: %.1f°C", s.CPU.Temperature))
	}

	// 2. GPU
	if s.GPU.Temperature > fs.cfg.GPUTemp.Critical {
		f.FlagGPUOverheat = true
		f.SeverityLevel = 3
		explanations = append(explanations, fmt.Sprintf("GPU critical: %.1f°C", s.GPU.Temperature))
	} else if s.GPU.Temperature > fs.cfg.GPUTemp.Warning {
		f.SeverityLevel = max(f.SeverityLevel, 2)
		explanations = append(explanations, fmt.Sprintf("GPU warm: %.1f°C", s.GPU.Temperature))
	}

	// 3. Memory
	if s.Memory.Usage > fs.cfg.Memory.Critical {
		f.FlagMemoryPressure = true
		f.SeverityLevel = 3
		explanations = append(explanations, fmt.Sprintf("Memory critical: %.1f%%", s.Memory.Usage))
	} else if s.Memory.Usage > fs.cfg.Memory.Warning {
		f.SeverityLevel = max(f.SeverityLevel, 2)
		explanations = append(explanations, fmt.Sprintf("Memory warning: %.1f%%", s.Memory.Usage))
	}

	// 4. Storage wear
	if s.Storage.Health < fs.cfg.StorageHealth.Critical {
		f.FlagStorageWear = true
		f.SeverityLevel = 3
		explanations = append(explanations, fmt.Sprintf("Drive health critical: %.2f%%", s.Storage.Health))
	} else if s.Storage.Health < fs.cfg.StorageHealth.Warning {
		f.SeverityLevel = max(f.SeverityLevel, 2)
		explanations = append(explanations, fmt.Sprintf("Drive wearing: %.2f%%", s.Storage.Health))
	}

	// 5. Fans
	if s.Fans.RPM > fs.cfg.FanRPM.Critical {
		f.FlagFansMaxed = true
		f.SeverityLevel = max(f.SeverityLevel, 2)
		explanations = append(explanations, fmt.Sprintf("Fans near max: %.0f RPM", s.Fans.RPM))
	}

	// 6. Load mode is informational
	if s.System.Load == simulator.LoadStress {
		f.FlagStressLoad = true
		f.SeverityLevel = max(f.SeverityLevel, 1)
		explanations = append(explanations, "Stress load active")
	}

	// Aggregate
	if len(explanations) > 0 {
		f.Explanation = explanations[0]
		if len(explanations) > 1 {
			f.Explanation += fmt.Sprintf(" (+%d more)", len(explanations)-1)
		}
	}

	f.RiskScore = f.SeverityLevel * 10
	if s.System.Status == simulator.StatusCritical {
		f.RiskScore = 100
	}

	return f
}
