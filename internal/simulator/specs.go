package simulator

// CPUSpec holds the static baseline of the simulated processor.
type CPUSpec struct {
	Name          string
	BaseTemp      float64
	BaseUsage     float64
	MaxTemp       float64
	Cores         int
	Threads       int
	BaseFrequency float64 // GHz
	MaxFrequency  float64 // GHz
}

// GPUSpec holds the static baseline of the simulated graphics card.
type GPUSpec struct {
	Name            string
	BaseTemp        float64
	BaseUsage       float64
	MaxTemp         float64
	Memory          float64 // GB
	BaseMemoryUsage float64 // GB
	CoreClock       float64 // MHz
	MemoryClock     float64 // MHz
}

// MemorySpec holds the static baseline of system RAM.
type MemorySpec struct {
	Name      string
	Total     float64 // GB
	BaseUsage float64 // GB
	Speed     float64 // MHz
	Channels  int
	Latency   int // CL
}

// StorageSpec holds the static baseline of the primary drive.
type StorageSpec struct {
	Name       string
	Total      float64 // GB
	BaseUsage  float64 // GB
	Health     float64 // %
	BaseTemp   float64
	MaxTemp    float64
	ReadSpeed  float64 // MB/s
	WriteSpeed float64 // MB/s
}

// MotherboardSpec holds the static baseline of the board sensors.
type MotherboardSpec struct {
	Name        string
	BaseTemp    float64
	MaxTemp     float64
	BaseVoltage float64
	Chipset     string
	BIOSVersion string
}

// FanSpec holds the static baseline of the cooling system.
type FanSpec struct {
	Name    string
	Count   int
	BaseRPM float64
	MaxRPM  float64
	Types   []string
}

// Specs groups the immutable component baselines of one simulated machine.
type Specs struct {
	CPU         CPUSpec
	GPU         GPUSpec
	Memory      MemorySpec
	Storage     StorageSpec
	Motherboard MotherboardSpec
	Fans        FanSpec
}

// DefaultSpecs returns the baselines of the reference gaming rig.
func DefaultSpecs() Specs {
	return Specs{
		CPU: CPUSpec{
			Name:          "Intel Core i7-12700K",
			BaseTemp:      42,
			BaseUsage:     15,
			MaxTemp:       95,
			Cores:         12,
			Threads:       20,
			BaseFrequency: 3.6,
			MaxFrequency:  5.0,
		},
		GPU: GPUSpec{
			Name:            "NVIDIA GeForce RTX 4070",
			BaseTemp:        35,
			BaseUsage:       5,
			MaxTemp:         83,
			Memory:          12,
			BaseMemoryUsage: 2.1,
			CoreClock:       2475,
			MemoryClock:     21000,
		},
		Memory: MemorySpec{
			Name:      "DDR4-3200 32GB",
			Total:     32,
			BaseUsage: 8.5,
			Speed:     3200,
			Channels:  2,
			Latency:   16,
		},
		Storage: StorageSpec{
			Name:       "Samsung 980 PRO 1TB",
			Total:      1000,
			BaseUsage:  650,
			Health:     98,
			BaseTemp:   38,
			MaxTemp:    70,
			ReadSpeed:  7000,
			WriteSpeed: 5000,
		},
		Motherboard: MotherboardSpec{
			Name:        "ASUS ROG Strix Z690-E",
			BaseTemp:    32,
			MaxTemp:     65,
			BaseVoltage: 12.1,
			Chipset:     "Z690",
			BIOSVersion: "2204",
		},
		Fans: FanSpec{
			Name:    "System Fans",
			Count:   6,
			BaseRPM: 1200,
			MaxRPM:  2500,
			Types:   []string{"CPU Fan", "Case Fan", "GPU Fan"},
		},
	}
}

// SpecError reports a baseline the derivations cannot honour.
type SpecError struct {
	Field   string
	Message string
}

func (e *SpecError) Error() string {
	return "invalid spec " + e.Field + ": " + e.Message
}

// Validate checks that every clamp range derived from the baselines is
// non-empty, so readings stay inside their documented bounds.
func (s Specs) Validate() error {
	switch {
	case s.CPU.MaxTemp < 25:
		return &SpecError{Field: "CPU.MaxTemp", Message: "must be at least 25"}
	case s.CPU.BaseFrequency <= 0 || s.CPU.MaxFrequency < s.CPU.BaseFrequency:
		return &SpecError{Field: "CPU.MaxFrequency", Message: "must be at least a positive BaseFrequency"}
	case s.GPU.MaxTemp < 25:
		return &SpecError{Field: "GPU.MaxTemp", Message: "must be at least 25"}
	case s.GPU.Memory*0.95 < 1:
		return &SpecError{Field: "GPU.Memory", Message: "must leave at least 1 GB usable"}
	case s.GPU.CoreClock <= 0:
		return &SpecError{Field: "GPU.CoreClock", Message: "must be positive"}
	case s.Memory.Total*0.95 < 4:
		return &SpecError{Field: "Memory.Total", Message: "must leave at least 4 GB usable"}
	case s.Storage.Total <= 0 || s.Storage.BaseUsage < 0 || s.Storage.BaseUsage > s.Storage.Total*0.98:
		return &SpecError{Field: "Storage.BaseUsage", Message: "must be within 98% of Total"}
	case s.Storage.Health < 85 || s.Storage.Health > 100:
		return &SpecError{Field: "Storage.Health", Message: "must be between 85 and 100"}
	case s.Storage.MaxTemp < 25:
		return &SpecError{Field: "Storage.MaxTemp", Message: "must be at least 25"}
	case s.Motherboard.MaxTemp < 25:
		return &SpecError{Field: "Motherboard.MaxTemp", Message: "must be at least 25"}
	case s.Fans.Count < 0:
		return &SpecError{Field: "Fans.Count", Message: "must not be negative"}
	case s.Fans.MaxRPM < minFanRPM:
		return &SpecError{Field: "Fans.MaxRPM", Message: "must be at least 800"}
	}
	return nil
}
