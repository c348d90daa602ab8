package simulator

import "strings"

// LoadMode is the global workload profile that biases every derivation.
type LoadMode string

const (
	LoadNormal LoadMode = "normal"
	LoadGaming LoadMode = "gaming"
	LoadStress LoadMode = "stress"
)

// Valid reports whether m is one of the three known modes.
func (m LoadMode) Valid() bool {
	switch m {
	case LoadNormal, LoadGaming, LoadStress:
		return true
	}
	return false
}

// Multiplier scales the fluctuation amplitude for the mode.
func (m LoadMode) Multiplier() float64 {
	switch m {
	case LoadGaming:
		return 1.5
	case LoadStress:
		return 2.0
	default:
		return 1.0
	}
}

func (m LoadMode) String() string { return string(m) }

// ParseLoadMode maps user input to a LoadMode. Unknown input reports false.
func ParseLoadMode(s string) (LoadMode, bool) {
	m := LoadMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", false
	}
	return m, true
}

// Kind identifies a hardware class.
type Kind string

const (
	KindCPU         Kind = "cpu"
	KindGPU         Kind = "gpu"
	KindMemory      Kind = "memory"
	KindStorage     Kind = "storage"
	KindMotherboard Kind = "motherboard"
	KindFans        Kind = "fans"
)

// Kinds lists every hardware class in display order.
var Kinds = []Kind{KindCPU, KindGPU, KindMemory, KindStorage, KindMotherboard, KindFans}

// Metric names a history stream within a component.
type Metric string

const (
	MetricTemperature Metric = "temperature"
	MetricUsage       Metric = "usage"
)

// Status is the aggregate classification of the system overview.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusDanger   Status = "danger"
	StatusCritical Status = "critical"
)
