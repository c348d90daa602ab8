package engine

import (
	"testing"

	"hwmonitor/internal/simulator"
)

func baseSnapshot() simulator.Snapshot {
	return simulator.Snapshot{
		CPU:         simulator.CPUReading{Usage: 10, Temperature: 45},
		GPU:         simulator.GPUReading{Usage: 5, Temperature: 40, MemoryUsage: 20},
		Memory:      simulator.MemoryReading{Usage: 30},
		Storage:     simulator.StorageReading{Usage: 65, Temperature: 38, Health: 98},
		Motherboard: simulator.MotherboardReading{Temperature: 33},
		Fans:        simulator.FanReading{RPM: 1200},
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *simulator.Snapshot)
		expected map[string]string // Check Name -> Expected Status
	}{
		{
			name:   "All Healthy",
			mutate: func(s *simulator.Snapshot) {},
			expected: map[string]string{
				"CPU Usage":         StatusHealthy,
				"GPU Temperature":   StatusHealthy,
				"Memory Usage":      StatusHealthy,
				"Storage Health":    StatusHealthy,
				"Board Temperature": StatusHealthy,
				"Fan Speed":         StatusHealthy,
			},
		},
		{
			name:   "CPU Critical",
			mutate: func(s *simulator.Snapshot) { s.CPU.Usage = 95 },
			expected: map[string]string{
				"CPU Usage": StatusCritical,
			},
		},
		{
			name:   "Processor ladder warning",
			mutate: func(s *simulator.Snapshot) { s.CPU.Usage = 60 },
			expected: map[string]string{
				"CPU Usage": StatusWarning,
			},
		},
		{
			name:   "Graphics ladder",
			mutate: func(s *simulator.Snapshot) { s.GPU.Usage = 75 },
			expected: map[string]string{
				"GPU Usage": StatusWarning,
			},
		},
		{
			name:   "Memory pressure",
			mutate: func(s *simulator.Snapshot) { s.Memory.Usage = 90 },
			expected: map[string]string{
				"Memory Usage": StatusCritical,
			},
		},
		{
			name:   "Worn drive",
			mutate: func(s *simulator.Snapshot) { s.Storage.Health = 85 },
			expected: map[string]string{
				"Storage Health": StatusCritical,
			},
		},
		{
			name:   "Hot board",
			mutate: func(s *simulator.Snapshot) { s.Motherboard.Temperature = 75 },
			expected: map[string]string{
				"Board Temperature": StatusWarning,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := baseSnapshot()
			tt.mutate(&snap)
			results := Evaluate(snap, DefaultConfig())
			resultMap := make(map[string]string)
			for _, r := range results {
				resultMap[r.Name] = r.Status
			}

			for name, expectedStatus := range tt.expected {
				if status, ok := resultMap[name]; !ok {
					t.Errorf("Expected check %s not found", name)
				} else if status != expectedStatus {
					t.Errorf("Check %s: expected %s, got %s", name, expectedStatus, status)
				}
			}
		})
	}
}

func TestEvaluateCoversEveryKind(t *testing.T) {
	seen := make(map[simulator.Kind]bool)
	for _, r := range Evaluate(baseSnapshot(), DefaultConfig()) {
		seen[r.Kind] = true
	}
	for _, k := range simulator.Kinds {
		if !seen[k] {
			t.Errorf("no check produced for %s", k)
		}
	}
}

func TestCheckNilReading(t *testing.T) {
	got := Check(nil, DefaultConfig())
	if len(got) != 1 {
		t.Fatalf("checks = %d, want 1", len(got))
	}
	if got[0].Status != StatusCritical {
		t.Errorf("status = %s, want CRIT", got[0].Status)
	}
	if HighTemperature(nil, DefaultConfig()) {
		t.Error("nil reading should not raise the alert")
	}
}

func TestTemperatureClass(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{25, TempNormal},
		{49.9, TempNormal},
		{50, TempWarning},
		{69.9, TempWarning},
		{70, TempDanger},
		{85, TempCritical},
		{95, TempCritical},
	}
	for _, tt := range tests {
		if got := TemperatureClass(tt.temp); got != tt.want {
			t.Errorf("TemperatureClass(%v) = %s, want %s", tt.temp, got, tt.want)
		}
	}
}

func TestHighTemperature(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name    string
		reading simulator.Reading
		want    bool
	}{
		{"cool cpu", simulator.CPUReading{Temperature: 60, Usage: 40}, false},
		{"hot cpu", simulator.CPUReading{Temperature: 81, Usage: 40}, true},
		{"busy gpu", simulator.GPUReading{Temperature: 70, Usage: 95}, true},
		{"full memory", simulator.MemoryReading{Usage: 91}, true},
		{"cool board", simulator.MotherboardReading{Temperature: 40}, false},
		{"fans never alert", simulator.FanReading{RPM: 2500}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HighTemperature(tt.reading, cfg); got != tt.want {
				t.Errorf("HighTemperature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorst(t *testing.T) {
	results := []CheckResult{{Status: StatusHealthy}, {Status: StatusWarning}, {Status: StatusHealthy}}
	if got := Worst(results); got != StatusWarning {
		t.Errorf("Worst() = %s, want WARN", got)
	}
	results = append(results, CheckResult{Status: StatusCritical})
	if got := Worst(results); got != StatusCritical {
		t.Errorf("Worst() = %s, want CRIT", got)
	}
	if got := CardStatus(simulator.CPUReading{Usage: 85}, DefaultConfig()); got != StatusCritical {
		t.Errorf("CardStatus() = %s, want CRIT", got)
	}
}
