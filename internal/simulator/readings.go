package simulator

import "time"

// Reading is a per-component measurement. The set of implementations is
// closed: CPUReading, GPUReading, MemoryReading, StorageReading,
// MotherboardReading and FanReading.
type Reading interface {
	Kind() Kind
	isReading()
}

type CPUReading struct {
	Name            string   `json:"name"`
	Cores           int      `json:"cores"`
	Threads         int      `json:"threads"`
	Usage           float64  `json:"usage"`
	Temperature     float64  `json:"temperature"`
	MaxTemperature  float64  `json:"maxTemp"`
	Frequency       float64  `json:"frequency"`
	Power           float64  `json:"power"`
	Load            LoadMode `json:"load"`
	AvgTemperature  float64  `json:"avgTemp"`
	PeakTemperature float64  `json:"peakTemp"`
}

type GPUReading struct {
	Name           string  `json:"name"`
	Usage          float64 `json:"usage"`
	Temperature    float64 `json:"temperature"`
	MaxTemperature float64 `json:"maxTemp"`
	Memory         float64 `json:"memory"`
	MemoryUsed     float64 `json:"memoryUsed"`
	MemoryUsage    float64 `json:"memoryUsage"`
	CoreClock      float64 `json:"coreClock"`
	MemoryClock    float64 `json:"memoryClock"`
	Power          float64 `json:"power"`
	FanSpeed       float64 `json:"fanSpeed"`
	AvgTemperature float64 `json:"avgTemp"`
}

type MemoryReading struct {
	Name           string  `json:"name"`
	Total          float64 `json:"total"`
	Used           float64 `json:"used"`
	Available      float64 `json:"available"`
	Usage          float64 `json:"usage"`
	Speed          float64 `json:"speed"`
	EffectiveClock float64 `json:"effectiveClock"`
	Channels       int     `json:"channels"`
	Latency        int     `json:"latency"`
}

type StorageReading struct {
	Name        string  `json:"name"`
	Total       float64 `json:"total"`
	Used        float64 `json:"used"`
	Free        float64 `json:"free"`
	Usage       float64 `json:"usage"`
	Temperature float64 `json:"temperature"`
	Health      float64 `json:"health"`
	ReadSpeed   float64 `json:"readSpeed"`
	WriteSpeed  float64 `json:"writeSpeed"`
}

type MotherboardReading struct {
	Name           string  `json:"name"`
	Chipset        string  `json:"chipset"`
	BIOSVersion    string  `json:"biosVersion"`
	Temperature    float64 `json:"temperature"`
	MaxTemperature float64 `json:"maxTemp"`
	Voltage        float64 `json:"voltage"`
	Rail5V         float64 `json:"rail5v"`
	Rail3V3        float64 `json:"rail3v3"`
}

// FanDetail is one physical fan of the cooling system.
type FanDetail struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Type string  `json:"type"`
	RPM  float64 `json:"rpm"`
	PWM  float64 `json:"pwm"`
}

type FanReading struct {
	Name   string      `json:"name"`
	Count  int         `json:"count"`
	RPM    float64     `json:"rpm"`
	MaxRPM float64     `json:"maxRpm"`
	PWM    float64     `json:"pwm"`
	Mode   string      `json:"mode"`
	Status string      `json:"status"`
	Fans   []FanDetail `json:"fans"`
}

func (CPUReading) Kind() Kind         { return KindCPU }
func (GPUReading) Kind() Kind         { return KindGPU }
func (MemoryReading) Kind() Kind      { return KindMemory }
func (StorageReading) Kind() Kind     { return KindStorage }
func (MotherboardReading) Kind() Kind { return KindMotherboard }
func (FanReading) Kind() Kind         { return KindFans }

func (CPUReading) isReading()         {}
func (GPUReading) isReading()         {}
func (MemoryReading) isReading()      {}
func (StorageReading) isReading()     {}
func (MotherboardReading) isReading() {}
func (FanReading) isReading()         {}

// SystemOverview is derived from the CPU and GPU readings of a poll.
type SystemOverview struct {
	Status             Status   `json:"status"`
	AvgTemperature     float64  `json:"avgTemp"`
	AvgUsage           float64  `json:"avgUsage"`
	TotalPower         float64  `json:"totalPower"`
	UptimeSeconds      float64  `json:"uptime"`
	Load               LoadMode `json:"loadMode"`
	AmbientTemperature float64  `json:"ambientTemp"`
}

// Uptime returns the overview uptime as a duration.
func (o SystemOverview) Uptime() time.Duration {
	return time.Duration(o.UptimeSeconds * float64(time.Second))
}

// Snapshot is the result of one poll. It shares no memory with the
// simulator or with other snapshots.
type Snapshot struct {
	SimulatorID    string             `json:"simulatorId"`
	Timestamp      time.Time          `json:"timestamp"`
	UpdateInterval time.Duration      `json:"updateInterval"`
	CPU            CPUReading         `json:"cpu"`
	GPU            GPUReading         `json:"gpu"`
	Memory         MemoryReading      `json:"memory"`
	Storage        StorageReading     `json:"storage"`
	Motherboard    MotherboardReading `json:"motherboard"`
	Fans           FanReading         `json:"fans"`
	System         SystemOverview     `json:"system"`
}

// Readings returns the component readings in display order.
func (s Snapshot) Readings() []Reading {
	return []Reading{s.CPU, s.GPU, s.Memory, s.Storage, s.Motherboard, s.Fans}
}
