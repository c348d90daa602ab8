package simulator

import "fmt"

func (s *Simulator) cpu() CPUReading {
	spec := s.specs.CPU

	usage := clamp(s.fluctuate(spec.BaseUsage, 0.8, 1.2), 1, 100)
	ratio := usage / 100

	temp := spec.BaseTemp + ratio*35 + (s.ambient - 20) + s.deviation(0.15, DefaultFrequency)*8
	temp = clamp(temp, 25, spec.MaxTemp)

	freq := spec.BaseFrequency + (spec.MaxFrequency-spec.BaseFrequency)*ratio*0.8
	freq += s.deviation(0.05, DefaultFrequency) * freq
	minFreq := spec.BaseFrequency * 0.8
	freq = clamp(freq, minFreq, spec.MaxFrequency)

	power := 65 + ratio*60

	s.history.push(KindCPU, MetricTemperature, temp)
	s.history.push(KindCPU, MetricUsage, usage)

	return CPUReading{
		Name:            spec.Name,
		Cores:           spec.Cores,
		Threads:         spec.Threads,
		Usage:           roundWithin(usage, 1, 1, 100),
		Temperature:     roundWithin(temp, 1, 25, spec.MaxTemp),
		MaxTemperature:  spec.MaxTemp,
		Frequency:       roundWithin(freq, 2, minFreq, spec.MaxFrequency),
		Power:           roundWithin(power, 0, 65, 125),
		Load:            s.load,
		AvgTemperature:  round(s.history.average(KindCPU, MetricTemperature, defaultAverageSamples), 1),
		PeakTemperature: round(s.history.max(KindCPU, MetricTemperature), 1),
	}
}

// gpuProfile is the usage and memory target of the GPU for a load mode.
type gpuProfile struct {
	usage, usageRange, usageFreq float64
	memory, memoryRange          float64
}

func (s *Simulator) gpuProfile() gpuProfile {
	spec := s.specs.GPU
	switch s.load {
	case LoadGaming:
		return gpuProfile{usage: 75, usageRange: 0.3, usageFreq: 1.5, memory: 8.5, memoryRange: 0.2}
	case LoadStress:
		return gpuProfile{usage: 95, usageRange: 0.1, usageFreq: 2, memory: 10.8, memoryRange: 0.1}
	default:
		return gpuProfile{usage: spec.BaseUsage, usageRange: 1.2, usageFreq: 0.8, memory: spec.BaseMemoryUsage, memoryRange: 0.3}
	}
}

func (s *Simulator) gpu() GPUReading {
	spec := s.specs.GPU
	p := s.gpuProfile()

	usage := clamp(s.fluctuate(p.usage, p.usageRange, p.usageFreq), 0, 100)
	ratio := usage / 100

	temp := spec.BaseTemp + ratio*40 + s.deviation(0.2, DefaultFrequency)*6
	temp = clamp(temp, 25, spec.MaxTemp)

	maxMem := spec.Memory * 0.95
	memUsed := clamp(s.fluctuate(p.memory, p.memoryRange, DefaultFrequency), 1, maxMem)

	clock := spec.CoreClock
	if usage > 50 {
		clock *= 1 + (usage-50)/500
	}
	clock *= s.jitter(0.02)
	minClock, maxClock := spec.CoreClock*0.9, spec.CoreClock*1.15
	clock = clamp(clock, minClock, maxClock)

	power := 100 + ratio*100
	fan := clamp(s.fluctuate(1800, 0.3, DefaultFrequency), 0, 3600)

	s.history.push(KindGPU, MetricTemperature, temp)
	s.history.push(KindGPU, MetricUsage, usage)

	return GPUReading{
		Name:           spec.Name,
		Usage:          roundWithin(usage, 1, 0, 100),
		Temperature:    roundWithin(temp, 1, 25, spec.MaxTemp),
		MaxTemperature: spec.MaxTemp,
		Memory:         spec.Memory,
		MemoryUsed:     roundWithin(memUsed, 1, 1, maxMem),
		MemoryUsage:    round(memUsed/spec.Memory*100, 1),
		CoreClock:      roundWithin(clock, 0, minClock, maxClock),
		MemoryClock:    spec.MemoryClock,
		Power:          roundWithin(power, 0, 100, 200),
		FanSpeed:       roundWithin(fan, 0, 0, 3600),
		AvgTemperature: round(s.history.average(KindGPU, MetricTemperature, defaultAverageSamples), 1),
	}
}

func (s *Simulator) memory() MemoryReading {
	spec := s.specs.Memory

	target := spec.BaseUsage
	switch s.load {
	case LoadGaming:
		target = 16
	case LoadStress:
		target = 24
	}
	maxUsed := spec.Total * 0.95
	used := clamp(s.fluctuate(target, 0.15, DefaultFrequency), 4, maxUsed)
	clock := spec.Speed * s.jitter(0.04)

	s.history.push(KindMemory, MetricUsage, used)

	used = roundWithin(used, 1, 4, maxUsed)
	return MemoryReading{
		Name:           spec.Name,
		Total:          spec.Total,
		Used:           used,
		Available:      round(spec.Total-used, 1),
		Usage:          round(used/spec.Total*100, 1),
		Speed:          spec.Speed,
		EffectiveClock: round(clock, 0),
		Channels:       spec.Channels,
		Latency:        spec.Latency,
	}
}

func (s *Simulator) storage() StorageReading {
	spec := s.specs.Storage
	hours := s.elapsed() / 3600

	maxUsed := spec.Total * 0.98
	used := spec.BaseUsage + hours*0.01 + (s.random.Float64()-0.5)*0.002
	used = clamp(used, spec.BaseUsage, maxUsed)

	temp := spec.BaseTemp
	if s.load == LoadStress {
		temp += 8
	}
	temp = clamp(temp+s.deviation(0.1, 0.5)*3, 25, spec.MaxTemp)

	health := clamp(spec.Health-hours*0.001, 85, spec.Health)

	read, write := spec.ReadSpeed, spec.WriteSpeed
	if s.load == LoadStress {
		read *= 0.8
		write *= 0.7
	}
	read *= 0.9 + s.random.Float64()*0.1
	write *= 0.9 + s.random.Float64()*0.1

	used = roundWithin(used, 1, spec.BaseUsage, maxUsed)
	return StorageReading{
		Name:        spec.Name,
		Total:       spec.Total,
		Used:        used,
		Free:        round(spec.Total-used, 1),
		Usage:       round(used/spec.Total*100, 1),
		Temperature: roundWithin(temp, 1, 25, spec.MaxTemp),
		Health:      roundWithin(health, 2, 85, spec.Health),
		ReadSpeed:   round(read, 0),
		WriteSpeed:  round(write, 0),
	}
}

const (
	voltageMin = 11.8
	voltageMax = 12.4
	rail5V     = 5.0
	rail3V3    = 3.3
	railBand   = 0.05 // ATX tolerance
)

func (s *Simulator) motherboard() MotherboardReading {
	spec := s.specs.Motherboard

	temp := spec.BaseTemp
	switch s.load {
	case LoadGaming:
		temp += 5
	case LoadStress:
		temp += 10
	}
	temp = clamp(temp+s.deviation(0.1, DefaultFrequency)*3, 25, spec.MaxTemp)

	voltage := clamp(spec.BaseVoltage*s.jitter(0.03), voltageMin, voltageMax)
	v5 := clamp(rail5V*s.jitter(0.02), rail5V*(1-railBand), rail5V*(1+railBand))
	v33 := clamp(rail3V3*s.jitter(0.02), rail3V3*(1-railBand), rail3V3*(1+railBand))

	return MotherboardReading{
		Name:           spec.Name,
		Chipset:        spec.Chipset,
		BIOSVersion:    spec.BIOSVersion,
		Temperature:    roundWithin(temp, 1, 25, spec.MaxTemp),
		MaxTemperature: spec.MaxTemp,
		Voltage:        roundWithin(voltage, 2, voltageMin, voltageMax),
		Rail5V:         roundWithin(v5, 3, rail5V*(1-railBand), rail5V*(1+railBand)),
		Rail3V3:        roundWithin(v33, 3, rail3V3*(1-railBand), rail3V3*(1+railBand)),
	}
}

const minFanRPM = 800

// coolingTemperature is the mean of the latest CPU and GPU temperatures.
func (s *Simulator) coolingTemperature() float64 {
	cpu, ok := s.history.latest(KindCPU, MetricTemperature)
	if !ok {
		cpu = s.specs.CPU.BaseTemp
	}
	gpu, ok := s.history.latest(KindGPU, MetricTemperature)
	if !ok {
		gpu = s.specs.GPU.BaseTemp
	}
	return (cpu + gpu) / 2
}

func fanMultiplier(avgTemp float64) float64 {
	switch {
	case avgTemp > 70:
		return 1.6
	case avgTemp > 60:
		return 1.3
	case avgTemp > 50:
		return 1.1
	default:
		return 1.0
	}
}

func fanMode(avgTemp float64) string {
	switch {
	case avgTemp > 70:
		return "turbo"
	case avgTemp > 60:
		return "performance"
	case avgTemp > 50:
		return "balanced"
	default:
		return "silent"
	}
}

func fanStatus(rpm float64) string {
	switch {
	case rpm > 2000:
		return "high"
	case rpm > 1500:
		return "medium"
	default:
		return "quiet"
	}
}

func (s *Simulator) fans() FanReading {
	spec := s.specs.Fans
	avgTemp := s.coolingTemperature()

	rpm := clamp(s.fluctuate(spec.BaseRPM*fanMultiplier(avgTemp), 0.1, DefaultFrequency), minFanRPM, spec.MaxRPM)
	rpm = roundWithin(rpm, 0, minFanRPM, spec.MaxRPM)

	details := make([]FanDetail, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		kind := "Fan"
		if len(spec.Types) > 0 {
			kind = spec.Types[i%len(spec.Types)]
		}
		fanRPM := roundWithin(rpm*s.jitter(0.1), 0, minFanRPM, spec.MaxRPM)
		details = append(details, FanDetail{
			ID:   i + 1,
			Name: fmt.Sprintf("%s %d", kind, i/max(len(spec.Types), 1)+1),
			Type: kind,
			RPM:  fanRPM,
			PWM:  round(fanRPM/spec.MaxRPM*100, 0),
		})
	}

	return FanReading{
		Name:   spec.Name,
		Count:  spec.Count,
		RPM:    rpm,
		MaxRPM: spec.MaxRPM,
		PWM:    round(rpm/spec.MaxRPM*100, 0),
		Mode:   fanMode(avgTemp),
		Status: fanStatus(rpm),
		Fans:   details,
	}
}
