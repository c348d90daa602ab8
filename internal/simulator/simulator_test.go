package simulator

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// constRandom always returns the same draw.
type constRandom float64

func (r constRandom) Float64() float64 { return float64(r) }

// countingRandom records how many draws were taken.
type countingRandom struct {
	value float64
	calls int
}

func (r *countingRandom) Float64() float64 {
	r.calls++
	return r.value
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

func inRange(t *testing.T, name string, v, lo, hi float64) {
	t.Helper()
	if v < lo || v > hi || math.IsNaN(v) {
		t.Fatalf("%s = %v, want within [%v, %v]", name, v, lo, hi)
	}
}

func TestClampInvariants(t *testing.T) {
	clock := newFakeClock()
	sim := New(WithClock(clock), WithSeed(42))
	specs := sim.Specs()

	const polls = 10000
	step := seconds(100000.0 / polls)
	modes := []LoadMode{LoadNormal, LoadGaming, LoadStress}
	ambients := []float64{15, 25, 40}

	for i := 0; i < polls; i++ {
		if i%500 == 0 {
			sim.SetSystemLoad(modes[(i/500)%len(modes)])
			sim.SetAmbientTemperature(ambients[(i/500)%len(ambients)])
		}
		snap := sim.GetAllData()

		inRange(t, "cpu.usage", snap.CPU.Usage, 1, 100)
		inRange(t, "cpu.temperature", snap.CPU.Temperature, 25, specs.CPU.MaxTemp)
		inRange(t, "cpu.frequency", snap.CPU.Frequency, specs.CPU.BaseFrequency*0.8, specs.CPU.MaxFrequency)
		inRange(t, "cpu.power", snap.CPU.Power, 65, 125)

		inRange(t, "gpu.usage", snap.GPU.Usage, 0, 100)
		inRange(t, "gpu.temperature", snap.GPU.Temperature, 25, specs.GPU.MaxTemp)
		inRange(t, "gpu.memoryUsed", snap.GPU.MemoryUsed, 1, specs.GPU.Memory*0.95)
		inRange(t, "gpu.coreClock", snap.GPU.CoreClock, specs.GPU.CoreClock*0.9, specs.GPU.CoreClock*1.15)
		inRange(t, "gpu.power", snap.GPU.Power, 100, 200)
		inRange(t, "gpu.fanSpeed", snap.GPU.FanSpeed, 0, 3600)

		inRange(t, "memory.used", snap.Memory.Used, 4, specs.Memory.Total*0.95)
		inRange(t, "memory.effectiveClock", snap.Memory.EffectiveClock, specs.Memory.Speed*0.98-1, specs.Memory.Speed*1.02+1)

		inRange(t, "storage.used", snap.Storage.Used, specs.Storage.BaseUsage, specs.Storage.Total*0.98)
		inRange(t, "storage.temperature", snap.Storage.Temperature, 25, specs.Storage.MaxTemp)
		inRange(t, "storage.health", snap.Storage.Health, 85, 98)

		inRange(t, "motherboard.temperature", snap.Motherboard.Temperature, 25, specs.Motherboard.MaxTemp)
		inRange(t, "motherboard.voltage", snap.Motherboard.Voltage, 11.8, 12.4)
		inRange(t, "motherboard.rail5v", snap.Motherboard.Rail5V, 4.75, 5.25)
		inRange(t, "motherboard.rail3v3", snap.Motherboard.Rail3V3, 3.3*0.95, 3.3*1.05)

		inRange(t, "fans.rpm", snap.Fans.RPM, 800, specs.Fans.MaxRPM)
		if len(snap.Fans.Fans) != specs.Fans.Count {
			t.Fatalf("fan details = %d, want %d", len(snap.Fans.Fans), specs.Fans.Count)
		}
		for _, f := range snap.Fans.Fans {
			inRange(t, "fans.detail.rpm", f.RPM, 800, specs.Fans.MaxRPM)
		}

		clock.Advance(step)
	}
}

func TestHistoryBound(t *testing.T) {
	sim := New(WithClock(newFakeClock()), WithRandom(constRandom(0.5)))

	for i := 0; i < 57; i++ {
		sim.UpdateHistory(KindCPU, MetricTemperature, float64(i))
	}

	got := sim.History(KindCPU, MetricTemperature)
	if len(got) != HistoryCapacity {
		t.Fatalf("len = %d, want %d", len(got), HistoryCapacity)
	}
	for i, v := range got {
		if want := float64(57 - HistoryCapacity + i); v != want {
			t.Errorf("history[%d] = %v, want %v", i, v, want)
		}
	}

	// Unknown pairs are silently ignored.
	sim.UpdateHistory(KindStorage, MetricTemperature, 99)
	if h := sim.History(KindStorage, MetricTemperature); h != nil {
		t.Errorf("unknown stream history = %v, want nil", h)
	}
}

func TestHistoryAverage(t *testing.T) {
	sim := New(WithClock(newFakeClock()), WithRandom(constRandom(0)))
	// Seeded samples are exactly the baselines with a zero draw.
	for i := 1; i <= 4; i++ {
		sim.UpdateHistory(KindGPU, MetricUsage, float64(i*10))
	}

	tests := []struct {
		name    string
		kind    Kind
		metric  Metric
		samples int
		want    float64
	}{
		{"last two", KindGPU, MetricUsage, 2, 35},
		{"default five", KindGPU, MetricUsage, 0, (5 + 10 + 20 + 30 + 40) / 5.0},
		{"more than buffered", KindGPU, MetricUsage, 100, (10*5 + 100) / 14.0},
		{"unknown metric", KindFans, MetricUsage, 5, 0},
		{"seeded baseline", KindCPU, MetricTemperature, 5, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sim.HistoryAverage(tt.kind, tt.metric, tt.samples)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HistoryAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHistoryPeak(t *testing.T) {
	sim := New(WithClock(newFakeClock()), WithRandom(constRandom(0)))
	sim.UpdateHistory(KindCPU, MetricUsage, 88)
	for i := 0; i < HistoryCapacity-1; i++ {
		sim.UpdateHistory(KindCPU, MetricUsage, 20)
	}
	if got := sim.HistoryPeak(KindCPU, MetricUsage); got != 88 {
		t.Fatalf("peak = %v, want 88", got)
	}

	// 88 falls out of the window.
	sim.UpdateHistory(KindCPU, MetricUsage, 20)
	if got := sim.HistoryPeak(KindCPU, MetricUsage); got != 20 {
		t.Fatalf("peak after eviction = %v, want 20", got)
	}

	if got := sim.HistoryPeak(KindMotherboard, MetricTemperature); got != 0 {
		t.Errorf("unknown stream peak = %v, want 0", got)
	}
}

func TestLoadRollWindow(t *testing.T) {
	tests := []struct {
		name    string
		draw    float64
		elapsed float64
		initial LoadMode
		want    LoadMode
		rolled  bool
	}{
		{"stress at start", 0.01, 0, LoadNormal, LoadStress, true},
		{"gaming inside window", 0.1, 30.5, LoadNormal, LoadGaming, true},
		{"lower gaming bound", 0.05, 60, LoadStress, LoadGaming, true},
		{"normal at threshold", 0.2, 90.2, LoadGaming, LoadNormal, true},
		{"outside window keeps mode", 0.01, 15, LoadGaming, LoadGaming, false},
		{"window edge is exclusive", 0.01, 31, LoadNormal, LoadNormal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			rnd := &countingRandom{value: tt.draw}
			sim := New(WithClock(clock), WithRandom(rnd))
			sim.SetSystemLoad(tt.initial)
			clock.Advance(seconds(tt.elapsed))

			before := rnd.calls
			sim.UpdateSystemLoad()

			if got := sim.LoadMode(); got != tt.want {
				t.Errorf("LoadMode() = %q, want %q", got, tt.want)
			}
			if drew := rnd.calls > before; drew != tt.rolled {
				t.Errorf("random drawn = %v, want %v", drew, tt.rolled)
			}
		})
	}
}

func TestSetSystemLoadIgnoresInvalid(t *testing.T) {
	sim := New(WithClock(newFakeClock()), WithSeed(1))
	sim.SetSystemLoad(LoadGaming)
	sim.SetSystemLoad(LoadMode("bogus"))
	sim.SetSystemLoad("")

	if got := sim.LoadMode(); got != LoadGaming {
		t.Errorf("LoadMode() = %q, want %q", got, LoadGaming)
	}
}

func TestParseLoadMode(t *testing.T) {
	tests := []struct {
		in   string
		want LoadMode
		ok   bool
	}{
		{"normal", LoadNormal, true},
		{" Stress ", LoadStress, true},
		{"GAMING", LoadGaming, true},
		{"turbo", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLoadMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLoadMode(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStorageGrowth(t *testing.T) {
	clock := newFakeClock()
	sim := New(WithClock(clock), WithSeed(7))

	clock.Advance(10 * time.Hour)
	first := sim.Storage()
	clock.Advance(time.Hour)
	second := sim.Storage()
	clock.Advance(1000 * time.Hour)
	third := sim.Storage()

	const tolerance = 0.1 // one display step
	if second.Used < first.Used-tolerance {
		t.Errorf("used shrank: %v -> %v", first.Used, second.Used)
	}
	if third.Used <= second.Used {
		t.Errorf("used did not grow over 1000h: %v -> %v", second.Used, third.Used)
	}
	if second.Health > first.Health || third.Health > second.Health {
		t.Errorf("health increased: %v, %v, %v", first.Health, second.Health, third.Health)
	}

	clock.Advance(100000 * time.Hour)
	if got := sim.Storage().Health; got != 85 {
		t.Errorf("health floor = %v, want 85", got)
	}
}

func TestStorageStressThrottlesSpeeds(t *testing.T) {
	clock := newFakeClock()
	sim := New(WithClock(clock), WithRandom(constRandom(1)))

	sim.SetSystemLoad(LoadStress)
	got := sim.Storage()
	if got.ReadSpeed != 5600 {
		t.Errorf("read = %v, want 5600", got.ReadSpeed)
	}
	if got.WriteSpeed != 3500 {
		t.Errorf("write = %v, want 3500", got.WriteSpeed)
	}
}

func TestFluctuateDeterministic(t *testing.T) {
	clock := newFakeClock()
	sim := New(WithClock(clock), WithRandom(constRandom(0.37)))
	clock.Advance(seconds(1234.5))

	a := sim.Fluctuate(42, 0.3, 1.1)
	b := sim.Fluctuate(42, 0.3, 1.1)
	if math.Float64bits(a) != math.Float64bits(b) {
		t.Fatalf("Fluctuate not reproducible: %v != %v", a, b)
	}

	other := New(WithClock(clock), WithRandom(constRandom(0.37)))
	if c := other.Fluctuate(42, 0.3, 1.1); c != 42*(1+waveDeviation(0, 0.3, 1.1, 0.37, 1)) {
		t.Errorf("fresh simulator at t=0 = %v", c)
	}
}

func TestWaveDeviation(t *testing.T) {
	// At t=0 only the phase offsets contribute; a 0.5 draw cancels the noise.
	want := 0.2 * (0.6*math.Sin(math.Pi/3) + 0.3*math.Sin(math.Pi/6))
	if got := waveDeviation(0, 0.2, 1, 0.5, 1); math.Abs(got-want) > 1e-12 {
		t.Errorf("waveDeviation(t=0) = %v, want %v", got, want)
	}
	if got := waveDeviation(0, 0.2, 1, 0.5, 2); math.Abs(got-2*want) > 1e-12 {
		t.Errorf("stress multiplier not applied: %v", got)
	}
	if got := waveDeviation(0, 0.2, 1, 1, 1) - want; math.Abs(got-0.2*0.2) > 1e-12 {
		t.Errorf("noise at draw 1 = %v, want %v", got, 0.04)
	}
}

func TestCPUAtStart(t *testing.T) {
	sim := New(WithClock(newFakeClock()), WithSeed(3))
	if sim.LoadMode() != LoadNormal {
		t.Fatalf("initial mode = %q", sim.LoadMode())
	}

	cpu := sim.CPU()
	inRange(t, "usage", cpu.Usage, 1, 100)
	inRange(t, "temperature", cpu.Temperature, 25, 95)
	inRange(t, "power", cpu.Power, 65, 125)
	if cpu.Name != "Intel Core i7-12700K" || cpu.Cores != 12 || cpu.Threads != 20 {
		t.Errorf("unexpected spec fields: %+v", cpu)
	}
}

func TestStressBiasesGPU(t *testing.T) {
	clock := newFakeClock()
	stressed := New(WithClock(clock), WithSeed(11))
	idle := New(WithClock(clock), WithSeed(11))
	stressed.SetSystemLoad(LoadStress)

	var stressSum, idleSum float64
	const polls = 300
	for i := 0; i < polls; i++ {
		s := stressed.GPU()
		if s.Usage < 50 {
			t.Fatalf("stress usage %v fell to the idle range", s.Usage)
		}
		stressSum += s.Usage
		idleSum += idle.GPU().Usage
		clock.Advance(seconds(7.3))
	}

	if mean := stressSum / polls; mean < 75 {
		t.Errorf("stress mean usage = %.1f, want >= 75", mean)
	}
	if mean := idleSum / polls; mean > 20 {
		t.Errorf("idle mean usage = %.1f, want <= 20", mean)
	}
}

func TestSetAmbientTemperature(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{22, 22},
		{-5, 15},
		{100, 40},
		{15, 15},
		{40, 40},
		{math.NaN(), 30},
	}
	for _, tt := range tests {
		sim := New(WithClock(newFakeClock()), WithSeed(1), WithAmbientTemperature(30))
		sim.SetAmbientTemperature(tt.in)
		if got := sim.AmbientTemperature(); got != tt.want {
			t.Errorf("SetAmbientTemperature(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAmbientRaisesCPUTemperature(t *testing.T) {
	cold := New(WithClock(newFakeClock()), WithRandom(constRandom(0.5)), WithAmbientTemperature(15))
	hot := New(WithClock(newFakeClock()), WithRandom(constRandom(0.5)), WithAmbientTemperature(35))

	if c, h := cold.CPU().Temperature, hot.CPU().Temperature; h-c < 19.5 {
		t.Errorf("ambient offset not applied: cold %v hot %v", c, h)
	}
}

func TestSetUpdateInterval(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{500 * time.Millisecond, time.Second},
		{3 * time.Second, 3 * time.Second},
		{time.Minute, 10 * time.Second},
	}
	for _, tt := range tests {
		sim := New(WithClock(newFakeClock()), WithSeed(1))
		sim.SetUpdateInterval(tt.in)
		if got := sim.UpdateInterval(); got != tt.want {
			t.Errorf("SetUpdateInterval(%v) -> %v, want %v", tt.in, got, tt.want)
		}
		if got := sim.GetAllData().UpdateInterval; got != tt.want {
			t.Errorf("snapshot interval = %v, want %v", got, tt.want)
		}
	}
}

func TestReset(t *testing.T) {
	clock := newFakeClock()
	sim := New(WithClock(clock), WithSeed(5))
	sim.SetAmbientTemperature(33)
	sim.SetUpdateInterval(4 * time.Second)
	sim.SetSystemLoad(LoadStress)
	for i := 0; i < 30; i++ {
		sim.GetAllData()
		clock.Advance(3 * time.Second)
	}
	sim.SetSystemLoad(LoadStress)

	sim.Reset()

	if got := sim.LoadMode(); got != LoadNormal {
		t.Errorf("mode after reset = %q", got)
	}
	if got := sim.Uptime(); got != 0 {
		t.Errorf("uptime after reset = %v", got)
	}
	if got := len(sim.History(KindCPU, MetricUsage)); got != seedSamples {
		t.Errorf("history after reset = %d samples, want %d", got, seedSamples)
	}
	if got := sim.AmbientTemperature(); got != 33 {
		t.Errorf("ambient after reset = %v, want 33", got)
	}
	if got := sim.UpdateInterval(); got != 4*time.Second {
		t.Errorf("interval after reset = %v", got)
	}
	if sim.Specs().CPU.Name != DefaultSpecs().CPU.Name {
		t.Errorf("specs changed by reset")
	}
}

func TestClassifyOverview(t *testing.T) {
	tests := []struct {
		name        string
		temp, usage float64
		want        Status
	}{
		{"idle", 40, 10, StatusNormal},
		{"danger by temperature", 65, 10, StatusDanger},
		{"danger by usage", 40, 55, StatusDanger},
		{"warning by temperature", 75, 10, StatusWarning},
		{"warning by usage", 40, 75, StatusWarning},
		{"critical by temperature", 81, 10, StatusCritical},
		{"critical by usage", 40, 95, StatusCritical},
		{"boundaries are exclusive", 60, 50, StatusNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyOverview(tt.temp, tt.usage); got != tt.want {
				t.Errorf("ClassifyOverview(%v, %v) = %q, want %q", tt.temp, tt.usage, got, tt.want)
			}
		})
	}
}

func TestOverviewTotals(t *testing.T) {
	clock := newFakeClock()
	sim := New(WithClock(clock), WithSeed(9))
	clock.Advance(90 * time.Second)

	snap := sim.GetAllData()
	if want := snap.CPU.Power + snap.GPU.Power + 50; snap.System.TotalPower != want {
		t.Errorf("total power = %v, want %v", snap.System.TotalPower, want)
	}
	if snap.System.UptimeSeconds != 90 {
		t.Errorf("uptime = %v, want 90", snap.System.UptimeSeconds)
	}
	if snap.System.Load != sim.LoadMode() {
		t.Errorf("overview load %q, simulator %q", snap.System.Load, sim.LoadMode())
	}
	if snap.SimulatorID == "" || snap.SimulatorID != sim.ID() {
		t.Errorf("snapshot id = %q", snap.SimulatorID)
	}
}

func TestFanLabels(t *testing.T) {
	tests := []struct {
		temp       float64
		multiplier float64
		mode       string
	}{
		{45, 1.0, "silent"},
		{55, 1.1, "balanced"},
		{65, 1.3, "performance"},
		{75, 1.6, "turbo"},
	}
	for _, tt := range tests {
		if got := fanMultiplier(tt.temp); got != tt.multiplier {
			t.Errorf("fanMultiplier(%v) = %v, want %v", tt.temp, got, tt.multiplier)
		}
		if got := fanMode(tt.temp); got != tt.mode {
			t.Errorf("fanMode(%v) = %q, want %q", tt.temp, got, tt.mode)
		}
	}

	for rpm, want := range map[float64]string{900: "quiet", 1500: "quiet", 1800: "medium", 2200: "high"} {
		if got := fanStatus(rpm); got != want {
			t.Errorf("fanStatus(%v) = %q, want %q", rpm, got, want)
		}
	}
}

func TestSnapshotReadingsOrder(t *testing.T) {
	snap := New(WithClock(newFakeClock()), WithSeed(2)).GetAllData()
	readings := snap.Readings()
	if len(readings) != len(Kinds) {
		t.Fatalf("readings = %d, want %d", len(readings), len(Kinds))
	}
	for i, r := range readings {
		if r.Kind() != Kinds[i] {
			t.Errorf("readings[%d].Kind() = %q, want %q", i, r.Kind(), Kinds[i])
		}
	}
}

func TestSpecsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Specs)
		field  string
	}{
		{"defaults", func(*Specs) {}, ""},
		{"storage health below floor", func(s *Specs) { s.Storage.Health = 80 }, "Storage.Health"},
		{"fan max below min rpm", func(s *Specs) { s.Fans.MaxRPM = 0 }, "Fans.MaxRPM"},
		{"storage base over capacity", func(s *Specs) { s.Storage.BaseUsage = s.Storage.Total }, "Storage.BaseUsage"},
		{"cpu frequency inverted", func(s *Specs) { s.CPU.MaxFrequency = 1 }, "CPU.MaxFrequency"},
		{"tiny memory", func(s *Specs) { s.Memory.Total = 2 }, "Memory.Total"},
		{"tiny vram", func(s *Specs) { s.GPU.Memory = 1 }, "GPU.Memory"},
		{"cold board max", func(s *Specs) { s.Motherboard.MaxTemp = 20 }, "Motherboard.MaxTemp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := DefaultSpecs()
			tt.mutate(&specs)
			err := specs.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			se, ok := err.(*SpecError)
			if !ok {
				t.Fatalf("Validate() = %v, want *SpecError", err)
			}
			if se.Field != tt.field {
				t.Errorf("field = %s, want %s", se.Field, tt.field)
			}
		})
	}
}

func TestWithSpecsIgnoresInvalid(t *testing.T) {
	bad := DefaultSpecs()
	bad.Storage.Health = 80
	bad.Fans.MaxRPM = 0

	sim := New(WithSeed(1), WithSpecs(bad))
	if sim.Specs().Storage.Health != DefaultSpecs().Storage.Health {
		t.Errorf("invalid specs applied: health = %v", sim.Specs().Storage.Health)
	}
	fans := sim.Fans()
	if math.IsInf(fans.PWM, 0) || fans.RPM > fans.MaxRPM {
		t.Errorf("fans out of range: %+v", fans)
	}

	custom := DefaultSpecs()
	custom.CPU.Name = "Test CPU"
	if got := New(WithSpecs(custom)).Specs().CPU.Name; got != "Test CPU" {
		t.Errorf("valid specs not applied: %s", got)
	}
}
