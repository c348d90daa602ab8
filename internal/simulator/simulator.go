// Package simulator generates synthetic hardware telemetry for a fictional
// gaming rig. Every reading is procedural: layered sinusoids of elapsed time
// plus injected randomness, biased by a load mode and clamped to physically
// sensible bounds.
package simulator

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultAmbientTemperature = 25.0
	MinAmbientTemperature     = 15.0
	MaxAmbientTemperature     = 40.0

	DefaultUpdateInterval = 2 * time.Second
	MinUpdateInterval     = 1 * time.Second
	MaxUpdateInterval     = 10 * time.Second
)

// Simulator is one simulated machine. All methods are safe for concurrent
// use; polls and resets are serialized.
type Simulator struct {
	mu sync.Mutex

	id       string
	specs    Specs
	clock    Clock
	random   Random
	start    time.Time
	load     LoadMode
	ambient  float64
	interval time.Duration
	history  *history
}

// Option configures a Simulator at construction.
type Option func(*Simulator)

// WithClock sets the time base.
func WithClock(c Clock) Option {
	return func(s *Simulator) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithRandom sets the randomness source.
func WithRandom(r Random) Option {
	return func(s *Simulator) {
		if r != nil {
			s.random = r
		}
	}
}

// WithSeed uses a deterministic PCG source.
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.random = NewRandom(seed)
	}
}

// WithSpecs replaces the component baselines. Specs that fail Validate are
// ignored and the defaults kept.
func WithSpecs(specs Specs) Option {
	return func(s *Simulator) {
		if specs.Validate() == nil {
			s.specs = specs
		}
	}
}

// WithAmbientTemperature sets the initial ambient temperature (clamped).
func WithAmbientTemperature(celsius float64) Option {
	return func(s *Simulator) {
		if !math.IsNaN(celsius) {
			s.ambient = clamp(celsius, MinAmbientTemperature, MaxAmbientTemperature)
		}
	}
}

// WithUpdateInterval sets the advertised poll interval (clamped).
func WithUpdateInterval(d time.Duration) Option {
	return func(s *Simulator) {
		s.interval = clampInterval(d)
	}
}

// New creates a simulator, records its start time and seeds history.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		id:       uuid.NewString(),
		specs:    DefaultSpecs(),
		clock:    SystemClock(),
		load:     LoadNormal,
		ambient:  DefaultAmbientTemperature,
		interval: DefaultUpdateInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.random == nil {
		s.random = newEntropyRandom()
	}
	s.start = s.clock.Now()
	s.history = newHistory()
	s.history.seed(s.specs, s.random)
	return s
}

// elapsed is the number of seconds since start, never negative.
func (s *Simulator) elapsed() float64 {
	t := s.clock.Now().Sub(s.start).Seconds()
	if t < 0 {
		return 0
	}
	return t
}

// GetAllData polls every component. It may roll the load mode and it
// advances the CPU, GPU and memory history.
func (s *Simulator) GetAllData() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateSystemLoad()
	cpu := s.cpu()
	gpu := s.gpu()
	mem := s.memory()
	storage := s.storage()
	board := s.motherboard()
	fans := s.fans()

	return Snapshot{
		SimulatorID:    s.id,
		Timestamp:      s.clock.Now(),
		UpdateInterval: s.interval,
		CPU:            cpu,
		GPU:            gpu,
		Memory:         mem,
		Storage:        storage,
		Motherboard:    board,
		Fans:           fans,
		System:         s.overview(cpu, gpu),
	}
}

// CPU derives a CPU reading and records its temperature and usage.
func (s *Simulator) CPU() CPUReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cpu()
}

// GPU derives a GPU reading and records its temperature and usage.
func (s *Simulator) GPU() GPUReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gpu()
}

// Memory derives a memory reading and records the used amount.
func (s *Simulator) Memory() MemoryReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory()
}

func (s *Simulator) Storage() StorageReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage()
}

func (s *Simulator) Motherboard() MotherboardReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.motherboard()
}

func (s *Simulator) Fans() FanReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fans()
}

// Overview aggregates the given CPU and GPU readings.
func (s *Simulator) Overview(cpu CPUReading, gpu GPUReading) SystemOverview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overview(cpu, gpu)
}

// Fluctuate returns base shifted by the current wave deviation.
func (s *Simulator) Fluctuate(base, rng, freq float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fluctuate(base, rng, freq)
}

// SetAmbientTemperature clamps celsius to [15,40]. NaN is ignored.
func (s *Simulator) SetAmbientTemperature(celsius float64) {
	if math.IsNaN(celsius) {
		return
	}
	s.mu.Lock()
	s.ambient = clamp(celsius, MinAmbientTemperature, MaxAmbientTemperature)
	s.mu.Unlock()
}

func (s *Simulator) AmbientTemperature() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ambient
}

// SetUpdateInterval clamps d to [1s,10s].
func (s *Simulator) SetUpdateInterval(d time.Duration) {
	s.mu.Lock()
	s.interval = clampInterval(d)
	s.mu.Unlock()
}

func (s *Simulator) UpdateInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Reset restarts the time base, restores normal load and reseeds history.
// Specs, ambient temperature and update interval are kept.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start = s.clock.Now()
	s.load = LoadNormal
	s.history = newHistory()
	s.history.seed(s.specs, s.random)
}

// UpdateHistory appends value to a stream. Unknown streams are ignored.
func (s *Simulator) UpdateHistory(kind Kind, metric Metric, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.push(kind, metric, value)
}

// HistoryAverage is the mean of the last samples entries (5 when samples
// is not positive). It returns 0 when the stream is empty or unknown.
func (s *Simulator) HistoryAverage(kind Kind, metric Metric, samples int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.average(kind, metric, samples)
}

// HistoryPeak is the maximum over the retained window, 0 when empty.
func (s *Simulator) HistoryPeak(kind Kind, metric Metric) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.max(kind, metric)
}

// History returns a copy of a stream, oldest first.
func (s *Simulator) History(kind Kind, metric Metric) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.values(kind, metric)
}

func (s *Simulator) ID() string { return s.id }

func (s *Simulator) Specs() Specs { return s.specs }

// Uptime is the time since construction or the last reset.
func (s *Simulator) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(s.elapsed() * float64(time.Second))
}

func clampInterval(d time.Duration) time.Duration {
	if d < MinUpdateInterval {
		return MinUpdateInterval
	}
	if d > MaxUpdateInterval {
		return MaxUpdateInterval
	}
	return d
}
