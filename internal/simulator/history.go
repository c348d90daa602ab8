package simulator

import (
	"github.com/asecurityteam/rolling"
)

const (
	// HistoryCapacity bounds every history stream.
	HistoryCapacity       = 20
	seedSamples           = 10
	defaultAverageSamples = 5
)

type streamKey struct {
	kind   Kind
	metric Metric
}

// stream is a FIFO of recent samples with a rolling peak over the same window.
type stream struct {
	values []float64
	peak   *rolling.PointPolicy
}

func newStream() *stream {
	return &stream{
		values: make([]float64, 0, HistoryCapacity),
		peak:   rolling.NewPointPolicy(rolling.NewWindow(HistoryCapacity)),
	}
}

func (s *stream) push(v float64) {
	s.values = append(s.values, v)
	if len(s.values) > HistoryCapacity {
		s.values = s.values[1:]
	}
	s.peak.Append(v)
}

type history struct {
	streams map[streamKey]*stream
}

func newHistory() *history {
	h := &history{streams: make(map[streamKey]*stream)}
	for _, k := range []streamKey{
		{KindCPU, MetricTemperature},
		{KindCPU, MetricUsage},
		{KindGPU, MetricTemperature},
		{KindGPU, MetricUsage},
		{KindMemory, MetricUsage},
	} {
		h.streams[k] = newStream()
	}
	return h
}

// seed fills every stream with synthetic warm-up samples around the baselines.
func (h *history) seed(specs Specs, r Random) {
	for i := 0; i < seedSamples; i++ {
		h.push(KindCPU, MetricTemperature, specs.CPU.BaseTemp+r.Float64()*5)
		h.push(KindCPU, MetricUsage, specs.CPU.BaseUsage+r.Float64()*10)
		h.push(KindGPU, MetricTemperature, specs.GPU.BaseTemp+r.Float64()*5)
		h.push(KindGPU, MetricUsage, specs.GPU.BaseUsage+r.Float64()*10)
		h.push(KindMemory, MetricUsage, specs.Memory.BaseUsage+r.Float64()*2)
	}
}

func (h *history) push(kind Kind, metric Metric, v float64) {
	if s, ok := h.streams[streamKey{kind, metric}]; ok {
		s.push(v)
	}
}

func (h *history) average(kind Kind, metric Metric, samples int) float64 {
	s, ok := h.streams[streamKey{kind, metric}]
	if !ok || len(s.values) == 0 {
		return 0
	}
	if samples <= 0 {
		samples = defaultAverageSamples
	}
	tail := s.values
	if len(tail) > samples {
		tail = tail[len(tail)-samples:]
	}
	var sum float64
	for _, v := range tail {
		sum += v
	}
	return sum / float64(len(tail))
}

func (h *history) max(kind Kind, metric Metric) float64 {
	s, ok := h.streams[streamKey{kind, metric}]
	if !ok || len(s.values) == 0 {
		return 0
	}
	return s.peak.Reduce(rolling.Max)
}

func (h *history) latest(kind Kind, metric Metric) (float64, bool) {
	s, ok := h.streams[streamKey{kind, metric}]
	if !ok || len(s.values) == 0 {
		return 0, false
	}
	return s.values[len(s.values)-1], true
}

func (h *history) values(kind Kind, metric Metric) []float64 {
	s, ok := h.streams[streamKey{kind, metric}]
	if !ok {
		return nil
	}
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}
