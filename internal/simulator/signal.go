package simulator

import "math"

const (
	DefaultRange     = 0.2
	DefaultFrequency = 1.0
)

// waveDeviation is the relative offset from base at elapsed time t:
// three phase-shifted sinusoids plus uniform noise from draw, scaled by
// the load multiplier.
func waveDeviation(t, rng, freq, draw, multiplier float64) float64 {
	sum := math.Sin(t*0.5*freq)*rng +
		math.Sin(t*1.3*freq+math.Pi/3)*rng*0.6 +
		math.Sin(t*2.1*freq+math.Pi/6)*rng*0.3
	noise := (draw - 0.5) * rng * 0.4
	return (sum + noise) * multiplier
}

// deviation consumes exactly one random draw.
func (s *Simulator) deviation(rng, freq float64) float64 {
	return waveDeviation(s.elapsed(), rng, freq, s.random.Float64(), s.load.Multiplier())
}

func (s *Simulator) fluctuate(base, rng, freq float64) float64 {
	return base * (1 + s.deviation(rng, freq))
}

// jitter returns a value uniformly spread around 1 by ±spread/2.
func (s *Simulator) jitter(spread float64) float64 {
	return 1 + (s.random.Float64()-0.5)*spread
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// roundWithin rounds v and keeps the result inside [lo,hi].
func roundWithin(v float64, places int, lo, hi float64) float64 {
	return clamp(round(v, places), lo, hi)
}
