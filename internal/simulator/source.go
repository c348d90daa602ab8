package simulator

import (
	"math/rand/v2"
	"time"
)

// Clock is the time base of a simulator.
type Clock interface {
	Now() time.Time
}

// Random yields uniform values in [0,1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// NewRandom returns a PCG-backed source seeded with seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newEntropyRandom() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
