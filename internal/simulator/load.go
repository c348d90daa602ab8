package simulator

import "math"

const (
	loadRollPeriod = 30.0 // seconds
	loadRollWindow = 1.0  // seconds

	stressProbability = 0.05
	gamingProbability = 0.20 // cumulative
)

// updateSystemLoad rolls a new mode during the first second of every
// 30-second period. Outside the window no randomness is consumed.
func (s *Simulator) updateSystemLoad() {
	if math.Mod(s.elapsed(), loadRollPeriod) >= loadRollWindow {
		return
	}
	r := s.random.Float64()
	switch {
	case r < stressProbability:
		s.load = LoadStress
	case r < gamingProbability:
		s.load = LoadGaming
	default:
		s.load = LoadNormal
	}
}

// UpdateSystemLoad runs the periodic load roll outside of a full poll.
func (s *Simulator) UpdateSystemLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateSystemLoad()
}

// SetSystemLoad forces the mode. Invalid modes are ignored.
func (s *Simulator) SetSystemLoad(mode LoadMode) {
	if !mode.Valid() {
		return
	}
	s.mu.Lock()
	s.load = mode
	s.mu.Unlock()
}

func (s *Simulator) LoadMode() LoadMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load
}
