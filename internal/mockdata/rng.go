package mockdata

// State is the 32-bit state of the linear-congruential generator that drives
// every synthesizer. The transition is pure: the same seed always yields the
// same stream, which in turn yields an identical synthetic dataset.
type State uint32

// Next advances the generator one step and returns a float in [0, 1) together
// with the successor state. Recurrence: state = state*1664525 + 1013904223 (mod 2^32).
func (s State) Next() (float64, State) {
	next := State(uint32(s)*1664525 + 1013904223)
	return float64(next) / 4294967296.0, next
}

// Source is the mutable convenience wrapper the synthesizers draw from.
type Source struct {
	state State
}

// NewSource creates a Source seeded with the given 32-bit seed.
func NewSource(seed uint32) *Source {
	return &Source{state: State(seed)}
}

// Float64 returns the next value in [0, 1).
func (s *Source) Float64() float64 {
	v, next := s.state.Next()
	s.state = next
	return v
}

// Between returns a uniform value in [min, max).
func (s *Source) Between(min, max float64) float64 {
	return min + (max-min)*s.Float64()
}

// Intn returns a uniform integer in [0, n).
func (s *Source) Intn(n int) int {
	return int(s.Float64() * float64(n))
}
