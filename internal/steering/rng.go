package steering

// Stream is a deterministic pseudo-random draw source whose entire state
// is the exported seed and counter, so it can be serialized with a
// snapshot and replayed across machines. Draws use the splitmix64
// finalizer over seed+counter.
type Stream struct {
	Seed    uint64 `json:"seed"`
	Counter uint64 `json:"counter"`
}

// NewStream returns a stream positioned at the start of its sequence.
func NewStream(seed uint64) *Stream {
	return &Stream{Seed: seed}
}

const streamGamma = 0x9E3779B97F4A7C15

// Uint64 advances the stream and returns the next draw.
func (s *Stream) Uint64() uint64 {
	s.Counter++
	z := s.Seed + s.Counter*streamGamma
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Float64 returns a draw in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// Intn returns a draw in [0, n). n must be positive.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Uint64() % uint64(n))
}

// Sign returns +1 or -1 with equal probability.
func (s *Stream) Sign() int8 {
	if s.Uint64()&1 == 0 {
		return 1
	}
	return -1
}
