package rng

import "hash/fnv"

// Stream is a Mulberry32 generator. Two streams built from the same seed
// yield identical sequences.
type Stream struct {
	seed  uint32
	state uint32
	calls uint64
}

func New(seed uint32) *Stream {
	return &Stream{seed: seed, state: seed}
}

// Derive returns a stream keyed by seed and a subsystem label so that
// independent generators never share a sequence.
func Derive(seed uint32, label string) *Stream {
	h := fnv.New32a()
	var b [4]byte
	b[0] = byte(seed)
	b[1] = byte(seed >> 8)
	b[2] = byte(seed >> 16)
	b[3] = byte(seed >> 24)
	_, _ = h.Write(b[:])
	_, _ = h.Write([]byte(label))
	return New(h.Sum32())
}

func SeedFromString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

func (s *Stream) Seed() uint32  { return s.seed }
func (s *Stream) Calls() uint64 { return s.calls }

// Next returns a float in [0,1).
func (s *Stream) Next() float64 {
	s.calls++
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns an int in [0,n). n <= 0 yields 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

func (s *Stream) Between(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.Next()*(hi-lo)
}

func (s *Stream) Chance(p float64) bool {
	return s.Next() < p
}
