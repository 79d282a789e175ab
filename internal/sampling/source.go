package sampling

import (
	"hash/fnv"
	"math/rand"
)

// Source provides uniform random values in [0, 1).
// Can be swapped out for deterministic testing.
type Source interface {
	Float64() float64
}

// RandomSource wraps a standard Go random generator.
type RandomSource struct {
	random *rand.Rand
}

// NewRandomSource creates a source from a Go random generator.
func NewRandomSource(random *rand.Rand) *RandomSource {
	return &RandomSource{random: random}
}

// NewSeededSource creates a deterministic source for the given seed.
func NewSeededSource(seed int64) *RandomSource {
	return NewRandomSource(rand.New(rand.NewSource(seed)))
}

// Float64 returns a random float64 in [0, 1).
func (r *RandomSource) Float64() float64 {
	return r.random.Float64()
}

// Stream derives an independent seeded source for a named consumer, so that
// decoration draws never perturb the physics stream of the same run.
func Stream(name string, seed int64) *RandomSource {
	h := fnv.New64a()
	h.Write([]byte(name))
	return NewSeededSource(seed ^ int64(h.Sum64()))
}

// Constant always returns the same value.
type Constant float64

func (c Constant) Float64() float64 { return float64(c) }

// Sequence replays a fixed list of values, wrapping around at the end.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence creates a source that cycles through values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int { return s.next }
