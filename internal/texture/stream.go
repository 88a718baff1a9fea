package texture

import (
	"fmt"
	"math/rand/v2"
)

// Stream is the deterministic random source threaded through one recipe.
// Two streams built from the same seed return the same values for the same
// sequence of calls. A Stream is not safe for concurrent use.
type Stream struct {
	rng   *rand.Rand
	draws int
}

// NewStream creates a stream seeded from seed.
func NewStream(seed int64) *Stream {
	return &Stream{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)))}
}

// IntRange returns a uniform integer in the closed range [lo, hi].
func (s *Stream) IntRange(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("texture: invalid range [%d, %d]", lo, hi))
	}
	s.draws++
	return lo + s.rng.IntN(hi-lo+1)
}

// Float64 returns a uniform float in [0, 1).
func (s *Stream) Float64() float64 {
	s.draws++
	return s.rng.Float64()
}

// Chance reports whether a fresh Float64 draw falls below p.
func (s *Stream) Chance(p float64) bool {
	return s.Float64() < p
}

// Draws returns how many values the stream has produced so far.
func (s *Stream) Draws() int {
	return s.draws
}

// Choose returns a uniformly chosen element of items using one draw.
// It panics when items is empty.
func Choose[T any](s *Stream, items []T) T {
	return items[s.IntRange(0, len(items)-1)]
}
