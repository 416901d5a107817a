// Package roast implements the deterministic wallet scoring engine and the
// provider chain that optionally enriches its output with generated text.
package roast

import (
	"math/rand"
	"time"
)

// Rand is the injected randomness source used by the engine. Randomness only
// ever selects among equally-valid phrasings; it never changes which rules
// fire or what they score.
type Rand interface {
	// Next returns a pseudo-random float in [0, 1)
	Next() float64
}

// seededRand is the production randomness source
type seededRand struct {
	r *rand.Rand
}

// NewRand creates a randomness source from an explicit seed
func NewRand(seed int64) Rand {
	return &seededRand{r: rand.New(rand.NewSource(seed))}
}

// NewTimeRand creates a randomness source seeded from the wall clock
func NewTimeRand() Rand {
	return NewRand(time.Now().UnixNano())
}

func (s *seededRand) Next() float64 {
	return s.r.Float64()
}

// pick selects one entry from a non-empty pool using the injected source
func pick(rng Rand, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	idx := int(rng.Next() * float64(len(pool)))
	if idx >= len(pool) {
		idx = len(pool) - 1
	}
	return pool[idx]
}
