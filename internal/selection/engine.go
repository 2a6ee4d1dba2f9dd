// Package selection draws a uniformly random subset of lottery candidates.
package selection

import (
	"math/rand/v2"
	"sync"

	"eventlottery/internal/domain"
)

// Engine shuffles candidates with an injectable random source.
// The zero value is not usable; construct with New or NewWithSource.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an Engine seeded from the runtime's random generator.
func New() *Engine {
	return NewWithSource(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewWithSource returns an Engine backed by src. Tests pass a fixed seed.
func NewWithSource(src rand.Source) *Engine {
	return &Engine{rng: rand.New(src)}
}

// Select returns min(quota, len(candidates)) candidates chosen uniformly at
// random without replacement. The input must already be unique by user id
// and is never modified.
func (e *Engine) Select(candidates []domain.Candidate, quota int) []domain.Candidate {
	if quota <= 0 || len(candidates) == 0 {
		return []domain.Candidate{}
	}
	pool := make([]domain.Candidate, len(candidates))
	copy(pool, candidates)

	e.mu.Lock()
	for i := len(pool) - 1; i > 0; i-- {
		j := e.rng.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	e.mu.Unlock()

	if quota > len(pool) {
		quota = len(pool)
	}
	return pool[:quota]
}
