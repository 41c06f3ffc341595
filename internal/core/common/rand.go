package common

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the random source used for sampling offsets and synthesizing distractors.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// LockedRand is a Rand safe for use from concurrent fan-out lookups.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewLockedRand(seed uint64) *LockedRand {
	return &LockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededRand seeds from the wall clock.
func NewTimeSeededRand() *LockedRand {
	return NewLockedRand(uint64(time.Now().UnixNano()))
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// RandomInt draws uniformly from the closed interval [lo, hi], swapping inverted bounds.
func RandomInt(r Rand, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + r.IntN(hi-lo+1)
}

// RandomFloat draws uniformly from [lo, hi).
func RandomFloat(r Rand, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + r.Float64()*(hi-lo)
}
