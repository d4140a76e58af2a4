// Package testdata produces random values for load-test scenarios.
package testdata

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generator draws from its own random source; it is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

var defaultGenerator = NewGenerator(uint64(time.Now().UnixNano()))

// RandomString returns 11 to 13 lowercase base-36 characters.
func (g *Generator) RandomString() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 11 + g.rng.IntN(3)
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[g.rng.IntN(len(base36))]
	}
	return string(b)
}

// RandomInt returns an integer in [lo, hi]. Swapped bounds are reordered.
// Any pair of ints is accepted, including math.MinInt and math.MaxInt.
func (g *Generator) RandomInt(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	// The span is computed unsigned so it cannot overflow.
	span := uint64(hi) - uint64(lo)
	g.mu.Lock()
	defer g.mu.Unlock()
	if span == math.MaxUint64 {
		return int(g.rng.Uint64())
	}
	return lo + int(g.rng.Uint64N(span+1))
}

func (g *Generator) index(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

// Pick returns a uniformly chosen element of items, or the zero value for an empty slice.
func Pick[T any](g *Generator, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[g.index(len(items))]
}

// RandomString draws from the package generator.
func RandomString() string { return defaultGenerator.RandomString() }

// RandomInt draws from the package generator.
func RandomInt(lo, hi int) int { return defaultGenerator.RandomInt(lo, hi) }

// PickOne draws from the package generator.
func PickOne[T any](items []T) T { return Pick(defaultGenerator, items) }

// Credentials is a fresh account for a registration scenario.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewCredentials builds a unique-looking account from random strings.
func (g *Generator) NewCredentials() Credentials {
	name := "user_" + g.RandomString()
	return Credentials{
		Username: name,
		Email:    name + "@example.com",
		Password: g.RandomString(),
	}
}
