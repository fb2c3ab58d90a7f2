// Package randutil derives reproducible random sources from a single seed.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words come from the one seed so that every call site gets the same
// sequence for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Source adapts a rand/v2 generator to the Intn method decks and games draw
// from.
type Source struct {
	*rand.Rand
}

// NewSource returns a seeded Source.
func NewSource(seed int64) Source {
	return Source{New(seed)}
}

// Intn returns a uniform value in [0, n).
func (s Source) Intn(n int) int {
	return s.IntN(n)
}

// Derive returns the seed for the i-th independent stream of seed. Workers
// use it so results do not depend on how work is split across goroutines.
func Derive(seed int64, i int) int64 {
	return int64(mix(uint64(seed) + uint64(i)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
