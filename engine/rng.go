package engine

import "math/rand/v2"

// Rand is the randomness source for opponent speeds, layout and particles
// Tests inject a seeded source for exact trajectories
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG-backed source; seed 0 draws a random seed
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Between returns a value in [lo, hi) from r
func Between(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
