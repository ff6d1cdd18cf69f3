package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// FillDensity sets each cell alive with probability density and dead
// otherwise. Density is clamped to [0, 1].
func (r *RNG) FillDensity(buf []uint8, density float64) {
	density = ClampDensity(density)
	for i := range buf {
		if r.r.Float64() < density {
			buf[i] = Alive
			continue
		}
		buf[i] = Dead
	}
}

// ClampDensity limits a fill density to [0, 1].
func ClampDensity(d float64) float64 {
	switch {
	case d < 0 || d != d:
		return 0
	case d > 1:
		return 1
	}
	return d
}
