// Package randgen provides the injected, seedable random source spec §5 and
// §9 require for randomizing free-object layout: "the N pictures differ only
// in the random coordinates assigned to loose objects... inject a seeded
// source."
//
// The shape follows the *pattern* of dshills-dungo's pkg/rng (a thin wrapper
// exposing range-sampling helpers over a single deterministic generator,
// with a recoverable Seed()) rather than its code: that package derives
// per-pipeline-stage sub-seeds via SHA-256, which this domain doesn't need
// (a configuration has one free-object layout stage, not several); here each
// [RNG] is handed directly to one picture, so reproducibility only requires
// remembering the top-level seed.
package randgen

import "math/rand/v2"

// RNG wraps a seeded math/rand/v2 generator with the range-sampling helpers
// the picture manager needs for free-object layout.
type RNG struct {
	seed uint64
	r    *rand.Rand
}

// New creates an RNG deterministically derived from seed. Two RNGs created
// with the same seed produce identical sequences.
func New(seed uint64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewPCG(seed, seed))}
}

// Seed returns the seed this RNG was created with.
func (g *RNG) Seed() uint64 { return g.seed }

// Float64Range returns a uniformly distributed float64 in [lo, hi).
func (g *RNG) Float64Range(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

// Derive creates a new RNG deterministically derived from g and an index,
// so that N independent-looking pictures can be seeded from one master seed
// without the caller juggling N seeds by hand.
func (g *RNG) Derive(index int) *RNG {
	return New(g.r.Uint64() ^ uint64(index)*0x9E3779B97F4A7C15)
}
