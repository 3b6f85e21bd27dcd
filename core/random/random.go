// Package random derives per-trial random generators from a base seed.
// Every trial and bootstrap replicate owns its own PCG source, so results
// are reproducible regardless of worker count or scheduling order.
package random

import (
	"math/rand/v2"
)

// DefaultBaseSeed is the fixed seed used when the caller does not supply one.
const DefaultBaseSeed uint64 = 20060102

// New returns a generator seeded from (baseSeed, stream). Distinct streams
// give independent sequences; the same pair always gives the same sequence.
func New(baseSeed uint64, stream uint64) *rand.Rand {
	// splitmix64 step decorrelates adjacent stream indices before they
	// reach the PCG state.
	s := baseSeed + stream*0x9E3779B97F4A7C15
	s ^= s >> 30
	s *= 0xBF58476D1CE4E5B9
	s ^= s >> 27
	s *= 0x94D049BB133111EB
	s ^= s >> 31
	return rand.New(rand.NewPCG(baseSeed, s))
}

// SampleWithoutReplacement returns k distinct values drawn uniformly from
// pool. The pool slice is not modified. Panics are avoided by clamping k to
// len(pool).
func SampleWithoutReplacement(rng *rand.Rand, pool []int, k int) []int {
	if k > len(pool) {
		k = len(pool)
	}
	shuffled := make([]int, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	out := make([]int, k)
	copy(out, shuffled[:k])
	return out
}

// SampleWithReplacement returns n indices drawn uniformly with replacement
// from [0, limit).
func SampleWithReplacement(rng *rand.Rand, limit, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(limit)
	}
	return out
}
