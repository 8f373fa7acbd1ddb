// Package rng centralizes deterministic random generation.
//
// Goals:
//   - Determinism: the same seed yields the same stream on every platform.
//   - Encapsulation: no time-based sources anywhere in the module.
//   - Independence: child streams are derived with a SplitMix64 mix so that
//     parallel workers never share or correlate state.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Derive one stream per worker.
package rng

import "math/rand"

// DefaultSeed is used when callers pass seed == 0.
const DefaultSeed int64 = 1

// New returns a deterministic *rand.Rand. Seed 0 maps to DefaultSeed.
//
// Complexity: O(1).
func New(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = DefaultSeed
	}

	return rand.New(rand.NewSource(s))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed
// using the SplitMix64 finalizer.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Derive creates an independent stream from base and a stream id.
// base.Int63() is consumed once; a nil base uses DefaultSeed as parent.
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	var parent int64
	if base == nil {
		parent = DefaultSeed
	} else {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// Shuffle performs an in-place Fisher–Yates shuffle of a.
// A nil r uses the DefaultSeed stream.
//
// Complexity: O(n).
func Shuffle[T any](a []T, r *rand.Rand) {
	if len(a) <= 1 {
		return
	}
	if r == nil {
		r = New(0)
	}
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Normal draws from N(mean, sd²). A non-positive sd returns mean exactly,
// so zero-uncertainty instances realize to their expected values.
func Normal(r *rand.Rand, mean, sd float64) float64 {
	if sd <= 0 {
		return mean
	}

	return mean + sd*r.NormFloat64()
}

// Uniform draws from U[lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}
