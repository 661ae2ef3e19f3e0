// Package rng centralizes deterministic random generation for netsig.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws across runs and platforms.
//   - Independence: per-worker streams derived from (seed, stream) so parallel
//     execution produces the same result as sequential execution.
//   - No time-based sources anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Derive one stream per goroutine.
package rng

import (
	"math/rand"
	randv2 "math/rand/v2"
)

// DefaultSeed is the fixed seed used when callers pass seed == 0.
const DefaultSeed int64 = 1

// New returns a deterministic *rand.Rand.
// Policy: seed == 0 ⇒ DefaultSeed; otherwise the provided seed verbatim.
//
// Complexity: O(1).
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed using
// a SplitMix64 finalizer, so consecutive stream ids give decorrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	if parent == 0 {
		parent = DefaultSeed
	}
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Stream returns the RNG for stream id under parent seed.
// Stream(p, i) is a pure function of (p, i).
func Stream(parent int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// Source returns a math/rand/v2 source for stream id under parent seed, for
// samplers that draw from a rand.Source (gonum's distuv). Like Stream it is a
// pure function of (parent, stream).
func Source(parent int64, stream uint64) randv2.Source {
	s := uint64(DeriveSeed(parent, stream))

	return randv2.NewPCG(s, s^0x9e3779b97f4a7c15)
}

// Shuffle performs an in-place Fisher–Yates shuffle of a using r.
// If r == nil, the default deterministic stream is used.
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle(a []int, r *rand.Rand) {
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

// Perm returns a deterministic permutation of 0..n-1 (nil for n <= 0).
func Perm(n int, r *rand.Rand) []int {
	if n <= 0 {
		return nil
	}
	p := make([]int, n)
	var i int
	for i = range p {
		p[i] = i
	}
	Shuffle(p, r)

	return p
}
