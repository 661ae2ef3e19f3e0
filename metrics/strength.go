// SPDX-License-Identifier: MIT
// Package: metrics
//
// strength.go — per-module strength sums and the ratios derived from them.
//
// Contract:
//   - Only edge weight and node module are read; the graph is never mutated.
//   - Every ratio with a zero denominator is 0, never NaN.
//
// Determinism:
//   - Edges are visited in edge-index order, so float sums are reproducible.

package metrics

import (
	"github.com/katalvlaran/netsig/partition"
)

// Strength holds the weight sums of one module.
//
//	Internal    – edges with both endpoints in the module (self-loops included)
//	ExternalOut – edges leaving the module
//	ExternalIn  – edges entering the module from elsewhere
type Strength struct {
	Internal    float64
	ExternalOut float64
	ExternalIn  float64
}

// numModules returns 1 + the largest module id of r (0 for an empty result).
func numModules(r *partition.Result) int {
	k := 0
	var m int
	for _, m = range r.Module {
		if m+1 > k {
			k = m + 1
		}
	}

	return k
}

// ModularStrength returns Strength per module id of r.
//
// For every edge (u,v,w): module(u) != module(v) adds w to ExternalOut of
// module(u) and ExternalIn of module(v); otherwise w is added to Internal.
//
// Complexity: O(N + E).
func ModularStrength(r *partition.Result) ([]Strength, error) {
	if r == nil || r.Graph == nil {
		return nil, ErrNilResult
	}
	out := make([]Strength, numModules(r))
	var (
		mu, mv int
		w      float64
	)
	for _, e := range r.Graph.Edges() {
		mu, mv = r.Module[e.From], r.Module[e.To]
		w = float64(e.Weight)
		if mu != mv {
			out[mu].ExternalOut += w
			out[mv].ExternalIn += w
			continue
		}
		out[mu].Internal += w
	}

	return out, nil
}

// CoherenceFortress returns, per module,
//
//	coherence = Internal / (Internal + ExternalOut)
//	fortress  = Internal / (Internal + ExternalIn)
//
// each 0 when its denominator is 0. Both lie in [0,1].
func CoherenceFortress(s []Strength) (coherence, fortress []float64) {
	coherence = make([]float64, len(s))
	fortress = make([]float64, len(s))
	var i int
	for i = range s {
		coherence[i] = ratio(s[i].Internal, s[i].Internal+s[i].ExternalOut)
		fortress[i] = ratio(s[i].Internal, s[i].Internal+s[i].ExternalIn)
	}

	return coherence, fortress
}

// CohesionMixing returns the network-wide measures
//
//	cohesion = ΣInternal / Σ(Internal + ExternalOut)
//	mixing   = Σ Internal(m)·Mixing(m) / ΣInternal
//
// Both are 0 for a graph without weight (or without internal weight).
func CohesionMixing(r *partition.Result) (cohesion, mixing float64, err error) {
	s, err := ModularStrength(r)
	if err != nil {
		return 0, 0, err
	}
	mix, err := Mixing(r)
	if err != nil {
		return 0, 0, err
	}
	var internal, total, weighted float64
	var m int
	for m = range s {
		internal += s[m].Internal
		total += s[m].Internal + s[m].ExternalOut
		weighted += s[m].Internal * mix[m]
	}

	return ratio(internal, total), ratio(weighted, internal), nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	return num / den
}
