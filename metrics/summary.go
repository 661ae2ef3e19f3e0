// SPDX-License-Identifier: MIT
// Package: metrics

package metrics

import "github.com/katalvlaran/netsig/partition"

// ModuleSummary bundles the metrics of one module.
type ModuleSummary struct {
	Module    int
	Size      int
	Flow      float64
	Strength  Strength
	Coherence float64
	Fortress  float64
	Mixing    float64
}

// Summary bundles all structural metrics of a partition.
type Summary struct {
	Modules    []ModuleSummary
	Cohesion   float64
	Mixing     float64
	Codelength float64
}

// Summarize computes every structural metric of r in one call.
// Modules are ordered by ascending module id.
//
// Complexity: O(N + E).
func Summarize(r *partition.Result) (Summary, error) {
	s, err := ModularStrength(r)
	if err != nil {
		return Summary{}, err
	}
	mix, err := Mixing(r)
	if err != nil {
		return Summary{}, err
	}
	coherence, fortress := CoherenceFortress(s)
	cohesion, mixing, err := CohesionMixing(r)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{
		Modules:    make([]ModuleSummary, len(s)),
		Cohesion:   cohesion,
		Mixing:     mixing,
		Codelength: r.Codelength,
	}
	var i, m int
	for m = range out.Modules {
		out.Modules[m] = ModuleSummary{
			Module:    m,
			Strength:  s[m],
			Coherence: coherence[m],
			Fortress:  fortress[m],
			Mixing:    mix[m],
		}
	}
	for i, m = range r.Module {
		out.Modules[m].Size++
		if i < len(r.Flow) {
			out.Modules[m].Flow += r.Flow[i]
		}
	}

	return out, nil
}
