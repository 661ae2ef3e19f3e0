// SPDX-License-Identifier: MIT
// Package: metrics

package metrics

import (
	"math"

	"github.com/katalvlaran/netsig/partition"
)

// Mixing returns the mixing parameter of every module: the Shannon entropy
// (bits) of the module's retained-edge weight distribution divided by
// n·log2(n), n being the module size.
//
// A module with n <= 1, or whose retained edges carry no weight, has
// mixing 0. Values lie in [0,1].
//
// Complexity: O(N + E).
func Mixing(r *partition.Result) ([]float64, error) {
	if r == nil || r.Graph == nil {
		return nil, ErrNilResult
	}
	k := numModules(r)
	size := make([]int, k)
	var m int
	for _, m = range r.Module {
		size[m]++
	}

	// retained[m] lists the weights of edges inside module m in edge order.
	retained := make([][]float64, k)
	total := make([]float64, k)
	for _, e := range r.Graph.Edges() {
		m = r.Module[e.From]
		if m != r.Module[e.To] || e.Weight == 0 {
			continue
		}
		retained[m] = append(retained[m], float64(e.Weight))
		total[m] += float64(e.Weight)
	}

	out := make([]float64, k)
	var (
		w, p, h float64
		n       float64
	)
	for m = 0; m < k; m++ {
		if size[m] <= 1 || total[m] == 0 {
			continue
		}
		h = 0
		for _, w = range retained[m] {
			p = w / total[m]
			h -= p * math.Log2(p)
		}
		n = float64(size[m])
		out[m] = h / (n * math.Log2(n))
	}

	return out, nil
}
