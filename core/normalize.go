// File: normalize.go
// Role: Per-source out-edge weight distribution (weight_norm).
//
// Determinism:
//   - Pure function of the weight buffer; repeated calls are bit-identical.
//
// AI-HINT (file):
//   - A node whose out-strength is 0 (no out-edges, or only zero-weight
//     replica edges) keeps weight_norm == 0 on all its out-edges.
package core

// Normalize recomputes weight_norm for every edge so that, for each node with
// positive out-strength S, weight_norm(u,v) = weight(u,v) / S.
//
// Idempotent: weights are never touched, so calling it twice yields identical
// results.
//
// Complexity: O(N + E).
// Concurrency: write lock on mu.
func (g *Graph) Normalize() {
	g.mu.Lock()
	defer g.mu.Unlock()

	var (
		u, e int
		s    int64
		fs   float64
	)
	for u = range g.topo.out {
		s = g.outStrengthLocked(u)
		if s == 0 {
			for _, e = range g.topo.out[u] {
				g.weightNorm[e] = 0
			}
			continue
		}
		fs = float64(s)
		for _, e = range g.topo.out[u] {
			g.weightNorm[e] = float64(g.weight[e]) / fs
		}
	}
}

// OutWeightNormSum returns the sum of weight_norm over the out-edges of node i.
// It is 1 (within rounding) for every node with positive out-strength.
// Complexity: O(deg⁺(i)).
func (g *Graph) OutWeightNormSum(i int) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var s float64
	var e int
	for _, e = range g.topo.out[i] {
		s += g.weightNorm[e]
	}

	return s
}
