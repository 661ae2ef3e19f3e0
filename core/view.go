// File: view.go
// Role: Replicas sharing topology.
//
// Determinism:
//   - Replicas preserve node and edge indices exactly.
//
// Concurrency:
//   - WithWeights freezes the source topology under its write lock; after that
//     the topology is read-only and safe to share across goroutines.
//
// AI-HINT (file):
//   - Replica weights may contain zeros; the edge stays in the topology.
package core

import "fmt"

// WithWeights freezes g's topology and returns a replica that shares it but
// owns the given weight buffer (copied). The replica is normalized.
//
// Errors:
//   - ErrWeightsMismatch: len(weights) != EdgeCount().
//   - ErrBadWeight: any weight < 0.
//
// Complexity: O(N + E).
func (g *Graph) WithWeights(weights []int64) (*Graph, error) {
	g.mu.Lock()
	if len(weights) != len(g.topo.from) {
		n := len(g.topo.from)
		g.mu.Unlock()
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWeightsMismatch, len(weights), n)
	}
	g.topo.frozen = true
	topo := g.topo
	g.mu.Unlock()

	var (
		e int
		w int64
	)
	for e, w = range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: edge %d weight=%d", ErrBadWeight, e, w)
		}
	}

	r := &Graph{
		topo:       topo,
		weight:     append([]int64(nil), weights...),
		weightNorm: make([]float64, len(weights)),
	}
	r.Normalize()

	return r, nil
}

// Frozen reports whether the topology is shared with replicas.
func (g *Graph) Frozen() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.topo.frozen
}

// SameTopology reports whether g and h have identical node identifiers in
// identical index order and identical (from,to) edges in identical order.
// Complexity: O(1) for shared topology, O(N + E) otherwise.
func (g *Graph) SameTopology(h *Graph) bool {
	if g == nil || h == nil {
		return g == h
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g != h {
		h.mu.RLock()
		defer h.mu.RUnlock()
	}
	a, b := g.topo, h.topo
	if a == b {
		return true
	}
	if len(a.ids) != len(b.ids) || len(a.from) != len(b.from) {
		return false
	}
	var i int
	for i = range a.ids {
		if a.ids[i] != b.ids[i] {
			return false
		}
	}
	for i = range a.from {
		if a.from[i] != b.from[i] || a.to[i] != b.to[i] {
			return false
		}
	}

	return true
}
