// File: methods_edges.go
// Role: Edge accumulation & queries.
//
// Determinism:
//   - Edge indices are assigned in first-seen (from,to) order.
//   - Edges() returns edges in index order.
//
// Concurrency:
//   - Mutations under mu write lock; queries under mu read lock.
//
// AI-HINT (file):
//   - AddEdge on an existing (from,to) pair adds weight; it never creates a parallel edge.
//   - A frozen graph still accepts weight accumulation on existing pairs.
package core

import "fmt"

// AddEdge accumulates weight on the directed pair from→to, creating both
// endpoints and the edge on first sight, and returns the edge index.
//
// Weight normalization is not updated; call Normalize once accumulation ends.
//
// Errors:
//   - ErrEmptyNodeID: an endpoint identifier is empty.
//   - ErrBadWeight: weight < 0.
//   - ErrFrozen: the pair (or an endpoint) is new and the topology is shared.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, weight int64) (int, error) {
	if from == "" || to == "" {
		return -1, ErrEmptyNodeID
	}
	if weight < 0 {
		return -1, fmt.Errorf("%w: %s→%s weight=%d", ErrBadWeight, from, to, weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	u, err := g.addNodeLocked(from)
	if err != nil {
		return -1, err
	}
	v, err := g.addNodeLocked(to)
	if err != nil {
		return -1, err
	}

	key := pairKey{from: u, to: v}
	if e, ok := g.topo.pairs[key]; ok {
		g.weight[e] += weight
		return e, nil
	}
	if g.topo.frozen {
		return -1, ErrFrozen
	}

	e := len(g.topo.from)
	g.topo.from = append(g.topo.from, u)
	g.topo.to = append(g.topo.to, v)
	g.topo.out[u] = append(g.topo.out[u], e)
	g.topo.pairs[key] = e
	g.weight = append(g.weight, weight)
	g.weightNorm = append(g.weightNorm, 0)

	return e, nil
}

// Observe records one transition from→to (AddEdge with weight 1).
func (g *Graph) Observe(from, to string) (int, error) {
	return g.AddEdge(from, to, 1)
}

// EdgeCount returns the number of distinct (from,to) pairs.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.topo.from)
}

// Edge returns a snapshot of edge index e. It panics on an out-of-range index.
// Complexity: O(1).
func (g *Graph) Edge(e int) Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeLocked(e)
}

func (g *Graph) edgeLocked(e int) Edge {
	return Edge{
		Index:      e,
		From:       g.topo.from[e],
		To:         g.topo.to[e],
		Weight:     g.weight[e],
		WeightNorm: g.weightNorm[e],
	}
}

// EdgeBetween returns the edge from→to by identifiers.
//
// Errors:
//   - ErrNodeNotFound: an endpoint is unknown.
//   - ErrEdgeNotFound: both endpoints exist but the pair does not.
func (g *Graph) EdgeBetween(from, to string) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	u, ok := g.topo.index[from]
	if !ok {
		return Edge{}, ErrNodeNotFound
	}
	v, ok := g.topo.index[to]
	if !ok {
		return Edge{}, ErrNodeNotFound
	}
	e, ok := g.topo.pairs[pairKey{from: u, to: v}]
	if !ok {
		return Edge{}, ErrEdgeNotFound
	}

	return g.edgeLocked(e), nil
}

// Edges returns snapshots of all edges in index order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Edge, len(g.topo.from))
	var e int
	for e = range out {
		out[e] = g.edgeLocked(e)
	}

	return out
}

// Weights returns a copy of the weight buffer indexed by edge.
// Complexity: O(E).
func (g *Graph) Weights() []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]int64(nil), g.weight...)
}

// OutStrength returns the sum of weights over the out-edges of node i.
// Complexity: O(deg⁺(i)).
func (g *Graph) OutStrength(i int) int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.outStrengthLocked(i)
}

func (g *Graph) outStrengthLocked(i int) int64 {
	var s int64
	var e int
	for _, e = range g.topo.out[i] {
		s += g.weight[e]
	}

	return s
}

// TotalWeight returns the sum of all edge weights.
// Complexity: O(E).
func (g *Graph) TotalWeight() int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var s, w int64
	for _, w = range g.weight {
		s += w
	}

	return s
}
