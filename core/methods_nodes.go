// File: methods_nodes.go
// Role: Node lifecycle & queries.
//
// Determinism:
//   - Node indices are assigned in first-seen order and never change.
//   - Nodes() returns identifiers in index order.
//
// Concurrency:
//   - Mutations under mu write lock; queries under mu read lock.
package core

// AddNode inserts a node if missing and returns its dense index (idempotent).
//
// Errors:
//   - ErrEmptyNodeID: if id == "".
//   - ErrFrozen: if the node is new and the topology is shared by replicas.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(id string) (int, error) {
	if id == "" {
		return -1, ErrEmptyNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addNodeLocked(id)
}

// addNodeLocked requires mu held for writing.
func (g *Graph) addNodeLocked(id string) (int, error) {
	if i, ok := g.topo.index[id]; ok {
		return i, nil
	}
	if g.topo.frozen {
		return -1, ErrFrozen
	}
	i := len(g.topo.ids)
	g.topo.ids = append(g.topo.ids, id)
	g.topo.index[id] = i
	g.topo.out = append(g.topo.out, nil)

	return i, nil
}

// NodeIndex returns the dense index of id, or ErrNodeNotFound.
// Complexity: O(1).
func (g *Graph) NodeIndex(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, ok := g.topo.index[id]
	if !ok {
		return -1, ErrNodeNotFound
	}

	return i, nil
}

// NodeID returns the identifier of node index i. It panics on an out-of-range
// index, like a slice access.
// Complexity: O(1).
func (g *Graph) NodeID(i int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.topo.ids[i]
}

// Nodes returns a copy of all identifiers in index order.
// Complexity: O(N).
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.topo.ids))
	copy(out, g.topo.ids)

	return out
}

// NodeCount returns the number of nodes.
// Complexity: O(1).
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.topo.ids)
}
