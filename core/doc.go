// Package core provides the in-memory directed weighted Graph shared by every
// stage of netsig.
//
// The Graph G = (V,E) is built incrementally from transition observations:
//
//   - Accumulation: AddEdge(from,to,w) on an existing pair adds w; a pair is
//     never duplicated. Observe(from,to) is AddEdge with w = 1.
//   - Self-loops are allowed.
//   - Dense indices: nodes are 0..N-1 in first-seen order, edges are 0..E-1
//     in first-seen order. Algorithms work on indices; identifiers are only
//     needed at the boundaries (I/O, export).
//   - Normalization: Normalize sets weight_norm(u,v) = weight(u,v)/S(u), where
//     S(u) is the out-strength of u; nodes with S(u) = 0 keep weight_norm 0.
//
// Replicas:
//
//	WithWeights(w) freezes the topology and returns a Graph that shares it but
//	owns its own weight buffer. Bootstrap ensembles are built this way, so every
//	replica has the original node set and edge set by construction.
//	A frozen Graph rejects new nodes and new pairs with ErrFrozen.
//
// Core Methods:
//
//	AddNode(id) (int, error)              // O(1)
//	AddEdge(from, to, w) (int, error)     // O(1)
//	Observe(from, to) (int, error)        // O(1)
//	Normalize()                           // O(N+E)
//	NodeIndex(id) / NodeID(i) / Nodes()   // lookups
//	Edge(e) / Edges() / EdgeBetween(a, b) // snapshots
//	OutStrength(i) / TotalWeight()        // weight sums
//	WithWeights(w) (*Graph, error)        // replica, shared topology
//	SameTopology(h)                       // replica check
//
// Concurrency:
//
//	A single sync.RWMutex guards each Graph. Frozen topology is read-only and
//	may be read from any number of goroutines.
package core
