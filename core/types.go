// Package core defines the directed weighted Graph used by every stage of the
// partitioning pipeline, together with its sentinel errors.
//
// The Graph is an arena: nodes are dense integer indices 0..N-1 mapped to
// opaque string identifiers, and edges are dense indices 0..E-1 into parallel
// endpoint and weight buffers. Topology (nodes, edges, adjacency) lives in a
// separate owned buffer that is frozen the first time a replica is derived, so
// bootstrap replicas can share it without copying.
//
// Errors:
//
//	ErrEmptyNodeID      - node identifier is the empty string.
//	ErrNodeNotFound     - requested node does not exist.
//	ErrEdgeNotFound     - requested (from,to) pair does not exist.
//	ErrBadWeight        - negative edge weight.
//	ErrFrozen           - topology mutation after a replica was derived.
//	ErrWeightsMismatch  - replica weight buffer length differs from EdgeCount.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyNodeID indicates that the provided node identifier is empty.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadWeight indicates a negative weight was supplied.
	ErrBadWeight = errors.New("core: edge weight must be non-negative")

	// ErrFrozen indicates a topology mutation on a graph whose topology is shared.
	ErrFrozen = errors.New("core: topology is frozen")

	// ErrWeightsMismatch indicates a replica weight buffer of the wrong length.
	ErrWeightsMismatch = errors.New("core: weight buffer length does not match edge count")
)

// Edge is a read-only snapshot of one directed edge.
//
// From and To are dense node indices; use Graph.NodeID to recover identifiers.
type Edge struct {
	// Index is the dense edge index (insertion order).
	Index int

	// From is the source node index.
	From int

	// To is the destination node index.
	To int

	// Weight is the accumulated observation count.
	Weight int64

	// WeightNorm is Weight divided by the out-strength of From (0 if that is 0).
	WeightNorm float64
}

// pairKey identifies a (from,to) node-index pair in the edge index.
type pairKey struct {
	from, to int
}

// topology is the node/edge structure of a Graph. Once frozen it is never
// written again and may be shared by any number of replicas.
type topology struct {
	ids   []string       // node index → identifier
	index map[string]int // identifier → node index

	from []int // edge index → source node
	to   []int // edge index → destination node

	out [][]int // node index → out-edge indices, insertion order

	pairs map[pairKey]int // (from,to) → edge index; no duplicate pairs

	frozen bool
}

// Graph is a directed, weighted graph with accumulating edges.
//
// mu guards the weight buffers and, while not frozen, the topology.
// Self-loops are allowed. Duplicate (from,to) pairs merge by summing weight.
type Graph struct {
	mu sync.RWMutex

	topo *topology

	weight     []int64   // edge index → weight
	weightNorm []float64 // edge index → normalized weight
}

// NewGraph returns an empty Graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		topo: &topology{
			index: make(map[string]int),
			pairs: make(map[pairKey]int),
		},
	}
}
