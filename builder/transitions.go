// SPDX-License-Identifier: MIT
// Package: netsig/builder
//
// transitions.go — Edge Aggregator: transition observations → core.Graph.
//
// Contract:
//   - Every (source,target) pair adds 1 to weight(source,target), creating the
//     edge at weight 1 on first sight. Self-transitions are allowed.
//   - The graph is normalized once all pairs are consumed.
//   - Empty input is not an error: it yields an empty graph.
//
// Determinism:
//   - Node and edge indices follow first-seen order in the input sequence.

package builder

import (
	"fmt"

	"github.com/katalvlaran/netsig/core"
)

// Transition is one observed move from Source to Target.
type Transition struct {
	Source string
	Target string
}

// FromTransitions aggregates pairs into a new normalized Graph.
//
// Errors:
//   - ErrEmptyNodeID: a pair has an empty Source or Target (index reported).
//
// Complexity: O(len(pairs) + N).
func FromTransitions(pairs []Transition) (*core.Graph, error) {
	g := core.NewGraph()
	if err := Accumulate(g, pairs); err != nil {
		return nil, wrapf("FromTransitions", err)
	}
	g.Normalize()

	return g, nil
}

// Accumulate adds pairs to an existing graph without normalizing it.
// Use it to merge several observation batches before a single Normalize.
func Accumulate(g *core.Graph, pairs []Transition) error {
	var (
		i   int
		p   Transition
		err error
	)
	for i, p = range pairs {
		if p.Source == "" || p.Target == "" {
			return fmt.Errorf("%w: pair %d (%q→%q): %w", ErrEmptyNodeID, i, p.Source, p.Target, core.ErrEmptyNodeID)
		}
		if _, err = g.Observe(p.Source, p.Target); err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}
	}

	return nil
}
