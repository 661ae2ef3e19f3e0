// SPDX-License-Identifier: MIT
// Package: metrics
//
// measures.go — writes the per-node core label from significance cores.

package metrics

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/netsig/partition"
)

// ComputeNodeMeasures writes r.Core from cores under scheme.
//
// Policies:
//   - SchemeNone:      every node gets 0; cores are ignored.
//   - SchemeStandard:  1 if the node is in any core, else 0.
//   - SchemeRecursive: cores are stably sorted by decreasing size and a node
//     gets the 1-based position of the first (largest) core containing it,
//     0 if none does.
//
// r.Core is reset before writing. cores is not modified.
//
// Errors:
//   - ErrNilResult, ErrUnknownScheme, ErrNodeOutOfRange (r.Core left zeroed).
func ComputeNodeMeasures(r *partition.Result, cores [][]int, scheme Scheme) error {
	if r == nil {
		return ErrNilResult
	}
	n := len(r.Module)
	if len(r.Core) != n {
		r.Core = make([]int, n)
	}
	var i, v int
	for i = range r.Core {
		r.Core[i] = 0
	}
	var set []int
	for i, set = range cores {
		for _, v = range set {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: core %d has node %d (graph has %d)", ErrNodeOutOfRange, i, v, n)
			}
		}
	}

	switch scheme {
	case SchemeNone:
		return nil
	case SchemeStandard:
		for _, set = range cores {
			for _, v = range set {
				r.Core[v] = 1
			}
		}
		return nil
	case SchemeRecursive:
		order := make([]int, len(cores))
		for i = range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return len(cores[order[a]]) > len(cores[order[b]])
		})
		var rank, c int
		for rank, c = range order {
			for _, v = range cores[c] {
				if r.Core[v] == 0 {
					r.Core[v] = rank + 1
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownScheme, int(scheme))
	}
}
