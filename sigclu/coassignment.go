package sigclu

import (
	"context"
	"fmt"

	"github.com/katalvlaran/netsig/partition"
)

// Coassignment is the default Tester. For every reference set it returns the
// largest subset found by greedy elimination whose members all share one
// module in at least Confidence of the bootstrap assignments.
//
// Elimination removes, one node at a time, the member with the lowest
// co-assignment score (number of (bootstrap, member) pairs where the other
// member shares its module); ties remove the larger node index. A label of
// -1 marks a node excluded from a bootstrap: it never co-assigns and costs
// one point of score per such bootstrap, so it goes before any member.
//
// With no bootstrap assignments there is no evidence against any set and
// every reference set is returned whole.
type Coassignment struct {
	reference  []NodeSet
	bootstraps []partition.Assignment
	confidence float64
}

// NewCoassignment is a TesterFactory building a Coassignment tester.
func NewCoassignment(reference []NodeSet, bootstraps []partition.Assignment, cfg Config) Tester {
	conf := cfg.Confidence
	if !(conf > 0 && conf <= 1) {
		conf = DefaultConfidence
	}

	return &Coassignment{reference: reference, bootstraps: bootstraps, confidence: conf}
}

// Run returns one core per reference set, sorted ascending.
//
// Errors:
//   - ErrAssignmentLength if a reference node lies beyond an assignment.
//   - ctx.Err() on cancellation.
//
// Complexity: O(Σ|S|²·B) for reference sets S and B bootstraps.
func (c *Coassignment) Run(ctx context.Context) ([]NodeSet, error) {
	out := make([]NodeSet, len(c.reference))
	var (
		i   int
		set NodeSet
		err error
	)
	for i, set = range c.reference {
		if out[i], err = c.core(ctx, set); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// core runs greedy elimination on one set.
func (c *Coassignment) core(ctx context.Context, set NodeSet) (NodeSet, error) {
	cur := append(NodeSet(nil), set...)
	nb := len(c.bootstraps)
	if nb == 0 || len(cur) == 0 {
		return cur, nil
	}

	// counts[b][l] = members of cur with label l in bootstrap b.
	counts := make([][]int, nb)
	var (
		b, v, l int
		a       partition.Assignment
	)
	for b, a = range c.bootstraps {
		maxLabel := -1
		for _, v = range cur {
			if v >= len(a) {
				return nil, fmt.Errorf("%w: node %d, assignment %d has %d labels", ErrAssignmentLength, v, b, len(a))
			}
			if a[v] > maxLabel {
				maxLabel = a[v]
			}
		}
		counts[b] = make([]int, maxLabel+1)
		for _, v = range cur {
			if l = a[v]; l >= 0 {
				counts[b][l]++
			}
		}
	}

	need := c.confidence * float64(nb)
	var (
		together, worst, pos int
		score, minScore      int
	)
	for len(cur) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		together = 0
		for b, a = range c.bootstraps {
			if l = a[cur[0]]; l >= 0 && counts[b][l] == len(cur) {
				together++
			}
		}
		if float64(together) >= need {
			return cur, nil
		}

		worst, minScore = -1, 0
		for pos, v = range cur {
			score = 0
			for b, a = range c.bootstraps {
				if l = a[v]; l >= 0 {
					score += counts[b][l] - 1
				} else {
					score--
				}
			}
			// cur is ascending, so <= keeps the larger index on ties.
			if worst < 0 || score <= minScore {
				worst, minScore = pos, score
			}
		}

		v = cur[worst]
		for b, a = range c.bootstraps {
			if l = a[v]; l >= 0 {
				counts[b][l]--
			}
		}
		cur = append(cur[:worst], cur[worst+1:]...)
	}

	return cur, nil
}
