// File: clusterer.go
// Role: Significance clusterer. Drives the Tester under the NONE, STANDARD
// and RECURSIVE schemes.
//
// Concurrency:
//   - Replica partitioning fans out over an errgroup; assignments are written
//     by replica index and joined before any Tester is built.
//
// AI-HINT (file):
//   - RECURSIVE compares len(core) with Thresh·N of the full graph, not of
//     the shrinking working set.
//   - Each accepted core is non-empty and removed from the working set, so
//     the loop runs at most N times and cores are pairwise disjoint.
package sigclu

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/netsig/bootstrap"
	"github.com/katalvlaran/netsig/metrics"
	"github.com/katalvlaran/netsig/partition"
)

// Clusterer finds the statistically robust cores of a partition.
type Clusterer struct {
	partitioner *partition.Partitioner
	cfg         Config
	factory     TesterFactory
	workers     int
	logger      *zap.Logger
}

// New validates cfg and returns a Clusterer that partitions replicas with p.
//
// Errors:
//   - ErrNilPartitioner, metrics.ErrUnknownScheme, ErrBadThresh, ErrBadConfidence.
func New(p *partition.Partitioner, cfg Config, opts ...Option) (*Clusterer, error) {
	if p == nil {
		return nil, ErrNilPartitioner
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Clusterer{
		partitioner: p,
		cfg:         cfg,
		factory:     NewCoassignment,
		logger:      zap.NewNop(),
	}
	var o Option
	for _, o = range opts {
		o(c)
	}

	return c, nil
}

// Config returns the validated configuration.
func (c *Clusterer) Config() Config { return c.cfg }

// Run partitions every replica of ensemble and returns the cores of ref.
//
// Behavior by scheme:
//   - NONE:      empty result, the ensemble is not touched.
//   - STANDARD:  one core per module of ref, in ascending module id.
//   - RECURSIVE: nested cores, largest first, pairwise disjoint.
//
// Errors:
//   - ErrNilResult, ErrContractViolation, replica partition errors,
//     ctx.Err() on cancellation.
func (c *Clusterer) Run(ctx context.Context, ref *partition.Result, ensemble bootstrap.Ensemble) ([]NodeSet, error) {
	if ref == nil {
		return nil, ErrNilResult
	}
	if c.cfg.Scheme == metrics.SchemeNone {
		return []NodeSet{}, nil
	}
	boots, err := PartitionEnsemble(ctx, c.partitioner, ensemble, c.workers)
	if err != nil {
		return nil, err
	}

	return c.Cores(ctx, ref, boots)
}

// Cores runs the scheme over precomputed bootstrap assignments.
func (c *Clusterer) Cores(ctx context.Context, ref *partition.Result, boots []partition.Assignment) ([]NodeSet, error) {
	if ref == nil {
		return nil, ErrNilResult
	}
	switch c.cfg.Scheme {
	case metrics.SchemeNone:
		return []NodeSet{}, nil
	case metrics.SchemeStandard:
		return c.standard(ctx, ref, boots)
	case metrics.SchemeRecursive:
		return c.recursive(ctx, ref, boots)
	default:
		return nil, fmt.Errorf("%w: %d", metrics.ErrUnknownScheme, int(c.cfg.Scheme))
	}
}

func (c *Clusterer) standard(ctx context.Context, ref *partition.Result, boots []partition.Assignment) ([]NodeSet, error) {
	groups := partition.GroupByModule(ref)
	reference := make([]NodeSet, len(groups))
	var i int
	for i = range groups {
		reference[i] = groups[i]
	}

	cores, err := c.factory(reference, boots, c.cfg).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("sigclu: tester: %w", err)
	}
	if len(cores) != len(reference) {
		return nil, fmt.Errorf("%w: %d cores for %d modules", ErrContractViolation, len(cores), len(reference))
	}
	out := make([]NodeSet, len(cores))
	for i = range cores {
		if out[i], err = checkSubset(cores[i], reference[i]); err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
	}
	c.logger.Debug("standard significance cores",
		zap.Int("modules", len(reference)),
		zap.Int("core_nodes", countNodes(out)))

	return out, nil
}

func (c *Clusterer) recursive(ctx context.Context, ref *partition.Result, boots []partition.Assignment) ([]NodeSet, error) {
	n := len(ref.Module)
	need := c.cfg.Thresh * float64(n)
	working := make(NodeSet, n)
	var i int
	for i = range working {
		working[i] = i
	}

	cores := make([]NodeSet, 0)
	var (
		sets []NodeSet
		core NodeSet
		err  error
	)
	for iter := 0; len(working) > 0 && iter < n; iter++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		sets, err = c.factory([]NodeSet{working}, restrict(boots, working), c.cfg).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("sigclu: tester: %w", err)
		}
		if len(sets) != 1 {
			return nil, fmt.Errorf("%w: %d cores for one working set", ErrContractViolation, len(sets))
		}
		if core, err = checkSubset(sets[0], working); err != nil {
			return nil, fmt.Errorf("recursion %d: %w", iter, err)
		}
		if len(core) == 0 || float64(len(core)) < need {
			c.logger.Debug("core rejected",
				zap.Int("level", iter+1),
				zap.Int("size", len(core)),
				zap.Float64("required", need))
			break
		}
		cores = append(cores, core)
		working = subtract(working, core)
		c.logger.Debug("core accepted",
			zap.Int("level", iter+1),
			zap.Int("size", len(core)),
			zap.Int("remaining", len(working)))
	}

	return cores, nil
}

// PartitionEnsemble partitions every replica with p concurrently and returns
// the assignments in replica order. workers <= 0 means GOMAXPROCS.
func PartitionEnsemble(ctx context.Context, p *partition.Partitioner, ensemble bootstrap.Ensemble, workers int) ([]partition.Assignment, error) {
	if p == nil {
		return nil, ErrNilPartitioner
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]partition.Assignment, len(ensemble))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	var i int
	for i = range ensemble {
		idx := i
		eg.Go(func() error {
			r, err := p.Partition(ctx, ensemble[idx])
			if err != nil {
				return fmt.Errorf("sigclu: replica %d: %w", idx, err)
			}
			out[idx] = r.Assignment()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// checkSubset returns core sorted and verifies it is a duplicate-free subset
// of set (set sorted ascending).
func checkSubset(core, set NodeSet) (NodeSet, error) {
	if len(core) > len(set) {
		return nil, fmt.Errorf("%w: core of %d nodes from a set of %d", ErrContractViolation, len(core), len(set))
	}
	out := append(NodeSet(nil), core...)
	sort.Ints(out)
	var i, j, v int
	for i, v = range out {
		if i > 0 && out[i-1] == v {
			return nil, fmt.Errorf("%w: node %d repeated", ErrContractViolation, v)
		}
		for j < len(set) && set[j] < v {
			j++
		}
		if j == len(set) || set[j] != v {
			return nil, fmt.Errorf("%w: node %d outside its set", ErrContractViolation, v)
		}
	}

	return out, nil
}

// restrict blanks every node outside keep with label -1.
func restrict(boots []partition.Assignment, keep NodeSet) []partition.Assignment {
	out := make([]partition.Assignment, len(boots))
	var (
		b, v int
		a    partition.Assignment
	)
	for b, a = range boots {
		r := make(partition.Assignment, len(a))
		for v = range r {
			r[v] = -1
		}
		for _, v = range keep {
			if v < len(a) {
				r[v] = a[v]
			}
		}
		out[b] = r
	}

	return out
}

// subtract returns set minus drop; both sorted ascending.
func subtract(set, drop NodeSet) NodeSet {
	out := make(NodeSet, 0, len(set)-len(drop))
	var i, v int
	for _, v = range set {
		for i < len(drop) && drop[i] < v {
			i++
		}
		if i < len(drop) && drop[i] == v {
			continue
		}
		out = append(out, v)
	}

	return out
}

func countNodes(sets []NodeSet) int {
	var n int
	var s NodeSet
	for _, s = range sets {
		n += len(s)
	}

	return n
}
