package partition

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/netsig/core"
)

// Partitioner runs a Detector over a graph and writes back per-node module,
// flow and modular centrality as a Result.
//
// A Partitioner is immutable after New and safe for concurrent use as long as
// its Detector is; MapEquation is.
type Partitioner struct {
	opts     Options
	detector Detector
	logger   *zap.Logger
}

// New validates opts and returns a Partitioner using MapEquation by default.
//
// Errors:
//   - ErrBadTrials, ErrBadMarkovTime from Options.Validate.
func New(opts Options, popts ...Option) (*Partitioner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p := &Partitioner{
		opts:     opts,
		detector: MapEquation{},
		logger:   zap.NewNop(),
	}
	var o Option
	for _, o = range popts {
		o(p)
	}

	return p, nil
}

// Options returns the options the Partitioner forwards to its Detector.
func (p *Partitioner) Options() Options { return p.opts }

// Partition assigns every node of g to a module.
//
// Behavior:
//   - Seed and the other Options are forwarded to the Detector unchanged.
//   - Module ids are relabelled densely 0..k-1 in order of first appearance
//     by node index; the Detector's own numbering is treated as opaque.
//   - A graph with zero edges, or a Detector returning ErrNotConverged, gets
//     the singleton assignment (module = node index, flow = 1/N, centrality 0).
//
// Errors:
//   - ErrNilGraph; ErrDetectionShape; any other Detector error (wrapped);
//     ctx.Err() on cancellation.
//
// Complexity: that of the Detector plus O(N).
func (p *Partitioner) Partition(ctx context.Context, g *core.Graph) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.NodeCount()
	if g.EdgeCount() == 0 {
		p.logger.Debug("graph has no edges, using singleton modules", zap.Int("nodes", n))
		return singletons(g, n), nil
	}

	det, err := p.detector.Detect(ctx, g, p.opts)
	if errors.Is(err, ErrNotConverged) {
		p.logger.Warn("community detection did not converge, using singleton modules",
			zap.Int("nodes", n), zap.Int64("seed", p.opts.Seed))
		return singletons(g, n), nil
	}
	if err != nil {
		return nil, fmt.Errorf("partition: detect: %w", err)
	}
	if len(det.Module) != n || len(det.Flow) != n || len(det.ModularCentrality) != n {
		return nil, fmt.Errorf("%w: got %d/%d/%d labels for %d nodes",
			ErrDetectionShape, len(det.Module), len(det.Flow), len(det.ModularCentrality), n)
	}

	r := &Result{
		Graph:             g,
		Module:            relabel(det.Module),
		Flow:              append([]float64(nil), det.Flow...),
		ModularCentrality: append([]float64(nil), det.ModularCentrality...),
		Core:              make([]int, n),
		Codelength:        det.Codelength,
	}
	p.logger.Debug("partitioned graph",
		zap.Int("nodes", n),
		zap.Int("modules", NumModules(r)),
		zap.Float64("codelength", det.Codelength))

	return r, nil
}

// Partition is a convenience wrapper around New(opts, popts...).Partition.
func Partition(ctx context.Context, g *core.Graph, opts Options, popts ...Option) (*Result, error) {
	p, err := New(opts, popts...)
	if err != nil {
		return nil, err
	}

	return p.Partition(ctx, g)
}

// singletons is the degenerate assignment: every node is its own module.
func singletons(g *core.Graph, n int) *Result {
	r := &Result{
		Graph:             g,
		Module:            make([]int, n),
		Flow:              make([]float64, n),
		ModularCentrality: make([]float64, n),
		Core:              make([]int, n),
		Fallback:          true,
	}
	var i int
	for i = 0; i < n; i++ {
		r.Module[i] = i
		r.Flow[i] = 1 / float64(n)
	}

	return r
}

// relabel maps arbitrary labels to 0..k-1 by first appearance.
func relabel(labels []int) []int {
	out := make([]int, len(labels))
	ids := make(map[int]int, len(labels))
	var i, l int
	for i, l = range labels {
		id, ok := ids[l]
		if !ok {
			id = len(ids)
			ids[l] = id
		}
		out[i] = id
	}

	return out
}
