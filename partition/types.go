package partition

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/netsig/core"
)

// Sentinel errors returned by the partition package.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed.
	ErrNilGraph = errors.New("partition: graph is nil")

	// ErrBadTrials indicates NumTrials < 1.
	ErrBadTrials = errors.New("partition: NumTrials must be at least 1")

	// ErrBadMarkovTime indicates a Markov time that is not a positive finite number.
	ErrBadMarkovTime = errors.New("partition: MarkovTime must be positive and finite")

	// ErrNotConverged is returned by a Detector whose optimisation did not settle.
	// The Partitioner recovers from it with the singleton assignment.
	ErrNotConverged = errors.New("partition: community detection did not converge")

	// ErrDetectionShape indicates a Detector returned slices of the wrong length.
	ErrDetectionShape = errors.New("partition: detection does not cover every node")
)

// Defaults for Options.
const (
	DefaultNumTrials  = 1
	DefaultMarkovTime = 1.0
	DefaultMaxPasses  = 100
	DefaultTeleport   = 0.15
)

// Options configures community detection. Seed, NumTrials, MarkovTime and
// VariableMarkovTime are forwarded to the Detector unchanged.
//
// Seed               – base seed; trial k uses the stream derived from (Seed, k).
// NumTrials          – independent restarts; the shortest codelength wins.
// MarkovTime         – scales link flow; larger values give fewer modules.
// VariableMarkovTime – per-node Markov time from the out-distribution entropy.
// MaxPasses          – cap on local-moving passes per level.
// Teleport           – PageRank teleportation probability for the flow model.
type Options struct {
	Seed               int64
	NumTrials          int
	MarkovTime         float64
	VariableMarkovTime bool
	MaxPasses          int
	Teleport           float64
}

// DefaultOptions returns Options with one trial, Markov time 1, seed 0
// (the default deterministic stream) and the default pass cap.
func DefaultOptions() Options {
	return Options{
		Seed:       0,
		NumTrials:  DefaultNumTrials,
		MarkovTime: DefaultMarkovTime,
		MaxPasses:  DefaultMaxPasses,
		Teleport:   DefaultTeleport,
	}
}

// Validate reports the first invalid field as a sentinel error.
func (o Options) Validate() error {
	if o.NumTrials < 1 {
		return ErrBadTrials
	}
	if !(o.MarkovTime > 0) || math.IsInf(o.MarkovTime, 0) {
		return ErrBadMarkovTime
	}

	return nil
}

// Detection is the raw output of a Detector, indexed by node.
// Module labels are opaque; the Partitioner relabels them densely.
type Detection struct {
	Module            []int
	Flow              []float64
	ModularCentrality []float64
	Codelength        float64
}

// Detector is a flow-based community-detection capability.
//
// Implementations must be deterministic for a fixed (graph, opts.Seed) and
// must not mutate g.
type Detector interface {
	Detect(ctx context.Context, g *core.Graph, opts Options) (Detection, error)
}

// Assignment maps node index → module id.
type Assignment []int

// Result is a partitioned graph: the graph plus node attribute buffers.
// It only exists after the Partitioner phase completes. Core is zero until
// metrics.ComputeNodeMeasures writes it.
type Result struct {
	Graph             *core.Graph
	Module            []int
	Flow              []float64
	ModularCentrality []float64
	Core              []int
	Codelength        float64

	// Fallback reports that the singleton assignment was used.
	Fallback bool
}

// Assignment returns a copy of the module labels.
func (r *Result) Assignment() Assignment {
	return append(Assignment(nil), r.Module...)
}

// Option configures a Partitioner.
type Option func(*Partitioner)

// WithLogger sets the logger (default zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	return func(p *Partitioner) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithDetector replaces the default MapEquation detector.
func WithDetector(d Detector) Option {
	return func(p *Partitioner) {
		if d != nil {
			p.detector = d
		}
	}
}
