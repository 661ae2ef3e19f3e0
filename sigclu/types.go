package sigclu

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/netsig/metrics"
	"github.com/katalvlaran/netsig/partition"
)

// Sentinel errors returned by the sigclu package.
var (
	// ErrNilResult indicates a nil reference partition.
	ErrNilResult = errors.New("sigclu: reference partition is nil")

	// ErrNilPartitioner indicates New was called without a Partitioner.
	ErrNilPartitioner = errors.New("sigclu: partitioner is nil")

	// ErrBadThresh indicates a RECURSIVE threshold outside (0,1).
	ErrBadThresh = errors.New("sigclu: thresh must be in (0,1)")

	// ErrBadConfidence indicates a confidence outside (0,1].
	ErrBadConfidence = errors.New("sigclu: confidence must be in (0,1]")

	// ErrContractViolation indicates a Tester returned output that breaks its
	// contract: wrong number of sets, or a core that is not a subset of its
	// input set. It is never recovered.
	ErrContractViolation = errors.New("sigclu: tester contract violation")

	// ErrAssignmentLength indicates a bootstrap assignment that does not cover
	// the reference nodes.
	ErrAssignmentLength = errors.New("sigclu: bootstrap assignment too short")
)

// Defaults for Config.
const (
	DefaultThresh     = 0.1
	DefaultConfidence = 0.95
)

// NodeSet is a set of node indices sorted ascending.
type NodeSet []int

// Tester is a significance-testing capability built over a reference
// partition and bootstrap assignments. Run returns one core per reference
// set, each a subset of that set.
type Tester interface {
	Run(ctx context.Context) ([]NodeSet, error)
}

// TesterFactory builds a Tester. The Clusterer calls it once per STANDARD run
// and once per RECURSIVE iteration.
type TesterFactory func(reference []NodeSet, bootstraps []partition.Assignment, cfg Config) Tester

// Config selects the scheme and its parameters.
//
// Scheme     – NONE, STANDARD or RECURSIVE.
// Thresh     – RECURSIVE accepts a core iff len(core) >= Thresh·N.
// Confidence – share of bootstraps in which a core must stay together
//
//	(used by Coassignment).
type Config struct {
	Scheme     metrics.Scheme
	Thresh     float64
	Confidence float64
}

// DefaultConfig returns STANDARD with the default threshold and confidence.
func DefaultConfig() Config {
	return Config{
		Scheme:     metrics.SchemeStandard,
		Thresh:     DefaultThresh,
		Confidence: DefaultConfidence,
	}
}

// Validate reports the first invalid field as a sentinel error.
// Thresh is only checked for RECURSIVE.
func (c Config) Validate() error {
	if !c.Scheme.Valid() {
		return fmt.Errorf("%w: %d", metrics.ErrUnknownScheme, int(c.Scheme))
	}
	if c.Scheme == metrics.SchemeRecursive && !(c.Thresh > 0 && c.Thresh < 1) {
		return fmt.Errorf("%w: got %v", ErrBadThresh, c.Thresh)
	}
	if !(c.Confidence > 0 && c.Confidence <= 1) || math.IsNaN(c.Confidence) {
		return fmt.Errorf("%w: got %v", ErrBadConfidence, c.Confidence)
	}

	return nil
}

// Option configures a Clusterer.
type Option func(*Clusterer)

// WithLogger sets the logger (default zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	return func(c *Clusterer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTesterFactory replaces the default NewCoassignment factory.
func WithTesterFactory(f TesterFactory) Option {
	return func(c *Clusterer) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithWorkers bounds concurrent replica partitioning (0 = GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(c *Clusterer) {
		if n >= 0 {
			c.workers = n
		}
	}
}

// Ints converts cores to plain index slices for metrics.ComputeNodeMeasures.
func Ints(sets []NodeSet) [][]int {
	out := make([][]int, len(sets))
	var i int
	for i = range sets {
		out[i] = sets[i]
	}

	return out
}
