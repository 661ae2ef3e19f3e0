package bootstrap

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/netsig/core"
)

// Sentinel errors returned by the bootstrap package.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed.
	ErrNilGraph = errors.New("bootstrap: graph is nil")

	// ErrBadCount indicates NumBootstraps < 0.
	ErrBadCount = errors.New("bootstrap: NumBootstraps must be non-negative")

	// ErrBadWorkers indicates Workers < 0.
	ErrBadWorkers = errors.New("bootstrap: Workers must be non-negative")
)

// Options configures ensemble generation.
//
// NumBootstraps – number of replicas (0 yields an empty ensemble).
// Seed          – base seed; replica i draws from rng.Source(Seed, i).
// Workers       – concurrent replicas; 0 means runtime.GOMAXPROCS(0).
type Options struct {
	NumBootstraps int
	Seed          int64
	Workers       int
}

// Validate reports the first invalid field as a sentinel error.
func (o Options) Validate() error {
	if o.NumBootstraps < 0 {
		return ErrBadCount
	}
	if o.Workers < 0 {
		return ErrBadWorkers
	}

	return nil
}

// Ensemble is an ordered sequence of replicas sharing the original topology.
type Ensemble []*core.Graph

// SameTopology reports whether every replica has g's node and edge topology.
func (e Ensemble) SameTopology(g *core.Graph) bool {
	var r *core.Graph
	for _, r = range e {
		if !g.SameTopology(r) {
			return false
		}
	}

	return true
}

// Option configures Generate.
type Option func(*generator)

// WithLogger sets the logger (default zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	return func(g *generator) {
		if l != nil {
			g.logger = l
		}
	}
}
