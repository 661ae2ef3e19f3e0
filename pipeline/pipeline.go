// File: pipeline.go
// Role: End-to-end driver: normalize → partition → {metrics, bootstrap →
// sigclu} → node measures.
//
// Concurrency:
//   - Metrics and the bootstrap/sigclu branch run in one errgroup and only
//     read the partition result. r.Core is written after the join.
//
// AI-HINT (file):
//   - Settings are validated in New, so an unknown scheme fails before any
//     computation.
//   - Every failure is a *StageError naming the stage.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/netsig/bootstrap"
	"github.com/katalvlaran/netsig/config"
	"github.com/katalvlaran/netsig/core"
	"github.com/katalvlaran/netsig/metrics"
	"github.com/katalvlaran/netsig/partition"
	"github.com/katalvlaran/netsig/sigclu"
)

// Settings gathers the options of every stage.
type Settings struct {
	Partition partition.Options
	Bootstrap bootstrap.Options
	SigClu    sigclu.Config
}

// SettingsFrom converts a loaded configuration.
func SettingsFrom(c *config.Config) (Settings, error) {
	sc, err := c.SigCluConfig()
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Partition: c.PartitionOptions(),
		Bootstrap: c.BootstrapOptions(),
		SigClu:    sc,
	}, nil
}

// Report is the outcome of one run.
type Report struct {
	RunID      string
	Result     *partition.Result
	Summary    metrics.Summary
	Cores      []sigclu.NodeSet
	Scheme     metrics.Scheme
	Replicas   int
	NumModules int
	CoreNodes  int
	Elapsed    time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger (default zap.NewNop()). Stages log through it.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithCollector records stage durations and run outcomes in c.
func WithCollector(c *Collector) Option {
	return func(p *Pipeline) { p.collector = c }
}

// WithDetector replaces the community detector used for the reference
// partition and every replica.
func WithDetector(d partition.Detector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithTesterFactory replaces the significance tester.
func WithTesterFactory(f sigclu.TesterFactory) Option {
	return func(p *Pipeline) { p.factory = f }
}

// Pipeline runs the whole analysis over one graph. It is immutable after New
// and may run several graphs concurrently.
type Pipeline struct {
	settings    Settings
	partitioner *partition.Partitioner
	clusterer   *sigclu.Clusterer
	detector    partition.Detector
	factory     sigclu.TesterFactory
	logger      *zap.Logger
	collector   *Collector
}

// New validates s and wires the stages.
//
// Errors:
//   - metrics.ErrUnknownScheme, partition and sigclu option errors,
//     bootstrap.ErrBadCount.
func New(s Settings, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{settings: s, logger: zap.NewNop()}
	var o Option
	for _, o = range opts {
		o(p)
	}
	if err := s.SigClu.Validate(); err != nil {
		return nil, err
	}
	if err := s.Bootstrap.Validate(); err != nil {
		return nil, err
	}

	popts := []partition.Option{partition.WithLogger(p.logger.Named("partition"))}
	if p.detector != nil {
		popts = append(popts, partition.WithDetector(p.detector))
	}
	var err error
	if p.partitioner, err = partition.New(s.Partition, popts...); err != nil {
		return nil, err
	}

	copts := []sigclu.Option{
		sigclu.WithLogger(p.logger.Named("sigclu")),
		sigclu.WithWorkers(s.Bootstrap.Workers),
	}
	if p.factory != nil {
		copts = append(copts, sigclu.WithTesterFactory(p.factory))
	}
	if p.clusterer, err = sigclu.New(p.partitioner, s.SigClu, copts...); err != nil {
		return nil, err
	}

	return p, nil
}

// Run executes every stage over g. g is normalized in place and its topology
// is frozen when bootstrap replicas are drawn.
func (p *Pipeline) Run(ctx context.Context, g *core.Graph) (rep *Report, err error) {
	start := time.Now()
	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID))
	defer func() { p.collector.recordRun(err) }()

	if g == nil {
		return nil, &StageError{Stage: StageNormalize, Err: ErrNilGraph}
	}
	log.Info("pipeline started",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int64("weight", g.TotalWeight()),
		zap.String("scheme", p.settings.SigClu.Scheme.String()))

	if err = p.stage(ctx, log, StageNormalize, func(context.Context) error {
		g.Normalize()
		return nil
	}); err != nil {
		return nil, err
	}

	var r *partition.Result
	if err = p.stage(ctx, log, StagePartition, func(ctx context.Context) error {
		var perr error
		r, perr = p.partitioner.Partition(ctx, g)
		return perr
	}); err != nil {
		return nil, err
	}

	var (
		summary metrics.Summary
		ens     bootstrap.Ensemble
		cores   = []sigclu.NodeSet{}
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return p.stage(gctx, log, StageMetrics, func(context.Context) error {
			var merr error
			summary, merr = metrics.Summarize(r)
			return merr
		})
	})
	if p.settings.SigClu.Scheme != metrics.SchemeNone {
		eg.Go(func() error {
			if berr := p.stage(gctx, log, StageBootstrap, func(ctx context.Context) error {
				var gerr error
				ens, gerr = bootstrap.Generate(ctx, g, p.settings.Bootstrap,
					bootstrap.WithLogger(p.logger.Named("bootstrap")))
				return gerr
			}); berr != nil {
				return berr
			}
			return p.stage(gctx, log, StageSigClu, func(ctx context.Context) error {
				var cerr error
				cores, cerr = p.clusterer.Run(ctx, r, ens)
				return cerr
			})
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	if err = p.stage(ctx, log, StageNodeMeasures, func(context.Context) error {
		return metrics.ComputeNodeMeasures(r, sigclu.Ints(cores), p.settings.SigClu.Scheme)
	}); err != nil {
		return nil, err
	}

	rep = &Report{
		RunID:      runID,
		Result:     r,
		Summary:    summary,
		Cores:      cores,
		Scheme:     p.settings.SigClu.Scheme,
		Replicas:   len(ens),
		NumModules: partition.NumModules(r),
		CoreNodes:  countCoreNodes(r),
		Elapsed:    time.Since(start),
	}
	p.collector.recordReport(rep)
	log.Info("pipeline finished",
		zap.Int("modules", rep.NumModules),
		zap.Int("cores", len(rep.Cores)),
		zap.Float64("cohesion", summary.Cohesion),
		zap.Float64("mixing", summary.Mixing),
		zap.Duration("elapsed", rep.Elapsed))

	return rep, nil
}

// stage runs fn, records its duration and wraps any failure in a StageError.
func (p *Pipeline) stage(ctx context.Context, log *zap.Logger, s Stage, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return &StageError{Stage: s, Err: err}
	}
	t := time.Now()
	err := fn(ctx)
	d := time.Since(t)
	p.collector.observeStage(s, d)
	if err != nil {
		log.Error("stage failed", zap.String("stage", string(s)), zap.Duration("duration", d), zap.Error(err))
		return &StageError{Stage: s, Err: err}
	}
	log.Debug("stage done", zap.String("stage", string(s)), zap.Duration("duration", d))

	return nil
}

func countCoreNodes(r *partition.Result) int {
	var n, c int
	for _, c = range r.Core {
		if c > 0 {
			n++
		}
	}

	return n
}

// String renders the one-line summary printed by the CLI.
func (r *Report) String() string {
	return fmt.Sprintf("run %s: %d modules, %d cores (%d nodes), cohesion=%.4f mixing=%.4f codelength=%.4f",
		r.RunID, r.NumModules, len(r.Cores), r.CoreNodes, r.Summary.Cohesion, r.Summary.Mixing, r.Summary.Codelength)
}
