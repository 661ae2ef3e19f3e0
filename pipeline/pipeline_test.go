package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/netsig/config"
	"github.com/katalvlaran/netsig/core"
	"github.com/katalvlaran/netsig/metrics"
	"github.com/katalvlaran/netsig/partition"
	"github.com/katalvlaran/netsig/pipeline"
	"github.com/katalvlaran/netsig/sigclu"
)

// heavyPairs is A↔B, C↔D with weight 50, so Poisson replicas never drop an edge.
func heavyPairs(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, e := range [][2]string{{"A", "B"}, {"B", "A"}, {"C", "D"}, {"D", "C"}} {
		_, err := g.AddEdge(e[0], e[1], 50)
		require.NoError(t, err)
	}

	return g
}

func settings(t *testing.T, scheme metrics.Scheme) pipeline.Settings {
	t.Helper()
	cfg := config.Default()
	cfg.Bootstrap.NumBootstraps = 12
	cfg.Bootstrap.Seed = 3
	cfg.SigClu.Scheme = scheme.String()
	cfg.SigClu.Thresh = 0.5
	s, err := pipeline.SettingsFrom(cfg)
	require.NoError(t, err)

	return s
}

func TestRun_Standard(t *testing.T) {
	c := pipeline.NewCollector("netsig_test")
	p, err := pipeline.New(settings(t, metrics.SchemeStandard),
		pipeline.WithLogger(zaptest.NewLogger(t)),
		pipeline.WithCollector(c))
	require.NoError(t, err)

	rep, err := p.Run(context.Background(), heavyPairs(t))
	require.NoError(t, err)
	require.NotEmpty(t, rep.RunID)
	require.Equal(t, 2, rep.NumModules)
	require.Equal(t, 12, rep.Replicas)
	require.InDelta(t, 1.0, rep.Summary.Cohesion, 1e-12)
	require.Equal(t, []sigclu.NodeSet{{0, 1}, {2, 3}}, rep.Cores)
	require.Equal(t, []int{1, 1, 1, 1}, rep.Result.Core)
	require.Equal(t, 4, rep.CoreNodes)
	require.Contains(t, rep.String(), "2 modules")

	require.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("ok")))
	require.Equal(t, 2.0, testutil.ToFloat64(c.Modules))
	require.Equal(t, 2.0, testutil.ToFloat64(c.Cores))
	require.Equal(t, 6, testutil.CollectAndCount(c.StageDuration))
}

func TestRun_Recursive(t *testing.T) {
	p, err := pipeline.New(settings(t, metrics.SchemeRecursive))
	require.NoError(t, err)

	rep, err := p.Run(context.Background(), heavyPairs(t))
	require.NoError(t, err)
	require.Len(t, rep.Cores, 2)
	for i, a := range rep.Cores {
		for _, b := range rep.Cores[i+1:] {
			for _, v := range a {
				require.NotContains(t, b, v, "cores must be disjoint")
			}
		}
	}
	require.ElementsMatch(t, []int{1, 1, 2, 2}, rep.Result.Core)
}

func TestRun_NoneSkipsBootstrap(t *testing.T) {
	c := pipeline.NewCollector("netsig_none")
	p, err := pipeline.New(settings(t, metrics.SchemeNone), pipeline.WithCollector(c))
	require.NoError(t, err)

	g := heavyPairs(t)
	rep, err := p.Run(context.Background(), g)
	require.NoError(t, err)
	require.Empty(t, rep.Cores)
	require.Zero(t, rep.Replicas)
	require.Equal(t, []int{0, 0, 0, 0}, rep.Result.Core)
	require.False(t, g.Frozen(), "no replica was derived")
	require.Equal(t, 4, testutil.CollectAndCount(c.StageDuration))
}

func TestNew_UnknownScheme(t *testing.T) {
	s := settings(t, metrics.SchemeStandard)
	s.SigClu.Scheme = metrics.Scheme(9)
	_, err := pipeline.New(s)
	require.ErrorIs(t, err, metrics.ErrUnknownScheme)

	cfg := config.Default()
	cfg.SigClu.Scheme = "SOMETIMES"
	_, err = pipeline.SettingsFrom(cfg)
	require.ErrorIs(t, err, metrics.ErrUnknownScheme)
}

type brokenDetector struct{}

var errDetector = errors.New("detector exploded")

func (brokenDetector) Detect(context.Context, *core.Graph, partition.Options) (partition.Detection, error) {
	return partition.Detection{}, errDetector
}

type liarTester struct{}

func (liarTester) Run(context.Context) ([]sigclu.NodeSet, error) {
	return []sigclu.NodeSet{{99}, {98}}, nil
}

func TestRun_StageErrors(t *testing.T) {
	c := pipeline.NewCollector("netsig_err")
	p, err := pipeline.New(settings(t, metrics.SchemeStandard),
		pipeline.WithDetector(brokenDetector{}), pipeline.WithCollector(c))
	require.NoError(t, err)
	_, err = p.Run(context.Background(), heavyPairs(t))
	var se *pipeline.StageError
	require.True(t, errors.As(err, &se))
	require.Equal(t, pipeline.StagePartition, se.Stage)
	require.ErrorIs(t, err, errDetector)
	require.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("error")))

	p, err = pipeline.New(settings(t, metrics.SchemeStandard),
		pipeline.WithTesterFactory(func([]sigclu.NodeSet, []partition.Assignment, sigclu.Config) sigclu.Tester {
			return liarTester{}
		}))
	require.NoError(t, err)
	_, err = p.Run(context.Background(), heavyPairs(t))
	require.True(t, errors.As(err, &se))
	require.Equal(t, pipeline.StageSigClu, se.Stage)
	require.ErrorIs(t, err, sigclu.ErrContractViolation)

	_, err = p.Run(context.Background(), nil)
	require.True(t, errors.As(err, &se))
	require.Equal(t, pipeline.StageNormalize, se.Stage)
	require.ErrorIs(t, err, pipeline.ErrNilGraph)
}

func TestRun_Cancelled(t *testing.T) {
	p, err := pipeline.New(settings(t, metrics.SchemeStandard))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx, heavyPairs(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_EmptyGraph(t *testing.T) {
	p, err := pipeline.New(settings(t, metrics.SchemeStandard))
	require.NoError(t, err)
	rep, err := p.Run(context.Background(), core.NewGraph())
	require.NoError(t, err)
	require.Zero(t, rep.NumModules)
	require.Zero(t, rep.Summary.Cohesion)
	require.Equal(t, []sigclu.NodeSet{}, rep.Cores)
}
