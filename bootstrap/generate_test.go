package bootstrap_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netsig/bootstrap"
	"github.com/katalvlaran/netsig/core"
	"github.com/katalvlaran/netsig/internal/rng"
)

func triangle(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, e := range []struct {
		s, d string
		w    int64
	}{{"A", "B", 5}, {"B", "C", 1}, {"C", "A", 40}, {"C", "C", 2}} {
		_, err := g.AddEdge(e.s, e.d, e.w)
		require.NoError(t, err)
	}
	g.Normalize()

	return g
}

func TestGenerate_TopologyInvariant(t *testing.T) {
	g := triangle(t)
	ens, err := bootstrap.Generate(context.Background(), g, bootstrap.Options{NumBootstraps: 25, Seed: 3})
	require.NoError(t, err)
	require.Len(t, ens, 25)
	require.True(t, ens.SameTopology(g))
	require.True(t, g.Frozen())

	for _, r := range ens {
		require.Equal(t, g.Nodes(), r.Nodes())
		require.Equal(t, g.EdgeCount(), r.EdgeCount())
		for i := 0; i < r.NodeCount(); i++ {
			if r.OutStrength(i) > 0 {
				require.InDelta(t, 1.0, r.OutWeightNormSum(i), 1e-12)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := triangle(t)
	one, err := bootstrap.Generate(context.Background(), g, bootstrap.Options{NumBootstraps: 16, Seed: 11, Workers: 1})
	require.NoError(t, err)
	many, err := bootstrap.Generate(context.Background(), g, bootstrap.Options{NumBootstraps: 16, Seed: 11, Workers: 8})
	require.NoError(t, err)
	for i := range one {
		require.Equal(t, one[i].Weights(), many[i].Weights(), "replica %d", i)
	}

	other, err := bootstrap.Generate(context.Background(), g, bootstrap.Options{NumBootstraps: 16, Seed: 12})
	require.NoError(t, err)
	differ := false
	for i := range one {
		if !equalWeights(one[i].Weights(), other[i].Weights()) {
			differ = true
		}
	}
	require.True(t, differ, "different seeds should give different replicas")
}

func equalWeights(a, b []int64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestGenerate_SampleMean(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("A", "B", 100)
	require.NoError(t, err)
	g.Normalize()

	ens, err := bootstrap.Generate(context.Background(), g, bootstrap.Options{NumBootstraps: 10000, Seed: 1})
	require.NoError(t, err)
	var sum float64
	for _, r := range ens {
		sum += float64(r.Weights()[0])
	}
	mean := sum / float64(len(ens))
	require.InDelta(t, 100, mean, 2.0)
}

func TestGenerate_ZeroDrawsKeepEdges(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("A", "B", 1)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "A", 1)
	require.NoError(t, err)
	g.Normalize()

	ens, err := bootstrap.Generate(context.Background(), g, bootstrap.Options{NumBootstraps: 200, Seed: 5})
	require.NoError(t, err)
	zeros := 0
	for _, r := range ens {
		require.Equal(t, 2, r.EdgeCount())
		w := r.Weights()
		if w[0] == 0 {
			zeros++
			require.Zero(t, r.Edge(0).WeightNorm)
		}
	}
	// P(0) = e^-1 ≈ 0.37
	require.Greater(t, zeros, 30)
}

func TestGenerate_Errors(t *testing.T) {
	g := triangle(t)
	_, err := bootstrap.Generate(context.Background(), nil, bootstrap.Options{})
	require.ErrorIs(t, err, bootstrap.ErrNilGraph)
	_, err = bootstrap.Generate(context.Background(), g, bootstrap.Options{NumBootstraps: -1})
	require.ErrorIs(t, err, bootstrap.ErrBadCount)
	_, err = bootstrap.Generate(context.Background(), g, bootstrap.Options{Workers: -2})
	require.ErrorIs(t, err, bootstrap.ErrBadWorkers)

	ens, err := bootstrap.Generate(context.Background(), g, bootstrap.Options{})
	require.NoError(t, err)
	require.Empty(t, ens)
}

func TestGenerate_Cancelled(t *testing.T) {
	g := triangle(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bootstrap.Generate(ctx, g, bootstrap.Options{NumBootstraps: 8})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPoisson_Moments(t *testing.T) {
	for _, mean := range []float64{0.5, 4, 29, 30, 250} {
		src := rng.Source(99, 0)
		const n = 20000
		var sum, sq float64
		for i := 0; i < n; i++ {
			x := float64(bootstrap.Poisson(src, mean))
			require.GreaterOrEqual(t, x, 0.0)
			sum += x
			sq += x * x
		}
		m := sum / n
		v := sq/n - m*m
		require.InDelta(t, mean, m, 5*math.Sqrt(mean/n)+1e-9, "mean for λ=%v", mean)
		require.InEpsilon(t, mean, v, 0.1, "variance for λ=%v", mean)
	}
}

func TestPoisson_NonPositive(t *testing.T) {
	src := rng.Source(1, 0)
	require.Zero(t, bootstrap.Poisson(src, 0))
	require.Zero(t, bootstrap.Poisson(src, -3))
	require.Zero(t, bootstrap.Poisson(src, math.NaN()))
	require.Zero(t, bootstrap.Poisson(src, math.Inf(1)))
}

func TestPoisson_SameSourceSameDraws(t *testing.T) {
	a, b := rng.Source(5, 3), rng.Source(5, 3)
	for i := 0; i < 100; i++ {
		require.Equal(t, bootstrap.Poisson(a, 12), bootstrap.Poisson(b, 12))
	}
}
