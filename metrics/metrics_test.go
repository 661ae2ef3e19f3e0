package metrics_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netsig/builder"
	"github.com/katalvlaran/netsig/core"
	"github.com/katalvlaran/netsig/metrics"
	"github.com/katalvlaran/netsig/partition"
)

const tol = 1e-12

// pairs returns A↔B, C↔D with weight 3 each, split into {A,B} and {C,D}.
func pairs(t *testing.T) *partition.Result {
	t.Helper()
	g := core.NewGraph()
	for _, e := range [][2]string{{"A", "B"}, {"B", "A"}, {"C", "D"}, {"D", "C"}} {
		_, err := g.AddEdge(e[0], e[1], 3)
		require.NoError(t, err)
	}
	g.Normalize()

	return &partition.Result{
		Graph:  g,
		Module: []int{0, 0, 1, 1},
		Flow:   []float64{0.25, 0.25, 0.25, 0.25},
		Core:   make([]int, 4),
	}
}

// bridged is A→B (4), B→A (2), B→C (1), C→C (5) with modules {A,B}, {C}.
func bridged(t *testing.T) *partition.Result {
	t.Helper()
	g := core.NewGraph()
	for _, e := range []struct {
		s, d string
		w    int64
	}{{"A", "B", 4}, {"B", "A", 2}, {"B", "C", 1}, {"C", "C", 5}} {
		_, err := g.AddEdge(e.s, e.d, e.w)
		require.NoError(t, err)
	}
	g.Normalize()

	return &partition.Result{Graph: g, Module: []int{0, 0, 1}, Core: make([]int, 3)}
}

func TestTwoPairs_Scenario(t *testing.T) {
	r := pairs(t)
	s, err := metrics.ModularStrength(r)
	require.NoError(t, err)
	require.Equal(t, []metrics.Strength{{Internal: 6}, {Internal: 6}}, s)

	coherence, fortress := metrics.CoherenceFortress(s)
	require.Equal(t, []float64{1, 1}, coherence)
	require.Equal(t, []float64{1, 1}, fortress)

	cohesion, mixing, err := metrics.CohesionMixing(r)
	require.NoError(t, err)
	require.InDelta(t, 1.0, cohesion, tol)
	// two equal retained edges in a module of 2: H = 1, n·log2 n = 2.
	require.InDelta(t, 0.5, mixing, tol)
}

func TestModularStrength_External(t *testing.T) {
	r := bridged(t)
	s, err := metrics.ModularStrength(r)
	require.NoError(t, err)
	want := []metrics.Strength{
		{Internal: 6, ExternalOut: 1},
		{Internal: 5, ExternalIn: 1},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("ModularStrength mismatch (-want +got):\n%s", diff)
	}

	coherence, fortress := metrics.CoherenceFortress(s)
	require.InDelta(t, 6.0/7, coherence[0], tol)
	require.InDelta(t, 1.0, fortress[0], tol)
	require.InDelta(t, 1.0, coherence[1], tol)
	require.InDelta(t, 5.0/6, fortress[1], tol)

	cohesion, _, err := metrics.CohesionMixing(r)
	require.NoError(t, err)
	require.InDelta(t, 11.0/12, cohesion, tol)
}

func TestIsolatedNode_ZeroGuards(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddNode("X")
	require.NoError(t, err)
	r := &partition.Result{Graph: g, Module: []int{0}, Core: []int{0}}

	s, err := metrics.ModularStrength(r)
	require.NoError(t, err)
	coherence, fortress := metrics.CoherenceFortress(s)
	require.Equal(t, []float64{0}, coherence)
	require.Equal(t, []float64{0}, fortress)

	mix, err := metrics.Mixing(r)
	require.NoError(t, err)
	require.Equal(t, []float64{0}, mix)

	cohesion, mixing, err := metrics.CohesionMixing(r)
	require.NoError(t, err)
	require.Zero(t, cohesion)
	require.Zero(t, mixing)
}

func TestMixing_Values(t *testing.T) {
	r := bridged(t)
	mix, err := metrics.Mixing(r)
	require.NoError(t, err)
	// module {A,B}: p = (4/6, 2/6); singleton {C} is always 0.
	require.InDelta(t, 0.9182958340544896/2, mix[0], tol)
	require.Zero(t, mix[1])

	_, mixing, err := metrics.CohesionMixing(r)
	require.NoError(t, err)
	require.InDelta(t, 6*mix[0]/11, mixing, tol)
}

func TestMixing_Bounds(t *testing.T) {
	// complete directed graph on 3 nodes with self-loops, uniform weights.
	var pairs []builder.Transition
	ids := []string{"a", "b", "c"}
	for _, s := range ids {
		for _, d := range ids {
			pairs = append(pairs, builder.Transition{Source: s, Target: d})
		}
	}
	g, err := builder.FromTransitions(pairs)
	require.NoError(t, err)
	r := &partition.Result{Graph: g, Module: []int{0, 0, 0}}

	mix, err := metrics.Mixing(r)
	require.NoError(t, err)
	require.Greater(t, mix[0], 0.0)
	require.LessOrEqual(t, mix[0], 1.0)
}

func TestNilResult(t *testing.T) {
	_, err := metrics.ModularStrength(nil)
	require.ErrorIs(t, err, metrics.ErrNilResult)
	_, err = metrics.Mixing(&partition.Result{})
	require.ErrorIs(t, err, metrics.ErrNilResult)
	_, _, err = metrics.CohesionMixing(nil)
	require.ErrorIs(t, err, metrics.ErrNilResult)
	require.ErrorIs(t, metrics.ComputeNodeMeasures(nil, nil, metrics.SchemeStandard), metrics.ErrNilResult)
}

func TestSummarize(t *testing.T) {
	r := pairs(t)
	r.Codelength = 1
	sum, err := metrics.Summarize(r)
	require.NoError(t, err)
	require.Len(t, sum.Modules, 2)
	require.Equal(t, 2, sum.Modules[1].Size)
	require.InDelta(t, 0.5, sum.Modules[1].Flow, tol)
	require.Equal(t, 1.0, sum.Modules[0].Coherence)
	require.InDelta(t, 1.0, sum.Cohesion, tol)
	require.Equal(t, 1.0, sum.Codelength)
}
