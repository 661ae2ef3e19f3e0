package builder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netsig/builder"
	"github.com/katalvlaran/netsig/core"
)

// TestFromTransitions_Counts verifies repeats accumulate and weights normalize.
func TestFromTransitions_Counts(t *testing.T) {
	g, err := builder.FromTransitions([]builder.Transition{
		{"A", "B"}, {"A", "B"}, {"A", "C"}, {"B", "B"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, g.NodeCount())
	require.Equal(t, 3, g.EdgeCount())

	ab, err := g.EdgeBetween("A", "B")
	require.NoError(t, err)
	require.Equal(t, int64(2), ab.Weight)
	require.InDelta(t, 2.0/3.0, ab.WeightNorm, 1e-12)

	bb, err := g.EdgeBetween("B", "B")
	require.NoError(t, err)
	require.Equal(t, 1.0, bb.WeightNorm)
}

// TestFromTransitions_Empty verifies empty input yields an empty graph.
func TestFromTransitions_Empty(t *testing.T) {
	g, err := builder.FromTransitions(nil)
	require.NoError(t, err)
	require.Zero(t, g.NodeCount())
}

// TestFromTransitions_EmptyID reports the offending pair.
func TestFromTransitions_EmptyID(t *testing.T) {
	_, err := builder.FromTransitions([]builder.Transition{{"A", "B"}, {"", "B"}})
	require.ErrorIs(t, err, builder.ErrEmptyNodeID)
	require.ErrorIs(t, err, core.ErrEmptyNodeID)
	require.Contains(t, err.Error(), "pair 1")
}

// TestCell_Floor checks negative coordinates floor rather than truncate.
func TestCell_Floor(t *testing.T) {
	require.Equal(t, "0_0", builder.Cell(0.05, 0.09, 0.1))
	require.Equal(t, "-1_2", builder.Cell(-0.01, 0.25, 0.1))
	require.Equal(t, "12_-3", builder.Cell(120, -21, 10))
}

// TestBinTransitions_OrdersByTime verifies per-trajectory ordering by T.
func TestBinTransitions_OrdersByTime(t *testing.T) {
	pts := []builder.Point{
		{Trajectory: "u1", X: 25, Y: 5, T: 3},
		{Trajectory: "u2", X: 5, Y: 5, T: 1},
		{Trajectory: "u1", X: 5, Y: 5, T: 1},
		{Trajectory: "u1", X: 15, Y: 5, T: 2},
		{Trajectory: "u2", X: 5, Y: 6, T: 2},
	}
	pairs, err := builder.BinTransitions(pts, 10)
	require.NoError(t, err)
	require.Equal(t, []builder.Transition{
		{"0_0", "1_0"}, {"1_0", "2_0"}, // u1
		{"0_0", "0_0"}, // u2 stays in one cell
	}, pairs)
}

// TestBinTransitions_Validation covers resolution and coordinate checks.
func TestBinTransitions_Validation(t *testing.T) {
	_, err := builder.BinTransitions(nil, 0)
	require.ErrorIs(t, err, builder.ErrBadResolution)
	_, err = builder.BinTransitions(nil, math.Inf(1))
	require.ErrorIs(t, err, builder.ErrBadResolution)
	_, err = builder.BinTransitions([]builder.Point{{Trajectory: "a", X: math.NaN()}}, 1)
	require.ErrorIs(t, err, builder.ErrBadCoordinate)
	_, err = builder.BinTransitions([]builder.Point{{X: 1}}, 1)
	require.ErrorIs(t, err, builder.ErrEmptyNodeID)
	require.ErrorIs(t, err, core.ErrEmptyNodeID)
}

// TestFromTrajectories builds the aggregated cell graph end to end.
func TestFromTrajectories(t *testing.T) {
	pts := []builder.Point{
		{Trajectory: "a", X: 0.5, Y: 0.5, T: 0},
		{Trajectory: "a", X: 1.5, Y: 0.5, T: 1},
		{Trajectory: "b", X: 0.2, Y: 0.1, T: 0},
		{Trajectory: "b", X: 1.9, Y: 0.9, T: 1},
	}
	g, err := builder.FromTrajectories(pts, 1)
	require.NoError(t, err)
	e, err := g.EdgeBetween("0_0", "1_0")
	require.NoError(t, err)
	require.Equal(t, int64(2), e.Weight)
}
