package export_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netsig/builder"
	"github.com/katalvlaran/netsig/export"
	"github.com/katalvlaran/netsig/metrics"
	"github.com/katalvlaran/netsig/partition"
)

func result(t *testing.T) *partition.Result {
	t.Helper()
	g, err := builder.FromTransitions([]builder.Transition{
		{Source: "A", Target: "B"}, {Source: "B", Target: "A"},
		{Source: "C", Target: "D"}, {Source: "D", Target: "C"},
	})
	require.NoError(t, err)
	r, err := partition.Partition(context.Background(), g, partition.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, metrics.ComputeNodeMeasures(r, [][]int{{0, 1}}, metrics.SchemeStandard))

	return r
}

func TestWriteNodes_RoundTrip(t *testing.T) {
	r := result(t)
	path := filepath.Join(t.TempDir(), "out", "nodes.parquet")
	require.NoError(t, export.WriteNodes(path, r))

	rows, err := parquet.ReadFile[export.NodeRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, "C", rows[2].Node)
	require.Equal(t, int64(1), rows[2].Module)
	require.Equal(t, int64(1), rows[0].Core)
	require.Equal(t, int64(0), rows[3].Core)
	require.InDelta(t, 0.25, rows[1].Flow, 1e-9)
}

func TestWriteModules_RoundTrip(t *testing.T) {
	r := result(t)
	s, err := metrics.Summarize(r)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "modules.parquet")
	require.NoError(t, export.WriteModules(path, r, s))

	rows, err := parquet.ReadFile[export.ModuleRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, int64(2), rows[0].Size)
	require.Equal(t, int64(2), rows[0].CoreSize)
	require.Equal(t, int64(0), rows[1].CoreSize)
	require.Equal(t, 1.0, rows[1].Coherence)
	require.Equal(t, 2.0, rows[1].Internal)
}

func TestNilResult(t *testing.T) {
	require.ErrorIs(t, export.WriteNodes("x.parquet", nil), export.ErrNilResult)
	_, err := export.ModuleRows(nil, metrics.Summary{})
	require.ErrorIs(t, err, export.ErrNilResult)
}
