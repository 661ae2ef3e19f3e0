package sigclu_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netsig/partition"
	"github.com/katalvlaran/netsig/sigclu"
)

func TestCoassignment_DropsUnstableNode(t *testing.T) {
	boots := []partition.Assignment{
		{0, 0, 0, 0},
		{0, 0, 0, 1},
		{1, 1, 1, 0},
		{2, 2, 2, 2},
	}
	cfg := sigclu.Config{Confidence: 0.95}
	tester := sigclu.NewCoassignment([]sigclu.NodeSet{{0, 1, 2, 3}}, boots, cfg)
	cores, err := tester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []sigclu.NodeSet{{0, 1, 2}}, cores)
}

func TestCoassignment_ConfidenceAdmitsPartialAgreement(t *testing.T) {
	boots := []partition.Assignment{
		{0, 0, 0, 0},
		{0, 0, 0, 1},
		{1, 1, 1, 1},
		{2, 2, 2, 2},
	}
	tester := sigclu.NewCoassignment([]sigclu.NodeSet{{0, 1, 2, 3}}, boots, sigclu.Config{Confidence: 0.75})
	cores, err := tester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []sigclu.NodeSet{{0, 1, 2, 3}}, cores)
}

func TestCoassignment_TiesRemoveLargerIndex(t *testing.T) {
	boots := []partition.Assignment{{0, 1}, {1, 0}}
	tester := sigclu.NewCoassignment([]sigclu.NodeSet{{0, 1}}, boots, sigclu.Config{Confidence: 1})
	cores, err := tester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []sigclu.NodeSet{{0}}, cores)
}

func TestCoassignment_ExcludedNodesNeverCore(t *testing.T) {
	boots := []partition.Assignment{{-1, 0}, {-1, 0}}
	tester := sigclu.NewCoassignment([]sigclu.NodeSet{{0, 1}}, boots, sigclu.Config{Confidence: 1})
	cores, err := tester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []sigclu.NodeSet{{1}}, cores)
}

func TestCoassignment_ExcludedNodeGoesBeforeLoners(t *testing.T) {
	boots := []partition.Assignment{{-1, 0, 1}, {-1, 1, 0}}
	tester := sigclu.NewCoassignment([]sigclu.NodeSet{{0, 1, 2}}, boots, sigclu.Config{Confidence: 1})
	cores, err := tester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []sigclu.NodeSet{{1}}, cores)
}

func TestCoassignment_NoBootstraps(t *testing.T) {
	tester := sigclu.NewCoassignment([]sigclu.NodeSet{{0, 1}, {2}}, nil, sigclu.DefaultConfig())
	cores, err := tester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []sigclu.NodeSet{{0, 1}, {2}}, cores)
}

func TestCoassignment_ShortAssignment(t *testing.T) {
	tester := sigclu.NewCoassignment([]sigclu.NodeSet{{0, 5}}, []partition.Assignment{{0, 0}}, sigclu.DefaultConfig())
	_, err := tester.Run(context.Background())
	require.ErrorIs(t, err, sigclu.ErrAssignmentLength)
}
