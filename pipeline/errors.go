package pipeline

import (
	"errors"
	"fmt"
)

// ErrNilGraph indicates that Run was called with a nil graph.
var ErrNilGraph = errors.New("pipeline: graph is nil")

// Stage names a pipeline stage in errors, logs and metrics.
type Stage string

// Pipeline stages in execution order. Metrics runs concurrently with
// Bootstrap and SigClu.
const (
	StageNormalize    Stage = "normalize"
	StagePartition    Stage = "partition"
	StageMetrics      Stage = "metrics"
	StageBootstrap    Stage = "bootstrap"
	StageSigClu       Stage = "sigclu"
	StageNodeMeasures Stage = "node_measures"
)

// StageError reports which stage failed. Unwrap exposes the cause, so
// errors.Is matches the failing package's sentinel.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
