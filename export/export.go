// Package export writes partition results as Parquet tables: one row per node
// and one row per module.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/katalvlaran/netsig/metrics"
	"github.com/katalvlaran/netsig/partition"
)

// ErrNilResult indicates that a nil or graph-less result was passed.
var ErrNilResult = errors.New("export: partition result is nil")

// NodeRow is the Parquet schema of the node table.
type NodeRow struct {
	Index             int64   `parquet:"index"`
	Node              string  `parquet:"node"`
	Module            int64   `parquet:"module"`
	Flow              float64 `parquet:"flow"`
	ModularCentrality float64 `parquet:"modular_centrality"`
	Core              int64   `parquet:"core"`
}

// ModuleRow is the Parquet schema of the module table.
type ModuleRow struct {
	Module      int64   `parquet:"module"`
	Size        int64   `parquet:"size"`
	CoreSize    int64   `parquet:"core_size"`
	Flow        float64 `parquet:"flow"`
	Internal    float64 `parquet:"internal"`
	ExternalOut float64 `parquet:"external_out"`
	ExternalIn  float64 `parquet:"external_in"`
	Coherence   float64 `parquet:"coherence"`
	Fortress    float64 `parquet:"fortress"`
	Mixing      float64 `parquet:"mixing"`
}

// NodeRows returns one row per node in index order.
func NodeRows(r *partition.Result) ([]NodeRow, error) {
	if r == nil || r.Graph == nil {
		return nil, ErrNilResult
	}
	rows := make([]NodeRow, len(r.Module))
	var i int
	for i = range rows {
		rows[i] = NodeRow{
			Index:  int64(i),
			Node:   r.Graph.NodeID(i),
			Module: int64(r.Module[i]),
		}
		if i < len(r.Flow) {
			rows[i].Flow = r.Flow[i]
		}
		if i < len(r.ModularCentrality) {
			rows[i].ModularCentrality = r.ModularCentrality[i]
		}
		if i < len(r.Core) {
			rows[i].Core = int64(r.Core[i])
		}
	}

	return rows, nil
}

// ModuleRows returns one row per module of s. CoreSize counts the module's
// nodes with a non-zero core label in r.
func ModuleRows(r *partition.Result, s metrics.Summary) ([]ModuleRow, error) {
	if r == nil {
		return nil, ErrNilResult
	}
	coreSize := make([]int64, len(s.Modules))
	var i, m int
	for i, m = range r.Module {
		if m < len(coreSize) && i < len(r.Core) && r.Core[i] > 0 {
			coreSize[m]++
		}
	}
	rows := make([]ModuleRow, len(s.Modules))
	var ms metrics.ModuleSummary
	for i, ms = range s.Modules {
		rows[i] = ModuleRow{
			Module:      int64(ms.Module),
			Size:        int64(ms.Size),
			CoreSize:    coreSize[i],
			Flow:        ms.Flow,
			Internal:    ms.Strength.Internal,
			ExternalOut: ms.Strength.ExternalOut,
			ExternalIn:  ms.Strength.ExternalIn,
			Coherence:   ms.Coherence,
			Fortress:    ms.Fortress,
			Mixing:      ms.Mixing,
		}
	}

	return rows, nil
}

// WriteNodes writes the node table of r to path.
func WriteNodes(path string, r *partition.Result) error {
	rows, err := NodeRows(r)
	if err != nil {
		return err
	}

	return write(path, rows)
}

// WriteModules writes the module table of r and its summary to path.
func WriteModules(path string, r *partition.Result, s metrics.Summary) error {
	rows, err := ModuleRows(r, s)
	if err != nil {
		return err
	}

	return write(path, rows)
}

func write[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: failed to create directory for %s: %w", path, err)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}

	return nil
}
