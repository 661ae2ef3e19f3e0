// File: edgelist.go
// Role: Edge-list text format for core.Graph.
//
// Format (one edge per line, comma delimited):
//
//	source,target[,weight[,weight_norm]]
//
//   - Lines starting with '#' are comments; blank lines are skipped.
//   - A missing weight means 1. A weight of 0 is kept as an edge, so bootstrap
//     replicas round-trip. A weight_norm column is accepted and ignored: the
//     graph is normalized after reading.
//   - Each (source,target) pair appears at most once.
package edgelist

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/netsig/core"
)

const header = "# source,target,weight,weight_norm"

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return cr
}

// Read parses an edge list into a new normalized Graph. Node and edge indices
// follow first appearance in the input.
//
// Errors:
//   - *LineError wrapping ErrMalformedLine or ErrDuplicateEdge.
//   - I/O and CSV syntax errors, wrapped.
func Read(r io.Reader) (*core.Graph, error) {
	cr := newReader(r)
	g := core.NewGraph()
	var (
		rec  []string
		err  error
		line int
		w    int64
	)
	for {
		rec, err = cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("edgelist: read: %w", err)
		}
		line, _ = cr.FieldPos(0)
		if len(rec) < 2 || len(rec) > 4 {
			return nil, lineErr(line, ErrMalformedLine, "%d fields", len(rec))
		}
		src, dst := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if src == "" || dst == "" {
			return nil, lineErr(line, ErrMalformedLine, "empty node identifier")
		}
		w = 1
		if len(rec) >= 3 {
			if w, err = strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64); err != nil || w < 0 {
				return nil, lineErr(line, ErrMalformedLine, "weight %q", rec[2])
			}
		}
		if _, err = g.EdgeBetween(src, dst); err == nil {
			return nil, lineErr(line, ErrDuplicateEdge, "%s→%s", src, dst)
		}
		if _, err = g.AddEdge(src, dst, w); err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
	}
	g.Normalize()

	return g, nil
}

// ReadFile is Read over the named file.
func ReadFile(path string) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("edgelist: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Write emits g in edge-index order with all four columns and a comment header.
func Write(w io.Writer, g *core.Graph) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if _, err := bw.WriteString(header + "\n"); err != nil {
		return fmt.Errorf("edgelist: write: %w", err)
	}
	rec := make([]string, 4)
	var e core.Edge
	for _, e = range g.Edges() {
		rec[0] = g.NodeID(e.From)
		rec[1] = g.NodeID(e.To)
		rec[2] = strconv.FormatInt(e.Weight, 10)
		rec[3] = strconv.FormatFloat(e.WeightNorm, 'g', -1, 64)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("edgelist: write: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("edgelist: write: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("edgelist: write: %w", err)
	}

	return nil
}

// WriteFile writes g to the named file, creating or truncating it.
func WriteFile(path string, g *core.Graph) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("edgelist: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("edgelist: close: %w", cerr)
		}
	}()

	return Write(f, g)
}
