package edgelist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/netsig/builder"
)

// ReadPoints parses trajectory points, one per line:
//
//	trajectory,x,y[,t]
//
// A missing t is 0, so points keep their file order within a trajectory.
// Comment and blank-line rules match Read.
func ReadPoints(r io.Reader) ([]builder.Point, error) {
	cr := newReader(r)
	out := make([]builder.Point, 0)
	var (
		rec  []string
		err  error
		line int
		vals [3]float64
		i    int
	)
	for {
		rec, err = cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("edgelist: read points: %w", err)
		}
		line, _ = cr.FieldPos(0)
		if len(rec) < 3 || len(rec) > 4 {
			return nil, lineErr(line, ErrMalformedLine, "%d fields", len(rec))
		}
		id := strings.TrimSpace(rec[0])
		if id == "" {
			return nil, lineErr(line, ErrMalformedLine, "empty trajectory identifier")
		}
		vals = [3]float64{}
		for i = 1; i < len(rec); i++ {
			if vals[i-1], err = strconv.ParseFloat(strings.TrimSpace(rec[i]), 64); err != nil {
				return nil, lineErr(line, ErrMalformedLine, "field %d %q", i+1, rec[i])
			}
		}
		out = append(out, builder.Point{Trajectory: id, X: vals[0], Y: vals[1], T: vals[2]})
	}

	return out, nil
}

// ReadPointsFile is ReadPoints over the named file.
func ReadPointsFile(path string) ([]builder.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("edgelist: %w", err)
	}
	defer f.Close()

	return ReadPoints(f)
}
