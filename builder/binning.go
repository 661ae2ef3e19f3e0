// SPDX-License-Identifier: MIT
// Package: netsig/builder
//
// binning.go — positional binning of trajectory points into grid cells, and
// conversion of binned trajectories into transitions.
//
// Contract:
//   - Cell(x,y,res) = "<floor(x/res)>_<floor(y/res)>".
//   - Points are grouped by Trajectory (first-seen order) and stably sorted by T.
//   - Each pair of consecutive points in a trajectory yields one transition,
//     including cell→same-cell moves.
//
// AI-Hints:
//   - A single-point trajectory emits no transition, so its cell only becomes
//     a node if another trajectory visits it.

package builder

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/netsig/core"
)

// Point is one timestamped position of a moving entity.
type Point struct {
	Trajectory string
	X, Y       float64
	T          float64
}

// Cell returns the grid-cell identifier of (x,y) at resolution res.
// The caller guarantees res > 0 and finite coordinates.
func Cell(x, y, res float64) string {
	cx := int64(math.Floor(x / res))
	cy := int64(math.Floor(y / res))
	buf := make([]byte, 0, 24)
	buf = strconv.AppendInt(buf, cx, 10)
	buf = append(buf, '_')
	buf = strconv.AppendInt(buf, cy, 10)

	return string(buf)
}

// BinTransitions converts trajectory points into cell transitions.
//
// Errors:
//   - ErrBadResolution: res <= 0, NaN or Inf.
//   - ErrBadCoordinate: a point has a non-finite coordinate.
//   - ErrEmptyNodeID: a point has an empty Trajectory.
//
// Complexity: O(P log P).
func BinTransitions(points []Point, res float64) ([]Transition, error) {
	if !(res > 0) || math.IsInf(res, 0) {
		return nil, fmt.Errorf("%w: res=%g", ErrBadResolution, res)
	}

	order := make([]string, 0)
	byTraj := make(map[string][]Point)
	var (
		i int
		p Point
	)
	for i, p = range points {
		if p.Trajectory == "" {
			return nil, fmt.Errorf("%w: point %d has no trajectory: %w", ErrEmptyNodeID, i, core.ErrEmptyNodeID)
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, fmt.Errorf("%w: point %d (%g,%g)", ErrBadCoordinate, i, p.X, p.Y)
		}
		if _, ok := byTraj[p.Trajectory]; !ok {
			order = append(order, p.Trajectory)
		}
		byTraj[p.Trajectory] = append(byTraj[p.Trajectory], p)
	}

	out := make([]Transition, 0, len(points))
	var (
		id   string
		pts  []Point
		prev string
		cur  string
	)
	for _, id = range order {
		pts = byTraj[id]
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].T < pts[b].T })
		prev = Cell(pts[0].X, pts[0].Y, res)
		for i = 1; i < len(pts); i++ {
			cur = Cell(pts[i].X, pts[i].Y, res)
			out = append(out, Transition{Source: prev, Target: cur})
			prev = cur
		}
	}

	return out, nil
}

// FromTrajectories bins points at resolution res and aggregates the resulting
// transitions into a normalized Graph.
func FromTrajectories(points []Point, res float64) (*core.Graph, error) {
	pairs, err := BinTransitions(points, res)
	if err != nil {
		return nil, wrapf("FromTrajectories", err)
	}
	g, err := FromTransitions(pairs)
	if err != nil {
		return nil, wrapf("FromTrajectories", err)
	}

	return g, nil
}
