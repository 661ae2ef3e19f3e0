// File: flow.go
// Role: Flow model for the map equation: stationary node flow (PageRank with
// teleportation) and per-link flow scaled by the Markov time.
//
// Determinism:
//   - Fixed iteration order over node and edge indices; no map iteration.
//
// AI-HINT (file):
//   - Teleportation is unrecorded: it shapes node flow but link flow is
//     p(u)·w(u,v)/S(u) only, so teleport steps never count as exits.
//   - Self-loops carry node flow but are dropped from arcs (never exit).
package partition

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/netsig/core"
)

const (
	pageRankMaxIter = 1000
	pageRankTol     = 1e-15
)

// arc is one directed link of a level with its (scaled) flow.
type arc struct {
	to   int
	flow float64
}

// level is the working network of one aggregation level.
type level struct {
	flow []float64 // node flow
	out  [][]arc   // out-arcs, self-loops excluded
	in   [][]arc   // in-arcs, self-loops excluded
}

func (l *level) size() int { return len(l.flow) }

// buildFlow computes node flow and the finest level of g.
//
// Node flow is the PageRank vector with teleport probability alpha and uniform
// redistribution of dangling mass. Link flow on (u,v) is p(u)·w(u,v)/S(u),
// multiplied by the Markov time of u.
//
// Complexity: O(iter·(N+E)).
func buildFlow(g *core.Graph, opts Options) *level {
	n := g.NodeCount()
	edges := g.Edges()
	alpha := opts.Teleport
	if !(alpha > 0 && alpha < 1) {
		alpha = DefaultTeleport
	}

	strength := make([]float64, n)
	var i, it int
	for i = range strength {
		strength[i] = float64(g.OutStrength(i))
	}
	var e core.Edge

	p := make([]float64, n)
	next := make([]float64, n)
	for i = range p {
		p[i] = 1 / float64(n)
	}
	var dangling, delta float64
	for it = 0; it < pageRankMaxIter; it++ {
		dangling = 0
		for i = range next {
			next[i] = 0
			if strength[i] == 0 {
				dangling += p[i]
			}
		}
		for _, e = range edges {
			if strength[e.From] > 0 {
				next[e.To] += p[e.From] * float64(e.Weight) / strength[e.From]
			}
		}
		for i = range next {
			next[i] = alpha/float64(n) + (1-alpha)*(next[i]+dangling/float64(n))
		}
		delta = floats.Distance(next, p, 1)
		p, next = next, p
		if delta < pageRankTol {
			break
		}
	}

	tau := markovTimes(edges, strength, opts)

	l := &level{
		flow: p,
		out:  make([][]arc, n),
		in:   make([][]arc, n),
	}
	var f float64
	for _, e = range edges {
		if e.From == e.To || strength[e.From] == 0 || e.Weight == 0 {
			continue
		}
		f = tau[e.From] * p[e.From] * float64(e.Weight) / strength[e.From]
		l.out[e.From] = append(l.out[e.From], arc{to: e.To, flow: f})
		l.in[e.To] = append(l.in[e.To], arc{to: e.From, flow: f})
	}

	return l
}

// markovTimes returns the per-node Markov time. With VariableMarkovTime the
// base time is scaled by effdeg(u)/mean(effdeg), where effdeg(u) = 2^H(u) is
// the effective out-degree of u's transition distribution.
func markovTimes(edges []core.Edge, strength []float64, opts Options) []float64 {
	n := len(strength)
	tau := make([]float64, n)
	var i int
	for i = range tau {
		tau[i] = opts.MarkovTime
	}
	if !opts.VariableMarkovTime {
		return tau
	}

	entropy := make([]float64, n)
	var (
		e  core.Edge
		pr float64
	)
	for _, e = range edges {
		if strength[e.From] == 0 || e.Weight == 0 {
			continue
		}
		pr = float64(e.Weight) / strength[e.From]
		entropy[e.From] -= pr * math.Log2(pr)
	}

	var sum float64
	var active int
	for i = range entropy {
		if strength[i] > 0 {
			sum += math.Exp2(entropy[i])
			active++
		}
	}
	if active == 0 {
		return tau
	}
	mean := sum / float64(active)
	for i = range tau {
		if strength[i] > 0 {
			tau[i] = opts.MarkovTime * math.Exp2(entropy[i]) / mean
		}
	}
	return tau
}
