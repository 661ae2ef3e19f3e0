// File: mapequation.go
// Role: Default Detector. Minimizes the two-level map equation over a
// flow model with greedy local moving, Louvain-style aggregation and
// fine-tune rounds, repeated over NumTrials seeded restarts.
//
// AI-HINT (file):
//   - Codelength (bits), with plogp(x) = x·log2(x) and plogp(x<=0) = 0:
//     L = plogp(ΣE) − Σ plogp(E_m) − Σ plogp(X_m) − Σ_u plogp(p_u) + Σ plogp(X_m + p_m)
//     where E_m / X_m are enter / exit flow of module m and p_m its node flow.
//   - Moves are applied only for improvements beyond minImprovement so float
//     noise never flips a node back and forth.
//   - Trial k draws from rng.Stream(Seed, k); ties keep the earlier trial.
package partition

import (
	"context"
	"math"
	"math/rand"

	"github.com/katalvlaran/netsig/core"
	"github.com/katalvlaran/netsig/internal/rng"
)

const (
	minImprovement = 1e-10
	fineTuneRounds = 10
)

// MapEquation is the flow-based community detector used by default.
// The zero value is ready to use and safe for concurrent calls.
type MapEquation struct{}

// Detect partitions g into modules minimizing the two-level map equation.
//
// Behavior:
//   - Node flow is PageRank with opts.Teleport (DefaultTeleport when zero).
//   - If no two-level solution beats the one-module codelength, every node is
//     put in module 0.
//   - ModularCentrality(u) = p(u) − flow on u's links leaving its module.
//
// Errors:
//   - ErrNilGraph, Options.Validate errors, ErrNotConverged when a level still
//     moves nodes after MaxPasses passes, ctx.Err() on cancellation.
//
// Complexity: O(trials · passes · E) per level, plus O(iter·(N+E)) for flow.
func (MapEquation) Detect(ctx context.Context, g *core.Graph, opts Options) (Detection, error) {
	if g == nil {
		return Detection{}, ErrNilGraph
	}
	if err := opts.Validate(); err != nil {
		return Detection{}, err
	}
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = DefaultMaxPasses
	}
	n := g.NodeCount()
	if n == 0 {
		return Detection{}, nil
	}

	fine := buildFlow(g, opts)
	var nodeEntropy float64
	var i int
	for i = 0; i < n; i++ {
		nodeEntropy += plogp(fine.flow[i])
	}

	var (
		best     []int
		bestLen  = math.Inf(1)
		trial    int
		assign   []int
		codeLen  float64
		err      error
		searcher *search
	)
	for trial = 0; trial < opts.NumTrials; trial++ {
		searcher = &search{
			ctx:         ctx,
			fine:        fine,
			nodeEntropy: nodeEntropy,
			maxPasses:   opts.MaxPasses,
			rnd:         rng.Stream(opts.Seed, uint64(trial)),
		}
		if assign, codeLen, err = searcher.run(); err != nil {
			return Detection{}, err
		}
		if codeLen < bestLen {
			best, bestLen = assign, codeLen
		}
	}

	// single module: no exits, the codelength is the node-flow entropy.
	oneLevel := -nodeEntropy
	if !(bestLen < oneLevel-minImprovement) {
		best = make([]int, n)
		bestLen = oneLevel
	}

	det := Detection{
		Module:            best,
		Flow:              append([]float64(nil), fine.flow...),
		ModularCentrality: make([]float64, n),
		Codelength:        bestLen,
	}
	var a arc
	for i = 0; i < n; i++ {
		det.ModularCentrality[i] = fine.flow[i]
		for _, a = range fine.out[i] {
			if best[a.to] != best[i] {
				det.ModularCentrality[i] -= a.flow
			}
		}
	}

	return det, nil
}

// Codelength returns the two-level map equation codelength of module
// assignment a over g, using the same flow model as Detect.
func Codelength(g *core.Graph, a Assignment, opts Options) (float64, error) {
	if g == nil {
		return 0, ErrNilGraph
	}
	if len(a) != g.NodeCount() {
		return 0, ErrDetectionShape
	}
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}
	fine := buildFlow(g, opts)
	var nodeEntropy float64
	var f float64
	for _, f = range fine.flow {
		nodeEntropy += plogp(f)
	}
	mod := relabel(a)

	return newModules(fine, mod, nodeEntropy).codelength(), nil
}

// search is the state of one trial.
type search struct {
	ctx         context.Context
	fine        *level
	nodeEntropy float64
	maxPasses   int
	rnd         *rand.Rand
}

// run optimizes from singletons, then fine-tunes from the best assignment
// while the codelength keeps improving.
func (s *search) run() ([]int, float64, error) {
	assign, codeLen, err := s.coarsen(identity(s.fine.size()))
	if err != nil {
		return nil, 0, err
	}
	var (
		round int
		next  []int
		l     float64
	)
	for round = 0; round < fineTuneRounds; round++ {
		if next, l, err = s.coarsen(assign); err != nil {
			return nil, 0, err
		}
		if !(l < codeLen-minImprovement) {
			break
		}
		assign, codeLen = next, l
	}

	return assign, codeLen, nil
}

// coarsen runs local moving on the finest level starting from init, then
// aggregates modules into super-nodes and repeats until a level makes no
// progress. The returned assignment is over the finest nodes.
func (s *search) coarsen(init []int) ([]int, float64, error) {
	cur := s.fine
	mod := append([]int(nil), init...)
	var (
		assign []int
		dense  []int
		k, i   int
		err    error
	)
	for {
		if err = s.localMove(cur, mod); err != nil {
			return nil, 0, err
		}
		dense, k = denseLabels(mod)
		if assign == nil {
			assign = dense
		} else {
			for i = range assign {
				assign[i] = dense[assign[i]]
			}
		}
		if k == cur.size() {
			break
		}
		cur = aggregate(cur, dense, k)
		mod = identity(k)
	}

	return assign, newModules(s.fine, assign, s.nodeEntropy).codelength(), nil
}

// localMove greedily moves single nodes of l between modules until a full
// pass moves nothing. mod is updated in place.
func (s *search) localMove(l *level, mod []int) error {
	n := l.size()
	st := newModules(l, mod, s.nodeEntropy)

	outTot := make([]float64, n)
	inTot := make([]float64, n)
	var (
		u int
		a arc
	)
	for u = 0; u < n; u++ {
		for _, a = range l.out[u] {
			outTot[u] += a.flow
		}
		for _, a = range l.in[u] {
			inTot[u] += a.flow
		}
	}

	outTo := make([]float64, n)
	inFrom := make([]float64, n)
	seen := make([]bool, n)
	touched := make([]int, 0, 8)
	touch := func(m int) {
		if !seen[m] {
			seen[m] = true
			touched = append(touched, m)
		}
	}

	var (
		pass, moved int
		order       []int
		m, from     int
		target      int
		delta, dl   float64
	)
	for pass = 0; pass < s.maxPasses; pass++ {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		moved = 0
		order = rng.Perm(n, s.rnd)
		for _, u = range order {
			from = mod[u]
			touched = touched[:0]
			touch(from)
			for _, a = range l.out[u] {
				m = mod[a.to]
				touch(m)
				outTo[m] += a.flow
			}
			for _, a = range l.in[u] {
				m = mod[a.to]
				touch(m)
				inFrom[m] += a.flow
			}

			target, delta = from, -minImprovement
			for _, m = range touched {
				if m == from {
					continue
				}
				dl = st.delta(from, m, l.flow[u], outTot[u], inTot[u],
					outTo[from], inFrom[from], outTo[m], inFrom[m])
				if dl < delta {
					target, delta = m, dl
				}
			}
			if target != from {
				st.move(from, target, l.flow[u], outTot[u], inTot[u],
					outTo[from], inFrom[from], outTo[target], inFrom[target])
				mod[u] = target
				moved++
			}

			for _, m = range touched {
				seen[m] = false
				outTo[m] = 0
				inFrom[m] = 0
			}
		}
		if moved == 0 {
			return nil
		}
	}

	return ErrNotConverged
}

// modules tracks per-module flows and the running codelength terms.
type modules struct {
	flow, exit, enter []float64
	size              []int

	sumEnter         float64
	sumPlogpEnter    float64
	sumPlogpExit     float64
	sumPlogpExitFlow float64
	nodeEntropy      float64
}

// newModules builds module terms for assignment mod (ids in [0, l.size())).
func newModules(l *level, mod []int, nodeEntropy float64) *modules {
	n := l.size()
	st := &modules{
		flow:        make([]float64, n),
		exit:        make([]float64, n),
		enter:       make([]float64, n),
		size:        make([]int, n),
		nodeEntropy: nodeEntropy,
	}
	var (
		u int
		a arc
	)
	for u = 0; u < n; u++ {
		st.flow[mod[u]] += l.flow[u]
		st.size[mod[u]]++
		for _, a = range l.out[u] {
			if mod[a.to] != mod[u] {
				st.exit[mod[u]] += a.flow
				st.enter[mod[a.to]] += a.flow
			}
		}
	}
	var m int
	for m = 0; m < n; m++ {
		st.sumEnter += st.enter[m]
		st.sumPlogpEnter += plogp(st.enter[m])
		st.sumPlogpExit += plogp(st.exit[m])
		st.sumPlogpExitFlow += plogp(st.exit[m] + st.flow[m])
	}

	return st
}

func (st *modules) codelength() float64 {
	return plogp(st.sumEnter) - st.sumPlogpEnter - st.sumPlogpExit - st.nodeEntropy + st.sumPlogpExitFlow
}

// moved returns the exit, enter and flow of modules a and b after moving a
// node with flow p from a to b. outX / inX are the node's arc flows to / from
// module X.
func (st *modules) moved(a, b int, p, outTot, inTot, outA, inA, outB, inB float64) (exitA, enterA, flowA, exitB, enterB, flowB float64) {
	exitA = st.exit[a] - (outTot - outA) + inA
	enterA = st.enter[a] - (inTot - inA) + outA
	flowA = st.flow[a] - p
	exitB = st.exit[b] + (outTot - outB) - inB
	enterB = st.enter[b] + (inTot - inB) - outB
	flowB = st.flow[b] + p

	return
}

// delta is the codelength change of moving a node from a to b.
func (st *modules) delta(a, b int, p, outTot, inTot, outA, inA, outB, inB float64) float64 {
	exitA, enterA, flowA, exitB, enterB, flowB := st.moved(a, b, p, outTot, inTot, outA, inA, outB, inB)

	sumEnter := st.sumEnter - st.enter[a] - st.enter[b] + enterA + enterB
	dEnter := plogp(enterA) + plogp(enterB) - plogp(st.enter[a]) - plogp(st.enter[b])
	dExit := plogp(exitA) + plogp(exitB) - plogp(st.exit[a]) - plogp(st.exit[b])
	dExitFlow := plogp(exitA+flowA) + plogp(exitB+flowB) -
		plogp(st.exit[a]+st.flow[a]) - plogp(st.exit[b]+st.flow[b])

	return plogp(sumEnter) - plogp(st.sumEnter) - dEnter - dExit + dExitFlow
}

// move applies the move evaluated by delta.
func (st *modules) move(a, b int, p, outTot, inTot, outA, inA, outB, inB float64) {
	exitA, enterA, flowA, exitB, enterB, flowB := st.moved(a, b, p, outTot, inTot, outA, inA, outB, inB)

	st.size[a]--
	st.size[b]++
	if st.size[a] == 0 {
		exitA, enterA, flowA = 0, 0, 0
	}

	st.sumEnter += enterA + enterB - st.enter[a] - st.enter[b]
	st.sumPlogpEnter += plogp(enterA) + plogp(enterB) - plogp(st.enter[a]) - plogp(st.enter[b])
	st.sumPlogpExit += plogp(exitA) + plogp(exitB) - plogp(st.exit[a]) - plogp(st.exit[b])
	st.sumPlogpExitFlow += plogp(exitA+flowA) + plogp(exitB+flowB) -
		plogp(st.exit[a]+st.flow[a]) - plogp(st.exit[b]+st.flow[b])

	st.exit[a], st.enter[a], st.flow[a] = exitA, enterA, flowA
	st.exit[b], st.enter[b], st.flow[b] = exitB, enterB, flowB
}

// aggregate collapses the modules of l (dense ids 0..k-1) into super-nodes.
// Arcs are merged per (module, module) pair in order of first appearance.
func aggregate(l *level, mod []int, k int) *level {
	c := &level{
		flow: make([]float64, k),
		out:  make([][]arc, k),
		in:   make([][]arc, k),
	}
	type link struct {
		from, to int
		flow     float64
	}
	index := make(map[[2]int]int)
	links := make([]link, 0)
	var (
		u, pos int
		a      arc
		ok     bool
		key    [2]int
	)
	for u = 0; u < l.size(); u++ {
		c.flow[mod[u]] += l.flow[u]
		for _, a = range l.out[u] {
			if mod[u] == mod[a.to] {
				continue
			}
			key = [2]int{mod[u], mod[a.to]}
			if pos, ok = index[key]; ok {
				links[pos].flow += a.flow
				continue
			}
			index[key] = len(links)
			links = append(links, link{from: key[0], to: key[1], flow: a.flow})
		}
	}
	var lk link
	for _, lk = range links {
		c.out[lk.from] = append(c.out[lk.from], arc{to: lk.to, flow: lk.flow})
		c.in[lk.to] = append(c.in[lk.to], arc{to: lk.from, flow: lk.flow})
	}

	return c
}

// denseLabels relabels mod to 0..k-1 by first appearance and returns k.
func denseLabels(mod []int) ([]int, int) {
	out := relabel(mod)
	k := 0
	var m int
	for _, m = range out {
		if m+1 > k {
			k = m + 1
		}
	}

	return out, k
}

func identity(n int) []int {
	out := make([]int, n)
	var i int
	for i = range out {
		out[i] = i
	}

	return out
}

func plogp(x float64) float64 {
	if x <= 0 {
		return 0
	}

	return x * math.Log2(x)
}
