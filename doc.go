// Package netsig finds the robust part of every community in a weighted,
// directed transition network.
//
// A run has four phases:
//
//	builder/, edgelist/  build a graph from transitions, trajectories or a CSV edge list
//	partition/           flow-based community detection (map equation, Markov time)
//	bootstrap/           Poisson resampling of edge weights onto the shared topology
//	sigclu/              per-module significance cores from co-assignment over replicas
//
// metrics/ derives node and module measures (flow, modular centrality,
// coherence, fortress, mixing, core rank), export/ writes them as Parquet and
// pipeline/ wires everything together behind cmd/netsig.
//
// Quick example:
//
//	A ⇄ B    C ⇄ D      two strongly linked pairs
//
//	g := core.NewGraph()
//	_, _ = g.AddEdge("A", "B", 40) // likewise B→A, C→D, D→C
//	rep, err := p.Run(ctx, g)      // 2 modules, cores {A B} and {C D}
//
//	go install github.com/katalvlaran/netsig/cmd/netsig@latest
package netsig
