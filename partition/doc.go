// Package partition assigns every node of a core.Graph to a module with a
// flow-based community detector and records per-node flow and modular
// centrality.
//
// Overview:
//
//   - Detector is the capability interface; MapEquation is the default and
//     minimizes the two-level map equation (codelength in bits) over a
//     PageRank flow model with unrecorded teleportation.
//   - Partitioner wraps a Detector: it forwards Options unchanged, relabels
//     modules densely, and falls back to singleton modules when the graph
//     has no edges or the Detector reports ErrNotConverged.
//   - Result is the partitioned graph: Module, Flow, ModularCentrality and a
//     Core buffer that the metrics package fills later.
//
// Options:
//
//	Seed               // trial k uses rng.Stream(Seed, k)
//	NumTrials          // restarts, shortest codelength wins
//	MarkovTime         // link-flow scale, larger ⇒ fewer modules
//	VariableMarkovTime // per-node time t·effdeg(u)/mean(effdeg)
//
// Determinism:
//
//	For a fixed graph and Options the Result is identical across runs.
//	No map iteration order and no time-based randomness reach the output.
//
// Helpers:
//
//	GroupByModule(r)   // node sets by ascending module id
//	NumModules(r)
//	Codelength(g, a, opts)
package partition
