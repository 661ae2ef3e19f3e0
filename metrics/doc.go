// Package metrics computes closed-form structural measures of a partitioned
// graph and writes the per-node core label.
//
// Measures:
//
//	ModularStrength(r)       // Internal / ExternalOut / ExternalIn per module
//	CoherenceFortress(s)     // Internal share of outgoing / incoming strength
//	CohesionMixing(r)        // network-wide retained share, weighted mixing
//	Mixing(r)                // normalized entropy of retained edge weights
//	Summarize(r)             // all of the above per module
//
// Node measures:
//
//	ComputeNodeMeasures(r, cores, scheme) writes r.Core. Scheme is shared with
//	the sigclu package; ParseScheme reads the configuration spelling
//	(STANDARD, RECURSIVE, NONE).
//
// Numeric policy: every ratio with a zero denominator is 0, so degenerate
// graphs (no edges, isolated nodes, singleton modules) never yield NaN or Inf.
// Only edge weight and node module are read; the graph is never mutated.
package metrics
