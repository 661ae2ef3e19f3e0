// SPDX-License-Identifier: MIT
// Package: netsig/builder

// Package builder turns raw observations into a normalized core.Graph.
//
// Two entry points:
//
//	FromTransitions(pairs)         // (source,target) observations, weight += 1 per pair
//	FromTrajectories(points, res)  // binned positions → consecutive-cell transitions
//
// Both finish with core.Graph.Normalize, so weight_norm is ready for the
// partitioner. Accumulate merges several batches into one graph before a
// single Normalize call.
//
// Determinism: same input order ⇒ identical node and edge indices.
package builder
