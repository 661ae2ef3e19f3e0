// Package pipeline runs the full netsig analysis over one graph:
//
//	normalize → partition → { metrics | bootstrap → sigclu } → node_measures
//
// Each run gets a uuid run ID used in logs and the Report. Failures are
// *StageError values naming the stage; errors.Is still matches the cause.
// An optional Collector exposes stage durations, run outcomes and the last
// run's module and core counts on a private Prometheus registry.
package pipeline
