// Package sigclu extracts the statistically robust "cores" of a partition:
// the members of each module that stay together when edge weights are
// resampled.
//
// Schemes (metrics.Scheme):
//
//	NONE       // no cores
//	STANDARD   // one core per reference module
//	RECURSIVE  // nested cores over the whole node set, largest first
//
// The statistic itself lives behind the Tester interface. A TesterFactory
// builds one Tester per reference partition; the default, NewCoassignment,
// keeps the largest greedily found subset that is co-assigned in at least
// Config.Confidence of the bootstrap partitions.
//
// The Clusterer partitions every bootstrap replica with the same
// partition.Partitioner and Options as the reference (seed held fixed), so
// only edge weights differ between reference and replicas.
//
// Tester output is checked: a wrong number of sets or a core that is not a
// subset of its input set fails with ErrContractViolation.
package sigclu
