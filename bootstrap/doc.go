// Package bootstrap produces ensembles of graph replicas whose edge weights
// are resampled from Poisson distributions centred on the observed weights.
//
// Every replica shares the original's frozen topology (same nodes, same
// edges, same indices); only the weight buffer differs. Edges that draw 0
// stay in the topology with weight 0 and weight_norm 0.
//
// Usage:
//
//	ens, err := bootstrap.Generate(ctx, g, bootstrap.Options{
//		NumBootstraps: 100,
//		Seed:          7,
//	})
//
// Replica i is a pure function of (g, Seed, i), so ensembles are
// reproducible and independent of the number of workers.
package bootstrap
