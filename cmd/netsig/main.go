// Command netsig partitions a transition network and extracts its
// statistically significant cores.
//
//	netsig run --config netsig.yaml --edges edges.csv --nodes nodes.parquet
//	netsig run --trajectories points.csv --modules modules.parquet
//	netsig version
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
