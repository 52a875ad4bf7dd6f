// Command mgsolve solves the manufactured 2D Poisson problem with geometric
// multigrid and benchmarks hierarchy depths.
//
//	mgsolve solve -n 128 --levels 3 --plot residuals.png
//	mgsolve bench --sizes 16,32,64 --csv mg.csv --db runs.db
//	mgsolve version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
