// SPDX-License-Identifier: MIT

// Command hexlattice runs, sweeps and analyzes hexagonal spring lattice
// relaxations.
//
//	hexlattice relax --dim 10 --dv 1 --perc 5 --seed 42
//	hexlattice sweep --config sweep.yaml
//	hexlattice analyze --store-path results --out plots
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
