// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hexlattice/energy"
	"github.com/katalvlaran/hexlattice/relax"
)

// benchTiming is one assembler's cost per Func+Grad evaluation.
type benchTiming struct {
	Kind  energy.Kind
	Evals int
	Total time.Duration
}

// PerEval is the mean wall time of one evaluation.
func (b benchTiming) PerEval() time.Duration {
	if b.Evals == 0 {
		return 0
	}
	return b.Total / time.Duration(b.Evals)
}

func newBenchCmd(a *app) *cobra.Command {
	var evals int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the loop and vectorized energy assemblers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if evals < 1 {
				return fmt.Errorf("evals=%d: %w", evals, errConfig)
			}
			sys, err := relax.Prepare(a.cfg.RelaxConfig())
			if err != nil {
				return err
			}
			var timings []benchTiming
			for _, kind := range []energy.Kind{energy.KindLoop, energy.KindVectorized} {
				obj, err := energy.New(kind, sys.Lattice, sys.Adjacency, a.cfg.Lattice.Stiffness)
				if err != nil {
					return err
				}
				timings = append(timings, timeObjective(kind, obj, evals))
			}
			writeBench(cmd.OutOrStdout(), sys, timings)
			return nil
		},
	}
	cmd.Flags().IntVarP(&evals, "evals", "n", 1000, "Func+Grad evaluations per assembler")
	return cmd
}

// timeObjective evaluates obj at a fixed perturbed point.
func timeObjective(kind energy.Kind, obj energy.Objective, evals int) benchTiming {
	x := obj.Layout().Initial()
	for i := range x {
		x[i] += 1e-3 * float64(i%7)
	}
	grad := make([]float64, len(x))

	start := time.Now()
	for range evals {
		_ = obj.Func(x)
		obj.Grad(grad, x)
	}
	return benchTiming{Kind: kind, Evals: evals, Total: time.Since(start)}
}

func writeBench(w io.Writer, sys *relax.System, timings []benchTiming) {
	fmt.Fprintf(w, "points=%s  bonds=%s  seed=%d\n",
		humanize.Comma(int64(sys.Lattice.Len())),
		humanize.Comma(int64(sys.Adjacency.Count())),
		sys.Seed)
	for _, t := range timings {
		fmt.Fprintf(w, "%-10s  %s evals  %s/eval  total %s\n",
			t.Kind, humanize.Comma(int64(t.Evals)),
			humanize.SIWithDigits(t.PerEval().Seconds(), 2, "s"),
			t.Total.Round(time.Microsecond))
	}
	if len(timings) == 2 && timings[1].PerEval() > 0 {
		fmt.Fprintf(w, "speedup   %.1fx\n", float64(timings[0].PerEval())/float64(timings[1].PerEval()))
	}
}
