// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hexlattice/analysis"
	"github.com/katalvlaran/hexlattice/render"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Summarize stored results, fit the modulus and draw the plots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			sims, err := analysis.LoadAll(ctx, st)
			if err != nil {
				return err
			}
			if len(sims) == 0 {
				return fmt.Errorf("no results in %s", a.cfg.Store.Path)
			}
			if err = a.ensureOutputDir(); err != nil {
				return err
			}
			return a.analyze(cmd.OutOrStdout(), sims)
		},
	}
}

func (a *app) analyze(out io.Writer, sims []analysis.Simulation) error {
	var opts []analysis.Option
	if a.cfg.Analysis.EnergyFloor > 0 {
		opts = append(opts, analysis.WithEnergyFloor(a.cfg.Analysis.EnergyFloor))
	}
	summaries := analysis.MeanEnergyVsDV(sims, opts...)
	writeSummaries(out, summaries)

	byDim := make(map[int][]analysis.Summary)
	var dims []int
	for _, s := range summaries {
		if _, ok := byDim[s.Dim]; !ok {
			dims = append(dims, s.Dim)
		}
		byDim[s.Dim] = append(byDim[s.Dim], s)
	}
	slices.Sort(dims)

	for _, dim := range dims {
		group := byDim[dim]
		log := a.log.WithField("dim", dim)
		mod, err := analysis.ModulusVsDilution(group, a.cfg.Analysis.Exponent, a.cfg.Analysis.Shift)
		switch {
		case err == nil:
			fmt.Fprintf(out, "dim=%d  e/e0 = %.4g(±%.2g)·perc + %.4g(±%.2g)  R²=%.4f\n",
				dim, mod.Linear.Params[0], mod.Linear.Errors[0],
				mod.Linear.Params[1], mod.Linear.Errors[1], mod.Linear.RSquared)
		case len(mod.Points) > 0:
			log.WithError(err).Warn("modulus fit skipped")
		default:
			log.WithError(err).Warn("energy law fit skipped")
		}

		name := "dim=" + strconv.Itoa(dim)
		if err = render.EnergyVsDV(a.cfg.plotPath("energy_"+name), group, mod.Points); err != nil {
			return err
		}
		if len(mod.Points) > 0 {
			if err = render.Modulus(a.cfg.plotPath("modulus_"+name), mod); err != nil {
				return err
			}
		}
	}

	if dv := a.cfg.Analysis.ConvergenceDV; dv > 0 {
		conv, err := analysis.EnergyConvergence(sims, dv)
		if errors.Is(err, analysis.ErrTooFewPoints) {
			a.log.WithFields(logrus.Fields{"dv": dv}).Warn("too few dimensions for the convergence fit")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "dv=%g  λ = %.6g ± %.2g\n", dv, conv.Lambda, conv.LambdaErr)
		if err = render.Convergence(a.cfg.plotPath("convergence"), conv); err != nil {
			return err
		}
	}
	return nil
}

func writeSummaries(out io.Writer, summaries []analysis.Summary) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "dim\tdv\tperc\tn\tmean E\tstd E")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%g\t%g\t%d\t%.6g\t%.3g\n", s.Dim, s.DV, s.Perc, s.N, s.Mean, s.Std)
	}
	_ = tw.Flush()
}
