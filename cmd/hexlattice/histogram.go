// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hexlattice/analysis"
	"github.com/katalvlaran/hexlattice/render"
)

func newHistogramCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "histogram",
		Short: "Bond elongation statistics of one stored result",
		Long: `histogram loads the result addressed by --dim, --dv, --perc and --seed,
rebuilds its lattice and prints the max, mean and spread of the bond
elongations, then draws their histogram.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			key, err := a.cfg.Key()
			if err != nil {
				return err
			}
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.Load(ctx, key)
			if err != nil {
				return err
			}
			sim := analysis.Simulation{Key: key, Energy: rec.Energy, Success: rec.Success, X: rec.X}
			dl, err := analysis.Elongations(sim, a.cfg.RelaxConfig())
			if err != nil {
				return err
			}
			stats, err := analysis.SummarizeElongations(dl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  bonds=%d  max=%.6g  mean=%.6g  std=%.3g\n",
				key, stats.N, stats.Max, stats.Mean, stats.Std)

			if err = a.ensureOutputDir(); err != nil {
				return err
			}
			path := a.cfg.plotPath("elongation_" + key.String())
			if err = render.Histogram(path, dl, a.cfg.Analysis.Bins); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "histogram: %s\n", path)
			return nil
		},
	}
}
