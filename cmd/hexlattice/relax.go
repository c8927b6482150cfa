// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hexlattice/relax"
	"github.com/katalvlaran/hexlattice/render"
	"github.com/katalvlaran/hexlattice/store"
)

// profileTol is the |y| half-width of the profile cut.
const profileTol = 0.1

func newRelaxCmd(a *app) *cobra.Command {
	var profile bool
	cmd := &cobra.Command{
		Use:   "relax",
		Short: "Run one relaxation and store the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := a.relaxAndSave(cmd.Context(), st, a.cfg.RelaxConfig())
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)

			if !profile {
				return nil
			}
			pos, err := res.Positions()
			if err != nil {
				return err
			}
			if err = a.ensureOutputDir(); err != nil {
				return err
			}
			path := a.cfg.plotPath("profile_" + res.Key().Filename(""))
			if err = render.Profile(path, pos, profileTol*a.cfg.Lattice.BondLength); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&profile, "profile", false, "draw the y≈0 profile of the relaxed lattice")
	return cmd
}

// relaxAndSave runs cfg and persists the outcome, converged or not.
func (a *app) relaxAndSave(ctx context.Context, st store.Store, cfg relax.Config) (*relax.Result, error) {
	res, err := relax.Run(ctx, cfg, relax.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	if err = st.Save(ctx, res.Key(), res.Record()); err != nil {
		return nil, err
	}
	return res, nil
}

func printResult(w io.Writer, res *relax.Result) {
	fmt.Fprintf(w, "%s  energy=%.6g  success=%t  iterations=%d  status=%s\n",
		res.Key(), res.Energy, res.Success, res.Iterations, res.Message)
}
