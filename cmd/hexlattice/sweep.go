// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hexlattice/relax"
	"github.com/katalvlaran/hexlattice/store"
)

// sweepRun is the manifest line of one relaxation.
type sweepRun struct {
	Key        string  `yaml:"key"`
	Energy     float64 `yaml:"energy"`
	Success    bool    `yaml:"success"`
	Message    string  `yaml:"message"`
	Iterations int     `yaml:"iterations"`
	Runtime    string  `yaml:"runtime"`
}

// sweepManifest is written next to the sweep results.
type sweepManifest struct {
	Started time.Time  `yaml:"started"`
	Elapsed string     `yaml:"elapsed"`
	Config  Config     `yaml:"config"`
	Runs    []sweepRun `yaml:"runs"`
}

func newSweepCmd(a *app) *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Relax every (dim, dv, perc, seed) of the sweep grid",
		Long: `sweep runs the grid sweep.dims × sweep.dvs × sweep.percs × seeds. Empty
grid axes fall back to the single-run value. Seeds come from sweep.seed_file,
else sweep.seeds, else sweep.runs drawn seeds. In factor mode the dvs are
percentages of the lattice width.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("jobs") {
				a.cfg.Sweep.Jobs = jobs
			}
			if a.cfg.Sweep.Jobs < 1 {
				return fmt.Errorf("jobs=%d: %w", a.cfg.Sweep.Jobs, errConfig)
			}
			return a.sweep(cmd, time.Now())
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "relaxations run side by side")
	return cmd
}

func (a *app) sweep(cmd *cobra.Command, started time.Time) error {
	ctx := cmd.Context()
	tasks, err := a.sweepTasks()
	if err != nil {
		return err
	}
	if err = a.ensureOutputDir(); err != nil {
		return err
	}
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	a.log.WithFields(logrus.Fields{
		"runs": len(tasks),
		"jobs": a.cfg.Sweep.Jobs,
	}).Info("sweep started")

	runs, err := a.runAll(ctx, st, tasks)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	energies := make([]float64, len(runs))
	converged := 0
	for i, r := range runs {
		energies[i] = r.Energy
		if r.Success {
			converged++
		}
	}

	manifest := sweepManifest{
		Started: started,
		Elapsed: elapsed.Round(time.Millisecond).String(),
		Config:  a.cfg,
		Runs:    runs,
	}
	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return err
	}
	manifestPath := filepath.Join(a.cfg.Output.Dir, "sweep_"+started.Format(store.SweepTimeLayout)+".yaml")
	if err = os.WriteFile(manifestPath, data, 0o644); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s runs, %s converged, %s\n",
		humanize.Comma(int64(len(runs))), humanize.Comma(int64(converged)), manifest.Elapsed)
	fmt.Fprintf(out, "manifest: %s\n", manifestPath)
	if a.cfg.Sweep.CSV {
		csvPath, err := store.WriteSweepCSV(a.cfg.Output.Dir, energies, started)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "csv: %s\n", csvPath)
	}
	return nil
}

// runAll relaxes tasks with at most Sweep.Jobs in flight. The first failure
// cancels the runs not yet finished.
func (a *app) runAll(ctx context.Context, st store.Store, tasks []relax.Config) ([]sweepRun, error) {
	runs := make([]sweepRun, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Sweep.Jobs)
	for i, task := range tasks {
		g.Go(func() error {
			res, err := a.relaxAndSave(gctx, st, task)
			if err != nil {
				return fmt.Errorf("sweep run %d: %w", i, err)
			}
			runs[i] = sweepRun{
				Key:        res.Key().String(),
				Energy:     res.Energy,
				Success:    res.Success,
				Message:    res.Message,
				Iterations: res.Iterations,
				Runtime:    res.Runtime.String(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

// sweepTasks expands the sweep grid into single-run configurations.
func (a *app) sweepTasks() ([]relax.Config, error) {
	sw := a.cfg.Sweep
	dims := sw.Dims
	if len(dims) == 0 {
		dims = []int{a.cfg.Lattice.Dim}
	}
	dvs := sw.DVs
	if len(dvs) == 0 {
		dvs = []float64{a.cfg.Displacement.DV}
		if relax.Mode(a.cfg.Displacement.Mode) == relax.ModeFactor {
			dvs = []float64{a.cfg.Displacement.Factor}
		}
	}
	percs := sw.Percs
	if len(percs) == 0 {
		percs = []float64{a.cfg.Dilution.Perc}
	}

	var seeds []*int64
	switch {
	case sw.SeedFile != "":
		list, err := store.ReadSeeds(sw.SeedFile)
		if err != nil {
			return nil, err
		}
		for _, s := range list {
			seeds = append(seeds, relax.Int64(s))
		}
	case len(sw.Seeds) > 0:
		for _, s := range sw.Seeds {
			seeds = append(seeds, relax.Int64(s))
		}
	default:
		seeds = make([]*int64, sw.Runs)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("sweep has no seeds: %w", errConfig)
	}

	base := a.cfg.RelaxConfig()
	tasks := make([]relax.Config, 0, len(dims)*len(dvs)*len(percs)*len(seeds))
	for _, dim := range dims {
		for _, dv := range dvs {
			for _, perc := range percs {
				for _, seed := range seeds {
					t := base
					t.Dim = dim
					t.Percentile = perc
					t.Seed = seed
					if t.Mode == relax.ModeFactor {
						t.Factor = dv
					} else {
						t.Displacement = dv
					}
					if err := t.Validate(); err != nil {
						return nil, err
					}
					tasks = append(tasks, t)
				}
			}
		}
	}
	return tasks, nil
}
