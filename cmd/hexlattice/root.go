// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/hexlattice/store"
)

// app carries what every subcommand shares once the root has run.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        Config
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "hexlattice",
		Short: "Relax displaced and diluted hexagonal spring lattices",
		Long: `hexlattice builds a hexagonal lattice of springs, displaces its fixed points,
dilutes its bonds and minimizes the elastic energy. Results are stored per
(dim, dv, perc, seed) and analyzed into energy laws and a dilution modulus.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.v, a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log, err = setupLogger(cfg.Output.LogLevel, cmd.ErrOrStderr())
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("store", string(store.BackendFile), "result store backend: file|sqlite")
	pf.String("store-path", "results", "result directory (file) or database path (sqlite)")
	pf.String("out", ".", "directory for plots and sweep summaries")
	pf.Int("dim", 10, "lattice dimension")
	pf.Float64("dv", 1, "displacement of the fixed points")
	pf.Float64("perc", 0, "dilution percentile")
	pf.Int64("seed", -1, "dilution seed; negative draws one")
	pf.String("method", "CG", "minimizer: CG, BFGS, LBFGS, GD")

	for key, flag := range map[string]string{
		"output.log_level": "log-level",
		"store.backend":    "store",
		"store.path":       "store-path",
		"output.dir":       "out",
		"lattice.dim":      "dim",
		"displacement.dv":  "dv",
		"dilution.perc":    "perc",
		"dilution.seed":    "seed",
		"solver.method":    "method",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newRelaxCmd(a),
		newSweepCmd(a),
		newAnalyzeCmd(a),
		newHistogramCmd(a),
		newBenchCmd(a),
	)
	return root
}

// setupLogger builds the command logger: text output with full timestamps.
func setupLogger(level string, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("output.log_level: %w", err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// openStore opens the configured result store.
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, store.Backend(a.cfg.Store.Backend), a.cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{"backend": a.cfg.Store.Backend, "path": a.cfg.Store.Path}).Debug("store opened")
	return st, nil
}

// ensureOutputDir creates the output directory.
func (a *app) ensureOutputDir() error {
	return os.MkdirAll(a.cfg.Output.Dir, 0o755)
}
