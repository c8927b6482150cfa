// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/hexlattice/energy"
	"github.com/katalvlaran/hexlattice/relax"
	"github.com/katalvlaran/hexlattice/store"
)

// errConfig marks a configuration the commands cannot run with.
var errConfig = errors.New("hexlattice: invalid config")

// LatticeConfig sizes the honeycomb patch and its springs.
type LatticeConfig struct {
	Dim        int     `mapstructure:"dim" yaml:"dim"`
	BondLength float64 `mapstructure:"bond_length" yaml:"bond_length"`
	Stiffness  float64 `mapstructure:"stiffness" yaml:"stiffness"`
}

// DisplacementConfig selects how the fixed points are moved: mode is
// absolute, factor or sphere.
type DisplacementConfig struct {
	Mode   string  `mapstructure:"mode" yaml:"mode"`
	DV     float64 `mapstructure:"dv" yaml:"dv"`
	Factor float64 `mapstructure:"factor" yaml:"factor"`
	Radius float64 `mapstructure:"radius" yaml:"radius"`
}

// DilutionConfig is the random bond removal of a single run.
type DilutionConfig struct {
	Kind string  `mapstructure:"kind" yaml:"kind"`
	Perc float64 `mapstructure:"perc" yaml:"perc"`
	Seed int64   `mapstructure:"seed" yaml:"seed"` // < 0 draws a seed
}

// SolverConfig configures the minimizer and the energy assembler.
type SolverConfig struct {
	Method          string  `mapstructure:"method" yaml:"method"`
	GradTol         float64 `mapstructure:"grad_tol" yaml:"grad_tol"`
	TrueConvergence bool    `mapstructure:"true_convergence" yaml:"true_convergence"`
	MaxIterations   int     `mapstructure:"max_iterations" yaml:"max_iterations"`
	Assembler       string  `mapstructure:"assembler" yaml:"assembler"`
}

// SweepConfig spans the grid of runs the sweep command executes. Empty lists
// fall back to the single-run value.
type SweepConfig struct {
	Dims     []int     `mapstructure:"dims" yaml:"dims"`
	DVs      []float64 `mapstructure:"dvs" yaml:"dvs"`
	Percs    []float64 `mapstructure:"percs" yaml:"percs"`
	Seeds    []int64   `mapstructure:"seeds" yaml:"seeds"`
	SeedFile string    `mapstructure:"seed_file" yaml:"seed_file"`
	Runs     int       `mapstructure:"runs" yaml:"runs"`
	Jobs     int       `mapstructure:"jobs" yaml:"jobs"`
	CSV      bool      `mapstructure:"csv" yaml:"csv"`
}

// StoreConfig names the result backend (file or sqlite) and its location.
type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// AnalysisConfig tunes the fits and figures of analyze and histogram.
type AnalysisConfig struct {
	Exponent      float64 `mapstructure:"exponent" yaml:"exponent"`
	Shift         float64 `mapstructure:"shift" yaml:"shift"`
	EnergyFloor   float64 `mapstructure:"energy_floor" yaml:"energy_floor"` // 0 disables the filter
	ConvergenceDV float64 `mapstructure:"convergence_dv" yaml:"convergence_dv"`
	Bins          int     `mapstructure:"bins" yaml:"bins"` // 0 picks the Sturges count
}

// OutputConfig is where figures go and how verbose the logger is.
type OutputConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Format   string `mapstructure:"format" yaml:"format"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Config is the whole command configuration, as read from YAML.
type Config struct {
	Lattice      LatticeConfig      `mapstructure:"lattice" yaml:"lattice"`
	Displacement DisplacementConfig `mapstructure:"displacement" yaml:"displacement"`
	Dilution     DilutionConfig     `mapstructure:"dilution" yaml:"dilution"`
	Solver       SolverConfig       `mapstructure:"solver" yaml:"solver"`
	Sweep        SweepConfig        `mapstructure:"sweep" yaml:"sweep"`
	Store        StoreConfig        `mapstructure:"store" yaml:"store"`
	Analysis     AnalysisConfig     `mapstructure:"analysis" yaml:"analysis"`
	Output       OutputConfig       `mapstructure:"output" yaml:"output"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lattice.dim", 10)
	v.SetDefault("lattice.bond_length", 1.0)
	v.SetDefault("lattice.stiffness", energy.DefaultStiffness)

	v.SetDefault("displacement.mode", string(relax.ModeAbsolute))
	v.SetDefault("displacement.dv", 1.0)

	v.SetDefault("dilution.kind", string(relax.DiluteVertex))
	v.SetDefault("dilution.perc", 0.0)
	v.SetDefault("dilution.seed", -1)

	v.SetDefault("solver.method", string(relax.MethodCG))
	v.SetDefault("solver.grad_tol", relax.DefaultGradTol)
	v.SetDefault("solver.assembler", string(energy.KindVectorized))

	v.SetDefault("sweep.runs", 1)
	v.SetDefault("sweep.jobs", 1)

	v.SetDefault("store.backend", string(store.BackendFile))
	v.SetDefault("store.path", "results")

	v.SetDefault("analysis.exponent", 4.0)
	v.SetDefault("analysis.bins", 50)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.format", "png")
	v.SetDefault("output.log_level", "info")
}

// loadConfig reads path (when non-empty) on top of the defaults. Flags bound
// to v take precedence over both.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks what relax.Config.Validate cannot see.
func (c Config) Validate() error {
	if err := c.RelaxConfig().Validate(); err != nil {
		return err
	}
	switch {
	case c.Sweep.Jobs < 1:
		return fmt.Errorf("sweep.jobs=%d: %w", c.Sweep.Jobs, errConfig)
	case c.Sweep.Runs < 1:
		return fmt.Errorf("sweep.runs=%d: %w", c.Sweep.Runs, errConfig)
	case c.Analysis.Bins < 0:
		return fmt.Errorf("analysis.bins=%d: %w", c.Analysis.Bins, errConfig)
	case c.Analysis.EnergyFloor < 0:
		return fmt.Errorf("analysis.energy_floor=%g: %w", c.Analysis.EnergyFloor, errConfig)
	case strings.TrimSpace(c.Output.Format) == "":
		return fmt.Errorf("output.format is empty: %w", errConfig)
	}
	switch store.Backend(c.Store.Backend) {
	case store.BackendFile, store.BackendSQLite:
	default:
		return fmt.Errorf("store.backend %q: %w", c.Store.Backend, errConfig)
	}
	return nil
}

// RelaxConfig maps the single-run fields onto relax.Config.
func (c Config) RelaxConfig() relax.Config {
	rc := relax.Config{
		Dim:             c.Lattice.Dim,
		BondLength:      c.Lattice.BondLength,
		Stiffness:       c.Lattice.Stiffness,
		Mode:            relax.Mode(c.Displacement.Mode),
		Displacement:    c.Displacement.DV,
		Factor:          c.Displacement.Factor,
		Radius:          c.Displacement.Radius,
		Percentile:      c.Dilution.Perc,
		Dilution:        relax.DilutionKind(c.Dilution.Kind),
		Method:          relax.Method(strings.ToUpper(c.Solver.Method)),
		GradTol:         c.Solver.GradTol,
		TrueConvergence: c.Solver.TrueConvergence,
		MaxIterations:   c.Solver.MaxIterations,
		Assembler:       energy.Kind(c.Solver.Assembler),
	}
	if c.Dilution.Seed >= 0 {
		rc.Seed = relax.Int64(c.Dilution.Seed)
	}
	return rc
}

// Key is the store key of the single run the config names. A drawn seed has
// no key. In factor mode the applied displacement is resolved by preparing
// the system.
func (c Config) Key() (store.Key, error) {
	if c.Dilution.Seed < 0 {
		return store.Key{}, fmt.Errorf("dilution.seed must be set to address a stored result: %w", errConfig)
	}
	k := store.Key{Dim: c.Lattice.Dim, DV: c.Displacement.DV, Perc: c.Dilution.Perc, Seed: c.Dilution.Seed}
	if relax.Mode(c.Displacement.Mode) == relax.ModeFactor {
		sys, err := relax.Prepare(c.RelaxConfig())
		if err != nil {
			return store.Key{}, err
		}
		k.DV = sys.DV
	}
	return k, nil
}

// plotPath names an output figure.
func (c Config) plotPath(name string) string {
	return filepath.Join(c.Output.Dir, name+"."+strings.TrimPrefix(c.Output.Format, "."))
}
