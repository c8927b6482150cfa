package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hexlattice/energy"
	"github.com/katalvlaran/hexlattice/lattice"
	"github.com/katalvlaran/hexlattice/relax"
	"github.com/katalvlaran/hexlattice/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexlattice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	require.Equal(t, 10, cfg.Lattice.Dim)
	require.Equal(t, energy.DefaultStiffness, cfg.Lattice.Stiffness)
	require.Equal(t, int64(-1), cfg.Dilution.Seed)
	require.Equal(t, 1, cfg.Sweep.Jobs)
	require.Equal(t, string(store.BackendFile), cfg.Store.Backend)

	rc := cfg.RelaxConfig()
	require.Nil(t, rc.Seed)
	require.Equal(t, relax.MethodCG, rc.Method)
	require.Equal(t, relax.ModeAbsolute, rc.Mode)
	require.Equal(t, relax.DiluteVertex, rc.Dilution)
	require.Equal(t, relax.DefaultGradTol, rc.GradTol)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
lattice:
  dim: 4
  bond_length: 2
displacement:
  mode: sphere
  dv: 0.5
  radius: 3
dilution:
  kind: edge
  perc: 12.5
  seed: 7
solver:
  method: lbfgs
  true_convergence: true
sweep:
  dvs: [0.5, 1, 1.5]
  seeds: [1, 2]
  jobs: 4
store:
  backend: sqlite
  path: runs.db
`)
	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	require.Equal(t, []float64{0.5, 1, 1.5}, cfg.Sweep.DVs)
	require.Equal(t, []int64{1, 2}, cfg.Sweep.Seeds)
	require.Equal(t, 4, cfg.Sweep.Jobs)
	require.Equal(t, "runs.db", cfg.Store.Path)

	rc := cfg.RelaxConfig()
	require.Equal(t, 4, rc.Dim)
	require.Equal(t, 2.0, rc.BondLength)
	require.Equal(t, relax.ModeSphere, rc.Mode)
	require.Equal(t, 3.0, rc.Radius)
	require.Equal(t, relax.DiluteEdge, rc.Dilution)
	require.Equal(t, 12.5, rc.Percentile)
	require.Equal(t, relax.MethodLBFGS, rc.Method)
	require.True(t, rc.TrueConvergence)
	require.NotNil(t, rc.Seed)
	require.Equal(t, int64(7), *rc.Seed)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"dim":      "lattice:\n  dim: 0\n",
		"perc":     "dilution:\n  perc: 120\n",
		"method":   "solver:\n  method: newton\n",
		"jobs":     "sweep:\n  jobs: 0\n",
		"backend":  "store:\n  backend: mongo\n",
		"floor":    "analysis:\n  energy_floor: -1\n",
		"bins":     "analysis:\n  bins: -1\n",
		"sphere":   "displacement:\n  mode: sphere\n",
		"assemble": "solver:\n  assembler: gpu\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(viper.New(), writeConfig(t, body))
			require.Error(t, err)
		})
	}

	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	cfg, err := loadConfig(viper.New(), writeConfig(t, "analysis:\n  bins: 0\n"))
	require.NoError(t, err)
	require.Zero(t, cfg.Analysis.Bins)
}

func TestConfig_Key(t *testing.T) {
	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	_, err = cfg.Key()
	require.ErrorIs(t, err, errConfig)

	cfg.Lattice.Dim = 3
	cfg.Displacement.DV = 0.25
	cfg.Dilution.Perc = 5
	cfg.Dilution.Seed = 11
	k, err := cfg.Key()
	require.NoError(t, err)
	require.Equal(t, store.Key{Dim: 3, DV: 0.25, Perc: 5, Seed: 11}, k)

	cfg.Displacement.Mode = string(relax.ModeFactor)
	cfg.Displacement.Factor = 10
	l, err := lattice.Build(3)
	require.NoError(t, err)
	k, err = cfg.Key()
	require.NoError(t, err)
	require.InDelta(t, 0.1*l.Width(), k.DV, 1e-12)
}

func TestConfig_PlotPath(t *testing.T) {
	cfg := Config{Output: OutputConfig{Dir: "plots", Format: ".svg"}}
	require.Equal(t, filepath.Join("plots", "modulus.svg"), cfg.plotPath("modulus"))
}

func TestSetupLogger(t *testing.T) {
	log, err := setupLogger("debug", os.Stderr)
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, log.GetLevel())

	_, err = setupLogger("loud", os.Stderr)
	require.Error(t, err)
}
