package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func requireFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestRelaxCommand(t *testing.T) {
	dir := t.TempDir()
	results := filepath.Join(dir, "results")
	plots := filepath.Join(dir, "plots")

	out, err := execute("relax", "--dim", "2", "--dv", "0.5", "--seed", "3",
		"--store-path", results, "--out", plots, "--profile")
	require.NoError(t, err)
	require.Contains(t, out, "dim=2_dv=0.5_perc=0_3")
	require.Contains(t, out, "success=true")

	requireFile(t, filepath.Join(results, "dim=2_dv=0.5_perc=0_3.json"))
	requireFile(t, filepath.Join(plots, "profile_dim=2_dv=0.5_perc=0_3.png"))
}

func TestHistogramCommand(t *testing.T) {
	dir := t.TempDir()
	common := []string{"--dim", "2", "--dv", "0.5", "--perc", "10", "--seed", "5",
		"--store", "sqlite", "--store-path", filepath.Join(dir, "runs.db"), "--out", dir}

	_, err := execute(append([]string{"relax"}, common...)...)
	require.NoError(t, err)

	out, err := execute(append([]string{"histogram"}, common...)...)
	require.NoError(t, err)
	require.Contains(t, out, "bonds=")
	requireFile(t, filepath.Join(dir, "elongation_dim=2_dv=0.5_perc=10_5.png"))

	cfgPath := writeConfig(t, "analysis:\n  bins: 0\n")
	_, err = execute(append([]string{"--config", cfgPath, "histogram"}, common...)...)
	require.NoError(t, err)

	_, err = execute("histogram", "--dim", "2", "--store-path", dir)
	require.ErrorIs(t, err, errConfig)
}

func TestSweepAndAnalyze(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, fmt.Sprintf(`
lattice:
  dim: 2
sweep:
  dims: [2, 3]
  dvs: [0.5, 1]
  percs: [0, 10, 20]
  seeds: [1, 2]
  csv: true
store:
  backend: sqlite
  path: %q
analysis:
  convergence_dv: 1
output:
  dir: %q
`, filepath.Join(dir, "runs.db"), dir))

	out, err := execute("--config", cfgPath, "sweep", "-j", "2")
	require.NoError(t, err)
	require.Contains(t, out, "24 runs")

	manifests, err := filepath.Glob(filepath.Join(dir, "sweep_*.yaml"))
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	data, err := os.ReadFile(manifests[0])
	require.NoError(t, err)
	var m sweepManifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	require.Len(t, m.Runs, 24)
	require.Equal(t, "dim=2_dv=0.5_perc=0_1", m.Runs[0].Key)
	require.Equal(t, []int{2, 3}, m.Config.Sweep.Dims)

	csvs, err := filepath.Glob(filepath.Join(dir, "sweep_*.csv"))
	require.NoError(t, err)
	require.Len(t, csvs, 1)

	out, err = execute("--config", cfgPath, "analyze")
	require.NoError(t, err)
	require.Contains(t, out, "mean E")
	require.Contains(t, out, "e/e0")
	require.Contains(t, out, "λ")
	for _, name := range []string{
		"energy_dim=2.png", "modulus_dim=2.png",
		"energy_dim=3.png", "modulus_dim=3.png",
		"convergence.png",
	} {
		requireFile(t, filepath.Join(dir, name))
	}
}

func TestSweep_SeedFile(t *testing.T) {
	dir := t.TempDir()
	seeds := filepath.Join(dir, "seeds.txt")
	require.NoError(t, os.WriteFile(seeds, []byte("4\n\n9\n"), 0o644))
	cfgPath := writeConfig(t, fmt.Sprintf(`
sweep:
  seed_file: %q
`, seeds))

	out, err := execute("--config", cfgPath, "sweep", "--dim", "1",
		"--store-path", filepath.Join(dir, "results"), "--out", dir)
	require.NoError(t, err)
	require.Contains(t, out, "2 runs")
	requireFile(t, filepath.Join(dir, "results", "dim=1_dv=1_perc=0_4.json"))
	requireFile(t, filepath.Join(dir, "results", "dim=1_dv=1_perc=0_9.json"))
}

func TestAnalyze_EmptyStore(t *testing.T) {
	dir := t.TempDir()
	_, err := execute("analyze", "--store-path", dir, "--out", dir)
	require.Error(t, err)
}

func TestBenchCommand(t *testing.T) {
	out, err := execute("bench", "--dim", "3", "--perc", "10", "--seed", "1", "-n", "5")
	require.NoError(t, err)
	require.Contains(t, out, "loop")
	require.Contains(t, out, "vectorized")
	require.Contains(t, out, "5 evals")
}

func TestUnknownBackend(t *testing.T) {
	_, err := execute("relax", "--dim", "1", "--store", "mongo")
	require.ErrorIs(t, err, errConfig)
}
