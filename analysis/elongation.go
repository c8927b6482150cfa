// SPDX-License-Identifier: MIT
// Package: hexlattice/analysis
//
// elongation.go — per-bond elongations of a stored solution and the
// dimension scaling of the relaxed energy.

package analysis

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/hexlattice/energy"
	"github.com/katalvlaran/hexlattice/relax"
)

// Elongations rebuilds the system of sim from its key and returns the realized
// length minus rest length of every active bond. base supplies what the key
// does not record (bond length, displacement mode, sphere radius, dilution
// kind); its Dim, Displacement, Percentile and Seed are replaced by the key.
// The key's dv is the applied displacement, so factor mode is replayed as
// absolute mode.
func Elongations(sim Simulation, base relax.Config) ([]float64, error) {
	cfg := base
	cfg.Dim = sim.Key.Dim
	cfg.Displacement = sim.Key.DV
	cfg.Percentile = sim.Key.Perc
	cfg.Seed = relax.Int64(sim.Key.Seed)
	cfg.X0 = nil
	if cfg.Mode == relax.ModeFactor {
		cfg.Mode = relax.ModeAbsolute
	}
	sys, err := relax.Prepare(cfg)
	if err != nil {
		return nil, fmt.Errorf("Elongations(%s): %w", sim.Key, err)
	}
	dl, err := energy.Elongations(sys.Lattice, sys.Adjacency, sim.X)
	if err != nil {
		return nil, fmt.Errorf("Elongations(%s): %w", sim.Key, err)
	}
	return dl, nil
}

// ElongationStats summarizes a set of elongations.
type ElongationStats struct {
	Max  float64
	Mean float64
	Std  float64 // population
	N    int
}

// SummarizeElongations returns max, mean and spread of dl.
func SummarizeElongations(dl []float64) (ElongationStats, error) {
	if len(dl) == 0 {
		return ElongationStats{}, fmt.Errorf("SummarizeElongations: %w", ErrTooFewPoints)
	}
	mean, std := stat.PopMeanStdDev(dl, nil)
	return ElongationStats{Max: floats.Max(dl), Mean: mean, Std: std, N: len(dl)}, nil
}

// Convergence is the relaxed energy of undiluted lattices against dimension.
type Convergence struct {
	DV       float64
	Dims     []float64
	Energies []float64 // seed mean per dimension
	Fit      Fit       // E = a·dim⁻²
	// Lambda is a/dv⁴, the material constant of E = λ·dv⁴/dim².
	Lambda    float64
	LambdaErr float64
}

// EnergyConvergence collects the undiluted simulations at displacement dv and
// fits E = a/dim².
//
// Errors: ErrDegenerate (dv = 0), FitMonomial errors.
func EnergyConvergence(sims []Simulation, dv float64) (Convergence, error) {
	const method = "EnergyConvergence"
	if dv == 0 {
		return Convergence{}, fmt.Errorf("%s: dv=0: %w", method, ErrDegenerate)
	}
	byDim := make(map[int][]float64)
	for _, s := range sims {
		if s.Key.DV == dv && s.Key.Perc == 0 {
			byDim[s.Key.Dim] = append(byDim[s.Key.Dim], s.Energy)
		}
	}
	dims := make([]int, 0, len(byDim))
	for d := range byDim {
		dims = append(dims, d)
	}
	slices.Sort(dims)

	c := Convergence{DV: dv}
	for _, d := range dims {
		c.Dims = append(c.Dims, float64(d))
		c.Energies = append(c.Energies, stat.Mean(byDim[d], nil))
	}
	fit, err := FitMonomial(c.Dims, c.Energies, -2, 0)
	if err != nil {
		return Convergence{}, fmt.Errorf("%s: %w", method, err)
	}
	dv4 := math.Pow(dv, 4)
	c.Fit = fit
	c.Lambda = fit.Params[0] / dv4
	c.LambdaErr = fit.Errors[0] / dv4
	return c, nil
}
