// SPDX-License-Identifier: MIT
// Package: hexlattice/relax
//
// config.go — run configuration, enumerations and validation.

package relax

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/hexlattice/energy"
	"github.com/katalvlaran/hexlattice/lattice"
)

// Mode selects how fixed points are displaced.
type Mode string

const (
	// ModeAbsolute lifts the boundary to z = Displacement.
	ModeAbsolute Mode = "absolute"
	// ModeFactor lifts the boundary to Factor% of the lattice width.
	ModeFactor Mode = "factor"
	// ModeSphere presses a sphere of Radius with its apex at z = Displacement.
	ModeSphere Mode = "sphere"
)

// DilutionKind selects what a dilution trial removes.
type DilutionKind string

const (
	// DiluteVertex removes every bond of a chosen point.
	DiluteVertex DilutionKind = "vertex"
	// DiluteEdge removes single bonds.
	DiluteEdge DilutionKind = "edge"
)

// Method names a gradient-based minimizer.
type Method string

const (
	MethodCG    Method = "CG"
	MethodBFGS  Method = "BFGS"
	MethodLBFGS Method = "LBFGS"
	MethodGD    Method = "GD"
)

// optimizer returns a fresh gonum method for m.
func (m Method) optimizer() (optimize.Method, error) {
	switch m {
	case MethodCG:
		return &optimize.CG{}, nil
	case MethodBFGS:
		return &optimize.BFGS{}, nil
	case MethodLBFGS:
		return &optimize.LBFGS{}, nil
	case MethodGD:
		return &optimize.GradientDescent{}, nil
	default:
		return nil, fmt.Errorf("method %q: %w", m, ErrInvalidConfig)
	}
}

// Defaults applied by Config.withDefaults to zero-valued fields.
const (
	DefaultGradTol = 1e-5

	// trueGradTol is the gradient threshold under TrueConvergence.
	trueGradTol = 1e-10
	// functionTol and functionIters parametrize the relative-progress converger.
	functionTol   = 1e-10
	functionIters = 100
)

// Config parametrizes one relaxation.
type Config struct {
	Dim        int     // hexagonal extent, ≥ 1
	BondLength float64 // lattice constant d; 0 means lattice.DefaultBondLength
	Stiffness  float64 // spring constant k; 0 means energy.DefaultStiffness

	Mode         Mode    // displacement mode; "" means ModeAbsolute
	Displacement float64 // dv for ModeAbsolute, apex height for ModeSphere
	Factor       float64 // percentage of the width for ModeFactor
	Radius       float64 // sphere radius for ModeSphere

	Percentile float64      // dilution percentile in [0,100]
	Dilution   DilutionKind // "" means DiluteVertex
	Seed       *int64       // nil draws a seed; the drawn value lands in Result.Seed

	Method          Method  // "" means MethodCG
	GradTol         float64 // gradient norm threshold; 0 means DefaultGradTol
	TrueConvergence bool    // disable early exits on slow progress
	MaxIterations   int     // major iteration cap; 0 means unlimited

	Assembler energy.Kind // "" means energy.KindVectorized
	X0        []float64   // initial guess; nil means zero displacement
}

// Int64 returns a pointer to v, for Config.Seed literals.
func Int64(v int64) *int64 { return &v }

// withDefaults fills zero-valued fields.
func (c Config) withDefaults() Config {
	if c.BondLength == 0 {
		c.BondLength = lattice.DefaultBondLength
	}
	if c.Stiffness == 0 {
		c.Stiffness = energy.DefaultStiffness
	}
	if c.Mode == "" {
		c.Mode = ModeAbsolute
	}
	if c.Dilution == "" {
		c.Dilution = DiluteVertex
	}
	if c.Method == "" {
		c.Method = MethodCG
	}
	if c.GradTol == 0 {
		c.GradTol = DefaultGradTol
	}
	if c.Assembler == "" {
		c.Assembler = energy.KindVectorized
	}
	return c
}

// Validate reports the first field outside its domain, wrapped in ErrInvalidConfig.
// Zero values that have defaults are accepted.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.Dim < lattice.MinDim:
		return fmt.Errorf("dim=%d: %w", c.Dim, ErrInvalidConfig)
	case !finite(c.Displacement) || !finite(c.Factor):
		return fmt.Errorf("displacement must be finite: %w", ErrInvalidConfig)
	case !finite(c.Percentile) || c.Percentile < 0 || c.Percentile > 100:
		return fmt.Errorf("percentile=%g: %w", c.Percentile, ErrInvalidConfig)
	case c.GradTol < 0 || !finite(c.GradTol):
		return fmt.Errorf("grad tol=%g: %w", c.GradTol, ErrInvalidConfig)
	case c.MaxIterations < 0:
		return fmt.Errorf("max iterations=%d: %w", c.MaxIterations, ErrInvalidConfig)
	}
	switch c.Mode {
	case ModeAbsolute, ModeFactor:
	case ModeSphere:
		if c.Radius <= 0 || !finite(c.Radius) {
			return fmt.Errorf("sphere radius=%g: %w", c.Radius, ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("mode %q: %w", c.Mode, ErrInvalidConfig)
	}
	switch c.Dilution {
	case DiluteVertex, DiluteEdge:
	default:
		return fmt.Errorf("dilution %q: %w", c.Dilution, ErrInvalidConfig)
	}
	if _, err := c.Method.optimizer(); err != nil {
		return err
	}
	switch c.Assembler {
	case energy.KindLoop, energy.KindVectorized:
	default:
		return fmt.Errorf("assembler %q: %w", c.Assembler, ErrInvalidConfig)
	}
	return nil
}

// settings translates the convergence fields into gonum settings.
func (c Config) settings() *optimize.Settings {
	s := &optimize.Settings{
		GradientThreshold: c.GradTol,
		MajorIterations:   c.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   functionTol,
			Iterations: functionIters,
		},
	}
	if c.TrueConvergence {
		s.GradientThreshold = math.Min(trueGradTol, c.GradTol)
		s.Converger = optimize.NeverTerminate{}
	}
	return s
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
