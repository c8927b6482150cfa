// SPDX-License-Identifier: MIT
// Package: hexlattice/relax
//
// relax.go — the end-to-end pipeline:
//
//	lattice → displacement → topology → dilution → objective → optimize.Minimize
//
// Every stage is deterministic given Config (with its seed resolved).

package relax

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/hexlattice/energy"
	"github.com/katalvlaran/hexlattice/lattice"
	"github.com/katalvlaran/hexlattice/topology"
)

const (
	methodRun     = "Run"
	methodPrepare = "Prepare"
)

// Run executes one relaxation.
//
// Errors: ErrInvalidConfig, lattice and topology construction errors,
// ErrNoMobilePoints, ErrBadInitialGuess, ctx.Err(). A minimizer that stops
// without converging is not an error: see Result.Success.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Result, error) {
	o := newOptions(opts...)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}
	sys, err := Prepare(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}
	cfg = cfg.withDefaults()
	l, adj, dv, seed := sys.Lattice, sys.Adjacency, sys.DV, sys.Seed

	obj, err := energy.New(cfg.Assembler, l, adj, cfg.Stiffness)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}
	lay := obj.Layout()
	if lay.Dim() == 0 {
		return nil, fmt.Errorf("%s: dim=%d mode=%s: %w", methodRun, cfg.Dim, cfg.Mode, ErrNoMobilePoints)
	}
	x0, err := initialGuess(cfg.X0, lay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}

	log := o.log.WithFields(logrus.Fields{
		"dim":    cfg.Dim,
		"dv":     dv,
		"perc":   cfg.Percentile,
		"seed":   seed,
		"method": cfg.Method,
	})
	if floating, ferr := topology.Floating(adj, l); ferr == nil && len(floating) > 0 {
		log.WithField("floating", len(floating)).Debug("mobile points detached from every fixed point")
	}
	log.WithField("variables", lay.Dim()).Debug("relaxation started")

	method, _ := cfg.Method.optimizer()
	settings := cfg.settings()
	settings.Converger = cancelConverger{ctx: ctx, inner: settings.Converger}

	problem := optimize.Problem{Func: obj.Func, Grad: obj.Grad}
	res, minErr := optimize.Minimize(problem, x0, settings, method)
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}
	if res == nil {
		return nil, fmt.Errorf("%s: minimize: %w", methodRun, minErr)
	}

	out := &Result{
		Dim:        cfg.Dim,
		DV:         dv,
		Perc:       cfg.Percentile,
		Seed:       seed,
		Mode:       cfg.Mode,
		X:          res.X,
		Energy:     res.F,
		Success:    minErr == nil && converged(res.Status),
		Message:    res.Status.String(),
		Status:     res.Status,
		Iterations: res.Stats.MajorIterations,
		FuncEvals:  res.Stats.FuncEvaluations,
		GradEvals:  res.Stats.GradEvaluations,
		Runtime:    res.Stats.Runtime,
		Method:     cfg.Method,
		Lattice:    l,
		Adjacency:  adj,
		Layout:     lay,
	}
	if minErr != nil {
		out.Message = minErr.Error()
	}

	entry := log.WithFields(logrus.Fields{
		"energy":     out.Energy,
		"status":     out.Message,
		"iterations": out.Iterations,
		"runtime":    out.Runtime,
	})
	if out.Success {
		entry.Info("relaxation converged")
	} else {
		entry.Warn("relaxation stopped without converging")
	}

	return out, nil
}

// System is a displaced and diluted lattice, ready for energy assembly.
type System struct {
	Lattice   *lattice.Lattice
	Adjacency *topology.Adjacency
	DV        float64 // applied displacement
	Seed      int64   // resolved dilution seed
}

// Prepare validates cfg and builds its system without minimizing. The same
// Config (with Seed set) always yields the same System, which is how stored
// results are mapped back onto their lattice.
func Prepare(cfg Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodPrepare, err)
	}
	cfg = cfg.withDefaults()

	seed := rand.Int63()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	l, dv, err := buildLattice(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodPrepare, err)
	}
	adj, err := buildTopology(cfg, l, seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodPrepare, err)
	}
	return &System{Lattice: l, Adjacency: adj, DV: dv, Seed: seed}, nil
}

// buildLattice constructs and displaces the lattice, returning the applied dv.
func buildLattice(cfg Config) (*lattice.Lattice, float64, error) {
	opt := lattice.WithBondLength(cfg.BondLength)
	switch cfg.Mode {
	case ModeSphere:
		l, err := lattice.NewSphere(cfg.Dim, cfg.Radius, cfg.Displacement, opt)
		return l, cfg.Displacement, err
	case ModeFactor:
		l, err := lattice.Build(cfg.Dim, opt)
		if err != nil {
			return nil, 0, err
		}
		dv, err := l.DisplaceFactor(cfg.Factor)
		return l, dv, err
	default:
		l, err := lattice.Build(cfg.Dim, opt)
		if err != nil {
			return nil, 0, err
		}
		return l, cfg.Displacement, l.DisplaceAbsolute(cfg.Displacement)
	}
}

// buildTopology derives the full adjacency and applies the configured dilution.
func buildTopology(cfg Config, l *lattice.Lattice, seed int64) (*topology.Adjacency, error) {
	full, err := topology.Build(l)
	if err != nil {
		return nil, err
	}
	if cfg.Dilution == DiluteEdge {
		return topology.DiluteEdges(full, cfg.Percentile, topology.WithSeed(seed))
	}
	return topology.DiluteVertices(full, cfg.Percentile, l, topology.WithSeed(seed))
}

// initialGuess validates a caller-supplied x0 or returns the planar guess.
func initialGuess(x0 []float64, lay *energy.Layout) ([]float64, error) {
	if x0 == nil {
		return lay.Initial(), nil
	}
	if len(x0) != lay.Dim() {
		return nil, fmt.Errorf("len(x0)=%d want %d: %w", len(x0), lay.Dim(), ErrBadInitialGuess)
	}
	for i, v := range x0 {
		if !finite(v) {
			return nil, fmt.Errorf("x0[%d]=%g: %w", i, v, ErrBadInitialGuess)
		}
	}
	out := make([]float64, len(x0))
	copy(out, x0)
	return out, nil
}

// converged reports whether status means the minimizer reached a stationary point.
func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence,
		optimize.StepConvergence, optimize.MethodConverge, optimize.FunctionThreshold:
		return true
	}
	return false
}

// cancelConverger stops the minimizer at the next major iteration once ctx is done.
type cancelConverger struct {
	ctx   context.Context
	inner optimize.Converger
}

func (c cancelConverger) Init(dim int) { c.inner.Init(dim) }

func (c cancelConverger) Converged(loc *optimize.Location) optimize.Status {
	if c.ctx.Err() != nil {
		return optimize.RuntimeLimit
	}
	return c.inner.Converged(loc)
}
