// SPDX-License-Identifier: MIT
// Package: hexlattice/energy
//
// objective.go — the Objective contract, assembler selection and the
// straightforward Loop assembler.

package energy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/hexlattice/lattice"
	"github.com/katalvlaran/hexlattice/topology"
)

// DefaultStiffness is the spring constant used by callers that do not set one.
const DefaultStiffness = 2.0

// Objective is a scalar energy with analytic gradient over the solver vector.
// Func and Grad match gonum.org/v1/gonum/optimize.Problem.
type Objective interface {
	// Func returns the energy at x.
	Func(x []float64) float64
	// Grad overwrites grad with ∂U/∂x at x. len(grad) == len(x).
	Grad(grad, x []float64)
	// Layout returns the coordinate map the objective was built with.
	Layout() *Layout
}

// Kind names an assembler implementation.
type Kind string

const (
	// KindLoop selects Loop.
	KindLoop Kind = "loop"
	// KindVectorized selects Vectorized (default).
	KindVectorized Kind = "vectorized"
)

// New builds the assembler named by kind. An empty kind selects KindVectorized.
func New(kind Kind, l *lattice.Lattice, adj *topology.Adjacency, k float64) (Objective, error) {
	switch kind {
	case KindLoop:
		return NewLoop(l, adj, k)
	case KindVectorized, "":
		return NewVectorized(l, adj, k)
	default:
		return nil, fmt.Errorf("energy: unknown assembler %q", kind)
	}
}

// prepare validates inputs shared by both assemblers.
func prepare(method string, l *lattice.Lattice, adj *topology.Adjacency, k float64) error {
	if l == nil || adj == nil {
		return fmt.Errorf("%s: %w", method, ErrNilInput)
	}
	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return fmt.Errorf("%s: k=%g: %w", method, k, ErrInvalidStiffness)
	}
	if adj.Size() != l.Len() {
		return fmt.Errorf("%s: adjacency=%d lattice=%d: %w", method, adj.Size(), l.Len(), ErrSizeMismatch)
	}
	return nil
}

// Loop evaluates bond by bond, dispatching each endpoint on its variant.
type Loop struct {
	lat    *lattice.Lattice
	bonds  []topology.Bond
	layout *Layout
	k, e   float64
}

var _ Objective = (*Loop)(nil)

// NewLoop builds the straightforward assembler. Build it after displacement
// setup: fixed coordinates are read from the lattice points.
func NewLoop(l *lattice.Lattice, adj *topology.Adjacency, k float64) (*Loop, error) {
	if err := prepare("NewLoop", l, adj, k); err != nil {
		return nil, err
	}
	return &Loop{
		lat:    l,
		bonds:  adj.Bonds(),
		layout: NewLayout(l),
		k:      k,
		e:      l.RestLength(),
	}, nil
}

// Layout returns the coordinate map.
func (o *Loop) Layout() *Layout { return o.layout }

// Func returns Σ ½k(|rᵢ-rⱼ|-e)² over bonds with at least one mobile endpoint.
func (o *Loop) Func(x []float64) float64 {
	var u float64
	for _, b := range o.bonds {
		p, q := o.lat.Points[b.I], o.lat.Points[b.J]
		if !p.Mobile() && !q.Mobile() {
			continue
		}
		dl := r3.Norm(r3.Sub(o.coord(p, x), o.coord(q, x))) - o.e
		u += 0.5 * o.k * dl * dl
	}
	return u
}

// Grad writes the analytic gradient into grad.
func (o *Loop) Grad(grad, x []float64) {
	clear(grad)
	for _, b := range o.bonds {
		p, q := o.lat.Points[b.I], o.lat.Points[b.J]
		if !p.Mobile() && !q.Mobile() {
			continue
		}
		d := r3.Sub(o.coord(p, x), o.coord(q, x))
		length := r3.Norm(d)
		if length == 0 {
			continue
		}
		g := r3.Scale(o.k*(length-o.e)/length, d)
		o.accumulate(grad, p, g)
		o.accumulate(grad, q, r3.Scale(-1, g))
	}
}

func (o *Loop) coord(p lattice.Point, x []float64) r3.Vec {
	switch v := p.(type) {
	case *lattice.MobilePoint:
		return o.layout.Position(v.Index(), x)
	default:
		return p.Position()
	}
}

func (o *Loop) accumulate(grad []float64, p lattice.Point, g r3.Vec) {
	if _, ok := p.(*lattice.MobilePoint); !ok {
		return
	}
	off := o.layout.Slot(p.Index()).Offset
	grad[off] += g.X
	grad[off+1] += g.Y
	grad[off+2] += g.Z
}
