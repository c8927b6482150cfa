// SPDX-License-Identifier: MIT
// Package: hexlattice/energy
//
// layout.go — lattice index → coordinate slot.
//
// The solver vector x holds 3 floats per mobile point in lattice order; fixed
// points live in a separate array. Slot replaces positional consumption of x.

package energy

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/hexlattice/lattice"
)

// Source tells where a slot's coordinates are read from.
type Source uint8

const (
	// InVector means the coordinates are x[Offset : Offset+3].
	InVector Source = iota
	// InFixed means the coordinates are Layout.Fixed()[Offset : Offset+3].
	InFixed
)

// Slot locates the coordinate triple of one lattice point.
type Slot struct {
	Source Source
	Offset int
}

// Layout maps every lattice index to its slot.
type Layout struct {
	slots  []Slot
	fixed  []float64
	planar []float64 // undisplaced mobile coordinates, same layout as x
	dim    int       // len(x)
}

// NewLayout resolves the slots of l.
//
// Complexity: O(N).
func NewLayout(l *lattice.Lattice) *Layout {
	lay := &Layout{slots: make([]Slot, l.Len())}
	for i, p := range l.Points {
		pos := p.Position()
		switch p.(type) {
		case *lattice.MobilePoint:
			lay.slots[i] = Slot{InVector, lay.dim}
			lay.planar = append(lay.planar, pos.X, pos.Y, pos.Z)
			lay.dim += 3
		case *lattice.FixedPoint:
			lay.slots[i] = Slot{InFixed, len(lay.fixed)}
			lay.fixed = append(lay.fixed, pos.X, pos.Y, pos.Z)
		}
	}
	return lay
}

// Dim is the length of the solver vector (3 × mobile points).
func (lay *Layout) Dim() int { return lay.dim }

// Slot returns the slot of lattice index i.
func (lay *Layout) Slot(i int) Slot { return lay.slots[i] }

// Fixed returns the fixed coordinate array. Callers must not modify it.
func (lay *Layout) Fixed() []float64 { return lay.fixed }

// Initial returns a fresh zero-displacement solver vector.
func (lay *Layout) Initial() []float64 {
	x := make([]float64, lay.dim)
	copy(x, lay.planar)
	return x
}

// Position returns the coordinates of lattice index i under solver vector x.
func (lay *Layout) Position(i int, x []float64) r3.Vec {
	s := lay.slots[i]
	src := lay.fixed
	if s.Source == InVector {
		src = x
	}
	return r3.Vec{X: src[s.Offset], Y: src[s.Offset+1], Z: src[s.Offset+2]}
}

// Positions assembles every lattice point's coordinates under x.
func (lay *Layout) Positions(x []float64) ([]r3.Vec, error) {
	if len(x) != lay.dim {
		return nil, fmt.Errorf("Layout.Positions: len(x)=%d want %d: %w", len(x), lay.dim, ErrSizeMismatch)
	}
	out := make([]r3.Vec, len(lay.slots))
	for i := range lay.slots {
		out[i] = lay.Position(i, x)
	}
	return out, nil
}
