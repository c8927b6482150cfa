// SPDX-License-Identifier: MIT
// Package: hexlattice/energy
//
// vectorized.go — precomputed-offset assembler.
//
// Construction resolves every bond once into one of two flat classes:
//   • mobile–mobile: (offset i, offset j) into x;
//   • mobile–fixed:  (offset into x, fixed coordinate triple).
// Fixed–fixed bonds are dropped. Evaluation is branch-free over those arrays.
//
// Complexity: construction O(N + E); Func/Grad O(E) with no allocation.

package energy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/hexlattice/lattice"
	"github.com/katalvlaran/hexlattice/topology"
)

// Vectorized is the performance-oriented assembler.
type Vectorized struct {
	layout *Layout
	k, e   float64

	mmI, mmJ []int     // mobile–mobile offsets into x
	mfI      []int     // mobile endpoint offset of a mixed bond
	mfR      []float64 // fixed endpoint coordinates of a mixed bond, 3 per bond

	dl []float64 // scratch: realized length minus rest length, mm then mf
}

var _ Objective = (*Vectorized)(nil)

// NewVectorized builds the precomputed assembler. Fixed coordinates are
// captured at construction; build it after displacement setup.
func NewVectorized(l *lattice.Lattice, adj *topology.Adjacency, k float64) (*Vectorized, error) {
	if err := prepare("NewVectorized", l, adj, k); err != nil {
		return nil, err
	}
	lay := NewLayout(l)
	v := &Vectorized{layout: lay, k: k, e: l.RestLength()}

	for _, b := range adj.Bonds() {
		si, sj := lay.Slot(b.I), lay.Slot(b.J)
		switch {
		case si.Source == InVector && sj.Source == InVector:
			v.mmI = append(v.mmI, si.Offset)
			v.mmJ = append(v.mmJ, sj.Offset)
		case si.Source == InVector:
			v.mfI = append(v.mfI, si.Offset)
			v.mfR = append(v.mfR, lay.fixed[sj.Offset:sj.Offset+3]...)
		case sj.Source == InVector:
			v.mfI = append(v.mfI, sj.Offset)
			v.mfR = append(v.mfR, lay.fixed[si.Offset:si.Offset+3]...)
		}
	}
	v.dl = make([]float64, len(v.mmI)+len(v.mfI))

	return v, nil
}

// Layout returns the coordinate map.
func (v *Vectorized) Layout() *Layout { return v.layout }

// Bonds returns the number of active (non fixed–fixed) bonds.
func (v *Vectorized) Bonds() int { return len(v.dl) }

// Func returns ½k·‖dl‖² where dl is the vector of bond elongations.
func (v *Vectorized) Func(x []float64) float64 {
	v.elongate(x)
	return 0.5 * v.k * floats.Dot(v.dl, v.dl)
}

// Grad writes the analytic gradient into grad.
func (v *Vectorized) Grad(grad, x []float64) {
	clear(grad)
	for b, i := range v.mmI {
		j := v.mmJ[b]
		dx, dy, dz := x[i]-x[j], x[i+1]-x[j+1], x[i+2]-x[j+2]
		length := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if length == 0 {
			continue
		}
		f := v.k * (length - v.e) / length
		grad[i] += f * dx
		grad[i+1] += f * dy
		grad[i+2] += f * dz
		grad[j] -= f * dx
		grad[j+1] -= f * dy
		grad[j+2] -= f * dz
	}
	for b, i := range v.mfI {
		r := v.mfR[3*b : 3*b+3]
		dx, dy, dz := x[i]-r[0], x[i+1]-r[1], x[i+2]-r[2]
		length := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if length == 0 {
			continue
		}
		f := v.k * (length - v.e) / length
		grad[i] += f * dx
		grad[i+1] += f * dy
		grad[i+2] += f * dz
	}
}

// Elongations returns a fresh slice of realized length minus rest length per
// active bond: mobile–mobile bonds first, then mixed bonds.
func (v *Vectorized) Elongations(x []float64) ([]float64, error) {
	if len(x) != v.layout.Dim() {
		return nil, fmt.Errorf("Vectorized.Elongations: len(x)=%d want %d: %w", len(x), v.layout.Dim(), ErrSizeMismatch)
	}
	v.elongate(x)
	out := make([]float64, len(v.dl))
	copy(out, v.dl)
	return out, nil
}

// elongate fills v.dl for x.
func (v *Vectorized) elongate(x []float64) {
	n := 0
	for b, i := range v.mmI {
		j := v.mmJ[b]
		dx, dy, dz := x[i]-x[j], x[i+1]-x[j+1], x[i+2]-x[j+2]
		v.dl[n] = math.Sqrt(dx*dx+dy*dy+dz*dz) - v.e
		n++
	}
	for b, i := range v.mfI {
		r := v.mfR[3*b : 3*b+3]
		dx, dy, dz := x[i]-r[0], x[i+1]-r[1], x[i+2]-r[2]
		v.dl[n] = math.Sqrt(dx*dx+dy*dy+dz*dz) - v.e
		n++
	}
}

// Elongations is a convenience over NewVectorized(l, adj, DefaultStiffness).
// The stiffness does not affect elongations.
func Elongations(l *lattice.Lattice, adj *topology.Adjacency, x []float64) ([]float64, error) {
	v, err := NewVectorized(l, adj, DefaultStiffness)
	if err != nil {
		return nil, err
	}
	return v.Elongations(x)
}
