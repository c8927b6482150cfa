// SPDX-License-Identifier: MIT
// Package: hexlattice/lattice
//
// displace.go — boundary displacement of a flat lattice.

package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	methodDisplaceAbsolute = "DisplaceAbsolute"
	methodDisplaceFactor   = "DisplaceFactor"

	// percent converts a stretch factor into a fraction of the lattice width.
	percent = 100.0
)

// DisplaceAbsolute places every fixed point except the anchor at z = dv and the
// anchor at z = 0. Planar coordinates are restored from the undisplaced
// lattice, so repeated calls do not accumulate. Mobile points are untouched.
//
// Errors: ErrNonFinite if dv is NaN or ±Inf.
// Complexity: O(N).
func (l *Lattice) DisplaceAbsolute(dv float64) error {
	if math.IsNaN(dv) || math.IsInf(dv, 0) {
		return fmt.Errorf("%s: dv=%g: %w", methodDisplaceAbsolute, dv, ErrNonFinite)
	}
	for i, p := range l.Points {
		fp, ok := p.(*FixedPoint)
		if !ok {
			continue
		}
		z := dv
		if i == l.anchor {
			z = 0
		}
		fp.place(r3.Vec{X: l.planar[i].X, Y: l.planar[i].Y, Z: z})
	}

	return nil
}

// DisplaceFactor is DisplaceAbsolute with dv expressed as a percentage of the
// lattice width. It returns the absolute displacement that was applied.
func (l *Lattice) DisplaceFactor(factor float64) (float64, error) {
	dv := factor / percent * l.Width()
	if err := l.DisplaceAbsolute(dv); err != nil {
		return 0, fmt.Errorf("%s: %w", methodDisplaceFactor, err)
	}
	return dv, nil
}
