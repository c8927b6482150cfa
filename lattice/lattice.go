// SPDX-License-Identifier: MIT
// Package: hexlattice/lattice
//
// lattice.go — Build and NewSphere constructors.
//
// Determinism:
//   • Bravais sites are visited row asc, col asc; A is emitted before B.
//   • Mobility is a pure function of (dim, mode); equal inputs ⇒ identical lattices.

package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	methodBuild  = "Build"
	methodSphere = "NewSphere"

	// fullCoordination is the number of nearest neighbours of an interior site.
	fullCoordination = 3
)

var sqrt3 = math.Sqrt(3)

// Build returns the flat honeycomb of extent dim. Boundary sites and the anchor
// are fixed at z = 0; every other site is mobile.
//
// Errors: ErrInvalidDimension if dim < MinDim.
// Complexity: O(dim²) time and memory.
func Build(dim int, opts ...Option) (*Lattice, error) {
	if dim < MinDim {
		return nil, fmt.Errorf("%s: dim=%d < %d: %w", methodBuild, dim, MinDim, ErrInvalidDimension)
	}
	cfg := newConfig(opts...)

	names, planar := sites(dim, cfg.bondLength)
	l := &Lattice{
		Dim:        dim,
		BondLength: cfg.bondLength,
		Points:     make([]Point, len(names)),
		lookup:     make(map[Name]int, len(names)),
		planar:     planar,
	}
	for i, n := range names {
		l.lookup[n] = i
	}
	l.anchor = l.lookup[Name{0, 0, SubA}]

	for i, n := range names {
		s := site{index: i, name: n, pos: planar[i]}
		if i == l.anchor || l.coordination(n) < fullCoordination {
			l.Points[i] = &FixedPoint{s}
			continue
		}
		l.Points[i] = &MobilePoint{s}
	}

	return l, nil
}

// NewSphere returns the lattice of extent dim pressed by a sphere of the given
// radius whose apex sits at z = dv, i.e. centred at (0, 0, dv-radius).
//
// A site at planar distance ρ < radius is in contact when the cap height
// h(ρ) = dv - radius + √(radius²-ρ²) is positive; contact sites are fixed at
// z = h(ρ), boundary sites included; boundary sites outside the cap stay fixed
// at z = 0. The anchor is only kept fixed if it is in contact; with no contact
// at all the lattice carries no displacement.
//
// Errors: ErrInvalidDimension, ErrInvalidRadius, ErrNonFinite.
func NewSphere(dim int, radius, dv float64, opts ...Option) (*Lattice, error) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%s: radius=%g: %w", methodSphere, radius, ErrInvalidRadius)
	}
	if math.IsNaN(dv) || math.IsInf(dv, 0) {
		return nil, fmt.Errorf("%s: dv=%g: %w", methodSphere, dv, ErrNonFinite)
	}
	l, err := Build(dim, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSphere, err)
	}

	anchor := l.anchor
	l.anchor = -1
	for i, p := range l.Points {
		h, contact := capHeight(l.planar[i], radius, dv)
		switch {
		case contact:
			fp, ok := p.(*FixedPoint)
			if !ok {
				fp = &FixedPoint{site{index: i, name: p.Name()}}
				l.Points[i] = fp
			}
			fp.place(r3.Vec{X: l.planar[i].X, Y: l.planar[i].Y, Z: h})
			if i == anchor {
				l.anchor = anchor
			}
		case i == anchor:
			// Released anchor: an interior site with full coordination.
			l.Points[i] = &MobilePoint{site{index: i, name: p.Name(), pos: l.planar[i]}}
		}
	}

	return l, nil
}

// capHeight evaluates the sphere cap over planar position v.
func capHeight(v r3.Vec, radius, dv float64) (float64, bool) {
	rho2 := v.X*v.X + v.Y*v.Y
	if rho2 >= radius*radius {
		return 0, false
	}
	h := dv - radius + math.Sqrt(radius*radius-rho2)
	return h, h > 0
}

// sites enumerates the honeycomb names and planar positions for extent dim.
func sites(dim int, d float64) ([]Name, []r3.Vec) {
	bravais := 3*dim*dim + 3*dim + 1
	names := make([]Name, 0, 2*bravais)
	planar := make([]r3.Vec, 0, 2*bravais)

	delta := r3.Vec{Y: -d / sqrt3}
	for n := -dim; n <= dim; n++ {
		for m := -dim; m <= dim; m++ {
			if hexDistance(n, m) > dim {
				continue
			}
			a := bravaisPoint(n, m, d)
			names = append(names, Name{n, m, SubA}, Name{n, m, SubB})
			planar = append(planar, a, r3.Add(a, delta))
		}
	}

	return names, planar
}

// bravaisPoint returns n·a1 + m·a2.
func bravaisPoint(n, m int, d float64) r3.Vec {
	return r3.Vec{
		X: float64(n-m) * d / 2,
		Y: float64(n+m) * d * sqrt3 / 2,
	}
}

// hexDistance is the number of nearest-neighbour Bravais steps from the origin.
func hexDistance(n, m int) int {
	return max(abs(n), abs(m), abs(n+m))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// coordination counts the partners of n that exist in the lattice.
func (l *Lattice) coordination(n Name) int {
	c := 0
	for _, p := range Partners(n) {
		if _, ok := l.lookup[p.Name]; ok {
			c++
		}
	}
	return c
}
