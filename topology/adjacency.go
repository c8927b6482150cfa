// SPDX-License-Identifier: MIT
// Package: hexlattice/topology
//
// adjacency.go — the pair of bond matrices derived from a lattice.

package topology

import (
	"fmt"

	"github.com/katalvlaran/hexlattice/lattice"
)

const methodBuild = "Build"

// Bond is one active upper-triangle entry together with its class.
type Bond struct {
	I, J  int
	Class lattice.BondClass
}

// Adjacency holds one symmetric bond matrix per bond class.
type Adjacency struct {
	Vertical *BondMatrix
	Diagonal *BondMatrix
}

// Build derives the nearest-neighbour matrices of l. Bonds are discovered from
// the A sites only, so each bond is set exactly once.
//
// Complexity: O(N) time, O(N) memory.
func Build(l *lattice.Lattice) (*Adjacency, error) {
	if l == nil {
		return nil, fmt.Errorf("%s: %w", methodBuild, ErrNilLattice)
	}
	adj := &Adjacency{
		Vertical: NewBondMatrix(l.Len()),
		Diagonal: NewBondMatrix(l.Len()),
	}
	for i, p := range l.Points {
		if p.Name().Sub != lattice.SubA {
			continue
		}
		for _, q := range lattice.Partners(p.Name()) {
			j, ok := l.Lookup(q.Name)
			if !ok {
				continue
			}
			if err := adj.matrix(q.Class).Set(i, j, true); err != nil {
				return nil, fmt.Errorf("%s: %w", methodBuild, err)
			}
		}
	}

	return adj, nil
}

// Size returns the order of both matrices.
func (a *Adjacency) Size() int { return a.Vertical.Size() }

// Count returns the total number of bonds.
func (a *Adjacency) Count() int { return a.Vertical.Count() + a.Diagonal.Count() }

// Bonds returns the upper triangles of both matrices, vertical first.
func (a *Adjacency) Bonds() []Bond {
	out := make([]Bond, 0, a.Count())
	for _, c := range []lattice.BondClass{lattice.Vertical, lattice.Diagonal} {
		for _, p := range a.matrix(c).Upper() {
			out = append(out, Bond{I: p.I, J: p.J, Class: c})
		}
	}
	return out
}

// Combined returns Vertical + Diagonal as a single matrix.
func (a *Adjacency) Combined() *BondMatrix {
	c := a.Vertical.Clone()
	for _, p := range a.Diagonal.Upper() {
		_ = c.Set(p.I, p.J, true)
	}
	return c
}

// Degree returns the number of bonds at i over both classes.
func (a *Adjacency) Degree(i int) int {
	return a.Vertical.Degree(i) + a.Diagonal.Degree(i)
}

// Clone deep-copies both matrices.
func (a *Adjacency) Clone() *Adjacency {
	return &Adjacency{Vertical: a.Vertical.Clone(), Diagonal: a.Diagonal.Clone()}
}

// Equal compares both matrices entry by entry.
func (a *Adjacency) Equal(o *Adjacency) bool {
	return a.Vertical.Equal(o.Vertical) && a.Diagonal.Equal(o.Diagonal)
}

// LinkRatio is the fraction of bonds in diluted relative to full.
func LinkRatio(diluted, full *Adjacency) float64 {
	if full.Count() == 0 {
		return 0
	}
	return float64(diluted.Count()) / float64(full.Count())
}

func (a *Adjacency) matrix(c lattice.BondClass) *BondMatrix {
	if c == lattice.Diagonal {
		return a.Diagonal
	}
	return a.Vertical
}
