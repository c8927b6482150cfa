// SPDX-License-Identifier: MIT
// Package: hexlattice/lattice
//
// types.go — point variants, structural names and the Lattice container.

package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sublattice tags the two points of a honeycomb unit cell.
type Sublattice uint8

const (
	// SubA is the site sitting on the Bravais point itself.
	SubA Sublattice = iota
	// SubB is the site shifted by δ = (0, -d/√3, 0).
	SubB
)

// String renders the sublattice as "A" or "B".
func (s Sublattice) String() string {
	if s == SubB {
		return "B"
	}
	return "A"
}

// BondClass splits nearest-neighbour bonds into the two matrices used by topology.
type BondClass uint8

const (
	// Vertical is the intra-cell bond A(n,m)–B(n,m), parallel to the y axis.
	Vertical BondClass = iota
	// Diagonal covers the two inter-cell bonds A(n,m)–B(n+1,m) and A(n,m)–B(n,m+1).
	Diagonal
)

// String renders the class name.
func (c BondClass) String() string {
	if c == Diagonal {
		return "diagonal"
	}
	return "vertical"
}

// Name is the structural tag of a point: Bravais row/column and sublattice.
type Name struct {
	Row int        // n coefficient of a1
	Col int        // m coefficient of a2
	Sub Sublattice // A or B
}

// String renders the name as "(n,m)A".
func (n Name) String() string {
	return fmt.Sprintf("(%d,%d)%s", n.Row, n.Col, n.Sub)
}

// Partner is a nearest neighbour of a site together with the class of the bond.
type Partner struct {
	Name  Name
	Class BondClass
}

// Partners returns the three nearest-neighbour names of n in a fixed order
// (vertical first). Whether they exist depends on the lattice extent.
func Partners(n Name) [3]Partner {
	if n.Sub == SubA {
		return [3]Partner{
			{Name{n.Row, n.Col, SubB}, Vertical},
			{Name{n.Row + 1, n.Col, SubB}, Diagonal},
			{Name{n.Row, n.Col + 1, SubB}, Diagonal},
		}
	}
	return [3]Partner{
		{Name{n.Row, n.Col, SubA}, Vertical},
		{Name{n.Row - 1, n.Col, SubA}, Diagonal},
		{Name{n.Row, n.Col - 1, SubA}, Diagonal},
	}
}

// Point is the closed set of lattice point variants: *MobilePoint and *FixedPoint.
// Both share identity, name and coordinate access; only fixed points can be
// placed, and only by displacement setup inside this package.
type Point interface {
	// Index is the stable position in Lattice.Points.
	Index() int
	// Name is the structural tag.
	Name() Name
	// Position is the current coordinate. For mobile points this is the
	// undisplaced lattice position; relaxed positions live in the solver vector.
	Position() r3.Vec
	// Mobile reports whether the point is optimized.
	Mobile() bool

	sealed()
}

type site struct {
	index int
	name  Name
	pos   r3.Vec
}

func (s *site) Index() int       { return s.index }
func (s *site) Name() Name       { return s.name }
func (s *site) Position() r3.Vec { return s.pos }
func (s *site) sealed()          {}

// MobilePoint is free to move under energy minimization.
type MobilePoint struct{ site }

// Mobile reports true.
func (*MobilePoint) Mobile() bool { return true }

// FixedPoint has externally imposed coordinates.
type FixedPoint struct{ site }

// Mobile reports false.
func (*FixedPoint) Mobile() bool { return false }

// place moves a fixed point. Mobile points have no such method by construction.
func (p *FixedPoint) place(v r3.Vec) { p.pos = v }

// Compile-time variant checks.
var (
	_ Point = (*MobilePoint)(nil)
	_ Point = (*FixedPoint)(nil)
)

// Lattice is an ordered sequence of points plus its construction parameters.
type Lattice struct {
	Dim        int     // hexagonal extent in Bravais steps
	BondLength float64 // lattice constant d
	Points     []Point // stable index order: row asc, col asc, A before B

	anchor int          // index of the A site at the origin, -1 when released
	lookup map[Name]int // name -> index
	planar []r3.Vec     // undisplaced positions (z = 0), by index
}

// Len returns the number of points.
func (l *Lattice) Len() int { return len(l.Points) }

// RestLength is the natural spring length d/√3.
func (l *Lattice) RestLength() float64 { return l.BondLength / sqrt3 }

// Lookup returns the index of the point named n.
func (l *Lattice) Lookup(n Name) (int, bool) {
	i, ok := l.lookup[n]
	return i, ok
}

// Anchor returns the index of the fixed anchor at the origin, or -1 if the
// lattice has none (sphere mode releases it unless the cap covers it).
func (l *Lattice) Anchor() int { return l.anchor }

// Mobile returns the indices of mobile points in lattice order.
func (l *Lattice) Mobile() []int {
	out := make([]int, 0, len(l.Points))
	for _, p := range l.Points {
		if p.Mobile() {
			out = append(out, p.Index())
		}
	}
	return out
}

// Fixed returns the indices of fixed points in lattice order.
func (l *Lattice) Fixed() []int {
	out := make([]int, 0, len(l.Points))
	for _, p := range l.Points {
		if !p.Mobile() {
			out = append(out, p.Index())
		}
	}
	return out
}

// Width is the x-extent of the undisplaced lattice.
func (l *Lattice) Width() float64 {
	if len(l.planar) == 0 {
		return 0
	}
	lo, hi := l.planar[0].X, l.planar[0].X
	for _, v := range l.planar[1:] {
		if v.X < lo {
			lo = v.X
		}
		if v.X > hi {
			hi = v.X
		}
	}
	return hi - lo
}
