// SPDX-License-Identifier: MIT

// Package topology derives nearest-neighbour connectivity from a lattice and
// removes parts of it at random (dilution).
//
// Connectivity is kept as two symmetric 0/1 matrices over lattice indices, one
// per bond class (lattice.Vertical, lattice.Diagonal). A bond (i,j) set in a
// matrix participates in the energy exactly once: consumers walk only the upper
// triangle via BondMatrix.Upper or Adjacency.Bonds.
//
// Storage is sparse (sorted neighbour lists). A honeycomb has at most three
// bonds per row, so an N×N dense buffer would waste O(N²) memory for O(N) data.
//
// Dilution never mutates its input. Every random choice comes from a *rand.Rand
// owned by the call:
//
//	adj, _ := topology.Build(l)
//	d1, _ := topology.DiluteVertices(adj, 5, l, topology.WithSeed(42))
//	d2, _ := topology.DiluteVertices(adj, 5, l, topology.WithSeed(42))
//	// d1.Equal(d2) == true
//
// Without WithSeed/WithRand a seed is drawn from process randomness.
package topology
