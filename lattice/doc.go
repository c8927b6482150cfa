// SPDX-License-Identifier: MIT

// Package lattice builds the planar honeycomb of point masses that every other
// hexlattice package works on.
//
// The lattice is generated from a hexagon-shaped patch of Bravais sites
//
//	R(n,m) = n·a1 + m·a2,   a1 = (d/2, d√3/2, 0),   a2 = (-d/2, d√3/2, 0)
//
// with hex-distance max(|n|, |m|, |n+m|) ≤ dim. Each Bravais site carries two
// points: the A site at R and the B site at R + δ, δ = (0, -d/√3, 0). Nearest
// neighbours are therefore d/√3 apart, which is also the rest length of every
// spring.
//
//	B(0,1)   B(1,0)
//	    \     /
//	     A(0,0)
//	       |
//	     B(0,0)
//
// Points are a closed variant: *MobilePoint (free under minimization) and
// *FixedPoint (externally placed). A site with fewer than three neighbours inside
// the patch is fixed, as is the A site at the origin (the anchor). The index
// order of Lattice.Points is stable and is the identity every other package
// refers to.
//
// Displacement setup only ever moves fixed points:
//
//   - DisplaceAbsolute(dv)  lifts the boundary to z = dv, the anchor stays at 0.
//   - DisplaceFactor(f)     same, with dv = f% of the lattice width.
//   - NewSphere(dim, R, dv) pins every site under a sphere cap of radius R whose
//     apex sits at z = dv, boundary sites included. Boundary sites outside the
//     cap stay at z = 0.
//
// Complexity: Build is O(dim²) time and memory.
package lattice
