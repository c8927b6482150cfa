// Package hexlattice relaxes hexagonal lattices of harmonic springs: a
// honeycomb patch is clamped at its boundary, the clamp is displaced out of
// plane, bonds are randomly diluted, and the elastic energy is minimized over
// the free points.
//
// What is in the box?
//
//	lattice/   — the honeycomb patch, its fixed and mobile points, displacement modes
//	topology/  — bond matrices by class, edge and vertex dilution, connectivity
//	energy/    — spring energy and gradient (loop and vectorized assemblers)
//	relax/     — one relaxation: build → displace → dilute → minimize
//	store/     — results keyed by (dim, dv, perc, seed); file and SQLite backends
//	analysis/  — seed statistics, energy-law fits, dilution modulus, elongations
//	render/    — plots of the above
//	cmd/hexlattice — relax, sweep, analyze, histogram and bench commands
//
// The patch of dimension d holds 2(3d²+3d+1) points and 9d²+5d+1 bonds. Its
// outer ring is fixed; the A point at the origin anchors the patch.
//
// A minimal run:
//
//	res, err := relax.Run(ctx, relax.Config{Dim: 10, Displacement: 1, Percentile: 5})
//
//	go install github.com/katalvlaran/hexlattice/cmd/hexlattice@latest
package hexlattice
