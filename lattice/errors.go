// SPDX-License-Identifier: MIT
// Package: hexlattice/lattice
//
// errors.go — sentinel errors for lattice construction and displacement.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context is attached at the detection site via fmt.Errorf("%s: ...: %w").
//   • Option constructors panic on meaningless values; Build never panics.

package lattice

import "errors"

var (
	// ErrInvalidDimension is returned when the requested dimension is < MinDim.
	ErrInvalidDimension = errors.New("lattice: dimension must be positive")

	// ErrInvalidRadius is returned by NewSphere for a non-positive sphere radius.
	ErrInvalidRadius = errors.New("lattice: sphere radius must be positive")

	// ErrNonFinite is returned when a displacement value is NaN or ±Inf.
	ErrNonFinite = errors.New("lattice: displacement is NaN or Inf")
)
