// SPDX-License-Identifier: MIT
// Package topology: sentinel error set.
//
// Every message is prefixed with "topology: ..." for grep-ability. Wrap with
// fmt.Errorf("ctx: %w", ErrX) at the detection site; callers use errors.Is.

package topology

import "errors"

var (
	// ErrOutOfRange indicates a row or column index outside [0, Size()).
	ErrOutOfRange = errors.New("topology: index out of range")

	// ErrSelfBond indicates an attempt to set a diagonal entry.
	ErrSelfBond = errors.New("topology: self bond")

	// ErrInvalidPercentile indicates a dilution percentile outside [0,100].
	ErrInvalidPercentile = errors.New("topology: percentile out of range")

	// ErrSizeMismatch indicates matrices or lattices of different sizes.
	ErrSizeMismatch = errors.New("topology: size mismatch")

	// ErrNilLattice indicates a nil *lattice.Lattice argument.
	ErrNilLattice = errors.New("topology: lattice is nil")
)
