// SPDX-License-Identifier: MIT

package energy

import "errors"

var (
	// ErrSizeMismatch indicates an adjacency whose order differs from the lattice
	// size, or a coordinate vector of the wrong length.
	ErrSizeMismatch = errors.New("energy: size mismatch")

	// ErrInvalidStiffness indicates k ≤ 0 or a non-finite stiffness.
	ErrInvalidStiffness = errors.New("energy: stiffness must be positive")

	// ErrNilInput indicates a nil lattice or adjacency.
	ErrNilInput = errors.New("energy: nil lattice or adjacency")
)
