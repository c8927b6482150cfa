// SPDX-License-Identifier: MIT

package relax

import "errors"

var (
	// ErrInvalidConfig indicates a Config field outside its domain.
	ErrInvalidConfig = errors.New("relax: invalid configuration")

	// ErrNoMobilePoints indicates a lattice whose every point is fixed.
	ErrNoMobilePoints = errors.New("relax: no mobile points")

	// ErrBadInitialGuess indicates an X0 of the wrong length or with non-finite entries.
	ErrBadInitialGuess = errors.New("relax: bad initial guess")
)
