// SPDX-License-Identifier: MIT

package analysis

import "errors"

var (
	// ErrTooFewPoints indicates fewer data points than the fit has degrees of freedom for.
	ErrTooFewPoints = errors.New("analysis: too few points")

	// ErrSizeMismatch indicates x, y (and σ) of different lengths.
	ErrSizeMismatch = errors.New("analysis: size mismatch")

	// ErrDegenerate indicates data that cannot determine the fit (all-zero
	// regressor, non-positive values on a log scale, non-positive σ).
	ErrDegenerate = errors.New("analysis: degenerate data")

	// ErrNoReference indicates a modulus series without a zero-dilution group.
	ErrNoReference = errors.New("analysis: no zero-dilution reference")
)
