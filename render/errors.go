// SPDX-License-Identifier: MIT

package render

import "errors"

var (
	// ErrNoData indicates a figure with nothing to draw.
	ErrNoData = errors.New("render: no data")

	// ErrInvalidTolerance indicates a non-positive cut tolerance.
	ErrInvalidTolerance = errors.New("render: tolerance must be positive")
)
