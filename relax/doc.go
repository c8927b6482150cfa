// SPDX-License-Identifier: MIT

// Package relax runs one relaxation: it builds and displaces a lattice, dilutes
// its bonds, assembles the spring energy and minimizes it with a gradient method
// from gonum.org/v1/gonum/optimize.
//
//	res, err := relax.Run(ctx, relax.Config{Dim: 10, Displacement: 1, Percentile: 5})
//	if err != nil {
//		return err // bad configuration, never "did not converge"
//	}
//	if !res.Success {
//		log.Warn(res.Message)
//	}
//
// Non-convergence is reported through Result.Success and Result.Message, not as
// an error. Errors are reserved for invalid configuration, lattice construction
// failures, a lattice with no mobile point, a wrong-length initial guess and
// context cancellation.
//
// Randomness: when Config.Seed is nil a seed is drawn from process randomness
// and recorded in Result.Seed, so every run can be reproduced.
package relax
