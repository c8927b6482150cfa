// SPDX-License-Identifier: MIT

// Package energy assembles the elastic potential of a spring lattice and its
// analytic gradient over the flattened coordinates of the mobile points.
//
// Every active bond (i,j) contributes
//
//	U = ½·k·(|rᵢ - rⱼ| - e)²
//
// where e is the lattice rest length and k the spring stiffness. Bonds between
// two fixed points are excluded: they have no sensitivity to the solver vector.
//
// Two assemblers implement Objective and agree to floating-point rounding:
//
//   - Loop re-dispatches each endpoint on its point variant at every call.
//     Easy to audit; the reference for tests.
//   - Vectorized resolves every endpoint once into flat offset arrays and
//     evaluates with branch-free loops and gonum/floats reductions.
//
// Layout is the explicit map from lattice index to coordinate source; use it to
// build initial guesses and to turn a solver vector back into positions.
//
// Neither assembler is safe for concurrent use: Vectorized keeps scratch buffers.
package energy
