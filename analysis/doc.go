// SPDX-License-Identifier: MIT

// Package analysis turns stored relaxation results into the physics summaries:
// mean energy per parameter triple, power-law fits of energy against
// displacement, the dilution dependence of the fitted coefficient (the
// "modulus"), bond elongation statistics and the dimension scaling of the
// energy.
//
// Statistics use gonum.org/v1/gonum/stat (population standard deviation, as the
// historical tables did). Least-squares fits return parameter standard errors
// scaled by the reduced χ² of the fit, the usual convention of curve fitting
// tools when σ is relative.
//
// Pipeline:
//
//	sims, _ := analysis.LoadAll(ctx, st)
//	groups := analysis.MeanEnergyVsDV(sims)
//	mod, _ := analysis.ModulusVsDilution(groups, 4, 0)
package analysis
