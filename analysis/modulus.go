// SPDX-License-Identifier: MIT
// Package: hexlattice/analysis
//
// modulus.go — dilution dependence of the energy–displacement coefficient.
//
// Per dilution percentile the seed-averaged energies are fitted as
// E = a·(dv+shift)ⁿ. The coefficients are normalized by the undiluted one
// (a/a₀) and fitted linearly against the percentile.

package analysis

import (
	"fmt"
	"slices"
)

// ModulusPoint is the coefficient of one dilution percentile.
type ModulusPoint struct {
	Perc     float64
	Coeff    float64 // a in E = a·(dv+shift)ⁿ
	CoeffErr float64
	Ratio    float64 // a/a₀
	RatioErr float64
	Fit      Fit // the per-percentile monomial fit
}

// Modulus is the dilution series and its linear fit.
type Modulus struct {
	Points []ModulusPoint // ascending Perc
	Linear Fit            // Ratio = p0·Perc + p1
}

// ModulusVsDilution fits every percentile group of summaries. Summaries are
// expected to share a dimension. The linear fit is weighted by RatioErr when
// every ratio error is positive, unweighted otherwise.
//
// A Modulus with the fitted Points is returned together with the error when
// only the final linear fit fails (e.g. fewer than three percentiles).
//
// Errors: ErrNoReference, ErrDegenerate (a₀ = 0), FitMonomial and FitLinear
// errors.
func ModulusVsDilution(summaries []Summary, n, shift float64) (Modulus, error) {
	const method = "ModulusVsDilution"
	byPerc := make(map[float64][]Summary)
	var percs []float64
	for _, s := range summaries {
		if _, ok := byPerc[s.Perc]; !ok {
			percs = append(percs, s.Perc)
		}
		byPerc[s.Perc] = append(byPerc[s.Perc], s)
	}
	slices.Sort(percs)
	if len(percs) == 0 || percs[0] != 0 {
		return Modulus{}, fmt.Errorf("%s: %w", method, ErrNoReference)
	}

	var m Modulus
	for _, p := range percs {
		group := byPerc[p]
		x := make([]float64, len(group))
		y := make([]float64, len(group))
		for i, s := range group {
			x[i], y[i] = s.DV, s.Mean
		}
		fit, err := FitMonomial(x, y, n, shift)
		if err != nil {
			return Modulus{}, fmt.Errorf("%s: perc=%g: %w", method, p, err)
		}
		m.Points = append(m.Points, ModulusPoint{
			Perc:     p,
			Coeff:    fit.Params[0],
			CoeffErr: fit.Errors[0],
			Fit:      fit,
		})
	}

	a0 := m.Points[0].Coeff
	if a0 == 0 {
		return Modulus{}, fmt.Errorf("%s: a0=0: %w", method, ErrDegenerate)
	}
	x := make([]float64, len(m.Points))
	y := make([]float64, len(m.Points))
	sigma := make([]float64, len(m.Points))
	weighted := true
	for i := range m.Points {
		pt := &m.Points[i]
		pt.Ratio = pt.Coeff / a0
		pt.RatioErr = pt.CoeffErr / a0
		x[i], y[i], sigma[i] = pt.Perc, pt.Ratio, pt.RatioErr
		weighted = weighted && pt.RatioErr > 0
	}
	if !weighted {
		sigma = nil
	}

	lin, err := FitLinear(x, y, sigma)
	if err != nil {
		return m, fmt.Errorf("%s: %w", method, err)
	}
	m.Linear = lin
	return m, nil
}
