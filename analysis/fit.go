// SPDX-License-Identifier: MIT
// Package: hexlattice/analysis
//
// fit.go — small least-squares fits.
//
//   • FitMonomial  y = a·(x+shift)ⁿ      closed form, one parameter
//   • FitLinear    y = a·x + b           weighted, covariance from (JᵀWJ)⁻¹
//   • FitPowerLaw  y = a·x^b             log–log guess refined by Nelder–Mead
//
// Standard errors are √diag(s²·(JᵀWJ)⁻¹) with s² = χ²/(N-p): the parameter
// covariance scaled by the reduced χ² of the fit.

package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Fit is the outcome of a least-squares fit.
type Fit struct {
	Params   []float64 // in the order of the model formula
	Errors   []float64 // standard errors, same order
	RSquared float64
	Model    func(x float64) float64
}

// checkXY validates paired samples against a minimum count.
func checkXY(method string, x, y []float64, minPoints int) error {
	if len(x) != len(y) {
		return fmt.Errorf("%s: len(x)=%d len(y)=%d: %w", method, len(x), len(y), ErrSizeMismatch)
	}
	if len(x) < minPoints {
		return fmt.Errorf("%s: %d points, need %d: %w", method, len(x), minPoints, ErrTooFewPoints)
	}
	return nil
}

// FitMonomial fits y = a·(x+shift)ⁿ with n and shift given.
//
// Errors: ErrSizeMismatch, ErrTooFewPoints (N < 2), ErrDegenerate.
func FitMonomial(x, y []float64, n, shift float64) (Fit, error) {
	const method = "FitMonomial"
	if err := checkXY(method, x, y, 2); err != nil {
		return Fit{}, err
	}
	t := make([]float64, len(x))
	for i, v := range x {
		t[i] = math.Pow(v+shift, n)
	}
	stt := floats.Dot(t, t)
	if stt == 0 || math.IsNaN(stt) || math.IsInf(stt, 0) {
		return Fit{}, fmt.Errorf("%s: Σt²=%g: %w", method, stt, ErrDegenerate)
	}
	a := floats.Dot(t, y) / stt

	est := make([]float64, len(t))
	floats.ScaleTo(est, a, t)
	s2 := sumSquares(est, y) / float64(len(x)-1)

	return Fit{
		Params:   []float64{a},
		Errors:   []float64{math.Sqrt(s2 / stt)},
		RSquared: stat.RSquaredFrom(est, y, nil),
		Model:    func(v float64) float64 { return a * math.Pow(v+shift, n) },
	}, nil
}

// FitLinear fits y = a·x + b. A nil sigma weights every point equally;
// otherwise point i has weight 1/σᵢ². Params are [a, b].
//
// [a, b] solve the normal equations (JᵀWJ)·[a, b] = JᵀW·y.
//
// Errors: ErrSizeMismatch, ErrTooFewPoints (N < 3), ErrDegenerate (σᵢ ≤ 0 or
// a non-finite solution), and the gonum/mat error when JᵀWJ cannot be inverted.
func FitLinear(x, y, sigma []float64) (Fit, error) {
	const method = "FitLinear"
	if err := checkXY(method, x, y, 3); err != nil {
		return Fit{}, err
	}
	var w []float64
	if sigma != nil {
		if len(sigma) != len(x) {
			return Fit{}, fmt.Errorf("%s: len(sigma)=%d: %w", method, len(sigma), ErrSizeMismatch)
		}
		w = make([]float64, len(sigma))
		for i, s := range sigma {
			if !(s > 0) {
				return Fit{}, fmt.Errorf("%s: sigma[%d]=%g: %w", method, i, s, ErrDegenerate)
			}
			w[i] = 1 / (s * s)
		}
	}

	var sxx, sx, s1, sxy, sy float64
	for i, v := range x {
		wi := weight(w, i)
		sxx += wi * v * v
		sx += wi * v
		s1 += wi
		sxy += wi * v * y[i]
		sy += wi * y[i]
	}
	var cov mat.Dense
	if err := cov.Inverse(mat.NewSymDense(2, []float64{sxx, sx, sx, s1})); err != nil {
		return Fit{}, fmt.Errorf("%s: %w", method, err)
	}
	var ab mat.VecDense
	ab.MulVec(&cov, mat.NewVecDense(2, []float64{sxy, sy}))
	a, b := ab.AtVec(0), ab.AtVec(1)
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return Fit{}, fmt.Errorf("%s: a=%g b=%g: %w", method, a, b, ErrDegenerate)
	}

	var chi2 float64
	for i, v := range x {
		r := y[i] - (a*v + b)
		chi2 += weight(w, i) * r * r
	}
	s2 := chi2 / float64(len(x)-2)

	return Fit{
		Params:   []float64{a, b},
		Errors:   []float64{math.Sqrt(s2 * cov.At(0, 0)), math.Sqrt(s2 * cov.At(1, 1))},
		RSquared: stat.RSquared(x, y, w, b, a),
		Model:    func(v float64) float64 { return a*v + b },
	}, nil
}

// FitPowerLaw fits y = a·x^b with both parameters free. Params are [a, b].
// Every x and y must be positive.
//
// Errors: ErrSizeMismatch, ErrTooFewPoints (N < 3), ErrDegenerate, the
// optimizer error when it returns no location, and the gonum/mat error for a
// singular Jacobian.
func FitPowerLaw(x, y []float64) (Fit, error) {
	const method = "FitPowerLaw"
	if err := checkXY(method, x, y, 3); err != nil {
		return Fit{}, err
	}
	lx := make([]float64, len(x))
	ly := make([]float64, len(y))
	for i := range x {
		if !(x[i] > 0) || !(y[i] > 0) {
			return Fit{}, fmt.Errorf("%s: point %d (%g, %g): %w", method, i, x[i], y[i], ErrDegenerate)
		}
		lx[i], ly[i] = math.Log(x[i]), math.Log(y[i])
	}
	alpha, beta := stat.LinearRegression(lx, ly, nil, false)
	p0 := []float64{math.Exp(alpha), beta}

	ssr := func(p []float64) float64 {
		var s float64
		for i, v := range x {
			r := y[i] - p[0]*math.Pow(v, p[1])
			s += r * r
		}
		return s
	}
	res, err := optimize.Minimize(optimize.Problem{Func: ssr}, p0, nil, &optimize.NelderMead{})
	if res == nil {
		return Fit{}, fmt.Errorf("%s: refine: %w", method, err)
	}
	a, b := res.X[0], res.X[1]

	jac := mat.NewDense(len(x), 2, nil)
	est := make([]float64, len(x))
	for i, v := range x {
		xb := math.Pow(v, b)
		est[i] = a * xb
		jac.Set(i, 0, xb)
		jac.Set(i, 1, a*xb*math.Log(v))
	}
	var jtj mat.SymDense
	jtj.SymOuterK(1, jac.T())
	var cov mat.Dense
	if err = cov.Inverse(&jtj); err != nil {
		return Fit{}, fmt.Errorf("%s: %w", method, err)
	}
	s2 := res.F / float64(len(x)-2)

	return Fit{
		Params:   []float64{a, b},
		Errors:   []float64{math.Sqrt(s2 * cov.At(0, 0)), math.Sqrt(s2 * cov.At(1, 1))},
		RSquared: stat.RSquaredFrom(est, y, nil),
		Model:    func(v float64) float64 { return a * math.Pow(v, b) },
	}, nil
}

func weight(w []float64, i int) float64 {
	if w == nil {
		return 1
	}
	return w[i]
}

// sumSquares returns Σ(est-y)².
func sumSquares(est, y []float64) float64 {
	var s float64
	for i := range est {
		r := y[i] - est[i]
		s += r * r
	}
	return s
}
