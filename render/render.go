// SPDX-License-Identifier: MIT
// Package: hexlattice/render
//
// render.go — the figures of an analysis run.

package render

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/hexlattice/analysis"
)

const (
	width  = 6 * vg.Inch
	height = 4 * vg.Inch

	fitSamples = 100
)

// errPoints is a scatter with symmetric vertical error bars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// EnergyVsDV draws the seed-averaged energy against displacement, one series
// per dilution percentile, with ±σ error bars. fits adds the per-percentile
// energy law of ModulusVsDilution; pass nil to omit the curves.
func EnergyVsDV(path string, groups []analysis.Summary, fits []analysis.ModulusPoint) error {
	const method = "EnergyVsDV"
	if len(groups) == 0 {
		return fmt.Errorf("%s: %w", method, ErrNoData)
	}
	byPerc := make(map[float64]*errPoints)
	var percs []float64
	for _, g := range groups {
		ep, ok := byPerc[g.Perc]
		if !ok {
			ep = &errPoints{}
			byPerc[g.Perc] = ep
			percs = append(percs, g.Perc)
		}
		ep.XYs = append(ep.XYs, plotter.XY{X: g.DV, Y: g.Mean})
		ep.YErrors = append(ep.YErrors, struct{ Low, High float64 }{g.Std, g.Std})
	}
	slices.Sort(percs)

	p := plot.New()
	p.Title.Text = "Energy vs displacement"
	p.X.Label.Text = "dv"
	p.Y.Label.Text = "E"

	xmax := 0.0
	for i, perc := range percs {
		ep := byPerc[perc]
		if err := addErrSeries(p, ep, i, fmt.Sprintf("perc=%g", perc)); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
		for _, xy := range ep.XYs {
			xmax = math.Max(xmax, xy.X)
		}
	}
	for _, pt := range fits {
		i := slices.Index(percs, pt.Perc)
		if i < 0 || pt.Fit.Model == nil {
			continue
		}
		p.Add(fitLine(pt.Fit.Model, 0, xmax, i))
	}
	return save(method, p, path)
}

// Modulus draws a/a₀ against dilution with its linear fit.
func Modulus(path string, m analysis.Modulus) error {
	const method = "Modulus"
	if len(m.Points) == 0 {
		return fmt.Errorf("%s: %w", method, ErrNoData)
	}
	ep := &errPoints{}
	for _, pt := range m.Points {
		ep.XYs = append(ep.XYs, plotter.XY{X: pt.Perc, Y: pt.Ratio})
		ep.YErrors = append(ep.YErrors, struct{ Low, High float64 }{pt.RatioErr, pt.RatioErr})
	}

	p := plot.New()
	p.Title.Text = "Modulus vs dilution"
	p.X.Label.Text = "dilution %"
	p.Y.Label.Text = "e/e0"
	if err := addErrSeries(p, ep, 0, "e/e0"); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if m.Linear.Model != nil {
		last := m.Points[len(m.Points)-1].Perc
		line := fitLine(m.Linear.Model, 0, last, 1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%.3g·x + %.3g", m.Linear.Params[0], m.Linear.Params[1]), line)
	}
	return save(method, p, path)
}

// Convergence draws the undiluted energy against dimension with its a/dim² fit.
func Convergence(path string, c analysis.Convergence) error {
	const method = "Convergence"
	if len(c.Dims) == 0 {
		return fmt.Errorf("%s: %w", method, ErrNoData)
	}
	xys := make(plotter.XYs, len(c.Dims))
	for i := range c.Dims {
		xys[i] = plotter.XY{X: c.Dims[i], Y: c.Energies[i]}
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Energy vs dimension (dv=%g)", c.DV)
	p.X.Label.Text = "dim"
	p.Y.Label.Text = "E"
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	p.Add(sc)
	if c.Fit.Model != nil {
		line := fitLine(c.Fit.Model, floats.Min(c.Dims), floats.Max(c.Dims), 1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("λ=%.4g", c.Lambda), line)
	}
	return save(method, p, path)
}

// Histogram draws the distribution of bond elongations. bins ≤ 0 picks the
// Sturges count ⌈log₂ n⌉ + 1.
func Histogram(path string, elongations []float64, bins int) error {
	const method = "Histogram"
	if len(elongations) == 0 {
		return fmt.Errorf("%s: %w", method, ErrNoData)
	}
	if bins <= 0 {
		bins = SturgesBins(len(elongations))
	}
	h, err := plotter.NewHist(plotter.Values(elongations), bins)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	h.FillColor = plotutil.Color(0)

	p := plot.New()
	p.Title.Text = "Bond elongation"
	p.X.Label.Text = "L - e"
	p.Y.Label.Text = "bonds"
	p.Add(h)
	return save(method, p, path)
}

// Profile draws the x–z cut of relaxed positions through |y| < tol.
func Profile(path string, positions []r3.Vec, tol float64) error {
	const method = "Profile"
	if !(tol > 0) {
		return fmt.Errorf("%s: tol=%g: %w", method, tol, ErrInvalidTolerance)
	}
	var xys plotter.XYs
	for _, v := range positions {
		if math.Abs(v.Y) < tol {
			xys = append(xys, plotter.XY{X: v.X, Y: v.Z})
		}
	}
	if len(xys) == 0 {
		return fmt.Errorf("%s: %w", method, ErrNoData)
	}
	slices.SortFunc(xys, func(a, b plotter.XY) int { return cmp.Compare(a.X, b.X) })

	p := plot.New()
	p.Title.Text = "Profile y≈0"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"
	if err := plotutil.AddLinePoints(p, xys); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return save(method, p, path)
}

// SturgesBins returns ⌈log₂ n⌉ + 1, at least 1.
func SturgesBins(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

func addErrSeries(p *plot.Plot, ep *errPoints, i int, name string) error {
	sc, err := plotter.NewScatter(ep)
	if err != nil {
		return err
	}
	sc.Color = plotutil.Color(i)
	sc.Shape = plotutil.Shape(i)
	bars, err := plotter.NewYErrorBars(ep)
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(i)
	p.Add(sc, bars)
	p.Legend.Add(name, sc)
	return nil
}

func fitLine(model func(float64) float64, xmin, xmax float64, i int) *plotter.Function {
	f := plotter.NewFunction(model)
	f.XMin, f.XMax = xmin, xmax
	f.Samples = fitSamples
	f.Color = plotutil.Color(i)
	f.Dashes = plotutil.Dashes(1)
	return f
}

func save(method string, p *plot.Plot, path string) error {
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("%s: save %s: %w", method, path, err)
	}
	return nil
}
