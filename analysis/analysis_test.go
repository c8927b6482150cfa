package analysis_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/hexlattice/analysis"
	"github.com/katalvlaran/hexlattice/relax"
	"github.com/katalvlaran/hexlattice/store"
)

func sim(dim int, dv, perc float64, seed int64, e float64) analysis.Simulation {
	return analysis.Simulation{
		Key:    store.Key{Dim: dim, DV: dv, Perc: perc, Seed: seed},
		Energy: e,
	}
}

//----------------------------------------------------------------------------//
// Grouping
//----------------------------------------------------------------------------//

func TestParameters(t *testing.T) {
	sims := []analysis.Simulation{
		sim(5, 2, 1, 1, 0.3),
		sim(5, 1, 0, 1, 0.1),
		sim(5, 2, 1, 2, 0.5),
		sim(5, 1, 0, 2, 0.2),
	}
	got := analysis.Parameters(sims)
	require.Equal(t, []analysis.Params{{Dim: 5, DV: 1, Perc: 0}, {Dim: 5, DV: 2, Perc: 1}}, got)
}

func TestEnergyByParameters_Floor(t *testing.T) {
	sims := []analysis.Simulation{
		sim(5, 2, 0, 1, 0.5),
		sim(5, 2, 0, 2, 0.01), // failed relaxation of a displaced lattice
		sim(5, 0, 0, 3, 0.0),
		sim(5, 0, 0, 4, 0.0),
	}
	p := analysis.Params{Dim: 5, DV: 2, Perc: 0}
	require.Equal(t, []float64{0.5, 0.01}, analysis.EnergyByParameters(sims, p))
	require.Equal(t, []float64{0.5}, analysis.EnergyByParameters(sims, p, analysis.WithEnergyFloor(0.1)))

	flat := analysis.Params{Dim: 5, DV: 0, Perc: 0}
	require.Len(t, analysis.EnergyByParameters(sims, flat, analysis.WithEnergyFloor(0.1)), 2)

	require.Panics(t, func() { analysis.WithEnergyFloor(-1) })
}

func TestMeanEnergyVsDV(t *testing.T) {
	sims := []analysis.Simulation{
		sim(5, 1, 0, 1, 1),
		sim(5, 1, 0, 2, 3),
		sim(5, 2, 0, 1, 8),
	}
	got := analysis.MeanEnergyVsDV(sims)
	require.Len(t, got, 2)
	require.Equal(t, 2.0, got[0].Mean)
	require.InDelta(t, 1.0, got[0].Std, 1e-15)
	require.Equal(t, 2, got[0].N)
	require.Equal(t, 8.0, got[1].Mean)
	require.Equal(t, 0.0, got[1].Std)
}

func TestLoadAll(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	k1 := store.Key{Dim: 3, DV: 1, Perc: 0, Seed: 1}
	k2 := store.Key{Dim: 3, DV: 0.5, Perc: 0, Seed: 1}
	require.NoError(t, st.Save(ctx, k1, store.Record{X: []float64{1}, Energy: 0.4, Success: true}))
	require.NoError(t, st.Save(ctx, k2, store.Record{X: []float64{2}, Energy: 0.1}))

	sims, err := analysis.LoadAll(ctx, st)
	require.NoError(t, err)
	require.Len(t, sims, 2)
	require.Equal(t, k2, sims[0].Key)
	require.Equal(t, 0.4, sims[1].Energy)
	require.True(t, sims[1].Success)
}

//----------------------------------------------------------------------------//
// Fits
//----------------------------------------------------------------------------//

func TestFitMonomial(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2.5 * math.Pow(v+1, 3)
	}
	fit, err := analysis.FitMonomial(x, y, 3, 1)
	require.NoError(t, err)
	require.InDelta(t, 2.5, fit.Params[0], 1e-12)
	require.InDelta(t, 0, fit.Errors[0], 1e-9)
	require.InDelta(t, 1, fit.RSquared, 1e-12)
	require.InDelta(t, 2.5*125, fit.Model(4), 1e-9)
}

// TestFitMonomial_StandardError checks the reduced-χ² scaling by hand:
// a = 17/14, SSR = 5/14, s² = SSR/2, var(a) = s²/Σx² = 5/392.
func TestFitMonomial_StandardError(t *testing.T) {
	fit, err := analysis.FitMonomial([]float64{1, 2, 3}, []float64{1, 2, 4}, 1, 0)
	require.NoError(t, err)
	require.InDelta(t, 17.0/14, fit.Params[0], 1e-12)
	require.InDelta(t, math.Sqrt(5.0/392), fit.Errors[0], 1e-12)
}

func TestFitMonomial_Errors(t *testing.T) {
	_, err := analysis.FitMonomial([]float64{1}, []float64{1}, 2, 0)
	require.ErrorIs(t, err, analysis.ErrTooFewPoints)
	_, err = analysis.FitMonomial([]float64{1, 2}, []float64{1}, 2, 0)
	require.ErrorIs(t, err, analysis.ErrSizeMismatch)
	_, err = analysis.FitMonomial([]float64{-1, -1}, []float64{1, 2}, 2, 1)
	require.ErrorIs(t, err, analysis.ErrDegenerate)
}

func TestFitLinear(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 4, 7}

	fit, err := analysis.FitLinear(x, y, nil)
	require.NoError(t, err)
	require.InDelta(t, 1.9, fit.Params[0], 1e-12)
	require.InDelta(t, 0.9, fit.Params[1], 1e-12)
	require.InDelta(t, math.Sqrt(0.07), fit.Errors[0], 1e-12)
	require.InDelta(t, math.Sqrt(0.245), fit.Errors[1], 1e-12)

	// A uniform σ rescales χ² and the covariance by inverse factors.
	weighted, err := analysis.FitLinear(x, y, []float64{2, 2, 2, 2})
	require.NoError(t, err)
	require.True(t, floats.EqualApprox(fit.Params, weighted.Params, 1e-12))
	require.True(t, floats.EqualApprox(fit.Errors, weighted.Errors, 1e-12))
	require.InDelta(t, fit.RSquared, weighted.RSquared, 1e-12)
}

// TestFitLinear_Weighted solves the weighted normal equations by hand:
// w = {1, 1, 2} gives Σwx² = 9, Σwx = 5, Σw = 4, Σwxy = 13, Σwy = 7,
// so a = 17/11 and b = -2/11.
func TestFitLinear_Weighted(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 3}
	fit, err := analysis.FitLinear(x, y, []float64{1, 1, math.Sqrt(0.5)})
	require.NoError(t, err)
	require.InDelta(t, 17.0/11, fit.Params[0], 1e-12)
	require.InDelta(t, -2.0/11, fit.Params[1], 1e-12)
	for _, e := range fit.Errors {
		require.False(t, math.IsNaN(e))
	}

	// Σw = 1 exactly.
	unit, err := analysis.FitLinear(x, y, []float64{math.Sqrt(3), math.Sqrt(3), math.Sqrt(3)})
	require.NoError(t, err)
	require.InDelta(t, 1.5, unit.Params[0], 1e-12)
	require.InDelta(t, -1.0/6, unit.Params[1], 1e-12)
}

func TestFitLinear_Errors(t *testing.T) {
	_, err := analysis.FitLinear([]float64{1, 2}, []float64{1, 2}, nil)
	require.ErrorIs(t, err, analysis.ErrTooFewPoints)

	_, err = analysis.FitLinear([]float64{1, 2, 3}, []float64{1, 2, 3}, []float64{1, 0, 1})
	require.ErrorIs(t, err, analysis.ErrDegenerate)

	_, err = analysis.FitLinear([]float64{1, 2, 3}, []float64{1, 2, 3}, []float64{1, 1})
	require.ErrorIs(t, err, analysis.ErrSizeMismatch)

	// Identical abscissae make JᵀWJ singular.
	_, err = analysis.FitLinear([]float64{2, 2, 2}, []float64{1, 2, 3}, nil)
	require.Error(t, err)
}

func TestFitPowerLaw(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 3 * math.Pow(v, 2.5)
	}
	fit, err := analysis.FitPowerLaw(x, y)
	require.NoError(t, err)
	require.InDelta(t, 3, fit.Params[0], 1e-6)
	require.InDelta(t, 2.5, fit.Params[1], 1e-6)

	rng := rand.New(rand.NewSource(1))
	noisy := make([]float64, len(x))
	for i, v := range y {
		noisy[i] = v * (1 + 0.02*(2*rng.Float64()-1))
	}
	fit, err = analysis.FitPowerLaw(x, noisy)
	require.NoError(t, err)
	require.InDelta(t, 2.5, fit.Params[1], 0.1)
	require.Greater(t, fit.RSquared, 0.99)
	require.Greater(t, fit.Errors[1], 0.0)

	_, err = analysis.FitPowerLaw([]float64{1, 0, 2}, []float64{1, 1, 1})
	require.ErrorIs(t, err, analysis.ErrDegenerate)
}

//----------------------------------------------------------------------------//
// Modulus & convergence
//----------------------------------------------------------------------------//

func modulusSummaries(coeffs map[float64]float64) []analysis.Summary {
	var out []analysis.Summary
	for perc, a := range coeffs {
		for _, dv := range []float64{1, 2, 3} {
			out = append(out, analysis.Summary{
				Params: analysis.Params{Dim: 10, DV: dv, Perc: perc},
				Mean:   a * math.Pow(dv, 4),
				N:      1,
			})
		}
	}
	return out
}

func TestModulusVsDilution(t *testing.T) {
	groups := modulusSummaries(map[float64]float64{0: 2, 1: 1.8, 2: 1.6, 3: 1.4})
	m, err := analysis.ModulusVsDilution(groups, 4, 0)
	require.NoError(t, err)
	require.Len(t, m.Points, 4)
	for i, want := range []float64{1, 0.9, 0.8, 0.7} {
		require.Equal(t, float64(i), m.Points[i].Perc)
		require.InDelta(t, want, m.Points[i].Ratio, 1e-12)
	}
	require.InDelta(t, -0.1, m.Linear.Params[0], 1e-9)
	require.InDelta(t, 1, m.Linear.Params[1], 1e-9)
}

func TestModulusVsDilution_Errors(t *testing.T) {
	_, err := analysis.ModulusVsDilution(modulusSummaries(map[float64]float64{1: 2, 2: 1}), 4, 0)
	require.ErrorIs(t, err, analysis.ErrNoReference)

	m, err := analysis.ModulusVsDilution(modulusSummaries(map[float64]float64{0: 2, 2: 1}), 4, 0)
	require.ErrorIs(t, err, analysis.ErrTooFewPoints)
	require.Len(t, m.Points, 2)
	require.InDelta(t, 0.5, m.Points[1].Ratio, 1e-12)
}

func TestEnergyConvergence(t *testing.T) {
	const dv, lambda = 2.0, 5.0
	var sims []analysis.Simulation
	for dim := 5; dim <= 10; dim++ {
		e := lambda * math.Pow(dv, 4) / float64(dim*dim)
		sims = append(sims, sim(dim, dv, 0, 1, e), sim(dim, dv, 0, 2, e))
		sims = append(sims, sim(dim, dv, 3, 1, 100)) // diluted, ignored
		sims = append(sims, sim(dim, 1, 0, 1, 100))  // other dv, ignored
	}
	c, err := analysis.EnergyConvergence(sims, dv)
	require.NoError(t, err)
	require.Len(t, c.Dims, 6)
	require.Equal(t, 5.0, c.Dims[0])
	require.InDelta(t, lambda, c.Lambda, 1e-9)

	_, err = analysis.EnergyConvergence(sims, 0)
	require.ErrorIs(t, err, analysis.ErrDegenerate)
}

//----------------------------------------------------------------------------//
// Elongations
//----------------------------------------------------------------------------//

func TestElongations_ReproduceEnergy(t *testing.T) {
	res, err := relax.Run(context.Background(), relax.Config{
		Dim: 3, Displacement: 0.5, Percentile: 5, Seed: relax.Int64(3),
	})
	require.NoError(t, err)

	s := analysis.Simulation{Key: res.Key(), Energy: res.Energy, X: res.Record().X}
	dl, err := analysis.Elongations(s, relax.Config{})
	require.NoError(t, err)
	require.NotEmpty(t, dl)
	// U = ½k·Σdl² with the default k = 2.
	require.InDelta(t, res.Energy, floats.Dot(dl, dl), 1e-9)

	st, err := analysis.SummarizeElongations(dl)
	require.NoError(t, err)
	require.Equal(t, len(dl), st.N)
	require.GreaterOrEqual(t, st.Max, st.Mean)

	s.X = s.X[1:]
	_, err = analysis.Elongations(s, relax.Config{})
	require.Error(t, err)
}

func TestSummarizeElongations(t *testing.T) {
	st, err := analysis.SummarizeElongations([]float64{1, -1, 3})
	require.NoError(t, err)
	require.Equal(t, 3.0, st.Max)
	require.InDelta(t, 1.0, st.Mean, 1e-15)
	require.InDelta(t, math.Sqrt(8.0/3), st.Std, 1e-12)

	_, err = analysis.SummarizeElongations(nil)
	require.ErrorIs(t, err, analysis.ErrTooFewPoints)
}
