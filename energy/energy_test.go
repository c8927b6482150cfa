package energy_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/hexlattice/energy"
	"github.com/katalvlaran/hexlattice/lattice"
	"github.com/katalvlaran/hexlattice/topology"
)

// fixture is a displaced, edge-diluted lattice with both assemblers.
type fixture struct {
	lat  *lattice.Lattice
	adj  *topology.Adjacency
	loop *energy.Loop
	vec  *energy.Vectorized
}

func newFixture(t *testing.T, dim int, dv, perc float64) fixture {
	t.Helper()
	l, err := lattice.Build(dim)
	require.NoError(t, err)
	require.NoError(t, l.DisplaceAbsolute(dv))
	full, err := topology.Build(l)
	require.NoError(t, err)
	adj, err := topology.DiluteEdges(full, perc, topology.WithSeed(7))
	require.NoError(t, err)

	loop, err := energy.NewLoop(l, adj, energy.DefaultStiffness)
	require.NoError(t, err)
	vec, err := energy.NewVectorized(l, adj, energy.DefaultStiffness)
	require.NoError(t, err)

	return fixture{lat: l, adj: adj, loop: loop, vec: vec}
}

// perturbed returns the planar guess with uniform noise of the given amplitude.
func perturbed(lay *energy.Layout, amp float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	x := lay.Initial()
	for i := range x {
		x[i] += amp * (2*rng.Float64() - 1)
	}
	return x
}

//----------------------------------------------------------------------------//
// Layout
//----------------------------------------------------------------------------//

func TestLayout_Slots(t *testing.T) {
	l, err := lattice.Build(2)
	require.NoError(t, err)
	require.NoError(t, l.DisplaceAbsolute(0.4))
	lay := energy.NewLayout(l)

	require.Equal(t, 3*len(l.Mobile()), lay.Dim())
	require.Len(t, lay.Fixed(), 3*len(l.Fixed()))

	x := lay.Initial()
	pos, err := lay.Positions(x)
	require.NoError(t, err)
	for i, p := range l.Points {
		require.Equal(t, p.Position(), pos[i], "point %s", p.Name())
		s := lay.Slot(i)
		if p.Mobile() {
			require.Equal(t, energy.InVector, s.Source)
		} else {
			require.Equal(t, energy.InFixed, s.Source)
		}
	}

	_, err = lay.Positions(x[:len(x)-1])
	require.ErrorIs(t, err, energy.ErrSizeMismatch)
}

func TestLayout_InitialIsFresh(t *testing.T) {
	l, err := lattice.Build(1)
	require.NoError(t, err)
	lay := energy.NewLayout(l)
	a := lay.Initial()
	a[0] = 42
	require.NotEqual(t, 42.0, lay.Initial()[0])
}

//----------------------------------------------------------------------------//
// Energy
//----------------------------------------------------------------------------//

func TestNew_Errors(t *testing.T) {
	l, err := lattice.Build(2)
	require.NoError(t, err)
	adj, err := topology.Build(l)
	require.NoError(t, err)
	other, err := lattice.Build(3)
	require.NoError(t, err)

	_, err = energy.NewLoop(nil, adj, 1)
	require.ErrorIs(t, err, energy.ErrNilInput)
	_, err = energy.NewVectorized(l, nil, 1)
	require.ErrorIs(t, err, energy.ErrNilInput)

	for _, k := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = energy.NewVectorized(l, adj, k)
		require.ErrorIs(t, err, energy.ErrInvalidStiffness, "k=%g", k)
	}

	_, err = energy.NewLoop(other, adj, 1)
	require.ErrorIs(t, err, energy.ErrSizeMismatch)

	_, err = energy.New("simd", l, adj, 1)
	require.Error(t, err)

	obj, err := energy.New("", l, adj, 1)
	require.NoError(t, err)
	require.IsType(t, &energy.Vectorized{}, obj)
	obj, err = energy.New(energy.KindLoop, l, adj, 1)
	require.NoError(t, err)
	require.IsType(t, &energy.Loop{}, obj)
}

// TestEnergy_ZeroAtRest checks U = 0 for an undisplaced planar lattice.
func TestEnergy_ZeroAtRest(t *testing.T) {
	f := newFixture(t, 4, 0, 0)
	x := f.vec.Layout().Initial()
	require.InDelta(t, 0, f.loop.Func(x), 1e-20)
	require.InDelta(t, 0, f.vec.Func(x), 1e-20)

	g := make([]float64, len(x))
	f.vec.Grad(g, x)
	require.InDelta(t, 0, floats.Norm(g, math.Inf(1)), 1e-12)
}

// TestEnergy_AssemblersAgree compares Loop and Vectorized on random states.
func TestEnergy_AssemblersAgree(t *testing.T) {
	t.Parallel()
	cases := []struct {
		dim      int
		dv, perc float64
	}{
		{1, 0.2, 0},
		{3, 0.5, 0},
		{5, 1.0, 25},
		{8, 2.0, 60},
	}
	for _, tc := range cases {
		f := newFixture(t, tc.dim, tc.dv, tc.perc)
		for seed := int64(1); seed <= 3; seed++ {
			x := perturbed(f.vec.Layout(), 0.3, seed)
			ul, uv := f.loop.Func(x), f.vec.Func(x)
			require.GreaterOrEqual(t, uv, 0.0)
			require.InDelta(t, ul, uv, 1e-9*math.Max(1, ul), "dim=%d seed=%d", tc.dim, seed)

			gl := make([]float64, len(x))
			gv := make([]float64, len(x))
			f.loop.Grad(gl, x)
			f.vec.Grad(gv, x)
			require.True(t, floats.EqualApprox(gl, gv, 1e-9), "dim=%d seed=%d", tc.dim, seed)
		}
	}
}

// TestEnergy_GradientMatchesFiniteDifference validates the analytic gradient.
func TestEnergy_GradientMatchesFiniteDifference(t *testing.T) {
	f := newFixture(t, 3, 0.7, 10)
	x := perturbed(f.vec.Layout(), 0.2, 11)

	want := fd.Gradient(nil, f.loop.Func, x, &fd.Settings{Formula: fd.Central, Step: 1e-6})
	got := make([]float64, len(x))
	f.vec.Grad(got, x)
	for i := range got {
		require.InDelta(t, want[i], got[i], 1e-5, "component %d", i)
	}
}

// TestEnergy_FixedFixedExcluded uses a sphere lattice, where bonds between
// contact points are stretched but carry no mobile endpoint.
func TestEnergy_FixedFixedExcluded(t *testing.T) {
	l, err := lattice.NewSphere(4, 3, 0.5)
	require.NoError(t, err)
	adj, err := topology.Build(l)
	require.NoError(t, err)
	vec, err := energy.NewVectorized(l, adj, 1)
	require.NoError(t, err)
	loop, err := energy.NewLoop(l, adj, 1)
	require.NoError(t, err)

	x := vec.Layout().Initial()
	pos, err := vec.Layout().Positions(x)
	require.NoError(t, err)

	var active int
	var withFixed, withoutFixed float64
	for _, b := range adj.Bonds() {
		dl := r3.Norm(r3.Sub(pos[b.I], pos[b.J])) - l.RestLength()
		u := 0.5 * dl * dl
		withFixed += u
		if l.Points[b.I].Mobile() || l.Points[b.J].Mobile() {
			withoutFixed += u
			active++
		}
	}
	require.Greater(t, withFixed, withoutFixed, "fixture must stretch a fixed–fixed bond")
	require.Equal(t, active, vec.Bonds())
	require.InDelta(t, withoutFixed, vec.Func(x), 1e-12)
	require.InDelta(t, withoutFixed, loop.Func(x), 1e-12)
}

func TestEnergy_StiffnessScales(t *testing.T) {
	f := newFixture(t, 3, 0.5, 0)
	stiff, err := energy.NewVectorized(f.lat, f.adj, 2*energy.DefaultStiffness)
	require.NoError(t, err)
	x := perturbed(f.vec.Layout(), 0.1, 3)
	require.InDelta(t, 2*f.vec.Func(x), stiff.Func(x), 1e-12)
}

//----------------------------------------------------------------------------//
// Elongations
//----------------------------------------------------------------------------//

func TestElongations(t *testing.T) {
	f := newFixture(t, 3, 0.5, 0)
	x := perturbed(f.vec.Layout(), 0.1, 5)

	dl, err := energy.Elongations(f.lat, f.adj, x)
	require.NoError(t, err)
	require.Len(t, dl, f.vec.Bonds())
	require.InDelta(t, f.vec.Func(x), 0.5*energy.DefaultStiffness*floats.Dot(dl, dl), 1e-12)

	_, err = f.vec.Elongations(x[1:])
	require.ErrorIs(t, err, energy.ErrSizeMismatch)
}
