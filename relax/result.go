// SPDX-License-Identifier: MIT

package relax

import (
	"time"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/hexlattice/energy"
	"github.com/katalvlaran/hexlattice/lattice"
	"github.com/katalvlaran/hexlattice/store"
	"github.com/katalvlaran/hexlattice/topology"
)

// Result is the outcome of one relaxation.
type Result struct {
	Dim  int
	DV   float64 // applied displacement (absolute, also in factor mode)
	Perc float64
	Seed int64 // resolved seed, drawn when Config.Seed was nil
	Mode Mode

	X          []float64 // relaxed mobile coordinates, Layout order
	Energy     float64
	Success    bool
	Message    string
	Status     optimize.Status
	Iterations int
	FuncEvals  int
	GradEvals  int
	Runtime    time.Duration
	Method     Method

	Lattice   *lattice.Lattice
	Adjacency *topology.Adjacency
	Layout    *energy.Layout
}

// Key is the persistence key of r.
func (r *Result) Key() store.Key {
	return store.Key{Dim: r.Dim, DV: r.DV, Perc: r.Perc, Seed: r.Seed}
}

// Record converts r into its persisted form.
func (r *Result) Record() store.Record {
	return store.Record{
		X:          r.X,
		Energy:     r.Energy,
		Success:    r.Success,
		Message:    r.Message,
		Status:     int(r.Status),
		Iterations: r.Iterations,
		FuncEvals:  r.FuncEvals,
		GradEvals:  r.GradEvals,
		Method:     string(r.Method),
	}
}

// Positions returns every lattice point's relaxed coordinates.
func (r *Result) Positions() ([]r3.Vec, error) {
	return r.Layout.Positions(r.X)
}
