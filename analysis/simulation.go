// SPDX-License-Identifier: MIT
// Package: hexlattice/analysis
//
// simulation.go — loading stored results and grouping them by parameters.

package analysis

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/hexlattice/store"
)

// Simulation is one stored relaxation.
type Simulation struct {
	Key     store.Key
	Energy  float64
	Success bool
	X       []float64
}

// Params is the (dim, dv, perc) triple that seeds are averaged over.
type Params struct {
	Dim  int
	DV   float64
	Perc float64
}

// Params returns the triple of s.
func (s Simulation) Params() Params {
	return Params{Dim: s.Key.Dim, DV: s.Key.DV, Perc: s.Key.Perc}
}

// Compare orders triples by perc, dim, dv: dilution series stay contiguous.
func (p Params) Compare(o Params) int {
	return cmp.Or(
		cmp.Compare(p.Perc, o.Perc),
		cmp.Compare(p.Dim, o.Dim),
		cmp.Compare(p.DV, o.DV),
	)
}

// LoadAll reads every record of st in key order.
func LoadAll(ctx context.Context, st store.Store) ([]Simulation, error) {
	keys, err := st.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("LoadAll: %w", err)
	}
	sims := make([]Simulation, 0, len(keys))
	for _, k := range keys {
		rec, err := st.Load(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("LoadAll: %w", err)
		}
		sims = append(sims, Simulation{Key: k, Energy: rec.Energy, Success: rec.Success, X: rec.X})
	}
	return sims, nil
}

// Parameters returns the distinct triples of sims, sorted.
func Parameters(sims []Simulation) []Params {
	out := make([]Params, 0, len(sims))
	for _, s := range sims {
		out = append(out, s.Params())
	}
	slices.SortFunc(out, Params.Compare)
	return slices.Compact(out)
}

// Option configures energy selection.
type Option func(*selectConfig)

type selectConfig struct {
	floor    float64
	useFloor bool
}

// WithEnergyFloor drops results of displaced lattices (dv > 0) whose energy is
// not above floor; such results are taken as failed relaxations. Panics on a
// negative floor.
func WithEnergyFloor(floor float64) Option {
	if floor < 0 {
		panic("analysis: WithEnergyFloor(negative)")
	}
	return func(c *selectConfig) {
		c.floor = floor
		c.useFloor = true
	}
}

func newSelectConfig(opts ...Option) selectConfig {
	var c selectConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c selectConfig) keep(s Simulation) bool {
	return !c.useFloor || s.Energy > c.floor || s.Key.DV <= 0
}

// EnergyByParameters returns the energies of every simulation with triple p,
// in input order.
func EnergyByParameters(sims []Simulation, p Params, opts ...Option) []float64 {
	c := newSelectConfig(opts...)
	var out []float64
	for _, s := range sims {
		if s.Params() == p && c.keep(s) {
			out = append(out, s.Energy)
		}
	}
	return out
}

// Summary is the seed average of one triple.
type Summary struct {
	Params
	Mean float64
	Std  float64 // population standard deviation
	N    int
}

// MeanEnergyVsDV averages energies per triple. Triples left empty by the
// selection options are omitted. Output follows Parameters order.
func MeanEnergyVsDV(sims []Simulation, opts ...Option) []Summary {
	var out []Summary
	for _, p := range Parameters(sims) {
		e := EnergyByParameters(sims, p, opts...)
		if len(e) == 0 {
			continue
		}
		mean, std := stat.PopMeanStdDev(e, nil)
		out = append(out, Summary{Params: p, Mean: mean, Std: std, N: len(e)})
	}
	return out
}
