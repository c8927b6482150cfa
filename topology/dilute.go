// SPDX-License-Identifier: MIT
// Package: hexlattice/topology
//
// dilute.go — seeded random removal of bonds (per edge) or of whole vertices.
//
// Contract:
//   • 0 ≤ perc ≤ 100, else ErrInvalidPercentile.
//   • The input Adjacency is never mutated; a clone is returned.
//   • perc == 0 returns an unchanged clone without drawing from the RNG.
//
// Determinism:
//   • Edge trials run in Adjacency.Bonds order (vertical first, i asc, j asc).
//   • Vertex trials run in index order.
//   • Same (adjacency, perc, seed) ⇒ bit-identical result.

package topology

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/hexlattice/lattice"
)

const (
	methodDiluteEdges    = "DiluteEdges"
	methodDiluteVertices = "DiluteVertices"

	minPercentile = 0.0
	maxPercentile = 100.0
)

// Option configures the random source of a dilution call.
type Option func(*diluteConfig)

type diluteConfig struct {
	rng *rand.Rand
}

// WithSeed makes the call reproducible: a fresh source seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *diluteConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies an explicit source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("topology: WithRand(nil)")
	}
	return func(c *diluteConfig) {
		c.rng = r
	}
}

func newDiluteConfig(opts ...Option) diluteConfig {
	var cfg diluteConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return cfg
}

// DiluteEdges removes each bond independently with probability perc/100.
//
// Complexity: O(N + E).
func DiluteEdges(adj *Adjacency, perc float64, opts ...Option) (*Adjacency, error) {
	if err := validatePercentile(methodDiluteEdges, perc); err != nil {
		return nil, err
	}
	out := adj.Clone()
	if perc == minPercentile {
		return out, nil
	}

	cfg := newDiluteConfig(opts...)
	p := perc / maxPercentile
	for _, b := range adj.Bonds() {
		if cfg.rng.Float64() < p {
			if err := out.matrix(b.Class).Set(b.I, b.J, false); err != nil {
				return nil, fmt.Errorf("%s: %w", methodDiluteEdges, err)
			}
		}
	}

	return out, nil
}

// DiluteVertices removes, independently with probability perc/100, all bonds
// incident to a vertex. Fixed points are candidates as well. The lattice is
// only used to check that sizes agree.
//
// Complexity: O(N + E).
func DiluteVertices(adj *Adjacency, perc float64, l *lattice.Lattice, opts ...Option) (*Adjacency, error) {
	if err := validatePercentile(methodDiluteVertices, perc); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%s: %w", methodDiluteVertices, ErrNilLattice)
	}
	if l.Len() != adj.Size() {
		return nil, fmt.Errorf("%s: lattice=%d adjacency=%d: %w",
			methodDiluteVertices, l.Len(), adj.Size(), ErrSizeMismatch)
	}
	out := adj.Clone()
	if perc == minPercentile {
		return out, nil
	}

	cfg := newDiluteConfig(opts...)
	p := perc / maxPercentile
	for i := 0; i < l.Len(); i++ {
		if cfg.rng.Float64() < p {
			out.Vertical.Isolate(i)
			out.Diagonal.Isolate(i)
		}
	}

	return out, nil
}

func validatePercentile(method string, perc float64) error {
	if !(perc >= minPercentile && perc <= maxPercentile) {
		return fmt.Errorf("%s: perc=%g not in [%.0f,%.0f]: %w",
			method, perc, minPercentile, maxPercentile, ErrInvalidPercentile)
	}
	return nil
}
