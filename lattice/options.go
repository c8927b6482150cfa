// SPDX-License-Identifier: MIT
// Package: hexlattice/lattice
//
// options.go — functional options for Build and NewSphere.
//
// Contract:
//   • Options mutate a private config before any point is generated.
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • Later options override earlier ones.

package lattice

import (
	"fmt"
	"math"
)

// Option customizes lattice construction.
type Option func(*config)

// config holds all construction knobs. Passed by value after resolution.
type config struct {
	bondLength float64 // lattice constant d (Bravais spacing)
}

const (
	// DefaultBondLength is the lattice constant used when WithBondLength is absent.
	DefaultBondLength = 1.0

	// MinDim is the smallest accepted lattice dimension.
	MinDim = 1
)

// newConfig applies opts over deterministic defaults.
func newConfig(opts ...Option) config {
	cfg := config{bondLength: DefaultBondLength}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithBondLength sets the lattice constant d. The spring rest length is d/√3.
// Panics if d is not a positive finite number.
func WithBondLength(d float64) Option {
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		panic(fmt.Sprintf("lattice: WithBondLength(%g)", d))
	}
	return func(c *config) {
		c.bondLength = d
	}
}
