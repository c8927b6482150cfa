// SPDX-License-Identifier: MIT
// Package: hexlattice/topology
//
// components.go — connected components over the combined bond graph.
//
// Used after dilution to find clusters of mobile points that lost every path to
// a fixed point. Such clusters carry zero stiffness: any rigid motion of them
// costs no energy, so the minimizer cannot pin their coordinates.

package topology

import (
	"fmt"

	"github.com/katalvlaran/hexlattice/lattice"
)

const methodFloating = "Floating"

// Components labels every vertex with a component id (0-based, ordered by the
// smallest member index). Breadth-first, neighbours visited in ascending order.
//
// Complexity: O(N + E).
func Components(adj *Adjacency) (labels []int, count int) {
	g := adj.Combined()
	n := g.Size()
	labels = make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	queue := make([]int, 0, n)
	for start := 0; start < n; start++ {
		if labels[start] >= 0 {
			continue
		}
		labels[start] = count
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, v := range g.rows[u] {
				if labels[v] < 0 {
					labels[v] = count
					queue = append(queue, v)
				}
			}
		}
		count++
	}

	return labels, count
}

// Floating returns the mobile points whose component contains no fixed point,
// in index order.
func Floating(adj *Adjacency, l *lattice.Lattice) ([]int, error) {
	if l == nil {
		return nil, fmt.Errorf("%s: %w", methodFloating, ErrNilLattice)
	}
	if l.Len() != adj.Size() {
		return nil, fmt.Errorf("%s: lattice=%d adjacency=%d: %w",
			methodFloating, l.Len(), adj.Size(), ErrSizeMismatch)
	}

	labels, count := Components(adj)
	anchored := make([]bool, count)
	for i, p := range l.Points {
		if !p.Mobile() {
			anchored[labels[i]] = true
		}
	}

	var out []int
	for i, p := range l.Points {
		if p.Mobile() && !anchored[labels[i]] {
			out = append(out, i)
		}
	}
	return out, nil
}
