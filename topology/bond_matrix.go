// SPDX-License-Identifier: MIT

// Package topology - BondMatrix: sparse symmetric 0/1 matrix.
//
// Purpose:
//   - Answer At(i,j) in O(deg) and iterate the upper triangle in a fixed order.
//   - Keep symmetry as an invariant of Set, never of the caller.
//   - Return sentinel errors from public indexers instead of panicking.
//
// Complexity quicksheet:
//   - NewBondMatrix: O(n); At/Set: O(deg); Upper: O(n + nnz); Clone: O(n + nnz).

package topology

import (
	"fmt"
	"slices"
)

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

func bondErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("BondMatrix.%s(%d,%d): %w", method, i, j, err)
}

// Pair is an upper-triangle entry (I < J).
type Pair struct {
	I, J int
}

// BondMatrix is a square symmetric 0/1 matrix stored as sorted neighbour lists.
type BondMatrix struct {
	rows [][]int // rows[i] holds the sorted column indices j with entry 1
	nnz  int     // number of undirected bonds (upper-triangle entries)
}

// NewBondMatrix returns an n×n zero matrix. Negative n is treated as 0.
func NewBondMatrix(n int) *BondMatrix {
	if n < 0 {
		n = 0
	}
	return &BondMatrix{rows: make([][]int, n)}
}

// Size returns the matrix order n.
func (m *BondMatrix) Size() int { return len(m.rows) }

// Count returns the number of undirected bonds.
func (m *BondMatrix) Count() int { return m.nnz }

// Degree returns the number of bonds incident to i (0 when out of range).
func (m *BondMatrix) Degree(i int) int {
	if i < 0 || i >= len(m.rows) {
		return 0
	}
	return len(m.rows[i])
}

// Neighbors returns a copy of the sorted neighbour list of i.
func (m *BondMatrix) Neighbors(i int) []int {
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return slices.Clone(m.rows[i])
}

// At reports whether entry (i,j) is 1.
func (m *BondMatrix) At(i, j int) (bool, error) {
	if err := m.check(i, j); err != nil {
		return false, bondErrorf(ctxAt, i, j, err)
	}
	_, ok := slices.BinarySearch(m.rows[i], j)
	return ok, nil
}

// Set writes entry (i,j) and its mirror (j,i).
func (m *BondMatrix) Set(i, j int, on bool) error {
	if err := m.check(i, j); err != nil {
		return bondErrorf(ctxSet, i, j, err)
	}
	if i == j {
		return bondErrorf(ctxSet, i, j, ErrSelfBond)
	}
	if on {
		if insert(&m.rows[i], j) {
			insert(&m.rows[j], i)
			m.nnz++
		}
		return nil
	}
	if remove(&m.rows[i], j) {
		remove(&m.rows[j], i)
		m.nnz--
	}
	return nil
}

// Isolate clears row and column i. It returns the number of bonds removed.
func (m *BondMatrix) Isolate(i int) int {
	if i < 0 || i >= len(m.rows) {
		return 0
	}
	removed := len(m.rows[i])
	for _, j := range m.rows[i] {
		remove(&m.rows[j], i)
	}
	m.rows[i] = nil
	m.nnz -= removed
	return removed
}

// Upper returns all entries with I < J, ordered by I asc then J asc.
func (m *BondMatrix) Upper() []Pair {
	out := make([]Pair, 0, m.nnz)
	for i, row := range m.rows {
		k, _ := slices.BinarySearch(row, i+1)
		for _, j := range row[k:] {
			out = append(out, Pair{i, j})
		}
	}
	return out
}

// Clone returns a deep copy.
func (m *BondMatrix) Clone() *BondMatrix {
	c := &BondMatrix{rows: make([][]int, len(m.rows)), nnz: m.nnz}
	for i, row := range m.rows {
		c.rows[i] = slices.Clone(row)
	}
	return c
}

// Equal reports whether both matrices have the same order and entries.
func (m *BondMatrix) Equal(o *BondMatrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if len(m.rows) != len(o.rows) || m.nnz != o.nnz {
		return false
	}
	for i := range m.rows {
		if !slices.Equal(m.rows[i], o.rows[i]) {
			return false
		}
	}
	return true
}

func (m *BondMatrix) check(i, j int) error {
	if i < 0 || j < 0 || i >= len(m.rows) || j >= len(m.rows) {
		return ErrOutOfRange
	}
	return nil
}

// insert adds v to the sorted slice; false if already present.
func insert(s *[]int, v int) bool {
	k, ok := slices.BinarySearch(*s, v)
	if ok {
		return false
	}
	*s = slices.Insert(*s, k, v)
	return true
}

// remove deletes v from the sorted slice; false if absent.
func remove(s *[]int, v int) bool {
	k, ok := slices.BinarySearch(*s, v)
	if !ok {
		return false
	}
	*s = slices.Delete(*s, k, k+1)
	return true
}
