// SPDX-License-Identifier: MIT
// Package: hexlattice/store
//
// key.go — the parameter tuple and its file-name grammar.
//
// Grammar (scanned left to right over the base name):
//   • every '=' starts a value;
//   • the k-th '_' ends the k-th value;
//   • the last '_' starts the final value, the last '.' ends it.
// Values are returned as strings in order: dim, dv, perc, seed.

package store

import (
	"cmp"
	"fmt"
	"path/filepath"
	"strconv"
)

// keyFields is the number of values in a result name.
const keyFields = 4

// Key identifies one relaxation.
type Key struct {
	Dim  int
	DV   float64
	Perc float64
	Seed int64
}

// Filename renders k with the given extension (including its dot).
func (k Key) Filename(ext string) string {
	return fmt.Sprintf("dim=%d_dv=%s_perc=%s_%d%s",
		k.Dim, formatFloat(k.DV), formatFloat(k.Perc), k.Seed, ext)
}

// String renders k without extension.
func (k Key) String() string { return k.Filename("") }

// Compare orders keys by dim, dv, perc, seed.
func (k Key) Compare(o Key) int {
	return cmp.Or(
		cmp.Compare(k.Dim, o.Dim),
		cmp.Compare(k.DV, o.DV),
		cmp.Compare(k.Perc, o.Perc),
		cmp.Compare(k.Seed, o.Seed),
	)
}

// formatFloat is the shortest decimal form that parses back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseValues extracts the ordered value strings of a result name. Directory
// components are ignored.
//
// Example: "dim=5_dv=2.5_perc=0_12345.pickle" → ["5" "2.5" "0" "12345"].
func ParseValues(name string) ([]string, error) {
	base := filepath.Base(name)
	var starts, ends []int
	dot := -1
	for i, c := range base {
		switch c {
		case '=':
			starts = append(starts, i+1)
		case '_':
			ends = append(ends, i)
		case '.':
			dot = i
		}
	}
	if len(starts) == 0 || len(ends) < len(starts) || dot < 0 {
		return nil, fmt.Errorf("ParseValues(%q): %w", base, ErrMalformedName)
	}
	last := ends[len(ends)-1] + 1
	if dot < last {
		return nil, fmt.Errorf("ParseValues(%q): %w", base, ErrMalformedName)
	}

	values := make([]string, 0, len(starts)+1)
	for k, s := range starts {
		if ends[k] < s {
			return nil, fmt.Errorf("ParseValues(%q): value %d: %w", base, k, ErrMalformedName)
		}
		values = append(values, base[s:ends[k]])
	}
	values = append(values, base[last:dot])
	return values, nil
}

// ParseKey converts a result name into a Key.
func ParseKey(name string) (Key, error) {
	v, err := ParseValues(name)
	if err != nil {
		return Key{}, err
	}
	if len(v) != keyFields {
		return Key{}, fmt.Errorf("ParseKey(%q): %d values: %w", name, len(v), ErrMalformedName)
	}
	var k Key
	var errs [keyFields]error
	k.Dim, errs[0] = strconv.Atoi(v[0])
	k.DV, errs[1] = strconv.ParseFloat(v[1], 64)
	k.Perc, errs[2] = strconv.ParseFloat(v[2], 64)
	k.Seed, errs[3] = strconv.ParseInt(v[3], 10, 64)
	for i, err := range errs {
		if err != nil {
			return Key{}, fmt.Errorf("ParseKey(%q): field %d %q: %w", name, i, v[i], ErrMalformedName)
		}
	}
	return k, nil
}
