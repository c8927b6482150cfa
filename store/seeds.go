// SPDX-License-Identifier: MIT
// Package: hexlattice/store
//
// seeds.go — plain-text seed lists and sweep summaries.

package store

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// SweepTimeLayout is the timestamp embedded in sweep summary names.
const SweepTimeLayout = "20060102-150405"

// ReadSeeds reads one integer seed per line. Blank lines are ignored;
// surrounding whitespace is trimmed.
func ReadSeeds(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadSeeds: %w", err)
	}
	defer f.Close()

	var seeds []int64
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ReadSeeds: %s:%d: %w", path, line, err)
		}
		seeds = append(seeds, v)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("ReadSeeds: %w", err)
	}
	return seeds, nil
}

// WriteSweepCSV writes (i, min energy) rows to dir/sweep_<now>.csv and returns
// the file path.
func WriteSweepCSV(dir string, energies []float64, now time.Time) (string, error) {
	path := filepath.Join(dir, "sweep_"+now.Format(SweepTimeLayout)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("WriteSweepCSV: %w", err)
	}

	w := csv.NewWriter(f)
	_ = w.Write([]string{"i", "min energy"})
	for i, e := range energies {
		_ = w.Write([]string{strconv.Itoa(i), formatFloat(e)})
	}
	w.Flush()
	if err = w.Error(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("WriteSweepCSV: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("WriteSweepCSV: %w", err)
	}
	return path, nil
}
