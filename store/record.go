// SPDX-License-Identifier: MIT
// Package: hexlattice/store
//
// record.go — the persisted optimization result and its JSON codec.
//
// encoding/json writes float64 in the shortest form that parses back to the
// same bits, so Decode(Encode(r)) reproduces X and Energy exactly. NaN and ±Inf
// are not representable and make Encode fail.

package store

import (
	"encoding/json"
	"fmt"
)

// CodecVersion is written into every record and checked on decode.
const CodecVersion = 1

// Record is one optimization outcome.
type Record struct {
	Version    int       `json:"version"`
	X          []float64 `json:"x"`
	Energy     float64   `json:"fun"`
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	Status     int       `json:"status"`
	Iterations int       `json:"nit"`
	FuncEvals  int       `json:"nfev"`
	GradEvals  int       `json:"njev"`
	Method     string    `json:"method"`
}

// Encode serializes r, stamping the current codec version.
func Encode(r Record) ([]byte, error) {
	r.Version = CodecVersion
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("Encode: %w", err)
	}
	return data, nil
}

// Decode parses a record written by Encode. A zero version is accepted for
// records written before versioning.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("Decode: %w", err)
	}
	if r.Version != 0 && r.Version != CodecVersion {
		return Record{}, fmt.Errorf("Decode: version %d: %w", r.Version, ErrVersionMismatch)
	}
	r.Version = CodecVersion
	return r, nil
}
