// SPDX-License-Identifier: MIT

package store

import "errors"

var (
	// ErrNotFound indicates a key with no stored record.
	ErrNotFound = errors.New("store: record not found")

	// ErrMalformedName indicates a file name that does not follow the key grammar.
	ErrMalformedName = errors.New("store: malformed result name")

	// ErrVersionMismatch indicates a record written by an incompatible codec.
	ErrVersionMismatch = errors.New("store: record version mismatch")

	// ErrUnknownBackend indicates an Open kind with no implementation.
	ErrUnknownBackend = errors.New("store: unknown backend")
)
