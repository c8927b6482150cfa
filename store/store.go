// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
)

// Store persists records by key.
type Store interface {
	// Save writes rec under k, replacing any previous record.
	Save(ctx context.Context, k Key, rec Record) error
	// Load returns the record under k or ErrNotFound.
	Load(ctx context.Context, k Key) (Record, error)
	// List returns every stored key in ascending order.
	List(ctx context.Context) ([]Key, error)
	// Close releases backend resources.
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	// BackendFile selects FileStore; path is a directory.
	BackendFile Backend = "file"
	// BackendSQLite selects SQLiteStore; path is a database file.
	BackendSQLite Backend = "sqlite"
)

// Open returns the backend named kind rooted at path. An empty kind selects
// BackendFile.
func Open(ctx context.Context, kind Backend, path string) (Store, error) {
	switch kind {
	case "", BackendFile:
		return OpenFileStore(path)
	case BackendSQLite:
		return OpenSQLiteStore(ctx, path)
	default:
		return nil, fmt.Errorf("Open(%q): %w", kind, ErrUnknownBackend)
	}
}
