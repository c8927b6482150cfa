// SPDX-License-Identifier: MIT
// Package: hexlattice/store
//
// sqlite.go — one row per key in a modernc.org/sqlite database.
//
// The key columns and the energy/success summary are stored as plain columns so
// the database can be queried directly; the full record is the JSON payload.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS results (
	dim     INTEGER NOT NULL,
	dv      REAL    NOT NULL,
	perc    REAL    NOT NULL,
	seed    INTEGER NOT NULL,
	energy  REAL    NOT NULL,
	success INTEGER NOT NULL,
	payload BLOB    NOT NULL,
	PRIMARY KEY (dim, dv, perc, seed)
);
CREATE INDEX IF NOT EXISTS idx_results_params ON results(dim, dv, perc);
`

// SQLiteStore keeps records in a single table.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (or creates) the database at path and ensures the
// schema. Use ":memory:" for a private in-memory database.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("store: sqlite path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("OpenSQLiteStore: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("OpenSQLiteStore: %w", err)
	}
	if _, err = db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("OpenSQLiteStore: migrate: %w", err)
	}
	return &SQLiteStore{path: path, db: db}, nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("store: sqlite store is closed")
	}
	return s.db, nil
}

// Save upserts rec under k.
func (s *SQLiteStore) Save(ctx context.Context, k Key, rec Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	payload, err := Encode(rec)
	if err != nil {
		return fmt.Errorf("SQLiteStore.Save(%s): %w", k, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO results (dim, dv, perc, seed, energy, success, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(dim, dv, perc, seed) DO UPDATE SET
			energy = excluded.energy,
			success = excluded.success,
			payload = excluded.payload
	`, k.Dim, k.DV, k.Perc, k.Seed, rec.Energy, rec.Success, payload)
	if err != nil {
		return fmt.Errorf("SQLiteStore.Save(%s): %w", k, err)
	}
	return nil
}

// Load returns the record under k.
func (s *SQLiteStore) Load(ctx context.Context, k Key) (Record, error) {
	db, err := s.getDB()
	if err != nil {
		return Record{}, err
	}
	var payload []byte
	err = db.QueryRowContext(ctx,
		`SELECT payload FROM results WHERE dim = ? AND dv = ? AND perc = ? AND seed = ?`,
		k.Dim, k.DV, k.Perc, k.Seed).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("SQLiteStore.Load(%s): %w", k, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("SQLiteStore.Load(%s): %w", k, err)
	}
	rec, err := Decode(payload)
	if err != nil {
		return Record{}, fmt.Errorf("SQLiteStore.Load(%s): %w", k, err)
	}
	return rec, nil
}

// List returns every key in ascending order.
func (s *SQLiteStore) List(ctx context.Context) ([]Key, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT dim, dv, perc, seed FROM results ORDER BY dim, dv, perc, seed`)
	if err != nil {
		return nil, fmt.Errorf("SQLiteStore.List: %w", err)
	}
	defer rows.Close()

	var keys []Key
	for rows.Next() {
		var k Key
		if err = rows.Scan(&k.Dim, &k.DV, &k.Perc, &k.Seed); err != nil {
			return nil, fmt.Errorf("SQLiteStore.List: %w", err)
		}
		keys = append(keys, k)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("SQLiteStore.List: %w", err)
	}
	return keys, nil
}

// Close closes the database. Further calls return an error.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
