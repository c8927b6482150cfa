// SPDX-License-Identifier: MIT
// Package: hexlattice/store
//
// file.go — one JSON file per key, named by Key.Filename(".json").
//
// Writes go to a temporary file in the same directory and are renamed into
// place, so a reader never observes a partial record.

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// FileExt is the extension of records written by FileStore.
const FileExt = ".json"

// FileStore keeps records as files in a single directory.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

// OpenFileStore uses dir, creating it if needed.
func OpenFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("store: file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("OpenFileStore: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file that holds k.
func (s *FileStore) Path(k Key) string {
	return filepath.Join(s.dir, k.Filename(FileExt))
}

// Save writes rec atomically.
func (s *FileStore) Save(ctx context.Context, k Key, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(rec)
	if err != nil {
		return fmt.Errorf("FileStore.Save(%s): %w", k, err)
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("FileStore.Save(%s): %w", k, err)
	}
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("FileStore.Save(%s): %w", k, err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("FileStore.Save(%s): %w", k, err)
	}
	if err = os.Rename(tmp.Name(), s.Path(k)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("FileStore.Save(%s): %w", k, err)
	}
	return nil
}

// Load reads the record under k.
func (s *FileStore) Load(ctx context.Context, k Key) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(s.Path(k))
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, fmt.Errorf("FileStore.Load(%s): %w", k, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("FileStore.Load(%s): %w", k, err)
	}
	rec, err := Decode(data)
	if err != nil {
		return Record{}, fmt.Errorf("FileStore.Load(%s): %w", k, err)
	}
	return rec, nil
}

// List scans the directory. Files whose names do not parse as keys are skipped.
func (s *FileStore) List(ctx context.Context) ([]Key, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("FileStore.List: %w", err)
	}
	keys := make([]Key, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != FileExt {
			continue
		}
		k, err := ParseKey(e.Name())
		if err != nil {
			continue
		}
		keys = append(keys, k)
	}
	slices.SortFunc(keys, Key.Compare)
	return keys, nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
