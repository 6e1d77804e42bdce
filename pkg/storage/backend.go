// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package storage provides the bbolt-backed key-value store Crystalise
// writes, Oxidise republishes, and Sample/the read-only HTTP server (out
// of scope) read: an opaque, ordered byte-map with one bucket per lookup
// index.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

// DbStore wraps a single bbolt database file. It is the low-level handle;
// AppStore layers the pipeline's typed buckets on top of it.
type DbStore struct {
	db *bolt.DB
}

// Config names where the store lives on disk.
type Config struct {
	// Directory is the target directory holding the store. A separate
	// subdirectory per KV store bucket would be one option, but this
	// folds all buckets into a single bbolt file, since bbolt already
	// gives every bucket its own namespace inside one file.
	Directory string
}

func dbPath(directory string) string {
	return filepath.Join(directory, "condenser.db")
}

// InitStore creates directory if needed and opens a fresh bbolt file for
// read-write access, creating it if absent. Idempotent: calling it again
// against an existing store reopens it rather than truncating it.
func InitStore(ctx context.Context, config Config) (*DbStore, error) {
	if config.Directory == "" {
		return nil, fmt.Errorf("storage: directory is required")
	}
	if err := os.MkdirAll(config.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creating target directory %q: %w", config.Directory, err)
	}

	db, err := bolt.Open(dbPath(config.Directory), 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: opening %q: %w", dbPath(config.Directory), err)
	}

	select {
	case <-ctx.Done():
		_ = db.Close()
		return nil, ctx.Err()
	default:
	}

	return &DbStore{db: db}, nil
}

// OpenStore opens an existing store at config.Directory read-only.
func OpenStore(config Config) (*DbStore, error) {
	path := dbPath(config.Directory)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("storage: target store not found at %q: %w", path, err)
	}
	db, err := bolt.Open(path, 0o444, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("storage: opening %q read-only: %w", path, err)
	}
	return &DbStore{db: db}, nil
}

// Close releases the underlying file.
func (s *DbStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
