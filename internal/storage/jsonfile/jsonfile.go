// Package jsonfile persists the ledger snapshot as a single JSON document
// with three top-level mappings: users, expenses, and groups.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on top of a single JSON file.
type Store struct {
	path string
}

// New creates a JSON file store at the given path, creating parent
// directories as needed.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Load reads the snapshot from disk. A missing file or a document that does
// not parse yields an empty snapshot; the parse error is returned alongside
// it so the caller can log the fact, but the snapshot is always usable.
func (s *Store) Load(_ context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.NewSnapshot(), nil
	}
	if err != nil {
		return models.NewSnapshot(), fmt.Errorf("failed to read state file: %w", err)
	}

	snap := models.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return models.NewSnapshot(), fmt.Errorf("failed to parse state file: %w", err)
	}
	return snap, nil
}

// Save writes the snapshot to a temporary file in the same directory and
// renames it into place, so readers never observe a half-written document.
func (s *Store) Save(_ context.Context, snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between operations.
func (s *Store) Close() error {
	return nil
}
