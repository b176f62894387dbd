// Package storage provides abstractions for persisting the ledger state.
package storage

import (
	"context"

	"github.com/splitledger/splitledger/internal/models"
)

// Store defines the interface for snapshot persistence. The ledger writes
// the full state after every mutation, so implementations only need two
// operations: load everything, save everything. This abstraction allows
// swapping backends (JSON file, SQLite) without changing the ledger.
type Store interface {
	// Load reads the persisted snapshot. A missing or unreadable document
	// yields an empty snapshot, not an error — startup never fails on bad
	// state, it starts fresh. The returned snapshot is never nil.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save persists the full snapshot, replacing whatever was stored
	// before. Implementations must make the replacement atomic so that a
	// crash mid-write cannot leave a corrupt document behind.
	Save(ctx context.Context, snap *models.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
