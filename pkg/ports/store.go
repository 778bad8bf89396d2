package ports

import (
	"context"

	"github.com/aretw0/tramita/pkg/domain"
)

// SnapshotStore persists metadata snapshots by key (typically the document
// type). Callers that fetch metadata from an upstream API can park it here
// and serve the engine from the store.
type SnapshotStore interface {
	// Save persists the snapshot for a given key.
	Save(ctx context.Context, key string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given key.
	// Returns domain.ErrSnapshotNotFound if the key does not exist.
	Load(ctx context.Context, key string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given key.
	Delete(ctx context.Context, key string) error
}
