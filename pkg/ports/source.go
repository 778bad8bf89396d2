package ports

import (
	"context"

	"github.com/aretw0/tramita/pkg/domain"
)

// MetadataSource supplies the reference metadata the engine operates on.
// The engine re-reads the source on every invocation; implementations own
// freshness and may return the same snapshot repeatedly, since the engine
// is pure over its inputs.
type MetadataSource interface {
	// Snapshot returns the current metadata snapshot.
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}
