package memory

import (
	"context"

	"github.com/aretw0/tramita/pkg/domain"
)

// Source implements ports.MetadataSource over a fixed in-memory snapshot.
// Useful for tests and for callers that fetched the metadata themselves.
type Source struct {
	snap *domain.Snapshot
}

// NewSource creates a source serving the given snapshot.
func NewSource(snap *domain.Snapshot) *Source {
	if snap == nil {
		snap = &domain.Snapshot{}
	}
	return &Source{snap: snap}
}

// Snapshot returns a copy of the held snapshot so callers cannot mutate
// the source through the returned pointers.
func (s *Source) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	return copySnapshot(s.snap), nil
}

// copySnapshot clones a snapshot including the pointer-valued fields, so
// two copies never alias.
func copySnapshot(in *domain.Snapshot) *domain.Snapshot {
	out := &domain.Snapshot{
		Catalog:   append(domain.Catalog(nil), in.Catalog...),
		Users:     append([]domain.User(nil), in.Users...),
		Edges:     make([]domain.TransitionEdge, len(in.Edges)),
		Hierarchy: make([]domain.FlatNode, len(in.Hierarchy)),
	}
	for i, e := range in.Edges {
		if e.AllowedUser != nil {
			id := *e.AllowedUser
			e.AllowedUser = &id
		}
		out.Edges[i] = e
	}
	for i, n := range in.Hierarchy {
		if n.ParentID != nil {
			id := *n.ParentID
			n.ParentID = &id
		}
		out.Hierarchy[i] = n
	}
	return out
}
