package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/tramita/pkg/domain"
	"github.com/aretw0/tramita/pkg/ports"
)

// SnapshotStoreContractTest is a reusable suite that verifies an adapter
// complies with ports.SnapshotStore.
func SnapshotStoreContractTest(t *testing.T, store ports.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	snap := &domain.Snapshot{
		Catalog: domain.Catalog{{ID: 1, Name: "ENTRADA"}, {ID: 2, Name: "VALIDAÇÃO"}},
		Users:   []domain.User{{ID: 5, Name: "Ana"}},
		Edges: []domain.TransitionEdge{
			{DocTypeName: "T", DocTypeID: 10, FromStepID: 1, ToStepID: 2},
		},
		Hierarchy: []domain.FlatNode{
			{StepID: 1, StepName: "ENTRADA", Level: 1, Path: "ENTRADA"},
		},
	}

	t.Run("Save_Load_Roundtrip", func(t *testing.T) {
		if err := store.Save(ctx, "oficio", snap); err != nil {
			t.Fatalf("unexpected save error: %v", err)
		}

		got, err := store.Load(ctx, "oficio")
		if err != nil {
			t.Fatalf("unexpected load error: %v", err)
		}
		if len(got.Catalog) != len(snap.Catalog) {
			t.Errorf("catalog size mismatch: got %d, want %d", len(got.Catalog), len(snap.Catalog))
		}
		if got.Catalog[0].Name != "ENTRADA" {
			t.Errorf("unexpected catalog entry: %+v", got.Catalog[0])
		}
		if len(got.Edges) != 1 || got.Edges[0].DocTypeID != 10 {
			t.Errorf("edges did not survive roundtrip: %+v", got.Edges)
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-key")
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			t.Errorf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Save(ctx, "to-delete", snap); err != nil {
			t.Fatalf("unexpected save error: %v", err)
		}
		if err := store.Delete(ctx, "to-delete"); err != nil {
			t.Fatalf("unexpected delete error: %v", err)
		}
		_, err := store.Load(ctx, "to-delete")
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			t.Errorf("expected ErrSnapshotNotFound after delete, got %v", err)
		}
	})
}
