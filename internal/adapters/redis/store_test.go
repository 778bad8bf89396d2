package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/tramita/internal/adapters/redis"
	"github.com/aretw0/tramita/pkg/domain"
	"github.com/aretw0/tramita/pkg/ports/tests"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	tests.SnapshotStoreContractTest(t, newTestStore(t))
}

func TestRedisStore_List(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, redis.WithTTL(time.Hour), redis.WithPrefix("test:snap:"))

	snap := &domain.Snapshot{Catalog: domain.Catalog{{ID: 1, Name: "ENTRADA"}}}
	if err := store.Save(ctx, "oficio", snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(ctx, "memorando", snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	keys, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 keys, got %d: %v", len(keys), keys)
	}

	if err := store.Delete(ctx, "oficio"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	keys, _ = store.List(ctx)
	if len(keys) != 1 || keys[0] != "memorando" {
		t.Errorf("expected only memorando after delete, got %v", keys)
	}
}
