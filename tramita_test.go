package tramita_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tramita"
	"github.com/aretw0/tramita/pkg/adapters/memory"
	"github.com/aretw0/tramita/pkg/domain"
)

func i64(v int64) *int64 { return &v }

func fixtureSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Catalog: domain.Catalog{
			{ID: 1, Name: "ENTRADA"},
			{ID: 2, Name: "VALIDAÇÃO"},
			{ID: 3, Name: "CONCLUIDO"},
		},
		Users: []domain.User{
			{ID: 100, Name: "Ana"},
			{ID: 200, Name: "Bruno"},
		},
		Edges: []domain.TransitionEdge{
			{DocTypeName: "MEMORANDO", DocTypeID: 10, FromStepID: 1, ToStepID: 2, AllowedUser: i64(100)},
			{DocTypeName: "MEMORANDO", DocTypeID: 10, FromStepID: 2, ToStepID: 3},
		},
		Hierarchy: []domain.FlatNode{
			{StepID: 1, StepName: "ENTRADA", Level: 1, Path: "ENTRADA"},
			{StepID: 2, StepName: "VALIDAÇÃO", Level: 2, Path: "ENTRADA -> VALIDAÇÃO", ParentID: i64(1)},
			{StepID: 3, StepName: "CONCLUIDO", Level: 3, Path: "ENTRADA -> VALIDAÇÃO -> CONCLUIDO", ParentID: i64(2)},
		},
	}
}

func fixtureEngine(t *testing.T) *tramita.Engine {
	t.Helper()
	engine, err := tramita.New(memory.NewSource(fixtureSnapshot()))
	require.NoError(t, err)
	return engine
}

type failingSource struct{ err error }

func (s failingSource) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	return nil, s.err
}

func TestNew(t *testing.T) {
	t.Run("requires a source", func(t *testing.T) {
		_, err := tramita.New(nil)
		assert.Error(t, err)
	})

	t.Run("accepts options", func(t *testing.T) {
		engine, err := tramita.New(memory.NewSource(nil))
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})
}

func TestEngineAvailableSteps(t *testing.T) {
	engine := fixtureEngine(t)
	ctx := context.Background()

	t.Run("intake step gets no self-transfer", func(t *testing.T) {
		doc := domain.Document{ID: 1, TypeName: "MEMORANDO", CurrentStepID: 1, HolderID: 100}

		steps, err := engine.AvailableSteps(ctx, doc)
		require.NoError(t, err)
		require.Len(t, steps, 1)
		assert.Equal(t, "VALIDAÇÃO", steps[0].Name)
	})

	t.Run("intermediate step gets self-transfer", func(t *testing.T) {
		doc := domain.Document{ID: 1, TypeName: "MEMORANDO", CurrentStepID: 2, HolderID: 100}

		steps, err := engine.AvailableSteps(ctx, doc)
		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Equal(t, "CONCLUIDO", steps[0].Name)
		assert.Equal(t, "VALIDAÇÃO (Transferir)", steps[1].Name)
	})

	t.Run("unknown type falls back to whole catalog", func(t *testing.T) {
		doc := domain.Document{ID: 1, TypeName: "OFICIO", CurrentStepID: 2, HolderID: 100}

		steps, err := engine.AvailableSteps(ctx, doc)
		require.NoError(t, err)
		assert.Len(t, steps, 3)
	})
}

func TestEngineAvailableUsers(t *testing.T) {
	engine := fixtureEngine(t)
	ctx := context.Background()
	doc := domain.Document{ID: 1, TypeName: "MEMORANDO", CurrentStepID: 2, HolderID: 100}

	t.Run("restricted edge lists the allowed user", func(t *testing.T) {
		users, err := engine.AvailableUsers(ctx, domain.Document{ID: 1, TypeName: "MEMORANDO", CurrentStepID: 1, HolderID: 200}, 2)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, int64(100), users[0].ID)
	})

	t.Run("self-transfer excludes the holder", func(t *testing.T) {
		users, err := engine.AvailableUsers(ctx, doc, 2)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Bruno", users[0].Name)
	})
}

func TestEngineTree(t *testing.T) {
	engine := fixtureEngine(t)
	ctx := context.Background()

	history := []domain.ExecutionRecord{
		{What: "1", Who: 100, WhenStart: "2024-03-01 09:00:00"},
	}

	result, err := engine.Tree(ctx, history)
	require.NoError(t, err)
	require.Len(t, result.Roots, 1)
	assert.Empty(t, result.Orphans)
	assert.Empty(t, result.Duplicates)

	root := result.Roots[0]
	assert.True(t, root.Executed)
	assert.Equal(t, int64(100), root.ExecutedBy)
	require.Len(t, root.Children, 1)
	assert.False(t, root.Children[0].Executed)
}

func TestEngineTimeline(t *testing.T) {
	engine := fixtureEngine(t)
	ctx := context.Background()

	doc := domain.Document{ID: 1, TypeName: "MEMORANDO", CurrentStepID: 2, HolderID: 100}
	history := []domain.ExecutionRecord{
		{What: "1", Who: 100, WhenStart: "2024-03-01 09:00:00"},
		{What: "2", Who: 200, WhenStart: "2024-03-02 10:00:00"},
	}

	tl, err := engine.Timeline(ctx, doc, history)
	require.NoError(t, err)
	assert.Equal(t, 2, tl.ExecutedCount)
	assert.Equal(t, "VALIDAÇÃO", tl.CurrentStepName)
	require.Equal(t, 1, tl.NextOptionsCount)
	assert.Equal(t, "CONCLUIDO", tl.NextOptions[0].StepName)
}

func TestEngineWithStore(t *testing.T) {
	ctx := context.Background()

	t.Run("persists successful reads", func(t *testing.T) {
		store := memory.NewStore()
		engine, err := tramita.New(memory.NewSource(fixtureSnapshot()), tramita.WithStore(store, "metadata"))
		require.NoError(t, err)

		_, err = engine.Snapshot(ctx)
		require.NoError(t, err)

		cached, err := store.Load(ctx, "metadata")
		require.NoError(t, err)
		assert.Len(t, cached.Catalog, 3)
	})

	t.Run("serves the stored snapshot when the source fails", func(t *testing.T) {
		store := memory.NewStore()
		require.NoError(t, store.Save(ctx, "metadata", fixtureSnapshot()))

		engine, err := tramita.New(failingSource{err: errors.New("feed unavailable")}, tramita.WithStore(store, "metadata"))
		require.NoError(t, err)

		doc := domain.Document{ID: 1, TypeName: "MEMORANDO", CurrentStepID: 1, HolderID: 100}
		steps, err := engine.AvailableSteps(ctx, doc)
		require.NoError(t, err)
		require.Len(t, steps, 1)
		assert.Equal(t, "VALIDAÇÃO", steps[0].Name)
	})

	t.Run("empty store does not mask the source failure", func(t *testing.T) {
		sentinel := errors.New("feed unavailable")
		engine, err := tramita.New(failingSource{err: sentinel}, tramita.WithStore(memory.NewStore(), "metadata"))
		require.NoError(t, err)

		_, err = engine.Snapshot(ctx)
		assert.ErrorIs(t, err, sentinel)
	})
}

func TestEngineSourceFailure(t *testing.T) {
	sentinel := errors.New("feed unavailable")
	engine, err := tramita.New(failingSource{err: sentinel})
	require.NoError(t, err)

	_, err = engine.AvailableSteps(context.Background(), domain.Document{})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}
