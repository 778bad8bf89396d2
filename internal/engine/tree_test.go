package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tramita/internal/engine"
	"github.com/aretw0/tramita/pkg/domain"
)

func flatFixture() []domain.FlatNode {
	return []domain.FlatNode{
		{StepID: 1, StepName: "A", Level: 1, Path: "A"},
		{StepID: 2, StepName: "B", Level: 2, Path: "A -> B", ParentID: i64(1)},
		{StepID: 3, StepName: "C", Level: 2, Path: "A -> C", ParentID: i64(1)},
		{StepID: 4, StepName: "D", Level: 3, Path: "A -> B -> D", ParentID: i64(2)},
		// Same step reachable via a second branch: distinct (id, path) key.
		{StepID: 4, StepName: "D", Level: 3, Path: "A -> C -> D", ParentID: i64(3)},
	}
}

func TestBuildTree(t *testing.T) {
	t.Run("Single Branch Root And Child", func(t *testing.T) {
		flat := []domain.FlatNode{
			{StepID: 1, StepName: "A", Level: 1, Path: "A"},
			{StepID: 2, StepName: "B", Level: 2, Path: "A -> B", ParentID: i64(1)},
		}
		res := engine.BuildTree(flat)

		require.Len(t, res.Roots, 1)
		assert.Empty(t, res.Orphans)
		assert.Equal(t, int64(1), res.Roots[0].StepID)
		require.Len(t, res.Roots[0].Children, 1)
		assert.Equal(t, int64(2), res.Roots[0].Children[0].StepID)
	})

	t.Run("Branching And Recurring Step", func(t *testing.T) {
		res := engine.BuildTree(flatFixture())

		require.Len(t, res.Roots, 1)
		root := res.Roots[0]
		require.Len(t, root.Children, 2)
		// Children keep input order.
		assert.Equal(t, "A -> B", root.Children[0].Path)
		assert.Equal(t, "A -> C", root.Children[1].Path)
		// Step 4 appears under both branches.
		require.Len(t, root.Children[0].Children, 1)
		require.Len(t, root.Children[1].Children, 1)
	})

	t.Run("Orphan Is Dropped Not Promoted", func(t *testing.T) {
		flat := append(flatFixture(),
			domain.FlatNode{StepID: 9, StepName: "X", Level: 3, Path: "A -> Z -> X", ParentID: i64(8)},
		)
		res := engine.BuildTree(flat)

		require.Len(t, res.Orphans, 1)
		assert.Equal(t, int64(9), res.Orphans[0].StepID)
		assert.Len(t, res.Roots, 1)
	})

	t.Run("Placed Plus Orphans Equals Input", func(t *testing.T) {
		flat := append(flatFixture(),
			domain.FlatNode{StepID: 9, StepName: "X", Level: 2, Path: "Q -> X", ParentID: i64(8)},
			domain.FlatNode{StepID: 10, StepName: "R", Level: 1, Path: "R"},
		)
		res := engine.BuildTree(flat)

		assert.Equal(t, len(flat), engine.CountNodes(res.Roots)+len(res.Orphans))
	})

	t.Run("Duplicate Keys Reported Last Write Wins", func(t *testing.T) {
		flat := append(flatFixture(),
			domain.FlatNode{StepID: 2, StepName: "B", Level: 2, Path: "A -> B", ParentID: i64(1), Memo: "late"},
		)
		res := engine.BuildTree(flat)

		require.Len(t, res.Duplicates, 1)
		assert.Empty(t, res.Duplicates[0].Memo)
		// Both copies are still placed under the root.
		assert.Equal(t, len(flat), engine.CountNodes(res.Roots)+len(res.Orphans))
	})

	t.Run("Multiple Roots", func(t *testing.T) {
		flat := []domain.FlatNode{
			{StepID: 1, StepName: "A", Level: 1, Path: "A"},
			{StepID: 5, StepName: "E", Level: 1, Path: "E"},
		}
		res := engine.BuildTree(flat)
		assert.Len(t, res.Roots, 2)
	})

	t.Run("Empty Input", func(t *testing.T) {
		res := engine.BuildTree(nil)
		assert.Empty(t, res.Roots)
		assert.Empty(t, res.Orphans)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a := engine.BuildTree(flatFixture())
		b := engine.BuildTree(flatFixture())
		assert.Equal(t, a, b)
	})
}

func TestFlatten(t *testing.T) {
	res := engine.BuildTree(flatFixture())
	flat := engine.Flatten(res.Roots)

	require.Len(t, flat, 5)
	// Depth-first pre-order following child order.
	var paths []string
	for _, n := range flat {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []string{"A", "A -> B", "A -> B -> D", "A -> C", "A -> C -> D"}, paths)
}
