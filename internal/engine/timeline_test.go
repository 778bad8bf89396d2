package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tramita/internal/engine"
	"github.com/aretw0/tramita/pkg/domain"
)

func timelineFixture(records []domain.ExecutionRecord) []*domain.Node {
	res := engine.BuildTree([]domain.FlatNode{
		{StepID: 1, StepName: "ENTRADA", Level: 1, Path: "ENTRADA"},
		{StepID: 2, StepName: "VALIDAÇÃO", Level: 2, Path: "ENTRADA -> VALIDAÇÃO", ParentID: i64(1)},
		{StepID: 3, StepName: "ANÁLISE", Level: 3, Path: "ENTRADA -> VALIDAÇÃO -> ANÁLISE", ParentID: i64(2)},
		{StepID: 4, StepName: "ARQUIVO", Level: 3, Path: "ENTRADA -> VALIDAÇÃO -> ARQUIVO", ParentID: i64(2)},
	})
	return engine.Flatten(engine.Annotate(res.Roots, records, testCatalog()))
}

func TestProjectTimeline(t *testing.T) {
	t.Run("Executed Current Next", func(t *testing.T) {
		nodes := timelineFixture([]domain.ExecutionRecord{
			{What: "ENTRADA", Who: 9, WhenStart: "2024-01-01 09:00:00"},
			{What: "VALIDAÇÃO", Who: 5, WhenStart: "2024-01-02 09:00:00"},
		})
		tl := engine.ProjectTimeline(nodes, domain.Document{CurrentStepID: 2})

		assert.Equal(t, 2, tl.ExecutedCount)
		assert.Equal(t, "VALIDAÇÃO", tl.CurrentStepName)
		require.Equal(t, 2, tl.NextOptionsCount)
		assert.Equal(t, "ANÁLISE", tl.NextOptions[0].StepName)
		assert.Equal(t, "ARQUIVO", tl.NextOptions[1].StepName)
	})

	t.Run("ExecutedList Sorted By Timestamp", func(t *testing.T) {
		// History arrives out of chronological order.
		nodes := timelineFixture([]domain.ExecutionRecord{
			{What: "VALIDAÇÃO", WhenStart: "2024-01-02 09:00:00"},
			{What: "ENTRADA", WhenStart: "2024-01-01 09:00:00"},
		})
		tl := engine.ProjectTimeline(nodes, domain.Document{CurrentStepID: 2})

		require.Equal(t, 2, tl.ExecutedCount)
		assert.Equal(t, "ENTRADA", tl.Executed[0].StepName)
		assert.Equal(t, "VALIDAÇÃO", tl.Executed[1].StepName)
	})

	t.Run("Unparsable Timestamps Kept In Input Order", func(t *testing.T) {
		nodes := timelineFixture([]domain.ExecutionRecord{
			{What: "ENTRADA", WhenStart: "não é uma data"},
			{What: "VALIDAÇÃO", WhenStart: ""},
		})
		tl := engine.ProjectTimeline(nodes, domain.Document{CurrentStepID: 2})

		require.Equal(t, 2, tl.ExecutedCount)
		assert.Equal(t, "ENTRADA", tl.Executed[0].StepName)
		assert.Equal(t, "VALIDAÇÃO", tl.Executed[1].StepName)
	})

	t.Run("Executed Next Options Are Excluded", func(t *testing.T) {
		nodes := timelineFixture([]domain.ExecutionRecord{
			{What: "ANÁLISE", WhenStart: "2024-01-03 09:00:00"},
		})
		tl := engine.ProjectTimeline(nodes, domain.Document{CurrentStepID: 2})

		require.Equal(t, 1, tl.NextOptionsCount)
		assert.Equal(t, "ARQUIVO", tl.NextOptions[0].StepName)
	})

	t.Run("Path Prefix Fallback", func(t *testing.T) {
		// Malformed rows without a parent link still surface as next
		// options through their path ancestry.
		res := engine.BuildTree([]domain.FlatNode{
			{StepID: 1, StepName: "A", Level: 1, Path: "A"},
			{StepID: 2, StepName: "B", Level: 2, Path: "A -> B"},
		})
		tl := engine.ProjectTimeline(engine.Flatten(res.Roots), domain.Document{CurrentStepID: 1})

		require.Equal(t, 1, tl.NextOptionsCount)
		assert.Equal(t, "B", tl.NextOptions[0].StepName)
	})

	t.Run("Current Step Missing From Hierarchy", func(t *testing.T) {
		nodes := timelineFixture(nil)
		tl := engine.ProjectTimeline(nodes, domain.Document{CurrentStepID: 99})

		assert.Empty(t, tl.CurrentStepName)
		assert.Zero(t, tl.NextOptionsCount)
	})

	t.Run("Deterministic", func(t *testing.T) {
		records := []domain.ExecutionRecord{{What: "ENTRADA", WhenStart: "2024-01-01"}}
		a := engine.ProjectTimeline(timelineFixture(records), domain.Document{CurrentStepID: 2})
		b := engine.ProjectTimeline(timelineFixture(records), domain.Document{CurrentStepID: 2})
		assert.Equal(t, a, b)
	})
}
