package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/tramita/internal/engine"
	"github.com/aretw0/tramita/internal/presentation/graph"
	"github.com/aretw0/tramita/pkg/domain"
)

func i64(v int64) *int64 { return &v }

func TestGenerateMermaid(t *testing.T) {
	res := engine.BuildTree([]domain.FlatNode{
		{StepID: 1, StepName: "ENTRADA", Level: 1, Path: "ENTRADA"},
		{StepID: 2, StepName: "VALIDAÇÃO", Level: 2, Path: "ENTRADA -> VALIDAÇÃO", ParentID: i64(1)},
	})
	engine.Annotate(res.Roots, []domain.ExecutionRecord{
		{What: "ENTRADA", Who: 9, WhenStart: "2024-01-01"},
	}, nil)

	out := graph.GenerateMermaid(res.Roots, &graph.Overlay{CurrentStepID: 2})

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	// Root renders as a circle, the leaf as a stadium.
	assert.Contains(t, out, `n0(("ENTRADA`)
	assert.Contains(t, out, `n1(["VALIDAÇÃO"])`)
	assert.Contains(t, out, "n0 --> n1")
	assert.Contains(t, out, "class n0 executed;")
	assert.Contains(t, out, "class n1 current;")
}

func TestGenerateMermaid_EscapesQuotes(t *testing.T) {
	res := engine.BuildTree([]domain.FlatNode{
		{StepID: 1, StepName: `Revisão "final"`, Level: 1, Path: `Revisão "final"`},
	})
	out := graph.GenerateMermaid(res.Roots, nil)

	assert.NotContains(t, out, `""final""`)
	assert.Contains(t, out, "Revisão 'final'")
}

func TestGenerateMermaid_Empty(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(nil, nil))
}
