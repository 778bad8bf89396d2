package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tramita/pkg/domain"
)

// Overlay contains dynamic state to visualize on the hierarchy graph.
type Overlay struct {
	// CurrentStepID highlights the document's current step.
	CurrentStepID int64
}

// GenerateMermaid produces a Mermaid flowchart from the hierarchy forest.
// Node ids are assigned per tree position, since the same step id may
// appear on several branches. Executed nodes get the "executed" class and
// the current step the "current" class.
func GenerateMermaid(roots []*domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*domain.Node]string)
	var executedIDs []string
	var currentIDs []string

	var walk func(n *domain.Node, parentID string)
	walk = func(n *domain.Node, parentID string) {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id

		opener, closer := "[", "]"
		if n.ParentID == nil {
			opener, closer = "((", "))" // Root: circle
		} else if len(n.Children) == 0 {
			opener, closer = "([", "])" // Leaf: stadium
		}

		label := escapeMermaidLabel(n.StepName)
		if n.Executed {
			label = fmt.Sprintf("%s <br/> ✓ %s", label, escapeMermaidLabel(n.ExecutedAt))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

		if parentID != "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", parentID, id))
		}

		if n.Executed {
			executedIDs = append(executedIDs, id)
		}
		if overlay != nil && n.StepID == overlay.CurrentStepID {
			currentIDs = append(currentIDs, id)
		}

		for _, c := range n.Children {
			walk(c, id)
		}
	}
	for _, r := range roots {
		walk(r, "")
	}

	if len(executedIDs) > 0 || len(currentIDs) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast regardless of theme.
		sb.WriteString("    classDef executed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, id := range executedIDs {
			sb.WriteString(fmt.Sprintf("    class %s executed;\n", id))
		}
		for _, id := range currentIDs {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", id))
		}
	}

	return sb.String()
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
