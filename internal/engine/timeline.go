package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/aretw0/tramita/pkg/domain"
)

// whenLayouts are the timestamp formats the source systems are known to
// emit for when_start values.
var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
}

// ProjectTimeline projects the annotated forest, flattened to a list, onto
// a linear executed/current/next view. It only describes the document's
// position; advancing the document is an external write operation.
func ProjectTimeline(nodes []*domain.Node, doc domain.Document) *domain.Timeline {
	tl := &domain.Timeline{
		Executed:    []*domain.Node{},
		NextOptions: []*domain.Node{},
	}

	for _, n := range nodes {
		if n.Executed {
			tl.Executed = append(tl.Executed, n)
		}
	}
	// Stable sort: nodes with unparsable timestamps compare equal and keep
	// their input order instead of being dropped.
	sort.SliceStable(tl.Executed, func(i, j int) bool {
		ti, oki := parseWhen(tl.Executed[i].ExecutedAt)
		tj, okj := parseWhen(tl.Executed[j].ExecutedAt)
		if !oki || !okj {
			return false
		}
		return ti.Before(tj)
	})
	tl.ExecutedCount = len(tl.Executed)

	current := currentNode(nodes, doc.CurrentStepID)
	if current == nil {
		return tl
	}
	tl.CurrentStepName = current.StepName

	for _, n := range nodes {
		if n.Level == current.Level+1 && !n.Executed &&
			n.ParentID != nil && *n.ParentID == current.StepID {
			tl.NextOptions = append(tl.NextOptions, n)
		}
	}
	if len(tl.NextOptions) == 0 {
		// The parent link can be missing or point elsewhere when the same
		// step recurs across branches; fall back to path ancestry.
		for _, n := range nodes {
			if n.Level == current.Level+1 && !n.Executed &&
				strings.HasPrefix(n.Path, current.Path) {
				tl.NextOptions = append(tl.NextOptions, n)
			}
		}
	}
	tl.NextOptionsCount = len(tl.NextOptions)

	return tl
}

func currentNode(nodes []*domain.Node, stepID int64) *domain.Node {
	for _, n := range nodes {
		if n.StepID == stepID {
			return n
		}
	}
	return nil
}

func parseWhen(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
