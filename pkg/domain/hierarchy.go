package domain

import (
	"fmt"
	"strings"
)

// PathSeparator joins step names inside a hierarchy path.
const PathSeparator = " -> "

// FlatNode is one row of the flat, path-annotated process hierarchy.
// A step id may legitimately recur at several tree positions (the same
// step reachable via different branches), so identity in the tree is
// (StepID, Path), never StepID alone.
type FlatNode struct {
	StepID   int64  `json:"step_id" yaml:"step_id"`
	StepName string `json:"step_name" yaml:"step_name"`
	Level    int    `json:"level" yaml:"level"`

	// Path is the chain of ancestor step names down to and including this
	// node, joined by PathSeparator.
	Path string `json:"path" yaml:"path"`

	// ParentID is nil for forest roots.
	ParentID *int64 `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`

	Memo string `json:"memo,omitempty" yaml:"memo,omitempty"`
}

// Key returns the composite tree identity of the node.
func (n FlatNode) Key() string {
	return fmt.Sprintf("%d|%s", n.StepID, n.Path)
}

// ParentPath returns Path with its last segment removed, or "" for a
// single-segment path.
func (n FlatNode) ParentPath() string {
	idx := strings.LastIndex(n.Path, PathSeparator)
	if idx < 0 {
		return ""
	}
	return n.Path[:idx]
}

// Node is a hierarchy node assembled into the forest and annotated with
// execution facts.
type Node struct {
	FlatNode `yaml:",inline"`

	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Execution annotations, filled by the matcher. Memo on the embedded
	// FlatNode holds the resolved memo: the matching record's memo when
	// one matched, the node's static memo otherwise.
	Executed   bool   `json:"executed" yaml:"executed"`
	ExecutedAt string `json:"executed_at,omitempty" yaml:"executed_at,omitempty"`
	ExecutedBy int64  `json:"executed_by,omitempty" yaml:"executed_by,omitempty"`
}

// TreeResult is the outcome of assembling the flat hierarchy into a
// forest. Every input row ends up either placed (as a root or a child) or
// in Orphans, so placed + orphans always equals the input size.
type TreeResult struct {
	Roots []*Node `json:"roots"`

	// Orphans are rows whose parent could not be located by
	// (parent_id, parent path). They are dropped from the tree, not
	// promoted to roots, but reported here for diagnostics.
	Orphans []FlatNode `json:"orphans,omitempty"`

	// Duplicates are earlier rows shadowed by a later row with the same
	// (step_id, path) key. The later row wins parent lookups; whether the
	// upstream generator guarantees path-unique rows is undocumented, so
	// the shadowed rows are surfaced instead of silently discarded.
	Duplicates []FlatNode `json:"duplicates,omitempty"`
}

// Timeline is the linear projection of a document's position in its
// hierarchy: what has happened, where it is, and what may come next.
// It only describes; committing a transition is outside this engine.
type Timeline struct {
	Executed      []*Node `json:"executed"`
	ExecutedCount int     `json:"executed_count"`

	CurrentStepName string `json:"current_step_name"`

	// NextOptions preserves hierarchy input order; the first entry is the
	// primary suggestion and a count above one signals an ambiguous next
	// step to the consumer.
	NextOptions      []*Node `json:"next_options"`
	NextOptionsCount int     `json:"next_options_count"`
}
