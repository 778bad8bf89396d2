package domain

// TransitionEdge is one allowed move in a document type's transition graph.
// Several edges may share (DocTypeID, FromStepID): fan-out to multiple
// destinations and/or multiple allowed users per destination.
type TransitionEdge struct {
	// DocTypeName is the display name of the document type; documents
	// reference their type by this string, not by id.
	DocTypeName string `json:"doctype" yaml:"doctype"`
	DocTypeID   int64  `json:"doctype_pk" yaml:"doctype_pk"`

	FromStepID int64 `json:"from_step_pk" yaml:"from_step_pk"`
	ToStepID   int64 `json:"to_step_pk" yaml:"to_step_pk"`

	// AllowedUser restricts who may receive the document over this edge.
	// nil means the edge carries no user restriction; it is still a valid
	// edge, it just contributes no entry to the per-step user list.
	AllowedUser *int64 `json:"client,omitempty" yaml:"client,omitempty"`
}
