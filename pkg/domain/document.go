package domain

// Document is the summary of one document as the caller knows it.
// The engine never mutates it; committing a transition is the caller's
// write operation against the source system.
type Document struct {
	ID int64 `json:"pk" yaml:"pk"`

	// TypeName is the display string of the document's type. The resolver
	// joins it against TransitionEdge.DocTypeName to find the type id.
	TypeName string `json:"tt_type" yaml:"tt_type"`

	CurrentStepID int64 `json:"what" yaml:"what"`

	// HolderID is the user currently holding the document.
	HolderID int64 `json:"who" yaml:"who"`
}

// ExecutionRecord is one logged historical action taken on a document.
type ExecutionRecord struct {
	// What identifies the step that happened. Source systems deliver it
	// either as a step id or as a step label; the matcher resolves it
	// against the catalog.
	What string `json:"what" yaml:"what"`

	// WhatPK is the explicit step id, when the source supplies one.
	WhatPK *int64 `json:"what_pk,omitempty" yaml:"what_pk,omitempty"`

	Who       int64  `json:"who" yaml:"who"`
	WhenStart string `json:"when_start" yaml:"when_start"`
	Memo      string `json:"memo,omitempty" yaml:"memo,omitempty"`
}
