package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/tramita/pkg/domain"
)

// Wire shapes of the source system feeds. The feeds deliver numeric ids as
// strings or numbers interchangeably, so every decode goes through
// mapstructure with WeaklyTypedInput and comparisons downstream stay plain
// integer equality.

// StepRow is one step catalog entry on the wire.
type StepRow struct {
	PK   int64  `json:"pk" mapstructure:"pk"`
	Step string `json:"step" mapstructure:"step"`
}

// UserRow is one user catalog entry on the wire.
type UserRow struct {
	PK   int64  `json:"pk" mapstructure:"pk"`
	Name string `json:"name" mapstructure:"name"`
}

// EdgeRow is one transition graph entry on the wire. Client may be a
// scalar user id, an array of ids, or absent.
type EdgeRow struct {
	Doctype    string `json:"doctype" mapstructure:"doctype"`
	DoctypePK  int64  `json:"doctype_pk" mapstructure:"doctype_pk"`
	FromStepPK int64  `json:"from_step_pk" mapstructure:"from_step_pk"`
	ToStepPK   int64  `json:"to_step_pk" mapstructure:"to_step_pk"`
	Client     any    `json:"client" mapstructure:"client"`
}

// HierarchyRow is one flat hierarchy entry on the wire.
type HierarchyRow struct {
	StepID   int64  `json:"step_id" mapstructure:"step_id"`
	StepName string `json:"step_name" mapstructure:"step_name"`
	Level    int    `json:"level" mapstructure:"level"`
	Path     string `json:"path" mapstructure:"path"`
	ParentID *int64 `json:"parent_id" mapstructure:"parent_id"`
	Memo     string `json:"memo" mapstructure:"memo"`
}

// DocumentRow is the document summary on the wire.
type DocumentRow struct {
	PK     int64  `json:"pk" mapstructure:"pk"`
	TTType string `json:"tt_type" mapstructure:"tt_type"`
	What   int64  `json:"what" mapstructure:"what"`
	Who    int64  `json:"who" mapstructure:"who"`
}

// ExecutionRow is one execution history entry on the wire.
type ExecutionRow struct {
	What      string `json:"what" mapstructure:"what"`
	WhatPK    *int64 `json:"what_pk" mapstructure:"what_pk"`
	Who       int64  `json:"who" mapstructure:"who"`
	WhenStart string `json:"when_start" mapstructure:"when_start"`
	Memo      string `json:"memo" mapstructure:"memo"`
}

// SnapshotBundle groups the four metadata collections in one payload, the
// shape the YAML bundle and the snapshot store use.
type SnapshotBundle struct {
	Catalog   []StepRow      `json:"catalog" mapstructure:"catalog"`
	Users     []UserRow      `json:"users" mapstructure:"users"`
	Edges     []EdgeRow      `json:"edges" mapstructure:"edges"`
	Hierarchy []HierarchyRow `json:"hierarchy" mapstructure:"hierarchy"`
}

func decode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	return nil
}

// Steps decodes a raw step catalog collection.
func Steps(raw any) (domain.Catalog, error) {
	var rows []StepRow
	if err := decode(raw, &rows); err != nil {
		return nil, err
	}
	return stepsToDomain(rows), nil
}

// Users decodes a raw user catalog collection.
func Users(raw any) ([]domain.User, error) {
	var rows []UserRow
	if err := decode(raw, &rows); err != nil {
		return nil, err
	}
	return usersToDomain(rows), nil
}

// Edges decodes a raw transition graph collection. An array-valued client
// fans out into one edge per user; an absent or null client yields a
// single edge with no user restriction.
func Edges(raw any) ([]domain.TransitionEdge, error) {
	var rows []EdgeRow
	if err := decode(raw, &rows); err != nil {
		return nil, err
	}
	return edgesToDomain(rows), nil
}

// Hierarchy decodes a raw flat hierarchy collection.
func Hierarchy(raw any) ([]domain.FlatNode, error) {
	var rows []HierarchyRow
	if err := decode(raw, &rows); err != nil {
		return nil, err
	}
	return hierarchyToDomain(rows), nil
}

// Document decodes a raw document summary.
func Document(raw any) (domain.Document, error) {
	var row DocumentRow
	if err := decode(raw, &row); err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		ID:            row.PK,
		TypeName:      row.TTType,
		CurrentStepID: row.What,
		HolderID:      row.Who,
	}, nil
}

// History decodes a raw execution history collection.
func History(raw any) ([]domain.ExecutionRecord, error) {
	var rows []ExecutionRow
	if err := decode(raw, &rows); err != nil {
		return nil, err
	}
	records := make([]domain.ExecutionRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, domain.ExecutionRecord{
			What:      r.What,
			WhatPK:    r.WhatPK,
			Who:       r.Who,
			WhenStart: r.WhenStart,
			Memo:      r.Memo,
		})
	}
	return records, nil
}

// Snapshot decodes a full metadata bundle.
func Snapshot(raw any) (*domain.Snapshot, error) {
	var bundle SnapshotBundle
	if err := decode(raw, &bundle); err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		Catalog:   stepsToDomain(bundle.Catalog),
		Users:     usersToDomain(bundle.Users),
		Edges:     edgesToDomain(bundle.Edges),
		Hierarchy: hierarchyToDomain(bundle.Hierarchy),
	}, nil
}

func stepsToDomain(rows []StepRow) domain.Catalog {
	catalog := make(domain.Catalog, 0, len(rows))
	for _, r := range rows {
		catalog = append(catalog, domain.Step{ID: r.PK, Name: r.Step})
	}
	return catalog
}

func usersToDomain(rows []UserRow) []domain.User {
	users := make([]domain.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, domain.User{ID: r.PK, Name: r.Name})
	}
	return users
}

func edgesToDomain(rows []EdgeRow) []domain.TransitionEdge {
	var edges []domain.TransitionEdge
	for _, r := range rows {
		base := domain.TransitionEdge{
			DocTypeName: r.Doctype,
			DocTypeID:   r.DoctypePK,
			FromStepID:  r.FromStepPK,
			ToStepID:    r.ToStepPK,
		}
		for _, user := range expandClient(r.Client) {
			e := base
			e.AllowedUser = user
			edges = append(edges, e)
		}
	}
	return edges
}

func hierarchyToDomain(rows []HierarchyRow) []domain.FlatNode {
	nodes := make([]domain.FlatNode, 0, len(rows))
	for _, r := range rows {
		nodes = append(nodes, domain.FlatNode{
			StepID:   r.StepID,
			StepName: r.StepName,
			Level:    r.Level,
			Path:     r.Path,
			ParentID: r.ParentID,
			Memo:     r.Memo,
		})
	}
	return nodes
}

// expandClient normalizes the polymorphic client field. The returned slice
// always has at least one entry so the edge itself is never dropped.
func expandClient(client any) []*int64 {
	switch v := client.(type) {
	case nil:
		return []*int64{nil}
	case []any:
		out := make([]*int64, 0, len(v))
		for _, item := range v {
			if id, ok := coerceID(item); ok {
				out = append(out, &id)
			}
		}
		if len(out) == 0 {
			return []*int64{nil}
		}
		return out
	default:
		if id, ok := coerceID(v); ok {
			return []*int64{&id}
		}
		return []*int64{nil}
	}
}

// ID coerces a wire-shaped id (number or numeric string) to int64.
func ID(v any) (int64, bool) {
	return coerceID(v)
}

// coerceID accepts the id representations the feeds are known to produce.
func coerceID(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
