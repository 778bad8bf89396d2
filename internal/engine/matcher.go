package engine

import (
	"strconv"
	"strings"

	"github.com/aretw0/tramita/pkg/domain"
)

// resolvedRecord pairs an execution record with its catalog resolution.
type resolvedRecord struct {
	domain.ExecutionRecord

	// Name is the resolved step label, or the raw What value when the
	// catalog resolves nothing.
	Name string
	// PK is the resolved step id, nil when unresolved.
	PK *int64
}

// Annotate enriches the forest with execution facts: each node is marked
// executed when some record of the document's history matches it, carrying
// over the record's timestamp, actor and memo (the record memo wins over
// the node's static memo).
//
// Matching is a layered heuristic, first record wins and records are never
// consumed: several nodes sharing a step name can all match the same
// record. That mirrors the source system's behavior; its intended
// semantics for name collisions are undocumented.
func Annotate(roots []*domain.Node, records []domain.ExecutionRecord, catalog domain.Catalog) []*domain.Node {
	resolved := resolveRecords(records, catalog)
	for _, n := range Flatten(roots) {
		annotateNode(n, resolved)
	}
	return roots
}

func annotateNode(n *domain.Node, records []resolvedRecord) {
	for _, r := range records {
		if !matches(n, r) {
			continue
		}
		n.Executed = true
		n.ExecutedAt = r.WhenStart
		n.ExecutedBy = r.Who
		if r.ExecutionRecord.Memo != "" {
			n.Memo = r.ExecutionRecord.Memo
		}
		return
	}
	n.Executed = false
}

// matches evaluates the clause cascade for one node/record pair:
// id equality, raw name, resolved name, normalized name, then guarded
// substring containment.
func matches(n *domain.Node, r resolvedRecord) bool {
	if r.PK != nil && *r.PK == n.StepID {
		return true
	}
	if r.WhatPK != nil && *r.WhatPK == n.StepID {
		return true
	}
	if r.What == n.StepName || r.Name == n.StepName {
		return true
	}

	a := normalizeName(r.Name)
	b := normalizeName(n.StepName)
	if a != "" && a == b {
		return true
	}

	// Containment either direction, only when the shorter side is long
	// enough to not be trivially ambiguous.
	shorter := a
	if len(b) < len(a) {
		shorter = b
	}
	if len(shorter) > 3 && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return true
	}

	return false
}

// resolveRecords maps each record's What field to a {name, pk} pair: exact
// pk match first, then exact name, then case-insensitive name. Unresolvable
// values keep the raw string as name with a nil pk.
func resolveRecords(records []domain.ExecutionRecord, catalog domain.Catalog) []resolvedRecord {
	out := make([]resolvedRecord, 0, len(records))
	for _, rec := range records {
		r := resolvedRecord{ExecutionRecord: rec, Name: rec.What}

		if id, err := strconv.ParseInt(strings.TrimSpace(rec.What), 10, 64); err == nil {
			if s, ok := catalog.ByID(id); ok {
				r.Name = s.Name
				r.PK = &s.ID
				out = append(out, r)
				continue
			}
		}
		if s, ok := catalog.ByName(rec.What); ok {
			r.Name = s.Name
			r.PK = &s.ID
		} else if s, ok := catalog.ByNameFold(rec.What); ok {
			r.Name = s.Name
			r.PK = &s.ID
		}

		out = append(out, r)
	}
	return out
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
