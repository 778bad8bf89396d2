package engine

import (
	"strings"

	"github.com/aretw0/tramita/pkg/domain"
)

// entryToken marks intake steps. A document sitting on an intake step never
// gets a self-transfer option; this is a hard-coded exception of the source
// workflow model, not a generic rule.
const entryToken = "ENTRADA"

// transferSuffix labels the injected self-transfer entry so consumers can
// tell it apart from a true advance option.
const transferSuffix = " (Transferir)"

// ValidTransitions returns the edges a document may take from its current
// step. The document references its type by display name, so the type id is
// resolved by joining that name against the edge list first. An unresolvable
// type or an empty graph yields nil, never an error.
func ValidTransitions(doc domain.Document, edges []domain.TransitionEdge) []domain.TransitionEdge {
	typeID, ok := resolveTypeID(doc.TypeName, edges)
	if !ok {
		return nil
	}

	var valid []domain.TransitionEdge
	for _, e := range edges {
		if e.DocTypeID == typeID && e.FromStepID == doc.CurrentStepID {
			valid = append(valid, e)
		}
	}
	return valid
}

// AvailableSteps computes the steps a document may be presented for moving
// to. With no valid transitions the whole catalog is returned (open-world
// fallback: absence of graph data must not lock a document in place).
// Otherwise the distinct destinations are resolved against the catalog and
// the current step is appended as a self-transfer option, unless it is an
// intake step.
func AvailableSteps(doc domain.Document, edges []domain.TransitionEdge, catalog domain.Catalog) []domain.Step {
	valid := ValidTransitions(doc, edges)
	if len(valid) == 0 {
		return append([]domain.Step(nil), catalog...)
	}

	steps := make([]domain.Step, 0, len(valid)+1)
	seen := make(map[int64]bool, len(valid))
	for _, e := range valid {
		if seen[e.ToStepID] {
			continue
		}
		seen[e.ToStepID] = true
		steps = append(steps, domain.Step{ID: e.ToStepID, Name: catalog.Name(e.ToStepID)})
	}

	current := catalog.Name(doc.CurrentStepID)
	if !strings.Contains(strings.ToUpper(current), entryToken) {
		steps = append(steps, domain.Step{
			ID:   doc.CurrentStepID,
			Name: current + transferSuffix,
		})
	}

	return steps
}

// AvailableUsersForStep computes who may receive a document on the given
// destination step. With no valid transitions at all, every catalog user is
// a candidate (same open-world policy as AvailableSteps). A self-transfer
// offers every user except the current holder. Otherwise the allowed users
// are gathered from the edges pointing at the step; edges without a user
// restriction contribute nothing (they do not implicitly mean "everyone").
func AvailableUsersForStep(stepID int64, doc domain.Document, edges []domain.TransitionEdge, users []domain.User) []domain.User {
	valid := ValidTransitions(doc, edges)
	if len(valid) == 0 {
		return append([]domain.User(nil), users...)
	}

	if stepID == doc.CurrentStepID {
		out := make([]domain.User, 0, len(users))
		for _, u := range users {
			if u.ID != doc.HolderID {
				out = append(out, u)
			}
		}
		return out
	}

	var out []domain.User
	seen := make(map[int64]bool)
	for _, e := range valid {
		if e.ToStepID != stepID || e.AllowedUser == nil {
			continue
		}
		id := *e.AllowedUser
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, lookupUser(id, users))
	}
	return out
}

func resolveTypeID(typeName string, edges []domain.TransitionEdge) (int64, bool) {
	for _, e := range edges {
		if e.DocTypeName == typeName {
			return e.DocTypeID, true
		}
	}
	return 0, false
}

func lookupUser(id int64, users []domain.User) domain.User {
	for _, u := range users {
		if u.ID == id {
			return u
		}
	}
	// Unknown ids degrade to an id-only record instead of being dropped.
	return domain.User{ID: id}
}
