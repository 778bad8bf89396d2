/*
Package tramita is a pure, synchronous workflow transition and hierarchy
engine for document management systems.

Given a document's type and current step, a flat graph of allowed
transitions, and a flat path-annotated process hierarchy, it computes which
steps and users a document may legally move to next, reconstructs the
process tree, reconciles it against the document's execution history, and
projects a linear timeline of executed/current/next steps.

The engine holds no state and performs no I/O: every operation is a pure
function of the metadata snapshot and the per-document inputs, safe to
re-run on every re-fetch. Fetching, authentication, rendering and the
actual transition commit belong to the caller; this Hexagonal core only
describes what may happen and what has happened.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/tramita"
		"github.com/aretw0/tramita/pkg/adapters/memory"
		"github.com/aretw0/tramita/pkg/domain"
	)

	func main() {
		source := memory.NewSource(&domain.Snapshot{
			Catalog: domain.Catalog{{ID: 1, Name: "ENTRADA"}, {ID: 2, Name: "VALIDAÇÃO"}},
			Edges: []domain.TransitionEdge{
				{DocTypeName: "Oficio", DocTypeID: 10, FromStepID: 1, ToStepID: 2},
			},
		})

		eng, err := tramita.New(source)
		if err != nil {
			log.Fatal(err)
		}

		doc := domain.Document{ID: 7, TypeName: "Oficio", CurrentStepID: 1, HolderID: 9}
		steps, err := eng.AvailableSteps(context.Background(), doc)
		if err != nil {
			log.Fatal(err)
		}
		for _, s := range steps {
			fmt.Println(s.ID, s.Name)
		}
	}
*/
package tramita
