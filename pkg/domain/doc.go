/*
Package domain contains the core domain models for the tramita engine.

It defines the reference data a document workflow is described by (step
catalog, transition graph, flat process hierarchy) and the per-document
records the engine reconciles against it (document summary, execution
history). This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Step / User: catalog entries resolved by numeric id.
  - TransitionEdge: an allowed (type, from-step, to-step, user) move.
  - FlatNode / Node: the path-annotated process hierarchy, flat on the
    wire and assembled into a forest by the engine.
  - ExecutionRecord: one logged historical action on a document.
  - Timeline: the linear executed/current/next projection.
*/
package domain
