package domain

// Snapshot bundles the reference metadata the engine transforms: step and
// user catalogs, the transition graph, and the flat process hierarchy.
// Snapshots are read-only; callers re-fetch on every metadata change and
// re-run the engine, which is pure and deterministic over its inputs.
type Snapshot struct {
	Catalog   Catalog          `json:"catalog" yaml:"catalog"`
	Users     []User           `json:"users" yaml:"users"`
	Edges     []TransitionEdge `json:"edges" yaml:"edges"`
	Hierarchy []FlatNode       `json:"hierarchy" yaml:"hierarchy"`
}
