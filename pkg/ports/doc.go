/*
Package ports defines the driven ports (interfaces) for the tramita engine.

These interfaces decouple the core logic from external implementations,
allowing the metadata to come from various backends (memory, redis, an
upstream API) without the engine knowing about any of them.

# Key Interfaces

  - MetadataSource: supplies the reference metadata snapshot the engine
    transforms (catalogs, transition graph, hierarchy).
  - SnapshotStore: persists metadata snapshots by key, for callers that
    cache upstream fetches.
*/
package ports
