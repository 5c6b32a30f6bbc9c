// Package dag turns the raw name references held by a registry into a
// validated dependency graph.
//
// Build resolves every declared dependency name, rejects unknown references
// and cycles, and yields an immutable Graph. The graph knows the
// registration position of each task, which is the tie-breaker whenever more
// than one task is ready, so Order is deterministic for a given registry.
package dag
