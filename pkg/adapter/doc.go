// Package adapter implements the data side of the graph-query contract: it
// presents a project's resolved dependency tree, enriched with repository
// metadata, advisory history, and unsafe-usage statistics, as one uniform
// typed vertex graph.
//
// An [Adapter] composes four pieces: an immutable index over the dependency
// snapshot, a façade of three lazily-created backend clients, a classifier
// that turns repository URLs into repository vertices, and the exhaustive
// dispatch tables for the four operations the query engine drives
// ([Adapter.StartingVertices], [Adapter.Property], [Adapter.Neighbors],
// [Adapter.Coerce]).
//
// Error handling follows three rules. Bad requests from the engine (an
// unknown edge, property, or coercion target, or an invalid parameter value)
// are schema mismatches and are returned as errors before any vertex is
// consumed. Backend clients that cannot be created abort the query; the
// failure is remembered for the rest of the session. Missing optional data
// (no repository URL, no advisories, no owner) is not an error and resolves
// to empty sequences or null scalars.
package adapter
