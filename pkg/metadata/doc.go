// Package metadata loads a project's resolved dependency snapshot.
//
// A [Snapshot] is the JSON produced by `cargo metadata --format-version 1`:
// the full package set plus the resolved dependency graph. It can be decoded
// from a file or captured directly from the toolchain with [FromManifest].
//
// A snapshot without resolution data cannot be queried; [Load] rejects it up
// front rather than letting the failure surface mid-query.
package metadata
