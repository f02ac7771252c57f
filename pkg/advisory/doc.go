// Package advisory loads and queries a security-advisory database.
//
// The database is a directory tree of Markdown records with TOML front
// matter, one file per advisory, grouped by package name. A [DB] can be
// opened from a local checkout or fetched as an archive from the upstream
// repository; fetching is a bulk operation, so callers are expected to create
// a DB once per session and reuse it.
//
// Queries filter by package name, withdrawal status, affected platform, and
// a minimum severity floor.
package advisory
