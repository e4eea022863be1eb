// Package database provides SQLite-based storage for trace comparison history.
//
// Each saved comparison keeps the compared paths, BLAKE2b-256 digests of both
// trace files and the analysis-data.json document, so earlier runs can be
// listed and inspected with `portfolio history`.
//
// The database is a single file (modernc.org/sqlite, no CGO) under the XDG
// data directory.
package database
