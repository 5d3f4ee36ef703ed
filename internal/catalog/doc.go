// Package catalog persists library entries in SQLite.
//
// The store is a collaborator of the identification core, never the other
// way around: the scanning and dedup packages receive plain values and do
// not know this package exists. Snapshot produces the immutable entry list
// the duplicate detector consumes.
package catalog
