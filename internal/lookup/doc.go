// Package lookup fetches book metadata from Open Library.
//
// The identification core never calls this package; the CLI invokes it
// after a session emits an identifier, to enrich the catalog entry with
// title and author data.
package lookup
