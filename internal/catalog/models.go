package catalog

import (
	"time"

	"libriscan/internal/dedup"
)

// Entry is a persisted catalog row. Author and ISBN may be empty; the
// database stores NULL for both, and the empty string is the in-memory
// representation of absence.
type Entry struct {
	ID        int64
	Title     string
	Author    string
	ISBN      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DedupEntry projects the entry into the read-only shape the duplicate
// detector consumes.
func (e Entry) DedupEntry() dedup.Entry {
	return dedup.Entry{
		ID:     e.ID,
		Title:  e.Title,
		Author: e.Author,
		ISBN:   e.ISBN,
	}
}

// DedupEntries converts a snapshot for the duplicate detector.
func DedupEntries(entries []Entry) []dedup.Entry {
	out := make([]dedup.Entry, len(entries))
	for i, entry := range entries {
		out[i] = entry.DedupEntry()
	}
	return out
}
