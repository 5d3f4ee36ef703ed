package dedup

import (
	"log/slog"

	"libriscan/internal/logging"
)

// DefaultSimilarityThreshold is the similarity both title and author must
// exceed for two entries without matching identifiers to count as
// duplicates.
const DefaultSimilarityThreshold = 0.8

// Entry is the read-only projection of a catalog entry the detector
// consumes. A missing author is the empty string; the similarity rules
// define that coercion explicitly. The detector never mutates entries.
type Entry struct {
	ID     int64
	Title  string
	Author string
	ISBN   string
}

// Group is an ordered set of likely-duplicate entries, always of size >= 2.
// Groups from one detection run are disjoint.
type Group struct {
	Entries []Entry
}

// IDs returns the entry ids in group order.
func (g Group) IDs() []int64 {
	ids := make([]int64, len(g.Entries))
	for i, entry := range g.Entries {
		ids[i] = entry.ID
	}
	return ids
}

// Detector finds duplicate groups in a catalog snapshot.
type Detector struct {
	threshold float64
	logger    *slog.Logger
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithThreshold overrides the similarity threshold.
func WithThreshold(threshold float64) DetectorOption {
	return func(d *Detector) {
		if threshold > 0 && threshold < 1 {
			d.threshold = threshold
		}
	}
}

// WithDetectorLogger attaches a logger.
func WithDetectorLogger(logger *slog.Logger) DetectorOption {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logging.NewComponentLogger(logger, "dedup")
		}
	}
}

// NewDetector constructs a Detector with the default threshold.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		threshold: DefaultSimilarityThreshold,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FindDuplicates partitions a catalog snapshot into duplicate groups using
// first-match clustering. Entries are visited in input order; each
// unvisited entry seeds a group and claims every later unvisited entry it
// matches. Groups with a single member are not reported. An empty snapshot
// yields no groups, never an error.
func (d *Detector) FindDuplicates(entries []Entry) []Group {
	processed := make(map[int]struct{}, len(entries))
	var groups []Group

	for i := range entries {
		if _, done := processed[i]; done {
			continue
		}
		processed[i] = struct{}{}

		group := Group{Entries: []Entry{entries[i]}}
		for j := i + 1; j < len(entries); j++ {
			if _, done := processed[j]; done {
				continue
			}
			if d.isDuplicate(entries[i], entries[j]) {
				group.Entries = append(group.Entries, entries[j])
				processed[j] = struct{}{}
			}
		}

		if len(group.Entries) > 1 {
			d.logger.Debug("duplicate group found",
				logging.Int("size", len(group.Entries)),
				logging.Int64(logging.FieldEntryID, group.Entries[0].ID),
			)
			groups = append(groups, group)
		}
	}
	return groups
}

// isDuplicate applies the matching rules: equal non-empty identifiers
// short-circuit; otherwise both title and author similarity must exceed the
// threshold. Identifiers compare case-sensitively in their stored form.
func (d *Detector) isDuplicate(a, b Entry) bool {
	if a.ISBN != "" && b.ISBN != "" && a.ISBN == b.ISBN {
		return true
	}
	titleSimilarity := NormalizedSimilarity(a.Title, b.Title)
	if titleSimilarity <= d.threshold {
		return false
	}
	authorSimilarity := NormalizedSimilarity(a.Author, b.Author)
	return authorSimilarity > d.threshold
}
