// Package dedup groups likely-duplicate catalog entries.
//
// Entries sharing a stored identifier are always duplicates; otherwise two
// entries match when both their titles and authors exceed a normalized
// Levenshtein similarity threshold. Grouping uses first-match clustering:
// each unprocessed entry seeds a group and absorbs every later entry that
// matches it. The result is not a transitive closure: A and C can land in
// one group solely because B matched both. Pairwise comparison is O(n^2),
// acceptable for personal-library sizes.
package dedup
