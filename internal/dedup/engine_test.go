package dedup

import (
	"reflect"
	"testing"
)

func TestFindDuplicatesExactISBN(t *testing.T) {
	entries := []Entry{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"},
		{ID: 2, Title: "Dune (Paperback)", Author: "F. Herbert", ISBN: "9780441013593"},
		{ID: 3, Title: "Neuromancer", Author: "William Gibson", ISBN: "9780441569595"},
	}
	groups := NewDetector().FindDuplicates(entries)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want exactly 1", len(groups))
	}
	if got := groups[0].IDs(); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("group ids = %v, want [1 2]", got)
	}
}

func TestFindDuplicatesFuzzyTitleAndAuthor(t *testing.T) {
	entries := []Entry{
		{ID: 1, Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin"},
		{ID: 2, Title: "The Left Hand of Darkness ", Author: "Ursula K. Le Guin"},
	}
	groups := NewDetector().FindDuplicates(entries)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
}

func TestFindDuplicatesBothThresholdsRequired(t *testing.T) {
	// Same title, different author: not a duplicate.
	entries := []Entry{
		{ID: 1, Title: "Collected Stories", Author: "Arthur C. Clarke"},
		{ID: 2, Title: "Collected Stories", Author: "Philip K. Dick"},
	}
	if groups := NewDetector().FindDuplicates(entries); len(groups) != 0 {
		t.Errorf("groups = %d, want 0 when authors differ", len(groups))
	}
}

func TestFindDuplicatesMissingAuthorsMatch(t *testing.T) {
	// Both authors missing coerce to empty strings, which are identical.
	entries := []Entry{
		{ID: 1, Title: "Beowulf"},
		{ID: 2, Title: "Beowulf"},
	}
	if groups := NewDetector().FindDuplicates(entries); len(groups) != 1 {
		t.Errorf("groups = %d, want 1 when both authors are missing", len(groups))
	}
}

func TestFindDuplicatesOneMissingAuthorBlocks(t *testing.T) {
	entries := []Entry{
		{ID: 1, Title: "Beowulf", Author: "Seamus Heaney"},
		{ID: 2, Title: "Beowulf"},
	}
	if groups := NewDetector().FindDuplicates(entries); len(groups) != 0 {
		t.Errorf("groups = %d, want 0 when exactly one author is missing", len(groups))
	}
}

func TestFindDuplicatesGroupsAreDisjoint(t *testing.T) {
	entries := []Entry{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "X"},
		{ID: 2, Title: "Dune", Author: "Frank Herbert", ISBN: "X"},
		{ID: 3, Title: "Dune", Author: "Frank Herbert", ISBN: "X"},
		{ID: 4, Title: "Hyperion", Author: "Dan Simmons", ISBN: "Y"},
	}
	groups := NewDetector().FindDuplicates(entries)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if got := groups[0].IDs(); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Errorf("group ids = %v, want [1 2 3]", got)
	}

	seen := map[int64]int{}
	for _, group := range groups {
		for _, id := range group.IDs() {
			seen[id]++
		}
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("entry %d appears in %d groups, want at most 1", id, count)
		}
	}
}

func TestFindDuplicatesFirstMatchClustering(t *testing.T) {
	// B matches A and would also match C, but C only weakly matches A.
	// First-match clustering still pulls C into A's group through B only
	// when A itself matches C; here it does not, so C stays out. This
	// pins the non-transitive behavior rather than a transitive closure.
	entries := []Entry{
		{ID: 1, Title: "The Dispossessed", Author: "Ursula K. Le Guin"},
		{ID: 2, Title: "The Dispossessed ", Author: "Ursula K. Le Guin"},
		{ID: 3, Title: "Dispossessed, The", Author: "Ursula K. Le Guin"},
	}
	groups := NewDetector().FindDuplicates(entries)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	ids := groups[0].IDs()
	if ids[0] != 1 || ids[1] != 2 {
		t.Errorf("group ids = %v, want to start with [1 2]", ids)
	}
}

func TestFindDuplicatesEmptyAndSingleton(t *testing.T) {
	detector := NewDetector()
	if groups := detector.FindDuplicates(nil); len(groups) != 0 {
		t.Errorf("nil snapshot produced %d groups", len(groups))
	}
	single := []Entry{{ID: 1, Title: "Solaris", Author: "Stanislaw Lem"}}
	if groups := detector.FindDuplicates(single); len(groups) != 0 {
		t.Errorf("singleton snapshot produced %d groups", len(groups))
	}
}

func TestFindDuplicatesSpecExample(t *testing.T) {
	entries := []Entry{
		{ID: 10, Title: "A", Author: "a", ISBN: "X"},
		{ID: 11, Title: "B", Author: "b", ISBN: "X"},
		{ID: 12, Title: "C", Author: "c", ISBN: "Y"},
	}
	groups := NewDetector().FindDuplicates(entries)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if len(groups[0].Entries) != 2 {
		t.Errorf("group size = %d, want 2", len(groups[0].Entries))
	}
}
