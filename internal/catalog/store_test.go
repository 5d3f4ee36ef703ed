package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"libriscan/internal/catalog"
	"libriscan/internal/services"
)

func openStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	entry, err := store.Add(ctx, "Dune", "Frank Herbert", "9780441013593")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected entry ID to be assigned")
	}

	fetched, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Title != "Dune" || fetched.Author != "Frank Herbert" || fetched.ISBN != "9780441013593" {
		t.Fatalf("unexpected fetched entry: %#v", fetched)
	}
	if fetched.CreatedAt.IsZero() || fetched.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestAddRequiresTitle(t *testing.T) {
	store := openStore(t)
	_, err := store.Add(context.Background(), "  ", "", "")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddOptionalFieldsStoredAsNull(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	entry, err := store.Add(ctx, "Beowulf", "", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if entry.Author != "" || entry.ISBN != "" {
		t.Fatalf("expected empty optional fields, got %#v", entry)
	}
}

func TestFindByISBN(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "Dune", "Frank Herbert", "9780441013593"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	found, err := store.FindByISBN(ctx, "9780441013593")
	if err != nil {
		t.Fatalf("FindByISBN failed: %v", err)
	}
	if found == nil || found.Title != "Dune" {
		t.Fatalf("unexpected result: %#v", found)
	}

	missing, err := store.FindByISBN(ctx, "9780131103627")
	if err != nil {
		t.Fatalf("FindByISBN failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown isbn, got %#v", missing)
	}
}

func TestSearchMatchesTitleAndAuthor(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, seed := range [][3]string{
		{"Dune", "Frank Herbert", ""},
		{"Hyperion", "Dan Simmons", ""},
		{"The Herbert Reader", "", ""},
	} {
		if _, err := store.Add(ctx, seed[0], seed[1], seed[2]); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	results, err := store.Search(ctx, "herbert")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (title and author matches)", len(results))
	}
}

func TestUpdateAndRemove(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	entry, err := store.Add(ctx, "Dune", "", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	entry.Author = "Frank Herbert"
	entry.ISBN = "9780441013593"
	if err := store.Update(ctx, entry); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	updated, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.Author != "Frank Herbert" || updated.ISBN != "9780441013593" {
		t.Fatalf("unexpected updated entry: %#v", updated)
	}

	if err := store.Remove(ctx, entry.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := store.GetByID(ctx, entry.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found after removal, got %v", err)
	}
	if err := store.Remove(ctx, entry.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for second removal, got %v", err)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "Dune", "Frank Herbert", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	snapshot, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("snapshot size = %d, want 1", len(snapshot))
	}

	if _, err := store.Add(ctx, "Hyperion", "Dan Simmons", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatal("snapshot mutated by a later write")
	}

	converted := catalog.DedupEntries(snapshot)
	if len(converted) != 1 || converted[0].Title != "Dune" {
		t.Fatalf("unexpected dedup projection: %#v", converted)
	}
}

func TestReopenPreservesData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.db")

	store, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.Add(context.Background(), "Dune", "", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}
