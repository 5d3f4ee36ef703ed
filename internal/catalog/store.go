package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"libriscan/internal/services"
)

const entryColumns = "id, title, author, isbn, created_at, updated_at"

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database at path and verifies
// the schema version.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add inserts a new catalog entry. Title is required; author and isbn may
// be empty.
func (s *Store) Add(ctx context.Context, title, author, isbnValue string) (*Entry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrValidation, "catalog", "add", "title required", nil)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO catalog_entries (title, author, isbn, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)`,
		title,
		nullableString(author),
		nullableString(isbnValue),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a catalog entry by identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM catalog_entries WHERE id = ?", id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "catalog", "get", fmt.Sprintf("entry %d", id), nil)
	}
	return entry, err
}

// FindByISBN returns the first entry matching the stored identifier, or nil
// when none exists.
func (s *Store) FindByISBN(ctx context.Context, isbnValue string) (*Entry, error) {
	isbnValue = strings.TrimSpace(isbnValue)
	if isbnValue == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM catalog_entries WHERE isbn = ? ORDER BY id LIMIT 1", isbnValue)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

// List returns all entries ordered by insertion.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM catalog_entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Search returns entries whose title or author contains the query,
// case-insensitively, ordered by insertion.
func (s *Store) Search(ctx context.Context, query string) ([]Entry, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+` FROM catalog_entries
         WHERE title LIKE ? COLLATE NOCASE OR author LIKE ? COLLATE NOCASE
         ORDER BY id`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Update persists new title/author/isbn values for an existing entry.
func (s *Store) Update(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.ID == 0 {
		return services.Wrap(services.ErrValidation, "catalog", "update", "entry id required", nil)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE catalog_entries SET title = ?, author = ?, isbn = ?, updated_at = ? WHERE id = ?`,
		strings.TrimSpace(entry.Title),
		nullableString(entry.Author),
		nullableString(entry.ISBN),
		timestamp,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "catalog", "update", fmt.Sprintf("entry %d", entry.ID), nil)
	}
	return nil
}

// Remove deletes an entry by identifier.
func (s *Store) Remove(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM catalog_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "catalog", "remove", fmt.Sprintf("entry %d", id), nil)
	}
	return nil
}

// Count returns the number of catalog entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM catalog_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// Snapshot returns a consistent copy of the full catalog for duplicate
// detection. Callers receive an independent slice; later writes to the
// store never mutate it.
func (s *Store) Snapshot(ctx context.Context) ([]Entry, error) {
	return s.List(ctx)
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id         int64
		title      string
		author     sql.NullString
		isbnValue  sql.NullString
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&id, &title, &author, &isbnValue, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	entry := &Entry{
		ID:     id,
		Title:  title,
		Author: author.String,
		ISBN:   isbnValue.String,
	}
	entry.CreatedAt = parseTimestamp(createdRaw)
	entry.UpdatedAt = parseTimestamp(updatedRaw)
	return entry, nil
}

func collectEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func nullableString(value string) any {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return value
}

func parseTimestamp(raw string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
