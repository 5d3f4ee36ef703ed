// Package export serializes catalog snapshots to CSV and JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"libriscan/internal/catalog"
)

// Format selects an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat maps a user-supplied string to a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected csv or json)", value)
	}
}

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// sanitizeFileName makes a name safe for the local filesystem.
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// DefaultFileName builds a timestamped export filename.
func DefaultFileName(format Format, now time.Time) string {
	return fmt.Sprintf("libriscan-%s.%s", now.Format("20060102-150405"), format)
}

type jsonEntry struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// WriteCSV streams entries as CSV with a header row.
func WriteCSV(w io.Writer, entries []catalog.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "title", "author", "isbn", "created_at", "updated_at"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range entries {
		record := []string{
			strconv.FormatInt(entry.ID, 10),
			entry.Title,
			entry.Author,
			entry.ISBN,
			entry.CreatedAt.Format(time.RFC3339),
			entry.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteJSON streams entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []catalog.Entry) error {
	out := make([]jsonEntry, len(entries))
	for i, entry := range entries {
		out[i] = jsonEntry{
			ID:        entry.ID,
			Title:     entry.Title,
			Author:    entry.Author,
			ISBN:      entry.ISBN,
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
			UpdatedAt: entry.UpdatedAt.Format(time.RFC3339),
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}

// ToFile writes entries to path in the given format, creating parent
// directories as needed. Returns the resolved path.
func ToFile(path string, format Format, entries []catalog.Entry) (string, error) {
	dir := filepath.Dir(path)
	base := sanitizeFileName(filepath.Base(path))
	if base == "" {
		return "", fmt.Errorf("export filename %q is empty after sanitizing", filepath.Base(path))
	}
	path = filepath.Join(dir, base)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatCSV:
		err = WriteCSV(file, entries)
	case FormatJSON:
		err = WriteJSON(file, entries)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
