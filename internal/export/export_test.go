package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"libriscan/internal/catalog"
)

func sampleEntries() []catalog.Entry {
	ts := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
	return []catalog.Entry{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", CreatedAt: ts, UpdatedAt: ts},
		{ID: 2, Title: "Emma", CreatedAt: ts, UpdatedAt: ts},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleEntries()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if lines[0] != "id,title,author,isbn,created_at,updated_at" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,Dune,Frank Herbert,9780441013593,") {
		t.Errorf("record = %q", lines[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEntries()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[0]["title"] != "Dune" {
		t.Errorf("title = %v", decoded[0]["title"])
	}
	if _, ok := decoded[1]["author"]; ok {
		t.Error("empty author should be omitted")
	}
}

func TestToFileSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := ToFile(filepath.Join(dir, "my:books?.csv"), FormatCSV, sampleEntries())
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	if filepath.Base(path) != "my-books.csv" {
		t.Errorf("sanitized name = %q", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat export: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" JSON "); err != nil || f != FormatJSON {
		t.Fatalf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}
