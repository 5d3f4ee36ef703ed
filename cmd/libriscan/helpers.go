package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"

	"libriscan/internal/catalog"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// statusLine prefixes a message with a colored marker when the writer is a
// terminal.
func statusLine(writer io.Writer, marker, color, message string) string {
	if shouldColorize(writer) && color != "" {
		return fmt.Sprintf("%s%s%s %s", color, marker, ansiReset, message)
	}
	return fmt.Sprintf("%s %s", marker, message)
}

func displayValue(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

var entryTableHeaders = []string{"ID", "Title", "Author", "ISBN", "Added"}

var entryTableAligns = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}

func entryTableRows(entries []catalog.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(entry.ID, 10),
			entry.Title,
			displayValue(entry.Author),
			displayValue(entry.ISBN),
			entry.CreatedAt.Local().Format(time.DateOnly),
		})
	}
	return rows
}

type entryView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func entryViews(entries []catalog.Entry) []entryView {
	views := make([]entryView, len(entries))
	for i, entry := range entries {
		views[i] = entryView{
			ID:        entry.ID,
			Title:     entry.Title,
			Author:    entry.Author,
			ISBN:      entry.ISBN,
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
			UpdatedAt: entry.UpdatedAt.Format(time.RFC3339),
		}
	}
	return views
}
