package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"libriscan/internal/services"
)

func TestFetchByISBNReturnsMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/api/books" {
			t.Errorf("unexpected path %q", got)
		}
		if got := r.URL.Query().Get("bibkeys"); got != "ISBN:9780141439518" {
			t.Errorf("unexpected bibkeys %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ISBN:9780141439518": {
				"title": "Pride and Prejudice",
				"authors": [{"name": "Jane Austen"}],
				"publishers": [{"name": "Penguin Classics"}],
				"publish_date": "2003",
				"number_of_pages": 480
			}
		}`))
	}))
	defer server.Close()

	client, err := New(server.URL, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	book, err := client.FetchByISBN(context.Background(), "9780141439518")
	if err != nil {
		t.Fatalf("FetchByISBN: %v", err)
	}
	if book.Title != "Pride and Prejudice" {
		t.Errorf("title = %q", book.Title)
	}
	if book.Author() != "Jane Austen" {
		t.Errorf("author = %q", book.Author())
	}
	if book.Pages != 480 {
		t.Errorf("pages = %d", book.Pages)
	}
}

func TestFetchByISBNUnknownIdentifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := New(server.URL, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.FetchByISBN(context.Background(), "9780141439518")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchByISBNRejectsEmptyInput(t *testing.T) {
	client, err := New("https://example.invalid", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.FetchByISBN(context.Background(), "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("   ", time.Second); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
