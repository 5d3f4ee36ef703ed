package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"libriscan/internal/services"
)

const userAgent = "libriscan/0.1.0"

// Book is the metadata returned for one identifier.
type Book struct {
	Title       string
	Authors     []string
	Publishers  []string
	PublishDate string
	Pages       int
}

// Author returns the first author, or an empty string.
func (b Book) Author() string {
	if len(b.Authors) == 0 {
		return ""
	}
	return b.Authors[0]
}

// Fetcher defines the lookup operation the CLI depends on.
type Fetcher interface {
	FetchByISBN(ctx context.Context, isbn string) (*Book, error)
}

// Client queries the Open Library books API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates an Open Library client.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("lookup base url required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type apiEntity struct {
	Name string `json:"name"`
}

type apiRecord struct {
	Title         string      `json:"title"`
	Authors       []apiEntity `json:"authors"`
	Publishers    []apiEntity `json:"publishers"`
	PublishDate   string      `json:"publish_date"`
	NumberOfPages int         `json:"number_of_pages"`
}

// FetchByISBN fetches metadata for a normalized identifier. An identifier
// unknown to Open Library yields services.ErrNotFound.
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (*Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, services.Wrap(services.ErrValidation, "lookup", "fetch", "isbn required", nil)
	}

	bibkey := "ISBN:" + isbn
	endpoint := fmt.Sprintf("%s/api/books?bibkeys=%s&format=json&jscmd=data",
		c.baseURL, url.QueryEscape(bibkey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "lookup", "fetch", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("open library returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload map[string]apiRecord
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}

	record, ok := payload[bibkey]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "lookup", "fetch", isbn, nil)
	}

	book := &Book{
		Title:       strings.TrimSpace(record.Title),
		PublishDate: strings.TrimSpace(record.PublishDate),
		Pages:       record.NumberOfPages,
	}
	for _, author := range record.Authors {
		if name := strings.TrimSpace(author.Name); name != "" {
			book.Authors = append(book.Authors, name)
		}
	}
	for _, publisher := range record.Publishers {
		if name := strings.TrimSpace(publisher.Name); name != "" {
			book.Publishers = append(book.Publishers, name)
		}
	}
	return book, nil
}
