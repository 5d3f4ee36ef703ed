package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"libriscan/internal/config"
)

const userAgent = "libriscan/0.1.0"

// Service defines the notification surface exposed to the CLI commands.
type Service interface {
	NotifyScanEmitted(ctx context.Context, isbn, title string) error
	NotifyDuplicatesFound(ctx context.Context, groupCount, entryCount int) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint:   topic,
		client:     client,
		scan:       cfg.Notifications.Scan,
		duplicates: cfg.Notifications.Duplicates,
		errors:     cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	scan       bool
	duplicates bool
	errors     bool
}

func (n *ntfyService) NotifyScanEmitted(ctx context.Context, isbn, title string) error {
	if !n.scan {
		return nil
	}
	isbn = strings.TrimSpace(isbn)
	title = strings.TrimSpace(title)
	message := fmt.Sprintf("Scanned: %s", isbn)
	if title != "" {
		message = fmt.Sprintf("Scanned: %s (%s)", title, isbn)
	}
	data := payload{
		title:   "Libriscan - Book Scanned",
		message: message,
		tags:    []string{"libriscan", "scan", "emitted"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyDuplicatesFound(ctx context.Context, groupCount, entryCount int) error {
	if !n.duplicates {
		return nil
	}
	data := payload{
		title:   "Libriscan - Duplicates Found",
		message: fmt.Sprintf("Found %d duplicate groups covering %d entries", groupCount, entryCount),
		tags:    []string{"libriscan", "duplicates", "review"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Libriscan - Error",
		message:  builder.String(),
		tags:     []string{"libriscan", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Libriscan - Test",
		message:  "Notification system test",
		tags:     []string{"libriscan", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScanEmitted(context.Context, string, string) error { return nil }
func (noopService) NotifyDuplicatesFound(context.Context, int, int) error   { return nil }
func (noopService) NotifyError(context.Context, error, string) error        { return nil }
func (noopService) TestNotification(context.Context) error                  { return nil }
