package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCaptureUnavailable marks failures to establish the capture stream.
	ErrCaptureUnavailable = errors.New("capture unavailable")
	// ErrPermissionDenied marks capture permission failures.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrValidation marks malformed input supplied by the caller.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks lookups that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks retryable failures with no more specific class.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsSessionFatal reports whether an error must be escalated to the caller
// instead of being swallowed at the frame boundary. Only session
// establishment failures (capture availability, permissions) qualify.
func IsSessionFatal(err error) bool {
	return errors.Is(err, ErrCaptureUnavailable) || errors.Is(err, ErrPermissionDenied)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
