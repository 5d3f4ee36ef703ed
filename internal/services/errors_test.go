package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("socket closed")
	err := Wrap(ErrCaptureUnavailable, "capture", "start", "netlink connect failed", base)
	if !errors.Is(err, ErrCaptureUnavailable) {
		t.Error("expected wrapped error to match ErrCaptureUnavailable")
	}
	if !errors.Is(err, base) {
		t.Error("expected wrapped error to retain the underlying cause")
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "lookup", "fetch", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Errorf("expected ErrTransient, got %v", err)
	}
}

func TestIsSessionFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"capture unavailable", Wrap(ErrCaptureUnavailable, "capture", "start", "", nil), true},
		{"permission denied", Wrap(ErrPermissionDenied, "capture", "start", "", nil), true},
		{"validation", Wrap(ErrValidation, "catalog", "add", "", nil), false},
		{"plain error", errors.New("frame decode"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSessionFatal(tt.err); got != tt.want {
				t.Errorf("IsSessionFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}
