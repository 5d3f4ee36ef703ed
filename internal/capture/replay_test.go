package capture

import (
	"context"
	"strings"
	"testing"
	"time"

	"libriscan/internal/scanning"
)

func TestParseFrameLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantKind  scanning.FrameKind
		wantCount int
		wantErr   bool
	}{
		{"single barcode", "ean13:9780141439518", scanning.FrameBarcode, 1, false},
		{"multiple detections", "ean13:4006381333931|other:0141439513", scanning.FrameBarcode, 2, false},
		{"text observation", "text:ISBN 978-0-14-143951-8", scanning.FrameText, 1, false},
		{"confidence annotation", "text@0.92:ISBN 978-0-14-143951-8", scanning.FrameText, 1, false},
		{"missing source", "9780141439518", "", 0, true},
		{"unknown source", "qr:9780141439518", "", 0, true},
		{"bad confidence", "text@high:ISBN", "", 0, true},
		{"empty", "", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := ParseFrameLine(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFrameLine(%q) expected error", tt.line)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrameLine(%q) failed: %v", tt.line, err)
			}
			if frame.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", frame.Kind, tt.wantKind)
			}
			if len(frame.Candidates) != tt.wantCount {
				t.Errorf("candidates = %d, want %d", len(frame.Candidates), tt.wantCount)
			}
		})
	}
}

func TestParseFrameLineConfidenceValue(t *testing.T) {
	frame, err := ParseFrameLine("text@0.75:ISBN 0-306-40615-2")
	if err != nil {
		t.Fatalf("ParseFrameLine failed: %v", err)
	}
	conf := frame.Candidates[0].Confidence
	if conf == nil || *conf != 0.75 {
		t.Fatalf("confidence = %v, want 0.75", conf)
	}
}

func TestReadFramesSkipsCommentsAndBlanks(t *testing.T) {
	input := strings.Join([]string{
		"# recorded scan",
		"",
		"ean13:9780141439518",
		"text:ISBN 0-306-40615-2",
	}, "\n")
	frames, err := ReadFrames(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadFrames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
}

func TestReplaySourceDeliversAllFrames(t *testing.T) {
	frames := []scanning.Frame{
		{Kind: scanning.FrameBarcode, Candidates: []scanning.RawCandidate{{Text: "a", Source: scanning.SourceLinearBarcode13}}},
		{Kind: scanning.FrameBarcode, Candidates: []scanning.RawCandidate{{Text: "b", Source: scanning.SourceLinearBarcode13}}},
	}
	source := NewReplaySource(frames, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := source.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var got int
	for frame := range source.Frames() {
		if frame.Timestamp.IsZero() {
			t.Error("expected replay to stamp frames")
		}
		got++
	}
	if got != len(frames) {
		t.Fatalf("delivered %d frames, want %d", got, len(frames))
	}
}

func TestReplaySourceStopClosesChannel(t *testing.T) {
	many := make([]scanning.Frame, 100)
	for i := range many {
		many[i] = scanning.Frame{Kind: scanning.FrameBarcode}
	}
	source := NewReplaySource(many, 50*time.Millisecond)

	ctx := context.Background()
	if err := source.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Consume one frame, then stop mid-stream.
	<-source.Frames()
	source.Stop()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, open := <-source.Frames():
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("frame channel not closed after Stop")
		}
	}
}
