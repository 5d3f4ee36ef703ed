package capture

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"libriscan/internal/scanning"
)

// Source produces recognition frames on its own schedule. Implementations
// must close the Frames channel when the context ends or Stop is called.
type Source interface {
	// Start begins frame production. It returns an error only for
	// session-establishment failures; per-frame problems are dropped.
	Start(ctx context.Context) error
	// Frames delivers decoded detections until the source stops.
	Frames() <-chan scanning.Frame
	// Stop halts frame production and closes the Frames channel.
	Stop()
}

// ParseFrameLine decodes one textual frame description, the format used by
// replay files and piped input. Each line is a frame; detections are
// separated by "|" and each takes the form source:text or
// source@confidence:text. Lines whose source is "text" become optical-text
// observations.
//
//	ean13:9780141439518
//	ean13:4006381333931|other:0141439513
//	text@0.92:ISBN 978-0-14-143951-8
func ParseFrameLine(line string) (scanning.Frame, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return scanning.Frame{}, fmt.Errorf("empty frame line")
	}

	frame := scanning.Frame{Kind: scanning.FrameBarcode}
	for _, field := range strings.Split(line, "|") {
		candidate, kind, err := parseDetection(field)
		if err != nil {
			return scanning.Frame{}, err
		}
		if kind == scanning.FrameText {
			frame.Kind = scanning.FrameText
		}
		frame.Candidates = append(frame.Candidates, candidate)
	}
	return frame, nil
}

func parseDetection(field string) (scanning.RawCandidate, scanning.FrameKind, error) {
	field = strings.TrimSpace(field)
	head, text, ok := strings.Cut(field, ":")
	if !ok {
		return scanning.RawCandidate{}, "", fmt.Errorf("detection %q: missing source prefix", field)
	}

	var confidence *float64
	if name, score, scored := strings.Cut(head, "@"); scored {
		head = name
		value, err := strconv.ParseFloat(score, 64)
		if err != nil {
			return scanning.RawCandidate{}, "", fmt.Errorf("detection %q: bad confidence: %w", field, err)
		}
		confidence = &value
	}

	source, kind, err := resolveSource(head)
	if err != nil {
		return scanning.RawCandidate{}, "", fmt.Errorf("detection %q: %w", field, err)
	}
	return scanning.RawCandidate{Text: text, Source: source, Confidence: confidence}, kind, nil
}

func resolveSource(name string) (scanning.SourceType, scanning.FrameKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ean13", "barcode13":
		return scanning.SourceLinearBarcode13, scanning.FrameBarcode, nil
	case "ean8", "barcode8":
		return scanning.SourceLinearBarcode8, scanning.FrameBarcode, nil
	case "other", "symbology":
		return scanning.SourceOtherSymbology, scanning.FrameBarcode, nil
	case "text", "ocr":
		return scanning.SourceOpticalText, scanning.FrameText, nil
	}
	return "", "", fmt.Errorf("unknown source %q", name)
}
