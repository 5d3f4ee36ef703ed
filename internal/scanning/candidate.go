package scanning

import (
	"time"

	"libriscan/internal/isbn"
)

// SourceType identifies the recognition source that produced a candidate.
type SourceType string

const (
	// SourceLinearBarcode13 is a 13-digit linear barcode, the most reliable
	// symbology for book covers.
	SourceLinearBarcode13 SourceType = "linear_barcode_13"
	// SourceLinearBarcode8 is an 8-digit linear barcode.
	SourceLinearBarcode8 SourceType = "linear_barcode_8"
	// SourceOtherSymbology covers any other machine-readable symbology.
	SourceOtherSymbology SourceType = "other_symbology"
	// SourceOpticalText is a block of optically recognized text.
	SourceOpticalText SourceType = "optical_text"
)

// ParseSourceType converts a wire string into a known SourceType.
func ParseSourceType(value string) (SourceType, bool) {
	switch SourceType(value) {
	case SourceLinearBarcode13, SourceLinearBarcode8, SourceOtherSymbology, SourceOpticalText:
		return SourceType(value), true
	}
	return "", false
}

// RawCandidate is a single raw detection from one frame. Confidence is
// optional; recognition backends that do not score leave it nil.
type RawCandidate struct {
	Text       string
	Source     SourceType
	Confidence *float64
}

// Tier classifies a normalized identifier by trustworthiness. Lower values
// outrank higher ones. Assignment is a pure function of the normalized
// string and never depends on scan order.
type Tier int

const (
	// TierBookISBN13 is a checksum-valid ISBN-13 with a 978/979 prefix.
	TierBookISBN13 Tier = iota
	// TierISBN10 is a checksum-valid ISBN-10.
	TierISBN10
	// TierOtherISBN13 is a checksum-valid EAN-13 without a book prefix.
	TierOtherISBN13
	// TierUnclassified failed every checksum or was not numeric.
	TierUnclassified
)

// String returns the tier name for logs and JSON output.
func (t Tier) String() string {
	switch t {
	case TierBookISBN13:
		return "book_isbn13"
	case TierISBN10:
		return "isbn10"
	case TierOtherISBN13:
		return "other_isbn13"
	default:
		return "unclassified"
	}
}

// Classify normalizes a raw string and assigns its identifier tier.
func Classify(raw string) (string, Tier) {
	normalized := isbn.Normalize(raw)
	switch {
	case isbn.IsBookISBN13(normalized):
		return normalized, TierBookISBN13
	case isbn.IsValidISBN10(normalized):
		return normalized, TierISBN10
	case isbn.IsValidISBN13(normalized):
		return normalized, TierOtherISBN13
	default:
		return normalized, TierUnclassified
	}
}

// Identifier is the single selected result of a prioritization pass.
type Identifier struct {
	Value  string
	Tier   Tier
	Source SourceType
}

// FrameKind distinguishes barcode frames from optical-text passes; the
// fallback rules differ between the two.
type FrameKind string

const (
	FrameBarcode FrameKind = "barcode"
	FrameText    FrameKind = "text"
)

// Frame is one delivery from the capture stream: all simultaneous
// detections observed in a single pass, stamped by the capture clock.
type Frame struct {
	Kind       FrameKind
	Candidates []RawCandidate
	Timestamp  time.Time
}
