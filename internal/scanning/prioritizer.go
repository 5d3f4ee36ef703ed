package scanning

import (
	"strings"

	"libriscan/internal/isbn"
)

// textConfidenceFloor excludes low-confidence optical-text observations
// from candidacy entirely, regardless of tier.
const textConfidenceFloor = 0.5

// Select picks at most one identifier from a barcode frame's simultaneous
// detections. Buckets are tried in strict priority order:
//
//  1. book ISBN-13 read from a 13-digit linear barcode
//  2. book ISBN-13 from any other symbology
//  3. ISBN-10 from any symbology
//  4. other checksum-valid EAN-13
//  5. any remaining raw string, as a last-resort fallback
//
// Within a bucket the first candidate in detection order wins; confidence
// never breaks ties, since symbology reliability already encodes the
// priority signal. An empty frame selects nothing and the caller simply
// tries the next frame.
func Select(candidates []RawCandidate) (Identifier, bool) {
	var buckets [5]*Identifier

	for i := range candidates {
		cand := candidates[i]
		normalized, tier := Classify(cand.Text)

		bucket := -1
		switch tier {
		case TierBookISBN13:
			if cand.Source == SourceLinearBarcode13 {
				bucket = 0
			} else {
				bucket = 1
			}
		case TierISBN10:
			bucket = 2
		case TierOtherISBN13:
			bucket = 3
		case TierUnclassified:
			bucket = 4
			// Fall back to the raw text; there is nothing valid to normalize to.
			if normalized == "" {
				normalized = cand.Text
			}
		}
		if bucket < 0 || buckets[bucket] != nil {
			continue
		}
		buckets[bucket] = &Identifier{Value: normalized, Tier: tier, Source: cand.Source}
	}

	for _, found := range buckets {
		if found != nil {
			return *found, true
		}
	}
	return Identifier{}, false
}

// SelectFromText picks at most one identifier from an optical-text pass.
// The full set of observations must mention "ISBN" somewhere, otherwise the
// frame contributes no candidates at all; arbitrary printed numbers are not
// trusted. Observations scored below the confidence floor are excluded.
// Unlike barcode frames there is no raw-string fallback: absence of a
// checksum-valid ISBN suppresses emission.
func SelectFromText(observations []RawCandidate) (Identifier, bool) {
	if !hasISBNContext(observations) {
		return Identifier{}, false
	}

	candidates := make([]RawCandidate, 0, len(observations))
	for _, obs := range observations {
		if obs.Confidence != nil && *obs.Confidence < textConfidenceFloor {
			continue
		}
		value, ok := isbn.ExtractFromText(obs.Text, false)
		if !ok {
			continue
		}
		candidates = append(candidates, RawCandidate{
			Text:       value,
			Source:     SourceOpticalText,
			Confidence: obs.Confidence,
		})
	}
	if len(candidates) == 0 {
		return Identifier{}, false
	}

	selected, ok := Select(candidates)
	if !ok || selected.Tier == TierUnclassified {
		return Identifier{}, false
	}
	return selected, true
}

// SelectFrame dispatches on the frame kind.
func SelectFrame(frame Frame) (Identifier, bool) {
	if frame.Kind == FrameText {
		return SelectFromText(frame.Candidates)
	}
	return Select(frame.Candidates)
}

func hasISBNContext(observations []RawCandidate) bool {
	for _, obs := range observations {
		if strings.Contains(strings.ToLower(obs.Text), "isbn") {
			return true
		}
	}
	return false
}
