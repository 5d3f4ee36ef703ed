package isbn

// ExtractFromText scans free-form recognized text for digit runs of length
// 10 or 13, tolerating embedded hyphens and spaces, and returns the first
// run that validates. When requireBookPrefix is true only book-prefixed
// ISBN-13 runs are accepted; otherwise any checksum-valid ISBN-13 or
// ISBN-10 qualifies. The second return value is false when no run
// validates; an absence, not an error.
func ExtractFromText(text string, requireBookPrefix bool) (string, bool) {
	for _, run := range candidateRuns(text) {
		switch len(run) {
		case 13:
			if requireBookPrefix {
				if IsBookISBN13(run) {
					return run, true
				}
			} else if IsValidISBN13(run) {
				return run, true
			}
		case 10:
			if !requireBookPrefix && IsValidISBN10(run) {
				return run, true
			}
		}
	}
	return "", false
}

// candidateRuns splits text into maximal runs of identifier characters
// (digits, X, hyphens, spaces) and normalizes each. Runs shorter than 10
// after normalization cannot be ISBNs and are discarded.
func candidateRuns(text string) []string {
	var runs []string
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		normalized := Normalize(text[start:end])
		if len(normalized) >= 10 {
			runs = append(runs, normalized)
		}
		start = -1
	}
	for i, r := range text {
		if isRunChar(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))
	return runs
}

func isRunChar(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == 'X' || r == 'x':
		return true
	case r == '-' || r == ' ':
		return true
	}
	return false
}
