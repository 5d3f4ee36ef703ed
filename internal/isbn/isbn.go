package isbn

import "strings"

// Normalize strips whitespace and hyphens from a raw scanned string and
// returns only digits, plus an uppercase X where one appears (the ISBN-10
// check character). It never fails; unrecognized characters are dropped.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteByte('X')
		}
	}
	return b.String()
}

// IsValidISBN10 reports whether s is a checksum-valid ISBN-10. The first
// nine characters must be digits; the check character may be a digit or X
// (value 10). The weighted sum digit_i * (10-i) must be divisible by 11.
func IsValidISBN10(s string) bool {
	if len(s) != 10 {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * (10 - i)
	}
	switch c := s[9]; {
	case c >= '0' && c <= '9':
		sum += int(c - '0')
	case c == 'X':
		sum += 10
	default:
		return false
	}
	return sum%11 == 0
}

// IsValidISBN13 reports whether s is a checksum-valid ISBN-13 (or any
// EAN-13). All thirteen characters must be digits; digits at even positions
// weigh 1 and odd positions weigh 3, and the sum must be divisible by 10.
func IsValidISBN13(s string) bool {
	if len(s) != 13 {
		return false
	}
	sum := 0
	for i := 0; i < 13; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += int(c-'0') * weight
	}
	return sum%10 == 0
}

// IsBookISBN13 reports whether s is a checksum-valid ISBN-13 carrying the
// Bookland prefix 978 or 979. A valid EAN-13 without the prefix is some
// other product code, not a book.
func IsBookISBN13(s string) bool {
	if !IsValidISBN13(s) {
		return false
	}
	return strings.HasPrefix(s, "978") || strings.HasPrefix(s, "979")
}
