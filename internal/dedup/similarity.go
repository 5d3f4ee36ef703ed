package dedup

import (
	"strings"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// NormalizedSimilarity computes a case-folded Levenshtein similarity in
// [0, 1]. Surrounding whitespace is ignored. Two empty strings are
// identical (1.0); exactly one empty string shares nothing (0.0). The
// function is symmetric.
func NormalizedSimilarity(s1, s2 string) float64 {
	a := []rune(foldCaser.String(strings.TrimSpace(s1)))
	b := []rune(foldCaser.String(strings.TrimSpace(s2)))

	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	distance := levenshtein(a, b)
	return float64(longest-distance) / float64(longest)
}

// levenshtein computes the classic edit distance with unit costs for
// insertion, deletion, and substitution, using a full (m+1)x(n+1) table.
func levenshtein(a, b []rune) int {
	m, n := len(a), len(b)
	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
		table[i][0] = i
	}
	for j := 0; j <= n; j++ {
		table[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			deletion := table[i-1][j] + 1
			insertion := table[i][j-1] + 1
			substitution := table[i-1][j-1] + cost

			best := deletion
			if insertion < best {
				best = insertion
			}
			if substitution < best {
				best = substitution
			}
			table[i][j] = best
		}
	}
	return table[m][n]
}
