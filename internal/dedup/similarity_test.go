package dedup

import (
	"math"
	"testing"
)

func TestNormalizedSimilarityEmptyStrings(t *testing.T) {
	tests := []struct {
		name string
		s1   string
		s2   string
		want float64
	}{
		{"both empty", "", "", 1.0},
		{"first empty", "", "Dune", 0.0},
		{"second empty", "Dune", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizedSimilarity(tt.s1, tt.s2); got != tt.want {
				t.Errorf("NormalizedSimilarity(%q, %q) = %v, want %v", tt.s1, tt.s2, got, tt.want)
			}
		})
	}
}

func TestNormalizedSimilarityIdentical(t *testing.T) {
	if got := NormalizedSimilarity("The Left Hand of Darkness", "The Left Hand of Darkness"); got != 1.0 {
		t.Errorf("identical strings = %v, want 1.0", got)
	}
}

func TestNormalizedSimilarityCaseFolded(t *testing.T) {
	if got := NormalizedSimilarity("DUNE", "dune"); got != 1.0 {
		t.Errorf("case variants = %v, want 1.0", got)
	}
}

func TestNormalizedSimilarityNearMatch(t *testing.T) {
	if got := NormalizedSimilarity("Dune", "Dune "); got <= 0.8 {
		t.Errorf("trailing-space variant = %v, want > 0.8", got)
	}
}

func TestNormalizedSimilarityDistinctTitles(t *testing.T) {
	if got := NormalizedSimilarity("Dune", "1984"); got >= 0.5 {
		t.Errorf("unrelated titles = %v, want < 0.5", got)
	}
}

func TestNormalizedSimilaritySymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"Dune", "Dune Messiah"},
		{"Ursula K. Le Guin", "U. K. Le Guin"},
		{"", "anything"},
		{"kitten", "sitting"},
		{"The Hobbit", "Der Hobbit"},
	}
	for _, pair := range pairs {
		forward := NormalizedSimilarity(pair[0], pair[1])
		backward := NormalizedSimilarity(pair[1], pair[0])
		if math.Abs(forward-backward) > 1e-12 {
			t.Errorf("similarity not symmetric for %q/%q: %v vs %v", pair[0], pair[1], forward, backward)
		}
		if forward < 0 || forward > 1 {
			t.Errorf("similarity out of bounds for %q/%q: %v", pair[0], pair[1], forward)
		}
	}
}

func TestLevenshteinKnownDistances(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"book", "back", 2},
		{"", "abc", 3},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := levenshtein([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
