package attribution

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// shortRefcodeLen is the length below which trigram sets are too small to
// discriminate and edit distance is the better typo signal.
const shortRefcodeLen = 5

// Similarity scores how close two normalized refcodes are, in [0, 1].
// Longer strings use trigram set similarity (matching the pg_trgm index that
// backs candidate retrieval); short strings fall back to an edit-distance
// ratio. Empty or malformed input scores 0, never panics.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if utf8.RuneCountInString(a) < shortRefcodeLen || utf8.RuneCountInString(b) < shortRefcodeLen {
		return levenshteinRatio(a, b)
	}
	return trigramSimilarity(a, b)
}

// trigramSimilarity is the Jaccard similarity of the two strings' padded
// trigram sets. Padding matches pg_trgm: two leading blanks, one trailing.
func trigramSimilarity(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)

	shared := 0
	for g := range ta {
		if tb[g] {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func trigrams(s string) map[string]bool {
	runes := []rune("  " + s + " ")
	set := make(map[string]bool, len(runes))
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = true
	}
	return set
}

func levenshteinRatio(a, b string) float64 {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
