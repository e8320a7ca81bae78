package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Text match bands, highest priority first. Every candidate lands in
// exactly one band; the floor keeps the additive blend totally ordered
// even for non-matches.
const (
	textExact      = 1.0
	textPrefix     = 0.95
	textWholeWord  = 0.8
	textInWord     = 0.6
	textWordPrefix = 0.5
	textWordFuzzy  = 0.4
	textFloor      = 0.2
)

// ScoreText rates how well a candidate city name matches the query on a
// [0,1] scale, case-insensitively. Tiers, highest first: exact match,
// prefix, whole word, substring inside a word, full-string fuzzy match,
// per-word fallback, floor. Pure function.
func ScoreText(candidate, query string) float64 {
	cand := strings.ToLower(candidate)
	q := strings.ToLower(query)
	if cand == "" || q == "" {
		return textFloor
	}

	if cand == q {
		return textExact
	}
	if strings.HasPrefix(cand, q) {
		return textPrefix
	}

	if containsWholeWord(cand, q) {
		return textWholeWord
	}

	candWords := strings.Fields(cand)
	for _, w := range candWords {
		if strings.Contains(w, q) {
			return textInWord
		}
	}

	// Full-string fuzzy match: scale within [0.4, 0.6] by how close the
	// edit distance is relative to the longer string.
	if d := levenshtein.ComputeDistance(cand, q); d <= fuzzyThreshold(q) {
		longest := max(utf8.RuneCountInString(cand), utf8.RuneCountInString(q))
		return textWordFuzzy + 0.2*(1-float64(d)/float64(longest))
	}

	// Per-word fallback: any candidate word starting with any query word,
	// then any word pair within the query word's fuzzy threshold.
	queryWords := strings.Fields(q)
	for _, cw := range candWords {
		for _, qw := range queryWords {
			if strings.HasPrefix(cw, qw) {
				return textWordPrefix
			}
		}
	}
	for _, cw := range candWords {
		for _, qw := range queryWords {
			if levenshtein.ComputeDistance(cw, qw) <= fuzzyThreshold(qw) {
				return textWordFuzzy
			}
		}
	}

	return textFloor
}

// containsWholeWord reports whether sub occurs in s delimited by spaces or
// string boundaries. Space is ASCII, so byte comparisons are UTF-8 safe.
func containsWholeWord(s, sub string) bool {
	for from := 0; ; {
		idx := strings.Index(s[from:], sub)
		if idx < 0 {
			return false
		}
		idx += from

		startOK := idx == 0 || s[idx-1] == ' '
		end := idx + len(sub)
		endOK := end == len(s) || s[end] == ' '
		if startOK && endOK {
			return true
		}
		from = idx + 1
	}
}

// fuzzyThreshold is the largest accepted edit distance for a string of this
// length: at least 2, growing with 30% of the rune count.
func fuzzyThreshold(s string) int {
	t := int(math.Floor(0.3 * float64(utf8.RuneCountInString(s))))
	if t < 2 {
		return 2
	}
	return t
}
