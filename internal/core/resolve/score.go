package resolve

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"plugseek.dev/cli/internal/core/catalog"
)

// distance returns an approximate string distance between the query and a
// candidate value on a 0 (identical) to 1 (unrelated) scale, compared
// case-insensitively. Containment is scored by the uncontained remainder,
// which keeps a short query close to a long name ("essential" against
// "EssentialsX" scores 2/11), and the edit distance is normalized by the
// longer string. The better of the two wins.
func distance(query, value string) float64 {
	a := strings.ToLower(strings.TrimSpace(query))
	b := strings.ToLower(strings.TrimSpace(value))

	if a == "" || b == "" {
		return 1
	}
	if a == b {
		return 0
	}

	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)

	best := float64(levenshtein.ComputeDistance(a, b)) / float64(max(lenA, lenB))

	if strings.Contains(a, b) || strings.Contains(b, a) {
		containment := 1 - float64(min(lenA, lenB))/float64(max(lenA, lenB))
		if containment < best {
			best = containment
		}
	}

	return best
}

// wordDistance matches the query against individual words, so a one-word
// query can hit inside a sentence-length description.
func wordDistance(query, text string) float64 {
	best := 1.0
	for _, word := range strings.Fields(text) {
		if d := distance(query, word); d < best {
			best = d
		}
	}
	return best
}

// recordDistance scores a record against the query. The display name
// carries the most weight; author and description are secondary signals
// that can only improve the score, at best halving the name distance and
// never worsening it. Absent fields and the "Unknown" author fallback are
// skipped.
func recordDistance(query string, r catalog.Record) float64 {
	nameDist := distance(query, r.DisplayName)

	secondary := 1.0
	if r.Author != "" && r.Author != catalog.UnknownAuthor {
		secondary = min(secondary, distance(query, r.Author))
	}
	if r.Description != "" {
		secondary = min(secondary, wordDistance(query, r.Description))
	}

	return min(nameDist, max(nameDist*0.5, secondary))
}
