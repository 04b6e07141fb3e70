package scoring

import (
	"math"
	"strings"

	"sagascan/internal/textutil"
)

// DefaultMaxDistance is the edit-distance ceiling for the fuzzy strategies.
const DefaultMaxDistance = 3

// Score compares two free-text strings and returns a similarity in [0,100]
// using DefaultMaxDistance.
func Score(query, target string) float64 {
	return ScoreMax(query, target, DefaultMaxDistance)
}

// ScoreMax is Score with an explicit edit-distance ceiling. The cascade is
// first-match-wins:
//
//	exact (after normalization)            100
//	target contains query                   95
//	query contains target                   90
//	edit distance d <= max                  max(80-5d, 50)
//	phonetic edit distance d <= max         max(70-5d, 40)
//	word overlap ratio r >= 0.4             max(60r, 25)
//	acronyms equal                          50
//	acronym containment                     30
//	otherwise                                0
func ScoreMax(query, target string, maxDistance int) float64 {
	q := textutil.Normalize(query)
	t := textutil.Normalize(target)
	if q == "" || t == "" {
		return 0
	}
	if q == t {
		return 100
	}
	if strings.Contains(t, q) {
		return 95
	}
	if strings.Contains(q, t) {
		return 90
	}
	if d := textutil.Levenshtein(q, t); d <= maxDistance {
		return math.Max(float64(80-5*d), 50)
	}
	if d := textutil.Levenshtein(textutil.FoldPhonetic(q), textutil.FoldPhonetic(t)); d <= maxDistance {
		return math.Max(float64(70-5*d), 40)
	}
	if s := wordOverlap(q, t); s > 0 {
		return s
	}
	return acronymScore(q, t)
}

// wordOverlap scores two multi-word strings by the share of words that pair
// up within one edit of each other. Short words (<= 2 runes) carry no signal
// and are dropped before pairing.
func wordOverlap(q, t string) float64 {
	qw := textutil.Words(q, 2)
	tw := textutil.Words(t, 2)
	if len(qw) < 2 || len(tw) < 2 {
		return 0
	}
	matches := 0
	for _, a := range qw {
		for _, b := range tw {
			if textutil.Levenshtein(a, b) <= 1 {
				matches++
				break
			}
		}
	}
	ratio := float64(matches) / float64(max(len(qw), len(tw)))
	if ratio < 0.4 {
		return 0
	}
	return math.Max(60*ratio, 25)
}

func acronymScore(q, t string) float64 {
	qa := textutil.Acronym(q)
	ta := textutil.Acronym(t)
	if len(qa) < 2 || len(ta) < 2 {
		return 0
	}
	if qa == ta {
		return 50
	}
	if strings.Contains(qa, ta) || strings.Contains(ta, qa) {
		return 30
	}
	return 0
}
