package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks, so "é" and "e"
// compare equal without losing the base letter.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the canonical comparison form of s: lowercase, diacritics
// removed, every run of non-alphanumeric characters replaced by a single
// space, trimmed. Returns "" for empty or all-punctuation input.
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	lowered := strings.ToLower(s)
	folded, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		// Transform failures only occur on invalid UTF-8; fall back to the
		// lowered input so comparisons still see something.
		folded = lowered
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// Words splits a normalized string into words longer than minLen runes.
func Words(s string, minLen int) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > minLen {
			out = append(out, f)
		}
	}
	return out
}

// Acronym builds the first-letter acronym of each word in a normalized
// string. "a song of ice and fire" yields "asoiaf".
func Acronym(s string) string {
	var b strings.Builder
	for _, f := range strings.Fields(s) {
		r := []rune(f)
		if len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return b.String()
}
