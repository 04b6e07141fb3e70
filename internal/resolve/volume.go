package resolve

import (
	"regexp"
	"strconv"
	"strings"
)

// Volume markers, tried in order. The keyword patterns cover the French and
// English conventions seen in import files ("Tome 3", "Vol. 12", "Livre 2",
// "T.5"); the trailing patterns cover "#7" and "Some Title - 4".
var volumePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:\b|^)(?:tome|tomo|volume|vol\.?|livre|t\.)\s*(\d{1,3})\b`),
	regexp.MustCompile(`#\s*(\d{1,3})\b`),
	regexp.MustCompile(`[-–—]\s*(\d{1,3})\s*$`),
}

var romanVolumePattern = regexp.MustCompile(`\b(?:tome|volume|vol\.?)\s+([ivxl]{1,7})\b`)

// InferVolume extracts a volume number from a raw title. Returns (0, false)
// when no marker is present.
func InferVolume(title string) (int, bool) {
	lowered := strings.ToLower(title)
	for _, pattern := range volumePatterns {
		if m := pattern.FindStringSubmatch(lowered); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil && n > 0 {
				return n, true
			}
		}
	}
	if m := romanVolumePattern.FindStringSubmatch(lowered); m != nil {
		if n := romanValue(m[1]); n > 0 {
			return n, true
		}
	}
	return 0, false
}

var romanDigits = map[byte]int{'i': 1, 'v': 5, 'x': 10, 'l': 50}

func romanValue(s string) int {
	total := 0
	for i := 0; i < len(s); i++ {
		value, ok := romanDigits[s[i]]
		if !ok {
			return 0
		}
		if i+1 < len(s) && romanDigits[s[i+1]] > value {
			total -= value
		} else {
			total += value
		}
	}
	return total
}
