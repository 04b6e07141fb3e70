package textutil

import "strings"

// phoneticReplacer collapses digraphs and letters that sound alike so that
// spellings such as "fenix"/"phoenix" land within edit distance of one
// another. Inputs are expected to already be in Normalize form, which handles
// the accent folding.
var phoneticReplacer = strings.NewReplacer(
	"ph", "f",
	"ck", "k",
	"qu", "k",
	"ch", "sh",
	"x", "ks",
	"y", "i",
)

// FoldPhonetic applies the phonetic rule table to a normalized string.
func FoldPhonetic(s string) string {
	return phoneticReplacer.Replace(s)
}
