package resolve

import (
	"strings"

	"sagascan/internal/catalog"
	"sagascan/internal/registry"
	"sagascan/internal/scoring"
	"sagascan/internal/textutil"
)

// Membership thresholds on the shared 0-100 score scale.
const (
	authorMatchThreshold     = 70
	canonicalVolumeThreshold = 60
)

// Subject tags that pin a book to a publication form during category
// refinement.
var (
	mangaTags = []string{"manga", "anime", "japan", "japon", "japanese", "shonen", "seinen"}
	comicTags = []string{"comic", "comics", "graphic novel", "bande dessinee", "bd"}
)

// isMember applies the membership decision for one (book, series) pair:
// (author matches OR title relates to the series name) AND no exclusion
// keyword hit AND the title survives the canonical-volume cross-check AND the
// category evidence does not contradict the series.
func isMember(book catalog.Book, series registry.Series) ([]string, bool) {
	title := textutil.Normalize(book.Title)
	author := textutil.Normalize(book.Author)
	if title == "" {
		return nil, false
	}

	if excl, hit := exclusionHit(title, author, series); hit {
		return []string{"exclusion keyword: " + excl}, false
	}

	var reasons []string
	if authorMatches(book.Author, series.Authors) {
		reasons = append(reasons, "author match")
	}
	if titleRelates(title, series.Name) {
		reasons = append(reasons, "title contains series name")
	}
	if len(reasons) == 0 {
		return nil, false
	}

	if len(series.CanonicalVolumes) > 0 {
		if !matchesCanonicalVolume(book.Title, series.CanonicalVolumes) {
			return nil, false
		}
		reasons = append(reasons, "matches canonical volume title")
	}

	if !categoryAllowed(book, series.Category) {
		return nil, false
	}
	return reasons, true
}

func authorMatches(bookAuthor string, canonical []string) bool {
	if strings.TrimSpace(bookAuthor) == "" {
		return false
	}
	for _, a := range canonical {
		if scoring.Score(bookAuthor, a) >= authorMatchThreshold {
			return true
		}
	}
	return false
}

// titleRelates checks the three title/name relations: full series name inside
// the title, the title's leading word inside the series name, or any longer
// title word inside the series name. Articles and other short leading words
// are ignored so that a stray "the" or "les" never relates a title to a
// series on its own.
func titleRelates(title, seriesName string) bool {
	name := textutil.Normalize(seriesName)
	if name == "" {
		return false
	}
	if strings.Contains(title, name) {
		return true
	}
	words := strings.Fields(title)
	if len(words) > 0 && len([]rune(words[0])) > 3 && strings.Contains(name, words[0]) {
		return true
	}
	for _, w := range textutil.Words(title, 3) {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

func exclusionHit(title, author string, series registry.Series) (string, bool) {
	for _, list := range [][]string{series.Exclusions, registry.GlobalExclusions} {
		for _, raw := range list {
			excl := textutil.Normalize(raw)
			if excl == "" {
				continue
			}
			if strings.Contains(title, excl) || strings.Contains(author, excl) {
				return raw, true
			}
		}
	}
	return "", false
}

func matchesCanonicalVolume(bookTitle string, canonical []string) bool {
	for _, volumeTitle := range canonical {
		if scoring.Score(bookTitle, volumeTitle) >= canonicalVolumeThreshold {
			return true
		}
	}
	return false
}

// categoryAllowed is the category refinement. A book that declares a
// recognizable category must declare the series' category; otherwise subject
// tags decide; a book carrying no category evidence at all contradicts
// nothing and passes.
func categoryAllowed(book catalog.Book, seriesCat registry.Category) bool {
	if cat, ok := bookCategory(book.Category); ok {
		return cat == seriesCat
	}
	switch seriesCat {
	case registry.CategoryManga:
		return len(book.Subjects) == 0 || hasAnyTag(book.Subjects, mangaTags)
	case registry.CategoryComic:
		return len(book.Subjects) == 0 || hasAnyTag(book.Subjects, comicTags)
	default:
		return !hasAnyTag(book.Subjects, mangaTags) && !hasAnyTag(book.Subjects, comicTags)
	}
}

// bookCategory maps the free-text category from the external store onto a
// registry category, tolerating the usual French synonyms.
func bookCategory(raw string) (registry.Category, bool) {
	switch textutil.Normalize(raw) {
	case "novel", "roman", "romans":
		return registry.CategoryNovel, true
	case "comic", "comics", "bd", "bande dessinee", "bandes dessinees":
		return registry.CategoryComic, true
	case "manga", "mangas":
		return registry.CategoryManga, true
	default:
		return "", false
	}
}

func hasAnyTag(subjects []string, tags []string) bool {
	for _, subject := range subjects {
		s := textutil.Normalize(subject)
		if s == "" {
			continue
		}
		for _, tag := range tags {
			if strings.Contains(s, textutil.Normalize(tag)) {
				return true
			}
		}
	}
	return false
}
