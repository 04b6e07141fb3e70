package resolve

import (
	"log/slog"
	"sort"
	"strings"

	"sagascan/internal/catalog"
	"sagascan/internal/logging"
	"sagascan/internal/registry"
	"sagascan/internal/scoring"
	"sagascan/internal/textutil"
)

// Boost floors applied when a known variation or topical keyword appears in
// the book text; they pull a candidate into consideration even when plain
// string similarity against the series name is weak.
const (
	variationFloor = 85
	keywordFloor   = 55
)

// runnerUpDelta is the score distance within which the second-best candidate
// is reported alongside the winner.
const runnerUpDelta = 5.0

// Resolver matches books against the series registry.
type Resolver struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// NewResolver creates a resolver over the given registry. A nil logger is
// replaced with a no-op logger.
func NewResolver(reg *registry.Registry, logger *slog.Logger) *Resolver {
	return &Resolver{
		registry: reg,
		logger:   logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve evaluates one book against the whole registry and returns the best
// validated candidate, or a not-found detection when nothing passes.
func (r *Resolver) Resolve(book catalog.Book) Detection {
	cat, _ := bookCategory(book.Category)
	bookText := textutil.Normalize(book.Title + " " + book.Author)
	volume, _ := InferVolume(book.Title)

	var candidates []Candidate
	for _, series := range r.registry.ByCategory(cat) {
		candidate, ok := r.evaluate(book, bookText, series)
		if !ok {
			continue
		}
		candidate.VolumeNumber = volume
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		r.logger.Debug("no series matched",
			logging.String("title", book.Title),
			logging.String("author", book.Author))
		return Detection{Book: book, Found: false, Confidence: 0}
	}

	// Highest score wins; the shorter name breaks ties because the more
	// specific canonical series sits closer to its own title.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if len(candidates[i].Series.Name) != len(candidates[j].Series.Name) {
			return len(candidates[i].Series.Name) < len(candidates[j].Series.Name)
		}
		return candidates[i].Series.Name < candidates[j].Series.Name
	})

	top := candidates[0]
	detection := Detection{
		Book:         book,
		Found:        true,
		SeriesName:   top.Series.Name,
		Confidence:   top.Score,
		Reasons:      top.Reasons,
		VolumeNumber: top.VolumeNumber,
	}
	if len(candidates) > 1 && top.Score-candidates[1].Score <= runnerUpDelta {
		detection.RunnerUp = &RunnerUp{
			SeriesName: candidates[1].Series.Name,
			Confidence: candidates[1].Score,
		}
	}

	r.logger.Debug("series resolved",
		logging.String("title", book.Title),
		logging.String("series", detection.SeriesName),
		logging.Float64("confidence", detection.Confidence))
	return detection
}

// evaluate scores one (book, series) pair and validates membership.
func (r *Resolver) evaluate(book catalog.Book, bookText string, series registry.Series) (Candidate, bool) {
	score := scoring.Score(book.Title, series.Name)
	if composite := scoring.Score(book.Title+" "+book.Author, series.Name); composite > score {
		score = composite
	}

	var reasons []string
	for _, v := range series.Variations {
		if containsPhrase(bookText, v) {
			if score < variationFloor {
				score = variationFloor
			}
			reasons = append(reasons, "variation match: "+v)
			break
		}
	}
	for _, kw := range series.Keywords {
		if containsPhrase(bookText, kw) {
			if score < keywordFloor {
				score = keywordFloor
			}
			reasons = append(reasons, "keyword match: "+kw)
			break
		}
	}
	if score <= 0 {
		return Candidate{}, false
	}

	memberReasons, ok := isMember(book, series)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		Series:  series,
		Score:   score,
		Reasons: append(reasons, memberReasons...),
	}, true
}

// containsPhrase reports whether term appears in text on word boundaries.
// Plain substring matching would let short abbreviations like "hp" or "opm"
// fire inside unrelated words.
func containsPhrase(text, term string) bool {
	term = textutil.Normalize(term)
	if term == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+term+" ")
}
