package report

import (
	"fmt"
	"sort"

	"sagascan/internal/catalog"
	"sagascan/internal/registry"
)

// underRepresentedShare is the collection share below which a category is
// flagged in the recommendations.
const underRepresentedShare = 20.0

// SeriesSummary aggregates one saga's reading progress.
type SeriesSummary struct {
	Name              string  `json:"name"`
	Owned             int     `json:"owned"`
	Completed         int     `json:"completed"`
	Reading           int     `json:"reading"`
	ToRead            int     `json:"to_read"`
	VolumeCount       int     `json:"volume_count,omitempty"`
	CompletionPercent float64 `json:"completion_percentage"`
}

// AuthorSummary aggregates one author's presence in the collection.
type AuthorSummary struct {
	Name        string `json:"name"`
	Books       int    `json:"books"`
	SeriesCount int    `json:"series_count"`
}

// CategorySummary aggregates one category's share of the collection and how
// much of it belongs to a series.
type CategorySummary struct {
	Name                string  `json:"name"`
	Books               int     `json:"books"`
	Share               float64 `json:"share"`
	SeriesParticipation float64 `json:"series_participation"`
}

// MonthBucket counts additions in one calendar month.
type MonthBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Recommendations are derived suggestions, heuristic by nature.
type Recommendations struct {
	IncompleteSeries      []string `json:"incomplete_series,omitempty"`
	MultiSeriesAuthors    []string `json:"multi_series_authors,omitempty"`
	UnderRepresented      []string `json:"under_represented_categories,omitempty"`
	SuggestedAcquisitions []string `json:"suggested_acquisitions,omitempty"`
}

// Summary is the full aggregation over one collection snapshot.
type Summary struct {
	TotalBooks      int               `json:"total_books"`
	Series          []SeriesSummary   `json:"series"`
	Authors         []AuthorSummary   `json:"authors"`
	Categories      []CategorySummary `json:"categories"`
	AddedByMonth    []MonthBucket     `json:"added_by_month"`
	Recommendations Recommendations   `json:"recommendations"`
}

// BuildSummary aggregates the collection. Known series definitions supply the
// published volume counts used for completion percentages; sagas absent from
// the registry are still summarized against the number of owned volumes.
func BuildSummary(books []catalog.Book, known []registry.Series) *Summary {
	volumeCounts := make(map[string]int, len(known))
	for _, s := range known {
		volumeCounts[s.Name] = s.VolumeCount
	}

	bySeries := make(map[string]*SeriesSummary)
	authorBooks := make(map[string]int)
	authorSeries := make(map[string]map[string]struct{})
	byCategory := make(map[string]int)
	byCategoryInSeries := make(map[string]int)
	byMonth := make(map[string]int)

	for _, book := range books {
		if book.Author != "" {
			authorBooks[book.Author]++
		}
		if book.Category != "" {
			byCategory[book.Category]++
			if book.Saga != "" {
				byCategoryInSeries[book.Category]++
			}
		}
		if !book.AddedAt.IsZero() {
			byMonth[book.AddedAt.Format("2006-01")]++
		}
		if book.Saga == "" {
			continue
		}
		entry := bySeries[book.Saga]
		if entry == nil {
			entry = &SeriesSummary{Name: book.Saga, VolumeCount: volumeCounts[book.Saga]}
			bySeries[book.Saga] = entry
		}
		entry.Owned++
		switch book.Status {
		case catalog.StatusCompleted:
			entry.Completed++
		case catalog.StatusReading:
			entry.Reading++
		default:
			entry.ToRead++
		}
		if book.Author != "" {
			set := authorSeries[book.Author]
			if set == nil {
				set = make(map[string]struct{})
				authorSeries[book.Author] = set
			}
			set[book.Saga] = struct{}{}
		}
	}

	summary := &Summary{TotalBooks: len(books)}
	for _, entry := range bySeries {
		total := entry.VolumeCount
		if total == 0 {
			total = entry.Owned
		}
		if total > 0 {
			entry.CompletionPercent = float64(entry.Completed) / float64(total) * 100
		}
		summary.Series = append(summary.Series, *entry)
	}
	sort.Slice(summary.Series, func(i, j int) bool {
		if summary.Series[i].Owned != summary.Series[j].Owned {
			return summary.Series[i].Owned > summary.Series[j].Owned
		}
		return summary.Series[i].Name < summary.Series[j].Name
	})

	for name, count := range authorBooks {
		summary.Authors = append(summary.Authors, AuthorSummary{
			Name:        name,
			Books:       count,
			SeriesCount: len(authorSeries[name]),
		})
	}
	sort.Slice(summary.Authors, func(i, j int) bool {
		if summary.Authors[i].Books != summary.Authors[j].Books {
			return summary.Authors[i].Books > summary.Authors[j].Books
		}
		return summary.Authors[i].Name < summary.Authors[j].Name
	})

	for name, count := range byCategory {
		share := 0.0
		if len(books) > 0 {
			share = float64(count) / float64(len(books)) * 100
		}
		summary.Categories = append(summary.Categories, CategorySummary{
			Name:                name,
			Books:               count,
			Share:               share,
			SeriesParticipation: float64(byCategoryInSeries[name]) / float64(count) * 100,
		})
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		if summary.Categories[i].Books != summary.Categories[j].Books {
			return summary.Categories[i].Books > summary.Categories[j].Books
		}
		return summary.Categories[i].Name < summary.Categories[j].Name
	})

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		summary.AddedByMonth = append(summary.AddedByMonth, MonthBucket{Month: month, Count: byMonth[month]})
	}

	summary.Recommendations = buildRecommendations(summary)
	return summary
}

func buildRecommendations(summary *Summary) Recommendations {
	var rec Recommendations
	for _, s := range summary.Series {
		if s.VolumeCount > 0 && s.Owned < s.VolumeCount {
			rec.IncompleteSeries = append(rec.IncompleteSeries, s.Name)
			missing := s.VolumeCount - s.Owned
			rec.SuggestedAcquisitions = append(rec.SuggestedAcquisitions,
				fmt.Sprintf("%s: %d of %d volumes missing", s.Name, missing, s.VolumeCount))
		}
	}
	for _, a := range summary.Authors {
		if a.SeriesCount >= 2 {
			rec.MultiSeriesAuthors = append(rec.MultiSeriesAuthors, a.Name)
		}
	}
	for _, c := range summary.Categories {
		if c.Share < underRepresentedShare {
			rec.UnderRepresented = append(rec.UnderRepresented, c.Name)
		}
	}
	return rec
}

// CrossCheck compares the summary against the store's own aggregate counts
// and returns one message per mismatch. An empty result means the numbers
// agree.
func CrossCheck(summary *Summary, stats *catalog.Stats) []string {
	if stats == nil {
		return nil
	}
	var diffs []string
	if stats.TotalBooks != summary.TotalBooks {
		diffs = append(diffs, fmt.Sprintf("total books: store reports %d, summary counted %d",
			stats.TotalBooks, summary.TotalBooks))
	}
	if stats.SagaCount != 0 && stats.SagaCount != len(summary.Series) {
		diffs = append(diffs, fmt.Sprintf("saga count: store reports %d, summary counted %d",
			stats.SagaCount, len(summary.Series)))
	}
	for _, c := range summary.Categories {
		if stored, ok := stats.Categories[c.Name]; ok && stored != c.Books {
			diffs = append(diffs, fmt.Sprintf("category %s: store reports %d, summary counted %d",
				c.Name, stored, c.Books))
		}
	}
	return diffs
}
