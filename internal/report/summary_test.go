package report

import (
	"testing"
	"time"

	"sagascan/internal/catalog"
	"sagascan/internal/registry"
)

func book(title, author, category, status, saga string, added time.Time) catalog.Book {
	return catalog.Book{
		Title:    title,
		Author:   author,
		Category: category,
		Status:   status,
		Saga:     saga,
		AddedAt:  added,
	}
}

func TestBuildSummaryCompletedSeries(t *testing.T) {
	added := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	books := []catalog.Book{
		book("Vol 1", "Author", "novel", catalog.StatusCompleted, "Trilogy", added),
		book("Vol 2", "Author", "novel", catalog.StatusCompleted, "Trilogy", added),
		book("Vol 3", "Author", "novel", catalog.StatusCompleted, "Trilogy", added),
	}
	known := []registry.Series{{Name: "Trilogy", Authors: []string{"Author"}, VolumeCount: 3}}

	summary := BuildSummary(books, known)
	if len(summary.Series) != 1 {
		t.Fatalf("series count = %d, want 1", len(summary.Series))
	}
	s := summary.Series[0]
	if s.Owned != 3 || s.Completed != 3 {
		t.Errorf("Owned/Completed = %d/%d, want 3/3", s.Owned, s.Completed)
	}
	if s.CompletionPercent != 100 {
		t.Errorf("CompletionPercent = %v, want 100", s.CompletionPercent)
	}
	if len(summary.Recommendations.IncompleteSeries) != 0 {
		t.Errorf("complete series flagged as incomplete: %v", summary.Recommendations.IncompleteSeries)
	}
}

func TestBuildSummaryIncompleteSeriesRecommendation(t *testing.T) {
	books := []catalog.Book{
		book("Vol 1", "Author", "novel", catalog.StatusCompleted, "Long Run", time.Time{}),
		book("Vol 2", "Author", "novel", catalog.StatusReading, "Long Run", time.Time{}),
	}
	known := []registry.Series{{Name: "Long Run", Authors: []string{"Author"}, VolumeCount: 7}}

	summary := BuildSummary(books, known)
	s := summary.Series[0]
	if s.Reading != 1 || s.Completed != 1 {
		t.Errorf("Reading/Completed = %d/%d, want 1/1", s.Reading, s.Completed)
	}
	want := float64(1) / 7 * 100
	if s.CompletionPercent != want {
		t.Errorf("CompletionPercent = %v, want %v", s.CompletionPercent, want)
	}
	if len(summary.Recommendations.IncompleteSeries) != 1 || summary.Recommendations.IncompleteSeries[0] != "Long Run" {
		t.Errorf("IncompleteSeries = %v, want [Long Run]", summary.Recommendations.IncompleteSeries)
	}
	if len(summary.Recommendations.SuggestedAcquisitions) != 1 {
		t.Fatalf("SuggestedAcquisitions = %v", summary.Recommendations.SuggestedAcquisitions)
	}
}

func TestBuildSummaryUnknownSagaUsesOwnedVolumes(t *testing.T) {
	books := []catalog.Book{
		book("Vol 1", "Someone", "novel", catalog.StatusCompleted, "Obscure Saga", time.Time{}),
		book("Vol 2", "Someone", "novel", catalog.StatusToRead, "Obscure Saga", time.Time{}),
	}
	summary := BuildSummary(books, nil)
	s := summary.Series[0]
	if s.VolumeCount != 0 {
		t.Errorf("VolumeCount = %d, want 0 for unregistered saga", s.VolumeCount)
	}
	if s.CompletionPercent != 50 {
		t.Errorf("CompletionPercent = %v, want 50 (1 of 2 owned)", s.CompletionPercent)
	}
}

func TestBuildSummaryAuthorsAndCategories(t *testing.T) {
	books := []catalog.Book{
		book("A1", "Prolific", "novel", catalog.StatusToRead, "Saga One", time.Time{}),
		book("A2", "Prolific", "novel", catalog.StatusToRead, "Saga Two", time.Time{}),
		book("B1", "Other", "manga", catalog.StatusToRead, "", time.Time{}),
		book("B2", "Other", "novel", catalog.StatusToRead, "", time.Time{}),
		book("B3", "Other", "novel", catalog.StatusToRead, "", time.Time{}),
		book("B4", "Other", "novel", catalog.StatusToRead, "", time.Time{}),
	}
	summary := BuildSummary(books, nil)

	if summary.Authors[0].Name != "Other" || summary.Authors[0].Books != 4 {
		t.Errorf("top author = %+v, want Other with 4 books", summary.Authors[0])
	}
	var prolific AuthorSummary
	for _, a := range summary.Authors {
		if a.Name == "Prolific" {
			prolific = a
		}
	}
	if prolific.SeriesCount != 2 {
		t.Errorf("Prolific SeriesCount = %d, want 2", prolific.SeriesCount)
	}
	if got := summary.Recommendations.MultiSeriesAuthors; len(got) != 1 || got[0] != "Prolific" {
		t.Errorf("MultiSeriesAuthors = %v, want [Prolific]", got)
	}

	if summary.Categories[0].Name != "novel" || summary.Categories[0].Books != 5 {
		t.Errorf("top category = %+v, want novel with 5 books", summary.Categories[0])
	}
	if got := summary.Categories[0].SeriesParticipation; got != 40 {
		t.Errorf("novel SeriesParticipation = %v, want 40 (2 of 5 books in a series)", got)
	}
	if got := summary.Categories[1].SeriesParticipation; got != 0 {
		t.Errorf("manga SeriesParticipation = %v, want 0", got)
	}
	if got := summary.Recommendations.UnderRepresented; len(got) != 1 || got[0] != "manga" {
		t.Errorf("UnderRepresented = %v, want [manga] below the 20%% floor", got)
	}
}

func TestBuildSummaryMonthBuckets(t *testing.T) {
	jan := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	books := []catalog.Book{
		book("A", "X", "", "", "", jan),
		book("B", "X", "", "", "", jan),
		book("C", "X", "", "", "", mar),
		book("D", "X", "", "", "", time.Time{}),
	}
	summary := BuildSummary(books, nil)
	want := []MonthBucket{{Month: "2026-01", Count: 2}, {Month: "2026-03", Count: 1}}
	if len(summary.AddedByMonth) != len(want) {
		t.Fatalf("AddedByMonth = %v, want %v", summary.AddedByMonth, want)
	}
	for i, bucket := range want {
		if summary.AddedByMonth[i] != bucket {
			t.Errorf("bucket %d = %v, want %v", i, summary.AddedByMonth[i], bucket)
		}
	}
}

func TestCrossCheck(t *testing.T) {
	books := []catalog.Book{
		book("A", "X", "novel", catalog.StatusToRead, "Saga", time.Time{}),
		book("B", "X", "manga", catalog.StatusToRead, "", time.Time{}),
	}
	summary := BuildSummary(books, nil)

	agree := &catalog.Stats{
		TotalBooks: 2,
		SagaCount:  1,
		Categories: map[string]int{"novel": 1, "manga": 1},
	}
	if diffs := CrossCheck(summary, agree); len(diffs) != 0 {
		t.Errorf("agreeing stats produced diffs: %v", diffs)
	}

	disagree := &catalog.Stats{
		TotalBooks: 5,
		SagaCount:  3,
		Categories: map[string]int{"novel": 2},
	}
	if diffs := CrossCheck(summary, disagree); len(diffs) != 3 {
		t.Errorf("diffs = %v, want 3 mismatches", diffs)
	}

	if diffs := CrossCheck(summary, nil); diffs != nil {
		t.Errorf("nil stats should yield nil, got %v", diffs)
	}
}

func TestBuildSummaryEmptyCollection(t *testing.T) {
	summary := BuildSummary(nil, nil)
	if summary.TotalBooks != 0 || len(summary.Series) != 0 {
		t.Errorf("empty collection summary = %+v", summary)
	}
}
