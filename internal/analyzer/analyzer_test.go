package analyzer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"sagascan/internal/catalog"
	"sagascan/internal/resolve"
)

type fakeStore struct {
	books      []catalog.Book
	fetchErr   error
	updates    map[string]catalog.Patch
	failUpdate map[string]error
}

func newFakeStore(books []catalog.Book) *fakeStore {
	return &fakeStore{books: books, updates: make(map[string]catalog.Patch)}
}

func (s *fakeStore) FetchAllBooks(ctx context.Context) ([]catalog.Book, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.books, nil
}

func (s *fakeStore) UpdateBook(ctx context.Context, id string, patch catalog.Patch) (*catalog.Book, error) {
	if err, ok := s.failUpdate[id]; ok {
		return nil, err
	}
	s.updates[id] = patch
	for i := range s.books {
		if s.books[i].ID == id {
			if patch.Saga != nil {
				s.books[i].Saga = *patch.Saga
			}
			if patch.VolumeNumber != nil {
				s.books[i].VolumeNumber = *patch.VolumeNumber
			}
			return &s.books[i], nil
		}
	}
	return nil, fmt.Errorf("book %s not found", id)
}

func (s *fakeStore) FetchStats(ctx context.Context) (*catalog.Stats, error) {
	return &catalog.Stats{TotalBooks: len(s.books)}, nil
}

type scriptedResolver struct {
	results map[string]resolve.Detection
	errs    map[string]error
}

func (r scriptedResolver) Resolve(_ context.Context, book catalog.Book) (resolve.Detection, error) {
	if err, ok := r.errs[book.ID]; ok {
		return resolve.Detection{Book: book}, err
	}
	if det, ok := r.results[book.ID]; ok {
		det.Book = book
		return det, nil
	}
	return resolve.Detection{Book: book}, nil
}

func detection(name string, confidence float64, volume int) resolve.Detection {
	return resolve.Detection{
		Found:        true,
		SeriesName:   name,
		Confidence:   confidence,
		VolumeNumber: volume,
	}
}

func TestAnalyzeSkipsBooksWithSaga(t *testing.T) {
	books := make([]catalog.Book, 0, 10)
	for i := 0; i < 10; i++ {
		book := catalog.Book{ID: fmt.Sprintf("b%d", i), Title: fmt.Sprintf("Book %d", i)}
		if i < 6 {
			book.Saga = "Already Assigned"
		}
		books = append(books, book)
	}
	store := newFakeStore(books)
	a := New(store, scriptedResolver{}, nil)

	report, err := a.Analyze(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.TotalBooks != 10 {
		t.Errorf("TotalBooks = %d, want 10", report.TotalBooks)
	}
	if report.BooksAnalyzed != 4 {
		t.Errorf("BooksAnalyzed = %d, want 4", report.BooksAnalyzed)
	}
	if report.StandaloneBooks != 4 {
		t.Errorf("StandaloneBooks = %d, want 4", report.StandaloneBooks)
	}
}

func TestAnalyzeClassification(t *testing.T) {
	books := []catalog.Book{
		{ID: "hit", Title: "Harry Potter 1"},
		{ID: "weak", Title: "Borderline"},
		{ID: "miss", Title: "Unrelated"},
	}
	store := newFakeStore(books)
	resolver := scriptedResolver{results: map[string]resolve.Detection{
		"hit":  detection("Harry Potter", 92, 1),
		"weak": detection("Harry Potter", 60, 0),
	}}
	a := New(store, resolver, nil)

	report, err := a.Analyze(context.Background(), Options{MinConfidence: 75})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.SeriesDetected != 1 {
		t.Errorf("SeriesDetected = %d, want 1", report.SeriesDetected)
	}
	if report.StandaloneBooks != 2 {
		t.Errorf("StandaloneBooks = %d, want 2", report.StandaloneBooks)
	}
	if len(report.Detected) != 1 || report.Detected[0].Book.ID != "hit" {
		t.Fatalf("Detected = %+v, want the single high-confidence book", report.Detected)
	}
}

func TestAnalyzeIsolatesErrors(t *testing.T) {
	books := []catalog.Book{
		{ID: "ok1", Title: "First"},
		{ID: "boom", Title: "Second"},
		{ID: "ok2", Title: "Third"},
	}
	store := newFakeStore(books)
	resolver := scriptedResolver{
		results: map[string]resolve.Detection{
			"ok1": detection("Series A", 90, 0),
			"ok2": detection("Series B", 90, 0),
		},
		errs: map[string]error{"boom": errors.New("lookup timed out")},
	}
	a := New(store, resolver, nil)

	report, err := a.Analyze(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Errors != 1 {
		t.Errorf("Errors = %d, want 1", report.Errors)
	}
	if report.SeriesDetected != 2 {
		t.Errorf("SeriesDetected = %d, want 2: failure must not stop the run", report.SeriesDetected)
	}
	if len(report.ErrorBooks) != 1 || report.ErrorBooks[0].Book.ID != "boom" {
		t.Fatalf("ErrorBooks = %+v", report.ErrorBooks)
	}
}

func TestAnalyzeReportsProgress(t *testing.T) {
	books := []catalog.Book{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
	}
	a := New(newFakeStore(books), scriptedResolver{}, nil)

	var calls []float64
	_, err := a.Analyze(context.Background(), Options{
		OnProgress: func(done, total int, percent float64) {
			if total != 2 {
				t.Errorf("total = %d, want 2", total)
			}
			calls = append(calls, percent)
		},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(calls) != 2 || calls[0] != 50 || calls[1] != 100 {
		t.Errorf("progress calls = %v, want [50 100]", calls)
	}
}

func TestAnalyzeStopsOnCancellation(t *testing.T) {
	books := []catalog.Book{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C"},
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := New(newFakeStore(books), scriptedResolver{}, nil)

	report, err := a.Analyze(ctx, Options{
		OnProgress: func(done, total int, percent float64) {
			if done == 1 {
				cancel()
			}
		},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if report == nil || report.BooksAnalyzed != 1 {
		t.Fatalf("partial report = %+v, want one analyzed book", report)
	}
}

func TestCommitAppliesDetections(t *testing.T) {
	books := []catalog.Book{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
	}
	store := newFakeStore(books)
	a := New(store, scriptedResolver{}, nil)

	detections := []resolve.Detection{
		{Book: books[0], Found: true, SeriesName: "Series A", Confidence: 90, VolumeNumber: 3},
		{Book: books[1], Found: true, SeriesName: "Series B", Confidence: 60},
	}
	result, err := a.Commit(context.Background(), detections, CommitOptions{MinConfidence: 75})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if result.Updated != 1 || result.Skipped != 1 {
		t.Errorf("Updated/Skipped = %d/%d, want 1/1", result.Updated, result.Skipped)
	}
	patch, ok := store.updates["a"]
	if !ok {
		t.Fatal("book a was not updated")
	}
	if patch.Saga == nil || *patch.Saga != "Series A" {
		t.Errorf("patch.Saga = %v, want Series A", patch.Saga)
	}
	if patch.VolumeNumber == nil || *patch.VolumeNumber != 3 {
		t.Errorf("patch.VolumeNumber = %v, want 3", patch.VolumeNumber)
	}
	if _, ok := store.updates["b"]; ok {
		t.Error("book b below threshold must not be written")
	}
}

func TestCommitDryRunWritesNothing(t *testing.T) {
	books := []catalog.Book{{ID: "a", Title: "A"}}
	store := newFakeStore(books)
	a := New(store, scriptedResolver{}, nil)

	detections := []resolve.Detection{
		{Book: books[0], Found: true, SeriesName: "Series A", Confidence: 90},
	}
	result, err := a.Commit(context.Background(), detections, CommitOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(result.Planned) != 1 {
		t.Errorf("Planned = %d, want 1", len(result.Planned))
	}
	if len(store.updates) != 0 {
		t.Errorf("dry run wrote %d updates", len(store.updates))
	}
}

func TestCommitConfirmHook(t *testing.T) {
	books := []catalog.Book{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
	}
	store := newFakeStore(books)
	a := New(store, scriptedResolver{}, nil)

	detections := []resolve.Detection{
		{Book: books[0], Found: true, SeriesName: "Series A", Confidence: 90},
		{Book: books[1], Found: true, SeriesName: "Series B", Confidence: 90},
	}
	result, err := a.Commit(context.Background(), detections, CommitOptions{
		Confirm: func(det resolve.Detection) bool { return det.Book.ID == "b" },
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if result.Updated != 1 || result.Skipped != 1 {
		t.Errorf("Updated/Skipped = %d/%d, want 1/1", result.Updated, result.Skipped)
	}
	if _, ok := store.updates["b"]; !ok {
		t.Error("confirmed book b was not updated")
	}
}

func TestCommitIsolatesWriteFailures(t *testing.T) {
	books := []catalog.Book{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
	}
	store := newFakeStore(books)
	store.failUpdate = map[string]error{"a": errors.New("conflict")}
	a := New(store, scriptedResolver{}, nil)

	detections := []resolve.Detection{
		{Book: books[0], Found: true, SeriesName: "Series A", Confidence: 90},
		{Book: books[1], Found: true, SeriesName: "Series B", Confidence: 90},
	}
	result, err := a.Commit(context.Background(), detections, CommitOptions{})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if result.Failed != 1 || result.Updated != 1 {
		t.Errorf("Failed/Updated = %d/%d, want 1/1", result.Failed, result.Updated)
	}
	if len(result.FailedBooks) != 1 || result.FailedBooks[0].Book.ID != "a" {
		t.Fatalf("FailedBooks = %+v", result.FailedBooks)
	}
}
