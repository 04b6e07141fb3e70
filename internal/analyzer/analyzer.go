package analyzer

import (
	"context"
	"log/slog"
	"time"

	"sagascan/internal/catalog"
	"sagascan/internal/logging"
	"sagascan/internal/resolve"
)

// DefaultMinConfidence is the accept threshold on the shared 0-100 score
// scale. Detections below it are reported as standalone rather than
// actionable.
const DefaultMinConfidence = 75

// DefaultDelay is the pause between per-item store requests.
const DefaultDelay = 200 * time.Millisecond

// BookResolver resolves a single book. The production implementation wraps
// the pure resolver; the indirection exists because resolution may involve a
// remote lookup, whose failure must stay isolated to the one item.
type BookResolver interface {
	Resolve(ctx context.Context, book catalog.Book) (resolve.Detection, error)
}

type localResolver struct {
	r *resolve.Resolver
}

func (l localResolver) Resolve(_ context.Context, book catalog.Book) (resolve.Detection, error) {
	return l.r.Resolve(book), nil
}

// NewLocalResolver adapts the in-process resolver to the BookResolver
// contract.
func NewLocalResolver(r *resolve.Resolver) BookResolver {
	return localResolver{r: r}
}

// Options tunes one analysis run. Zero values fall back to the defaults.
type Options struct {
	MinConfidence float64
	Delay         time.Duration
	// OnProgress, when set, is invoked after every analyzed item with the
	// number of items done, the total, and the completion percentage.
	OnProgress func(done, total int, percent float64)
}

// ErrorBook records a single item's failure inside an otherwise successful
// run.
type ErrorBook struct {
	Book catalog.Book `json:"book"`
	Err  string       `json:"error"`
}

// Report is the immutable outcome of one analysis run.
type Report struct {
	TotalBooks      int                 `json:"total_books"`
	BooksAnalyzed   int                 `json:"books_analyzed"`
	SeriesDetected  int                 `json:"series_detected"`
	StandaloneBooks int                 `json:"standalone_books"`
	Errors          int                 `json:"errors"`
	Detected        []resolve.Detection `json:"detected_series"`
	ErrorBooks      []ErrorBook         `json:"error_books,omitempty"`
}

// Analyzer runs resolution over a collection. One instance must not be used
// for two concurrent runs against the same collection.
type Analyzer struct {
	store    catalog.Store
	resolver BookResolver
	logger   *slog.Logger
}

// New creates an analyzer. A nil logger is replaced with a no-op logger.
func New(store catalog.Store, resolver BookResolver, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		store:    store,
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "analyzer"),
	}
}

// Analyze fetches the collection and resolves every book without a saga.
// Books that already carry a saga are counted but not re-resolved. On
// cancellation the partial report is returned alongside the context error.
func (a *Analyzer) Analyze(ctx context.Context, opts Options) (*Report, error) {
	minConfidence := opts.MinConfidence
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	delay := opts.Delay
	if delay < 0 {
		delay = 0
	}

	books, err := a.store.FetchAllBooks(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{TotalBooks: len(books)}
	pending := make([]catalog.Book, 0, len(books))
	for _, book := range books {
		if book.Saga == "" {
			pending = append(pending, book)
		}
	}
	total := len(pending)

	a.logger.Info("analysis started",
		logging.Int("total_books", len(books)),
		logging.Int("to_analyze", total))

	for i, book := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		detection, err := a.resolver.Resolve(ctx, book)
		report.BooksAnalyzed++
		switch {
		case err != nil:
			report.Errors++
			report.ErrorBooks = append(report.ErrorBooks, ErrorBook{Book: book, Err: err.Error()})
			a.logger.Warn("book resolution failed",
				logging.String("title", book.Title),
				logging.Error(err))
		case detection.Found && detection.Confidence >= minConfidence:
			report.SeriesDetected++
			report.Detected = append(report.Detected, detection)
		default:
			report.StandaloneBooks++
		}

		if opts.OnProgress != nil {
			done := i + 1
			opts.OnProgress(done, total, float64(done)/float64(total)*100)
		}
		if i < total-1 {
			if err := pause(ctx, delay); err != nil {
				return report, err
			}
		}
	}

	a.logger.Info("analysis complete",
		logging.Int("analyzed", report.BooksAnalyzed),
		logging.Int("detected", report.SeriesDetected),
		logging.Int("standalone", report.StandaloneBooks),
		logging.Int("errors", report.Errors))
	return report, nil
}

// pause waits for the delay or the context, whichever ends first.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
