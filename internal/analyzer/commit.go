package analyzer

import (
	"context"
	"time"

	"sagascan/internal/catalog"
	"sagascan/internal/logging"
	"sagascan/internal/resolve"
)

// CommitOptions tunes one commit run.
type CommitOptions struct {
	MinConfidence float64
	Delay         time.Duration
	// DryRun plans every update without writing anything.
	DryRun bool
	// Confirm, when set, is asked before each update. Returning false skips
	// the item.
	Confirm func(resolve.Detection) bool
}

// CommitResult summarizes a commit run.
type CommitResult struct {
	Updated     int                 `json:"updated"`
	Skipped     int                 `json:"skipped"`
	Failed      int                 `json:"failed"`
	FailedBooks []ErrorBook         `json:"failed_books,omitempty"`
	Planned     []resolve.Detection `json:"planned,omitempty"`
}

// Commit writes accepted detections back to the catalog. Detections below
// the confidence threshold or declined by the confirm hook are skipped. A
// single failed write is recorded and the run continues.
func (a *Analyzer) Commit(ctx context.Context, detections []resolve.Detection, opts CommitOptions) (*CommitResult, error) {
	minConfidence := opts.MinConfidence
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	delay := opts.Delay

	result := &CommitResult{}
	accepted := make([]resolve.Detection, 0, len(detections))
	for _, det := range detections {
		if !det.Found || det.Confidence < minConfidence {
			result.Skipped++
			continue
		}
		if opts.Confirm != nil && !opts.Confirm(det) {
			result.Skipped++
			continue
		}
		accepted = append(accepted, det)
	}

	if opts.DryRun {
		result.Planned = accepted
		a.logger.Info("commit dry run",
			logging.Int("planned", len(accepted)),
			logging.Int("skipped", result.Skipped))
		return result, nil
	}

	for i, det := range accepted {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		patch := buildPatch(det)
		if _, err := a.store.UpdateBook(ctx, det.Book.ID, patch); err != nil {
			result.Failed++
			result.FailedBooks = append(result.FailedBooks, ErrorBook{Book: det.Book, Err: err.Error()})
			a.logger.Warn("book update failed",
				logging.String("title", det.Book.Title),
				logging.Error(err))
		} else {
			result.Updated++
			a.logger.Info("book updated",
				logging.String("title", det.Book.Title),
				logging.String("saga", det.SeriesName))
		}
		if i < len(accepted)-1 {
			if err := pause(ctx, delay); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

func buildPatch(det resolve.Detection) catalog.Patch {
	saga := det.SeriesName
	patch := catalog.Patch{Saga: &saga}
	if det.VolumeNumber > 0 {
		volume := det.VolumeNumber
		patch.VolumeNumber = &volume
	}
	return patch
}
