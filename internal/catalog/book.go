package catalog

import (
	"context"
	"time"
)

// Reading-progress states, independent of a series' publication status.
const (
	StatusToRead    = "to_read"
	StatusReading   = "reading"
	StatusCompleted = "completed"
)

// Book is one record in the external catalog. The engine reads every field
// and writes back only Saga and VolumeNumber when committing a detection.
type Book struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Category     string    `json:"category,omitempty"`
	Status       string    `json:"status,omitempty"`
	Saga         string    `json:"saga,omitempty"`
	VolumeNumber int       `json:"volume_number,omitempty"`
	Subjects     []string  `json:"subjects,omitempty"`
	AddedAt      time.Time `json:"added_at,omitzero"`
}

// Patch is a partial update. Nil fields are left untouched by the store.
type Patch struct {
	Saga         *string `json:"saga,omitempty"`
	VolumeNumber *int    `json:"volume_number,omitempty"`
}

// IsEmpty reports whether the patch carries no changes.
func (p Patch) IsEmpty() bool {
	return p.Saga == nil && p.VolumeNumber == nil
}

// Stats are aggregate counts the store may expose; reporting uses them to
// cross-check its own aggregation.
type Stats struct {
	TotalBooks int            `json:"total_books"`
	Categories map[string]int `json:"categories"`
	SagaCount  int            `json:"sagas_count"`
}

// Store is the fetch/patch contract the engine runs against.
type Store interface {
	// FetchAllBooks returns the full collection. No pagination contract is
	// assumed beyond a generous upper bound.
	FetchAllBooks(ctx context.Context) ([]Book, error)
	// UpdateBook applies a partial update and returns the updated record.
	UpdateBook(ctx context.Context, id string, patch Patch) (*Book, error)
	// FetchStats returns aggregate counts when the store supports them.
	FetchStats(ctx context.Context) (*Stats, error)
}
