package resolve

import (
	"sagascan/internal/catalog"
	"sagascan/internal/registry"
)

// Candidate is one (book, series) evaluation. Candidates are transient:
// the resolver discards all but the winner and the closest runner-up.
type Candidate struct {
	Series       registry.Series
	Score        float64
	Reasons      []string
	VolumeNumber int
}

// RunnerUp captures the second-best candidate when it lands within a small
// score delta of the winner, so ambiguous matches stay auditable instead of
// being silently discarded.
type RunnerUp struct {
	SeriesName string  `json:"series_name"`
	Confidence float64 `json:"confidence"`
}

// Detection is the outcome of resolving one book.
type Detection struct {
	Book         catalog.Book `json:"book"`
	Found        bool         `json:"found"`
	SeriesName   string       `json:"series_name,omitempty"`
	Confidence   float64      `json:"confidence"`
	Reasons      []string     `json:"reasons,omitempty"`
	VolumeNumber int          `json:"volume_number,omitempty"`
	RunnerUp     *RunnerUp    `json:"runner_up,omitempty"`
}
