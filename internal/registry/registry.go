package registry

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Category classifies a series by publication form.
type Category string

// Known categories.
const (
	CategoryNovel Category = "novel"
	CategoryComic Category = "comic"
	CategoryManga Category = "manga"
)

// Status reports whether a series is still being published.
type Status string

// Series statuses.
const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// Series is one canonical multi-volume work. Instances are immutable after
// Load; callers must not mutate the slices.
type Series struct {
	Name             string   `toml:"name"`
	Authors          []string `toml:"authors"`
	Category         Category `toml:"category"`
	VolumeCount      int      `toml:"volume_count"`
	Keywords         []string `toml:"keywords"`
	Variations       []string `toml:"variations"`
	Exclusions       []string `toml:"exclusions"`
	CanonicalVolumes []string `toml:"canonical_volumes"`
	Status           Status   `toml:"status"`
}

// GlobalExclusions are rejection keywords applied to every series on top of
// the per-series lists: markers for spin-offs, guides, and other derivative
// works that share a title or author with the canonical run.
var GlobalExclusions = []string{
	"spin-off",
	"spin off",
	"hors-série",
	"hors série",
	"companion",
	"guide",
	"artbook",
	"art book",
	"adaptation",
	"novelization",
	"novelisation",
	"remake",
	"unofficial",
	"parody",
	"parodie",
	"fan fiction",
	"fanfiction",
	"encyclopedia",
	"encyclopédie",
	"coloring book",
	"colouring book",
}

//go:embed series.toml
var seriesData []byte

type seriesFile struct {
	Series []Series `toml:"series"`
}

// Registry is the loaded, validated set of series definitions.
type Registry struct {
	series []Series
	byName map[string]int
}

// Load parses and validates the embedded series data.
func Load() (*Registry, error) {
	var file seriesFile
	if err := toml.Unmarshal(seriesData, &file); err != nil {
		return nil, fmt.Errorf("parse series data: %w", err)
	}
	return New(file.Series)
}

// New builds a registry from explicit definitions. Used by Load and by tests
// that need a small controlled registry.
func New(series []Series) (*Registry, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("registry requires at least one series")
	}
	byName := make(map[string]int, len(series))
	for i, s := range series {
		if s.Name == "" {
			return nil, fmt.Errorf("series %d: name is required", i)
		}
		if _, dup := byName[s.Name]; dup {
			return nil, fmt.Errorf("series %q: duplicate name", s.Name)
		}
		if len(s.Authors) == 0 {
			return nil, fmt.Errorf("series %q: at least one author is required", s.Name)
		}
		switch s.Category {
		case CategoryNovel, CategoryComic, CategoryManga:
		default:
			return nil, fmt.Errorf("series %q: unknown category %q", s.Name, s.Category)
		}
		switch s.Status {
		case StatusOngoing, StatusCompleted:
		default:
			return nil, fmt.Errorf("series %q: unknown status %q", s.Name, s.Status)
		}
		if s.VolumeCount <= 0 {
			return nil, fmt.Errorf("series %q: volume_count must be positive", s.Name)
		}
		byName[s.Name] = i
	}
	return &Registry{series: series, byName: byName}, nil
}

// All returns every series definition.
func (r *Registry) All() []Series {
	return r.series
}

// ByCategory returns the series in the given category. An empty category
// returns everything, matching the resolver's behavior for books whose
// category is unknown.
func (r *Registry) ByCategory(cat Category) []Series {
	if cat == "" {
		return r.series
	}
	out := make([]Series, 0, len(r.series))
	for _, s := range r.series {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// Get looks up a series by canonical name.
func (r *Registry) Get(name string) (Series, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Series{}, false
	}
	return r.series[i], true
}

// Len returns the number of series definitions.
func (r *Registry) Len() int {
	return len(r.series)
}
