package registry

import "testing"

func TestLoadEmbeddedData(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if reg.Len() < 40 {
		t.Errorf("registry has %d series, want at least 40", reg.Len())
	}
}

func TestLoadKnownSeries(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	hp, ok := reg.Get("Harry Potter")
	if !ok {
		t.Fatal("Harry Potter missing from registry")
	}
	if hp.Category != CategoryNovel {
		t.Errorf("Harry Potter category = %q, want novel", hp.Category)
	}
	if hp.VolumeCount != 7 {
		t.Errorf("Harry Potter volume count = %d, want 7", hp.VolumeCount)
	}
	if len(hp.CanonicalVolumes) == 0 {
		t.Error("Harry Potter should define canonical volume titles")
	}

	asterix, ok := reg.Get("Astérix")
	if !ok {
		t.Fatal("Astérix missing from registry")
	}
	if asterix.Category != CategoryComic {
		t.Errorf("Astérix category = %q, want comic", asterix.Category)
	}
}

func TestByCategory(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	total := 0
	for _, cat := range []Category{CategoryNovel, CategoryComic, CategoryManga} {
		list := reg.ByCategory(cat)
		if len(list) == 0 {
			t.Errorf("no series in category %q", cat)
		}
		for _, s := range list {
			if s.Category != cat {
				t.Errorf("series %q leaked into category %q", s.Name, cat)
			}
		}
		total += len(list)
	}
	if total != reg.Len() {
		t.Errorf("categories cover %d series, registry has %d", total, reg.Len())
	}

	if got := reg.ByCategory(""); len(got) != reg.Len() {
		t.Errorf("empty category returned %d series, want all %d", len(got), reg.Len())
	}
}

func TestNewRejectsInvalidData(t *testing.T) {
	valid := Series{
		Name:        "Example",
		Authors:     []string{"Someone"},
		Category:    CategoryNovel,
		VolumeCount: 3,
		Status:      StatusOngoing,
	}

	tests := []struct {
		name   string
		mutate func(*Series)
	}{
		{"missing name", func(s *Series) { s.Name = "" }},
		{"no authors", func(s *Series) { s.Authors = nil }},
		{"bad category", func(s *Series) { s.Category = "poetry" }},
		{"bad status", func(s *Series) { s.Status = "paused" }},
		{"zero volumes", func(s *Series) { s.VolumeCount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if _, err := New([]Series{s}); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	if _, err := New([]Series{valid, valid}); err == nil {
		t.Error("expected duplicate-name error, got nil")
	}
}

func TestNamesAreUnique(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	seen := make(map[string]bool, reg.Len())
	for _, s := range reg.All() {
		if seen[s.Name] {
			t.Errorf("duplicate series name %q", s.Name)
		}
		seen[s.Name] = true
	}
}
