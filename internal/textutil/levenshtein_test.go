package textutil

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"both empty", "", "", 0},
		{"a empty", "", "abc", 3},
		{"b empty", "abc", "", 3},
		{"equal", "potter", "potter", 0},
		{"single substitution", "poter", "potter", 1},
		{"kitten sitting", "kitten", "sitting", 3},
		{"unicode runes", "héllo", "hello", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Levenshtein(tt.a, tt.b); got != tt.want {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLevenshteinSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"asterix", "obelix"},
		{"harry", "poter"},
		{"tome", "volume"},
	}
	for _, p := range pairs {
		if Levenshtein(p[0], p[1]) != Levenshtein(p[1], p[0]) {
			t.Errorf("Levenshtein not symmetric for %q, %q", p[0], p[1])
		}
	}
}

func TestLevenshteinTriangleInequality(t *testing.T) {
	triples := [][3]string{
		{"harry", "potter", "poter"},
		{"one piece", "one", "piece"},
		{"asterix", "asterisk", "obelix"},
	}
	for _, tr := range triples {
		ab := Levenshtein(tr[0], tr[1])
		bc := Levenshtein(tr[1], tr[2])
		ac := Levenshtein(tr[0], tr[2])
		if ac > ab+bc {
			t.Errorf("triangle inequality violated for %v: d(a,c)=%d > d(a,b)+d(b,c)=%d", tr, ac, ab+bc)
		}
	}
}
