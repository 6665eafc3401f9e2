package verseref

import (
	"errors"
	"testing"

	"github.com/FocuswithJustin/DailyBread/core/canon"
	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
)

func intPtr(i int) *int {
	return &i
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantBook    string
		wantChapter int
		wantVerse   *int
		wantEnd     *int
		wantStr     string
	}{
		{
			name:        "full reference",
			input:       "Juan 3:16",
			wantBook:    "Juan",
			wantChapter: 3,
			wantVerse:   intPtr(16),
			wantStr:     "Juan 3:16",
		},
		{
			name:        "dot separator",
			input:       "juan 3.16",
			wantBook:    "Juan",
			wantChapter: 3,
			wantVerse:   intPtr(16),
			wantStr:     "Juan 3:16",
		},
		{
			name:        "saint marker",
			input:       "s.   mateo 5:3-12",
			wantBook:    "S. Mateo",
			wantChapter: 5,
			wantVerse:   intPtr(3),
			wantEnd:     intPtr(12),
			wantStr:     "S. Mateo 5:3-12",
		},
		{
			name:        "ordinal book",
			input:       "1juan 4:8",
			wantBook:    "1 Juan",
			wantChapter: 4,
			wantVerse:   intPtr(8),
			wantStr:     "1 Juan 4:8",
		},
		{
			name:        "accented book",
			input:       "GÉNESIS 1:1",
			wantBook:    "Génesis",
			wantChapter: 1,
			wantVerse:   intPtr(1),
			wantStr:     "Génesis 1:1",
		},
		{
			name:        "chapter only",
			input:       "Salmos 23",
			wantBook:    "Salmos",
			wantChapter: 23,
			wantStr:     "Salmos 23",
		},
		{
			name:        "multi-word book",
			input:       "cantar de los cantares 2:4",
			wantBook:    "Cantar De Los Cantares",
			wantChapter: 2,
			wantVerse:   intPtr(4),
			wantStr:     "Cantar De Los Cantares 2:4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if ref.Book != tt.wantBook {
				t.Errorf("Book = %q, want %q", ref.Book, tt.wantBook)
			}
			if ref.Chapter != tt.wantChapter {
				t.Errorf("Chapter = %d, want %d", ref.Chapter, tt.wantChapter)
			}
			if !equalIntPtr(ref.Verse, tt.wantVerse) {
				t.Errorf("Verse = %v, want %v", ref.Verse, tt.wantVerse)
			}
			if !equalIntPtr(ref.VerseEnd, tt.wantEnd) {
				t.Errorf("VerseEnd = %v, want %v", ref.VerseEnd, tt.wantEnd)
			}
			if got := ref.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
			if ref.IsRange() != (tt.wantEnd != nil) {
				t.Errorf("IsRange() = %v", ref.IsRange())
			}
		})
	}
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Juan",
		"3:16",
		"Juan 0:1",
		"Juan 3:0",
		"Juan 3:16-16",
		"Juan 3:16-2",
		"Juan 3:16 extra",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if !errors.Is(err, dberrors.ErrInvalidInput) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidInput", in, err)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	m := canon.Default()
	tests := []struct {
		input string
		want  string
	}{
		{"mateo 5:3", "S. Mateo 5:3"},
		{"S. JUAN 3.16", "S. Juan 3:16"},
		{"1 juan 4:8", "1 Juan 4:8"},
		{"hechos 2:38", "Hechos 2:38"},
		{"Tobías 1:1", "Tobías 1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Canonical(tt.input, m)
			if err != nil {
				t.Fatalf("Canonical(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.want)
			}
			again, err := Canonical(got, m)
			if err != nil || again != got {
				t.Errorf("Canonical is not idempotent: %q -> %q (%v)", got, again, err)
			}
		})
	}
}
