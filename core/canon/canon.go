// Package canon holds the fixed table mapping short book IDs to the Spanish
// display names used as keys in the bundled Bible dataset.
package canon

import (
	"regexp"
	"strings"

	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
)

// Testament identifies which half of the canon a book belongs to.
type Testament string

const (
	OldTestament Testament = "OT"
	NewTestament Testament = "NT"
)

// Book is one entry of the mapping table.
type Book struct {
	// ID is the USFM-style book code (e.g., "GEN", "MAT", "1CO").
	ID string `json:"id" yaml:"id"`

	// Name is the expected Spanish display name, verbatim as it should
	// appear as a dataset key.
	Name string `json:"name" yaml:"name"`

	// Order is the 1-based canonical position.
	Order int `json:"order" yaml:"order"`

	Testament Testament `json:"testament" yaml:"testament"`
}

// Mapping is an ordered BookIdMapping. Iteration order is canonical order.
type Mapping []Book

// idPattern matches a canonical short book ID.
var idPattern = regexp.MustCompile(`^[0-9A-Z]{2,3}$`)

// books is the compiled-in table. Do not modify; use Default for a copy.
var books = Mapping{
	// Old Testament
	{"GEN", "Génesis", 1, OldTestament},
	{"EXO", "Éxodo", 2, OldTestament},
	{"LEV", "Levítico", 3, OldTestament},
	{"NUM", "Números", 4, OldTestament},
	{"DEU", "Deuteronomio", 5, OldTestament},
	{"JOS", "Josué", 6, OldTestament},
	{"JDG", "Jueces", 7, OldTestament},
	{"RUT", "Rut", 8, OldTestament},
	{"1SA", "1 Samuel", 9, OldTestament},
	{"2SA", "2 Samuel", 10, OldTestament},
	{"1KI", "1 Reyes", 11, OldTestament},
	{"2KI", "2 Reyes", 12, OldTestament},
	{"1CH", "1 Crónicas", 13, OldTestament},
	{"2CH", "2 Crónicas", 14, OldTestament},
	{"EZR", "Esdras", 15, OldTestament},
	{"NEH", "Nehemías", 16, OldTestament},
	{"EST", "Ester", 17, OldTestament},
	{"JOB", "Job", 18, OldTestament},
	{"PSA", "Salmos", 19, OldTestament},
	{"PRO", "Proverbios", 20, OldTestament},
	{"ECC", "Eclesiastés", 21, OldTestament},
	{"SNG", "Cantares", 22, OldTestament},
	{"ISA", "Isaías", 23, OldTestament},
	{"JER", "Jeremías", 24, OldTestament},
	{"LAM", "Lamentaciones", 25, OldTestament},
	{"EZK", "Ezequiel", 26, OldTestament},
	{"DAN", "Daniel", 27, OldTestament},
	{"HOS", "Oseas", 28, OldTestament},
	{"JOL", "Joel", 29, OldTestament},
	{"AMO", "Amós", 30, OldTestament},
	{"OBA", "Abdías", 31, OldTestament},
	{"JON", "Jonás", 32, OldTestament},
	{"MIC", "Miqueas", 33, OldTestament},
	{"NAM", "Nahúm", 34, OldTestament},
	{"HAB", "Habacuc", 35, OldTestament},
	{"ZEP", "Sofonías", 36, OldTestament},
	{"HAG", "Hageo", 37, OldTestament},
	{"ZEC", "Zacarías", 38, OldTestament},
	{"MAL", "Malaquías", 39, OldTestament},
	// New Testament
	{"MAT", "S. Mateo", 40, NewTestament},
	{"MRK", "S. Marcos", 41, NewTestament},
	{"LUK", "S. Lucas", 42, NewTestament},
	{"JHN", "S. Juan", 43, NewTestament},
	{"ACT", "Hechos", 44, NewTestament},
	{"ROM", "Romanos", 45, NewTestament},
	{"1CO", "1 Corintios", 46, NewTestament},
	{"2CO", "2 Corintios", 47, NewTestament},
	{"GAL", "Gálatas", 48, NewTestament},
	{"EPH", "Efesios", 49, NewTestament},
	{"PHP", "Filipenses", 50, NewTestament},
	{"COL", "Colosenses", 51, NewTestament},
	{"1TH", "1 Tesalonicenses", 52, NewTestament},
	{"2TH", "2 Tesalonicenses", 53, NewTestament},
	{"1TI", "1 Timoteo", 54, NewTestament},
	{"2TI", "2 Timoteo", 55, NewTestament},
	{"TIT", "Tito", 56, NewTestament},
	{"PHM", "Filemón", 57, NewTestament},
	{"HEB", "Hebreos", 58, NewTestament},
	{"JAS", "Santiago", 59, NewTestament},
	{"1PE", "1 Pedro", 60, NewTestament},
	{"2PE", "2 Pedro", 61, NewTestament},
	{"1JN", "1 Juan", 62, NewTestament},
	{"2JN", "2 Juan", 63, NewTestament},
	{"3JN", "3 Juan", 64, NewTestament},
	{"JUD", "Judas", 65, NewTestament},
	{"REV", "Apocalipsis", 66, NewTestament},
}

// Default returns a copy of the compiled-in 66-book mapping.
func Default() Mapping {
	out := make(Mapping, len(books))
	copy(out, books)
	return out
}

// Len returns the number of books in the mapping.
func (m Mapping) Len() int {
	return len(m)
}

// Lookup returns the book with the given ID (case-insensitive).
func (m Mapping) Lookup(id string) (Book, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for _, b := range m {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// ByOrder returns the book at the given 1-based canonical position.
func (m Mapping) ByOrder(order int) (Book, bool) {
	for _, b := range m {
		if b.Order == order {
			return b, true
		}
	}
	return Book{}, false
}

// Names returns the display names in mapping order.
func (m Mapping) Names() []string {
	names := make([]string, len(m))
	for i, b := range m {
		names[i] = b.Name
	}
	return names
}

// WithOverrides returns a copy of m with names replaced per ID. The receiver
// is not modified. Unknown IDs and empty names are rejected.
func (m Mapping) WithOverrides(overrides map[string]string) (Mapping, error) {
	out := make(Mapping, len(m))
	copy(out, m)
	if len(overrides) == 0 {
		return out, nil
	}

	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.ID] = i
	}

	for id, name := range overrides {
		key := strings.ToUpper(strings.TrimSpace(id))
		if !idPattern.MatchString(key) {
			return nil, dberrors.NewValidation("mapping."+id, id, "book ID must be 2-3 uppercase letters or digits")
		}
		i, ok := index[key]
		if !ok {
			return nil, dberrors.NewValidation("mapping."+id, id, "unknown book ID")
		}
		if strings.TrimSpace(name) == "" {
			return nil, dberrors.NewValidation("mapping."+id, name, "name must not be empty")
		}
		out[i].Name = name
	}
	return out, nil
}

// Validate checks the table's own invariants: well-formed, unique IDs and
// unique non-empty names.
func (m Mapping) Validate() error {
	ids := make(map[string]bool, len(m))
	names := make(map[string]bool, len(m))
	for _, b := range m {
		if !idPattern.MatchString(b.ID) {
			return dberrors.NewValidation("id", b.ID, "book ID must be 2-3 uppercase letters or digits")
		}
		if ids[b.ID] {
			return dberrors.NewValidation("id", b.ID, "duplicate book ID")
		}
		ids[b.ID] = true
		if b.Name == "" {
			return dberrors.NewValidation("name", b.ID, "name must not be empty")
		}
		if names[b.Name] {
			return dberrors.NewValidation("name", b.Name, "duplicate book name")
		}
		names[b.Name] = true
	}
	return nil
}
