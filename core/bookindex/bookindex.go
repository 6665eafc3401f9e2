// Package bookindex loads the bundled Spanish Bible dataset.
//
// The dataset is a JSON object keyed by book display name:
//
//	{ "S. Mateo": { "1": { "1": "Libro de la generación de Jesucristo..." } } }
//
// An Index is loaded once per run and treated as read-only.
package bookindex

import (
	"encoding/hex"
	"sort"

	"github.com/goccy/go-json"
	"github.com/zeebo/blake3"

	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
)

// Chapter maps a verse identifier to the verse text.
type Chapter map[string]string

// Book maps a chapter identifier to its verses.
type Book map[string]Chapter

// Index is the loaded dataset keyed by display name.
type Index struct {
	// Books holds the dataset content.
	Books map[string]Book

	// Source is the path the index was loaded from, if any.
	Source string

	raw []byte
}

// Stats summarizes the size of an Index.
type Stats struct {
	Books    int `json:"books"`
	Chapters int `json:"chapters"`
	Verses   int `json:"verses"`
}

// New wraps an in-memory book map.
func New(books map[string]Book) *Index {
	if books == nil {
		books = make(map[string]Book)
	}
	return &Index{Books: books}
}

// Parse decodes raw dataset JSON. source is only used in error messages.
func Parse(data []byte, source string) (*Index, error) {
	var books map[string]Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, dberrors.NewParse("JSON", source, err)
	}
	if books == nil {
		return nil, &dberrors.ParseError{Format: "JSON", Path: source, Message: "dataset must be a JSON object"}
	}
	return &Index{Books: books, Source: source, raw: data}, nil
}

// Keys returns the top-level book keys, sorted.
func (idx *Index) Keys() []string {
	keys := make([]string, 0, len(idx.Books))
	for k := range idx.Books {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of books.
func (idx *Index) Len() int {
	return len(idx.Books)
}

// Has reports whether name is a key, verbatim.
func (idx *Index) Has(name string) bool {
	_, ok := idx.Books[name]
	return ok
}

// Chapters returns the chapter count for a book.
func (idx *Index) Chapters(name string) (int, bool) {
	b, ok := idx.Books[name]
	if !ok {
		return 0, false
	}
	return len(b), true
}

// Verse returns the text of a single verse.
func (idx *Index) Verse(book, chapter, verse string) (string, error) {
	b, ok := idx.Books[book]
	if !ok {
		return "", dberrors.NewNotFound("book", book)
	}
	c, ok := b[chapter]
	if !ok {
		return "", dberrors.NewNotFound("chapter", book+" "+chapter)
	}
	text, ok := c[verse]
	if !ok {
		return "", dberrors.NewNotFound("verse", book+" "+chapter+":"+verse)
	}
	return text, nil
}

// Stats counts books, chapters and verses.
func (idx *Index) Stats() Stats {
	s := Stats{Books: len(idx.Books)}
	for _, b := range idx.Books {
		s.Chapters += len(b)
		for _, c := range b {
			s.Verses += len(c)
		}
	}
	return s
}

// Size returns the byte length of the decoded dataset file, or 0 when the
// index was built in memory.
func (idx *Index) Size() int64 {
	return int64(len(idx.raw))
}

// Fingerprint returns the BLAKE3 hash of the dataset bytes. Indexes built in
// memory are hashed over their canonical (key-sorted) JSON encoding.
func (idx *Index) Fingerprint() (string, error) {
	data := idx.raw
	if data == nil {
		var err error
		data, err = json.Marshal(idx.Books)
		if err != nil {
			return "", dberrors.Wrap(err, "encode index")
		}
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
