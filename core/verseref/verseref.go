// Package verseref parses Spanish verse references such as "S. Juan 3:16"
// and renders them in one canonical spelling, so that the same verse always
// produces the same storage key.
package verseref

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/DailyBread/core/canon"
	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
)

// Ref is a parsed verse reference. Chapter is required; Verse and VerseEnd
// are optional.
//
//nolint:govet // participle grammar tags are not standard struct tags
type Ref struct {
	Book     string `@Book`
	Chapter  int    `@Number`
	Verse    *int   `( ":" @Number`
	VerseEnd *int   `  ( "-" @Number )? )?`
}

// refLexer tokenizes references. Book names may carry a leading ordinal
// ("1 Juan"), the saint marker ("S. Mateo"), accented letters and several
// words ("Cantar de los Cantares").
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:[1-3]\s*)?(?:[Ss]\.\s*)?\p{L}+(?:\s+\p{L}+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[Ref](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// dotSeparator matches "3.16" so it can be rewritten as "3:16".
var dotSeparator = regexp.MustCompile(`(\d)\s*\.\s*(\d)`)

// Parse parses a reference string. Both "Juan 3:16" and "Juan 3.16" are
// accepted; the book name is normalized (see NormalizeBook).
func Parse(input string) (*Ref, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, &dberrors.ParseError{Format: "reference", Message: "empty reference"}
	}
	s = dotSeparator.ReplaceAllString(s, "$1:$2")

	ref, err := refParser.ParseString("", s)
	if err != nil {
		return nil, dberrors.NewParse("reference", input, err)
	}
	ref.Book = NormalizeBook(ref.Book)

	if ref.Chapter < 1 {
		return nil, &dberrors.ParseError{Format: "reference", Path: input, Message: "chapter must be at least 1"}
	}
	if ref.Verse != nil && *ref.Verse < 1 {
		return nil, &dberrors.ParseError{Format: "reference", Path: input, Message: "verse must be at least 1"}
	}
	if ref.VerseEnd != nil && *ref.VerseEnd <= *ref.Verse {
		return nil, &dberrors.ParseError{Format: "reference", Path: input, Message: "range end must follow range start"}
	}
	return ref, nil
}

// Canonical parses input and returns its canonical string form, resolving
// the book against mapping when one is given.
func Canonical(input string, mapping canon.Mapping) (string, error) {
	ref, err := Parse(input)
	if err != nil {
		return "", err
	}
	if mapping != nil {
		ref.Book = Resolve(ref.Book, mapping)
	}
	return ref.String(), nil
}

// String renders "Book C", "Book C:V" or "Book C:V-E".
func (r *Ref) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(r.Chapter))
	if r.Verse != nil {
		fmt.Fprintf(&sb, ":%d", *r.Verse)
		if r.VerseEnd != nil {
			fmt.Fprintf(&sb, "-%d", *r.VerseEnd)
		}
	}
	return sb.String()
}

// IsRange reports whether the reference spans several verses.
func (r *Ref) IsRange() bool {
	return r.VerseEnd != nil
}

// NormalizeBook collapses whitespace, spells the saint marker as "S." and
// capitalizes each word: "s.  mateo" becomes "S. Mateo".
func NormalizeBook(book string) string {
	book = strings.TrimSuffix(strings.TrimSpace(book), ".")
	lower := strings.ToLower(book)
	if strings.HasPrefix(lower, "s.") {
		book = "S. " + book[2:]
	} else if len(lower) > 1 && lower[0] >= '1' && lower[0] <= '3' {
		rest := strings.TrimSpace(book[1:])
		if strings.HasPrefix(strings.ToLower(rest), "s.") {
			rest = "S. " + rest[2:]
		}
		book = book[:1] + " " + rest
	}

	words := strings.Fields(book)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r := []rune(strings.ToLower(w))
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}

// Resolve maps a normalized book name onto the mapping's spelling when it
// matches a mapped name case-insensitively, with or without the saint
// marker ("Mateo" resolves to "S. Mateo"). Unknown names are returned as is.
func Resolve(book string, mapping canon.Mapping) string {
	want := strings.ToLower(book)
	for _, b := range mapping {
		name := strings.ToLower(b.Name)
		if name == want || strings.TrimPrefix(name, "s. ") == want {
			return b.Name
		}
	}
	return book
}
