// Package checker reports whether a set of expected book names is present in
// the dataset, suggesting similar keys for those that are not.
package checker

import (
	"github.com/FocuswithJustin/DailyBread/core/bookindex"
	"github.com/FocuswithJustin/DailyBread/core/match"
)

// DefaultExpected is the set checked when the caller names none.
var DefaultExpected = []string{
	"Génesis",
	"Salmos",
	"S. Mateo",
	"S. Juan",
	"Hechos",
	"Apocalipsis",
}

// KeyResult is the outcome for one expected name.
type KeyResult struct {
	Name     string   `json:"name"`
	Found    bool     `json:"found"`
	Chapters int      `json:"chapters,omitempty"`
	Similar  []string `json:"similar,omitempty"`
}

// Check looks up each expected name, in order. Missing names carry every key
// that contains the name, or is contained by it, ignoring case.
func Check(idx *bookindex.Index, expected []string) []KeyResult {
	keys := idx.Keys()
	results := make([]KeyResult, 0, len(expected))
	for _, name := range expected {
		if n, ok := idx.Chapters(name); ok {
			results = append(results, KeyResult{Name: name, Found: true, Chapters: n})
			continue
		}
		results = append(results, KeyResult{Name: name, Similar: match.Containing(name, keys)})
	}
	return results
}

// Missing counts the results that were not found.
func Missing(results []KeyResult) int {
	n := 0
	for _, r := range results {
		if !r.Found {
			n++
		}
	}
	return n
}
