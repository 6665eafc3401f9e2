// Package match implements the near-match heuristics used to suggest dataset
// keys for a book name that was not found verbatim.
//
// Both heuristics are deliberately approximate. They feed human-facing
// diagnostics only and never drive automatic correction.
package match

import (
	"sort"
	"strings"
)

// ProbeLength is the number of runes the prefix probe keeps.
const ProbeLength = 4

// saintMarker is the abbreviation of "San"/"Santo" that prefixes gospel names.
const saintMarker = "s."

// Containing returns the candidates whose lowercase form contains the
// lowercase name, or is contained by it. Results are sorted.
func Containing(name string, candidates []string) []string {
	needle := strings.ToLower(name)
	var out []string
	for _, c := range candidates {
		hay := strings.ToLower(c)
		if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Probe derives the short search key for name: lowercased, the first "s."
// marker removed, whitespace collapsed, then cut to ProbeLength runes.
//
//	Probe("S. Mateo")  == "mate"
//	Probe("Hechos")    == "hech"
//	Probe("Job")       == "job"
func Probe(name string) string {
	s := strings.ToLower(name)
	s = strings.Replace(s, saintMarker, "", 1)
	s = strings.Join(strings.Fields(s), " ")

	r := []rune(s)
	if len(r) > ProbeLength {
		r = r[:ProbeLength]
	}
	return string(r)
}

// ByPrefix returns the candidates whose lowercase form contains Probe(name).
// An empty probe matches nothing. Results are sorted.
func ByPrefix(name string, candidates []string) []string {
	probe := Probe(name)
	if probe == "" {
		return nil
	}
	var out []string
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), probe) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
