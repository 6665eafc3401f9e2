// Package validator checks the canonical book mapping against the dataset:
// every mapped Spanish name must exist verbatim as a dataset key.
//
// Mismatches are reported with candidate keys found by a short prefix probe
// (see match.ByPrefix). The dataset is never modified.
package validator

import (
	"github.com/FocuswithJustin/DailyBread/core/bookindex"
	"github.com/FocuswithJustin/DailyBread/core/canon"
	"github.com/FocuswithJustin/DailyBread/core/match"
)

// Result is the outcome for one mapping entry.
type Result struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	OK         bool     `json:"ok"`
	Probe      string   `json:"probe,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

// Report collects the results in mapping order.
type Report struct {
	Results  []Result `json:"results"`
	Failures int      `json:"failures"`
}

// OK reports whether every mapped name was found.
func (r *Report) OK() bool {
	return r.Failures == 0
}

// Total returns the number of entries checked.
func (r *Report) Total() int {
	return len(r.Results)
}

// Failed returns only the failing results.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK {
			out = append(out, res)
		}
	}
	return out
}

// Validate checks each mapping entry against the dataset keys and keeps
// going after a failure.
func Validate(mapping canon.Mapping, idx *bookindex.Index) *Report {
	keys := idx.Keys()
	rep := &Report{Results: make([]Result, 0, len(mapping))}
	for _, b := range mapping {
		if idx.Has(b.Name) {
			rep.Results = append(rep.Results, Result{ID: b.ID, Name: b.Name, OK: true})
			continue
		}
		rep.Failures++
		rep.Results = append(rep.Results, Result{
			ID:         b.ID,
			Name:       b.Name,
			Probe:      match.Probe(b.Name),
			Candidates: match.ByPrefix(b.Name, keys),
		})
	}
	return rep
}
