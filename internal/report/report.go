// Package report renders diagnostic results as human-readable console lines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/FocuswithJustin/DailyBread/core/bookindex"
	"github.com/FocuswithJustin/DailyBread/internal/checker"
	"github.com/FocuswithJustin/DailyBread/internal/validator"
)

// Status glyphs.
const (
	GlyphOK   = "✅"
	GlyphFail = "❌"
	GlyphBook = "📚"
)

// Printer writes report lines to w.
type Printer struct {
	w     io.Writer
	color bool

	ok    lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
}

// New creates a Printer. With color set, names and counts are styled for the
// terminal behind w; otherwise output is plain text.
func New(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:     w,
		color: color,
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) println(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Keys lists the dataset's top-level book keys.
func (p *Printer) Keys(keys []string) {
	p.println("%s %d books in dataset:", GlyphBook, len(keys))
	for _, k := range keys {
		p.println("  %s", k)
	}
}

// KeyResults prints one line per expected name, plus near-matches for the
// missing ones.
func (p *Printer) KeyResults(results []checker.KeyResult) {
	for _, r := range results {
		if r.Found {
			p.println("%s Found: %s (%d chapters)", GlyphOK, p.style(p.ok, r.Name), r.Chapters)
			continue
		}
		p.println("%s Not found: %s", GlyphFail, p.style(p.fail, r.Name))
		if len(r.Similar) > 0 {
			p.println("   Similar: %s", p.style(p.muted, strings.Join(r.Similar, ", ")))
		}
	}
}

// Validation prints every failing mapping entry (and passing ones when
// verbose), followed by the summary line.
func (p *Printer) Validation(rep *validator.Report, verbose bool) {
	for _, r := range rep.Results {
		if r.OK {
			if verbose {
				p.println("%s %s → %s", GlyphOK, r.ID, r.Name)
			}
			continue
		}
		p.println("%s %s → %q not found in dataset", GlyphFail, r.ID, r.Name)
		if len(r.Candidates) > 0 {
			p.println("   Candidates (%q): %s", r.Probe, p.style(p.muted, strings.Join(r.Candidates, ", ")))
		}
	}
	p.Summary(rep)
}

// Summary prints the final success or failure line.
func (p *Printer) Summary(rep *validator.Report) {
	if rep.OK() {
		p.println("%s All %d mapped book names found in dataset", GlyphOK, rep.Total())
		return
	}
	p.println("%s %s of %d mapped book names missing from dataset",
		GlyphFail, p.style(p.fail, fmt.Sprint(rep.Failures)), rep.Total())
}

// Info prints dataset statistics and its fingerprint.
func (p *Printer) Info(idx *bookindex.Index, fingerprint string) {
	s := idx.Stats()
	if idx.Source != "" {
		p.println("Dataset:     %s", idx.Source)
	}
	if idx.Size() > 0 {
		p.println("Size:        %s", humanize.Bytes(uint64(idx.Size())))
	}
	p.println("Books:       %s", humanize.Comma(int64(s.Books)))
	p.println("Chapters:    %s", humanize.Comma(int64(s.Chapters)))
	p.println("Verses:      %s", humanize.Comma(int64(s.Verses)))
	p.println("BLAKE3:      %s", fingerprint)
}

// Likes prints liked verse references.
func (p *Printer) Likes(refs []string) {
	if len(refs) == 0 {
		p.println("No liked verses")
		return
	}
	p.println("%d liked verses:", len(refs))
	for _, r := range refs {
		p.println("  %s", r)
	}
}

// LikeState prints the state of a single verse.
func (p *Printer) LikeState(ref string, liked bool) {
	if liked {
		p.println("%s %s is liked", GlyphOK, ref)
		return
	}
	p.println("%s %s is not liked", GlyphFail, ref)
}
