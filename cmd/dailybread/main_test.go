package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/DailyBread/core/bookindex"
	"github.com/FocuswithJustin/DailyBread/core/canon"
	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
	"github.com/FocuswithJustin/DailyBread/internal/config"
)

// Test helper functions

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// completeDataset returns JSON with one verse for every canonical book.
func completeDataset(t *testing.T, rename map[string]string) string {
	t.Helper()
	books := make(map[string]bookindex.Book)
	for _, b := range canon.Default() {
		name := b.Name
		if r, ok := rename[name]; ok {
			name = r
		}
		books[name] = bookindex.Book{"1": {"1": "texto"}}
	}
	path := filepath.Join(t.TempDir(), "bible.json")
	if err := bookindex.New(books).WriteJSON(path); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func newTestApp(t *testing.T, dataset string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Dataset = dataset
	cfg.Storage = filepath.Join(t.TempDir(), "likes.db")

	var out bytes.Buffer
	return &App{
		Ctx:     context.Background(),
		Config:  cfg,
		Mapping: canon.Default(),
		Out:     &out,
	}, &out
}

// Tests for CheckCmd

func TestCheckCmd_Run(t *testing.T) {
	dir := t.TempDir()
	dataset := createTestFile(t, dir, "bible.json",
		`{"S. Mateo":{"1":{"1":"a"},"2":{"1":"b"}},"Los Hechos":{"1":{"1":"c"}}}`)
	app, out := newTestApp(t, dataset)

	cmd := &CheckCmd{Names: []string{"S. Mateo", "Hechos"}}
	if err := cmd.Run(app); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := strings.Join([]string{
		"📚 2 books in dataset:",
		"  Los Hechos",
		"  S. Mateo",
		"✅ Found: S. Mateo (2 chapters)",
		"❌ Not found: Hechos",
		"   Similar: Los Hechos",
		"",
	}, "\n")
	if got := out.String(); got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCheckCmd_DefaultNames(t *testing.T) {
	app, out := newTestApp(t, completeDataset(t, nil))
	if err := (&CheckCmd{}).Run(app); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "Not found") {
		t.Errorf("complete dataset should satisfy default names:\n%s", out.String())
	}
	if got := strings.Count(out.String(), "✅ Found"); got != len(config.DefaultConfig().Expected) {
		t.Errorf("found lines = %d, want %d", got, len(config.DefaultConfig().Expected))
	}
}

func TestCheckCmd_MalformedDataset(t *testing.T) {
	dataset := createTestFile(t, t.TempDir(), "bible.json", `{"S. Mateo": {`)
	app, out := newTestApp(t, dataset)

	err := (&CheckCmd{Names: []string{"S. Mateo"}}).Run(app)
	if !errors.Is(err, dberrors.ErrInvalidInput) {
		t.Errorf("Run() error = %v, want ErrInvalidInput", err)
	}
	if out.Len() != 0 {
		t.Errorf("malformed dataset should produce no report lines, got:\n%s", out.String())
	}
}

func TestCheckCmd_MissingDataset(t *testing.T) {
	app, out := newTestApp(t, filepath.Join(t.TempDir(), "missing.json"))
	if err := (&CheckCmd{}).Run(app); !errors.Is(err, dberrors.ErrNotFound) {
		t.Errorf("Run() error = %v, want ErrNotFound", err)
	}
	if out.Len() != 0 {
		t.Errorf("missing dataset should produce no report lines, got:\n%s", out.String())
	}
}

// Tests for ValidateCmd

func TestValidateCmd_Run(t *testing.T) {
	tests := []struct {
		name       string
		rename     map[string]string
		strict     bool
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "complete dataset",
			wantOutput: []string{"✅ All 66 mapped book names found in dataset"},
		},
		{
			name:   "renamed book",
			rename: map[string]string{"Hechos": "Los Hechos"},
			wantOutput: []string{
				`❌ ACT → "Hechos" not found in dataset`,
				`   Candidates ("hech"): Los Hechos`,
				"❌ 1 of 66 mapped book names missing from dataset",
			},
		},
		{
			name:    "renamed book strict",
			rename:  map[string]string{"Hechos": "Los Hechos"},
			strict:  true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t, completeDataset(t, tt.rename))
			err := (&ValidateCmd{Strict: tt.strict}).Run(app)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantOutput {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestValidateCmd_MappingOverride(t *testing.T) {
	app, out := newTestApp(t, completeDataset(t, map[string]string{"Hechos": "Los Hechos"}))
	mapping, err := canon.Default().WithOverrides(map[string]string{"ACT": "Los Hechos"})
	if err != nil {
		t.Fatal(err)
	}
	app.Mapping = mapping

	if err := (&ValidateCmd{Strict: true}).Run(app); err != nil {
		t.Fatalf("Run() error = %v\n%s", err, out.String())
	}
}

// Tests for BooksCmd and InfoCmd

func TestBooksCmd_Run(t *testing.T) {
	dataset := createTestFile(t, t.TempDir(), "bible.json", `{"Rut":{},"Job":{}}`)
	app, out := newTestApp(t, dataset)
	if err := (&BooksCmd{}).Run(app); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "📚 2 books in dataset:\n  Job\n  Rut\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestInfoCmd_Run(t *testing.T) {
	app, out := newTestApp(t, completeDataset(t, nil))
	if err := (&InfoCmd{}).Run(app); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Books:       66", "Verses:      66", "BLAKE3:      "} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

// Tests for ImportCmd

func TestImportCmd_Run(t *testing.T) {
	dir := t.TempDir()
	input := createTestFile(t, dir, "rv.xml", `<XMLBIBLE>
  <BIBLEBOOK bnumber="8"><CHAPTER cnumber="1"><VERS vnumber="16">Y Rut respondió</VERS></CHAPTER></BIBLEBOOK>
</XMLBIBLE>`)
	outPath := filepath.Join(dir, "out", "bible.json.xz")

	app, out := newTestApp(t, outPath)
	if err := (&ImportCmd{Input: input, Out: outPath}).Run(app); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Imported 1 books, 1 chapters, 1 verses") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	idx, err := bookindex.Load(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if text, err := idx.Verse("Rut", "1", "16"); err != nil || text != "Y Rut respondió" {
		t.Errorf("Verse() = %q, %v", text, err)
	}
}

// Tests for likes commands

func TestLikesCommands(t *testing.T) {
	app, out := newTestApp(t, "")

	if err := (&LikesToggleCmd{Ref: []string{"juan", "3:16"}}).Run(app); err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	if err := (&LikesStatusCmd{Ref: []string{"S.", "Juan", "3:16"}}).Run(app); err != nil {
		t.Fatalf("status error = %v", err)
	}
	if err := (&LikesListCmd{}).Run(app); err != nil {
		t.Fatalf("list error = %v", err)
	}
	if err := (&LikesClearCmd{}).Run(app); err != nil {
		t.Fatalf("clear error = %v", err)
	}
	if err := (&LikesListCmd{}).Run(app); err != nil {
		t.Fatalf("list error = %v", err)
	}

	want := strings.Join([]string{
		"✅ S. Juan 3:16 is liked",
		"✅ S. Juan 3:16 is liked",
		"1 liked verses:",
		"  S. Juan 3:16",
		"Cleared all liked verses",
		"No liked verses",
		"",
	}, "\n")
	if got := out.String(); got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestLikesToggleCmd_BadReference(t *testing.T) {
	app, _ := newTestApp(t, "")
	if err := (&LikesToggleCmd{Ref: []string{"3:16"}}).Run(app); !errors.Is(err, dberrors.ErrInvalidInput) {
		t.Errorf("Run() error = %v, want ErrInvalidInput", err)
	}
}

func TestVersionCmd_Run(t *testing.T) {
	app, out := newTestApp(t, "")
	if err := (&VersionCmd{}).Run(app); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "dailybread version "+version) {
		t.Errorf("unexpected output: %q", out.String())
	}
}
