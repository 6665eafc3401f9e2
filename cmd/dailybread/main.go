// Command dailybread checks the Daily Bread Spanish Bible dataset and manages
// the reader's liked verses.
//
// Usage:
//
//	dailybread books
//	dailybread check [NAME...]
//	dailybread validate [--strict] [--verbose]
//	dailybread info
//	dailybread import bible.xml --out assets/bible.json
//	dailybread watch
//	dailybread likes toggle S. Juan 3:16
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/DailyBread/core/bookindex"
	"github.com/FocuswithJustin/DailyBread/core/canon"
	"github.com/FocuswithJustin/DailyBread/core/verseref"
	"github.com/FocuswithJustin/DailyBread/internal/checker"
	"github.com/FocuswithJustin/DailyBread/internal/config"
	"github.com/FocuswithJustin/DailyBread/internal/likes"
	"github.com/FocuswithJustin/DailyBread/internal/logging"
	"github.com/FocuswithJustin/DailyBread/internal/report"
	"github.com/FocuswithJustin/DailyBread/internal/storage"
	"github.com/FocuswithJustin/DailyBread/internal/validator"
	"github.com/FocuswithJustin/DailyBread/internal/watch"
)

const version = "0.4.0"

// CLI defines the command-line interface for dailybread.
var CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Config file (default: dailybread.yaml if present)" type:"path"`
	Dataset   string `name:"dataset" short:"d" help:"Bible dataset path (.json, .json.gz, .json.xz)" type:"path"`
	DB        string `name:"db" help:"Liked verses database path" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error"`
	LogFormat string `name:"log-format" help:"Log format: text, json"`
	Color     bool   `name:"color" help:"Style report output for the terminal"`

	Books    BooksCmd    `cmd:"" help:"List top-level book keys in the dataset"`
	Check    CheckCmd    `cmd:"" help:"Check that expected book names exist in the dataset"`
	Validate ValidateCmd `cmd:"" help:"Validate the book ID mapping against the dataset"`
	Info     InfoCmd     `cmd:"" help:"Show dataset statistics and fingerprint"`
	Import   ImportCmd   `cmd:"" help:"Convert a Zefania XML Bible into dataset JSON"`
	Watch    WatchCmd    `cmd:"" help:"Re-validate whenever the dataset changes"`
	Likes    LikesGroup  `cmd:"" help:"Manage liked verses"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// App carries the resolved settings every command runs with.
type App struct {
	Ctx     context.Context
	Config  *config.Config
	Mapping canon.Mapping
	Out     io.Writer
	Color   bool
}

func (a *App) printer() *report.Printer {
	return report.New(a.Out, a.Color)
}

// loadIndex loads the configured dataset, logging the outcome.
func (a *App) loadIndex() (*bookindex.Index, error) {
	start := time.Now()
	idx, err := bookindex.Load(a.Config.Dataset)
	if err != nil {
		logging.DatasetError(a.Ctx, a.Config.Dataset, err)
		return nil, err
	}
	logging.DatasetLoaded(a.Ctx, a.Config.Dataset, idx.Len(), time.Since(start))
	return idx, nil
}

// openTracker opens the likes store and loads the current likes. The
// returned close func releases the store.
func (a *App) openTracker() (*likes.Tracker, func() error, error) {
	store, err := storage.Open(a.Ctx, a.Config.Storage)
	if err != nil {
		logging.StorageError(a.Ctx, "open", a.Config.Storage, err)
		return nil, nil, err
	}
	tr := likes.New(store, a.Mapping)
	if err := tr.Load(a.Ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	return tr, store.Close, nil
}

// BooksCmd lists the dataset's book keys.
type BooksCmd struct{}

func (c *BooksCmd) Run(app *App) error {
	idx, err := app.loadIndex()
	if err != nil {
		return err
	}
	app.printer().Keys(idx.Keys())
	return nil
}

// CheckCmd is the key lookup checker.
type CheckCmd struct {
	Names []string `arg:"" optional:"" help:"Book names to look up (default: from config)"`
}

func (c *CheckCmd) Run(app *App) error {
	idx, err := app.loadIndex()
	if err != nil {
		return err
	}

	names := c.Names
	if len(names) == 0 {
		names = app.Config.Expected
	}

	p := app.printer()
	p.Keys(idx.Keys())
	results := checker.Check(idx, names)
	p.KeyResults(results)
	logging.InfoContext(app.Ctx, "check_complete", "checked", len(results), "missing", checker.Missing(results))
	return nil
}

// ValidateCmd is the mapping validator.
type ValidateCmd struct {
	Strict  bool `help:"Exit non-zero when any mapped name is missing"`
	Verbose bool `short:"v" help:"Also list mapped names that were found"`
}

func (c *ValidateCmd) Run(app *App) error {
	idx, err := app.loadIndex()
	if err != nil {
		return err
	}
	rep := validator.Validate(app.Mapping, idx)
	app.printer().Validation(rep, c.Verbose)
	logging.InfoContext(app.Ctx, "validate_complete", "total", rep.Total(), "failures", rep.Failures)

	if c.Strict && !rep.OK() {
		return fmt.Errorf("%d of %d mapped book names missing from %s", rep.Failures, rep.Total(), app.Config.Dataset)
	}
	return nil
}

// InfoCmd prints dataset statistics.
type InfoCmd struct{}

func (c *InfoCmd) Run(app *App) error {
	idx, err := app.loadIndex()
	if err != nil {
		return err
	}
	fp, err := idx.Fingerprint()
	if err != nil {
		return err
	}
	app.printer().Info(idx, fp)
	return nil
}

// ImportCmd converts a Zefania XML Bible into the dataset layout.
type ImportCmd struct {
	Input string `arg:"" help:"Zefania XML file" type:"existingfile"`
	Out   string `required:"" short:"o" help:"Output JSON path (.json or .json.xz)" type:"path"`
}

func (c *ImportCmd) Run(app *App) error {
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Input, err)
	}
	idx, err := bookindex.ParseZefania(data, app.Mapping)
	if err != nil {
		return err
	}
	if err := idx.WriteJSON(c.Out); err != nil {
		return err
	}

	s := idx.Stats()
	fmt.Fprintf(app.Out, "Imported %d books, %d chapters, %d verses\n", s.Books, s.Chapters, s.Verses)
	fmt.Fprintf(app.Out, "Created: %s\n", c.Out)
	return nil
}

// WatchCmd validates the mapping on every dataset change.
type WatchCmd struct {
	Verbose bool `short:"v" help:"Also list mapped names that were found"`
}

func (c *WatchCmd) Run(app *App) error {
	w, err := watch.New(app.Config.Dataset, app.Config.Watch.Debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	validate := &ValidateCmd{Verbose: c.Verbose}
	runOnce := func(context.Context) {
		if err := validate.Run(app); err != nil {
			fmt.Fprintf(app.Out, "%s %v\n", report.GlyphFail, err)
		}
	}

	runOnce(app.Ctx)
	fmt.Fprintf(app.Out, "Watching %s (Ctrl-C to stop)\n", app.Config.Dataset)
	return w.Run(app.Ctx, runOnce)
}

// LikesGroup contains liked-verse operations.
type LikesGroup struct {
	Toggle LikesToggleCmd `cmd:"" help:"Like or unlike a verse"`
	Status LikesStatusCmd `cmd:"" help:"Show whether a verse is liked"`
	List   LikesListCmd   `cmd:"" help:"List liked verses"`
	Clear  LikesClearCmd  `cmd:"" help:"Remove every like"`
}

// LikesToggleCmd flips a verse's liked state.
type LikesToggleCmd struct {
	Ref []string `arg:"" help:"Verse reference, e.g. S. Juan 3:16"`
}

func (c *LikesToggleCmd) Run(app *App) error {
	ref, err := verseref.Canonical(strings.Join(c.Ref, " "), app.Mapping)
	if err != nil {
		return err
	}
	tr, closeStore, err := app.openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	liked, err := tr.Toggle(app.Ctx, ref)
	if err != nil {
		return err
	}
	app.printer().LikeState(ref, liked)
	return nil
}

// LikesStatusCmd reports a verse's liked state.
type LikesStatusCmd struct {
	Ref []string `arg:"" help:"Verse reference, e.g. S. Juan 3:16"`
}

func (c *LikesStatusCmd) Run(app *App) error {
	ref, err := verseref.Canonical(strings.Join(c.Ref, " "), app.Mapping)
	if err != nil {
		return err
	}
	tr, closeStore, err := app.openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	app.printer().LikeState(ref, tr.IsLiked(ref))
	return nil
}

// LikesListCmd lists liked verses.
type LikesListCmd struct{}

func (c *LikesListCmd) Run(app *App) error {
	tr, closeStore, err := app.openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	app.printer().Likes(tr.Liked())
	return nil
}

// LikesClearCmd removes every like.
type LikesClearCmd struct{}

func (c *LikesClearCmd) Run(app *App) error {
	tr, closeStore, err := app.openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := tr.Clear(app.Ctx); err != nil {
		return err
	}
	fmt.Fprintln(app.Out, "Cleared all liked verses")
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	fmt.Fprintf(app.Out, "dailybread version %s (sqlite: %s)\n", version, storage.DriverType())
	return nil
}

// newApp resolves config and flag overrides into an App.
func newApp(ctx context.Context, out io.Writer) (*App, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	if CLI.Dataset != "" {
		cfg.Dataset = CLI.Dataset
	}
	if CLI.DB != "" {
		cfg.Storage = CLI.DB
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.Log.Format = CLI.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.InitLogging(); err != nil {
		return nil, err
	}

	mapping, err := cfg.BookMapping()
	if err != nil {
		return nil, err
	}

	return &App{
		Ctx:     logging.WithRunID(ctx, logging.NewRunID()),
		Config:  cfg,
		Mapping: mapping,
		Out:     out,
		Color:   CLI.Color,
	}, nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("dailybread"),
		kong.Description("Daily Bread - Bible dataset checks and liked verses"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	ctx, stop := signalContext()
	defer stop()

	app, err := newApp(ctx, os.Stdout)
	kctx.FatalIfErrorf(err)

	err = kctx.Run(app)
	kctx.FatalIfErrorf(err)
}
