// Package config loads dailybread settings from a YAML file.
//
// A missing default config file is not an error; the built-in defaults apply.
// Command-line flags override file values (see cmd/dailybread).
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/DailyBread/core/canon"
	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
	"github.com/FocuswithJustin/DailyBread/internal/checker"
	"github.com/FocuswithJustin/DailyBread/internal/logging"
)

// DefaultPath is the config file read when none is named.
const DefaultPath = "dailybread.yaml"

// Config holds every tunable setting.
type Config struct {
	// Dataset is the path to the Bible JSON dataset.
	Dataset string `yaml:"dataset"`

	// Storage is the SQLite file holding liked verses.
	Storage string `yaml:"storage"`

	// Expected lists the book names the key checker looks up.
	Expected []string `yaml:"expected"`

	// Mapping overrides display names in the canonical table, by book ID.
	Mapping map[string]string `yaml:"mapping"`

	Log   LogConfig   `yaml:"log"`
	Watch WatchConfig `yaml:"watch"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WatchConfig tunes the dataset watcher.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	expected := make([]string, len(checker.DefaultExpected))
	copy(expected, checker.DefaultExpected)
	return &Config{
		Dataset:  "assets/bible.json",
		Storage:  "dailybread.db",
		Expected: expected,
		Log:      LogConfig{Level: "warn", Format: "text"},
		Watch:    WatchConfig{Debounce: 250 * time.Millisecond},
	}
}

// Load reads path over the defaults. When path is empty DefaultPath is tried
// and silently skipped if absent; a named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, dberrors.NewIO("read config", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte, source string) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, dberrors.NewParse("YAML", source, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Dataset == "" {
		return dberrors.NewValidation("dataset", "", "must not be empty")
	}
	if c.Storage == "" {
		return dberrors.NewValidation("storage", "", "must not be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return dberrors.NewValidation("log.level", c.Log.Level, err.Error())
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return dberrors.NewValidation("log.format", c.Log.Format, err.Error())
	}
	if c.Watch.Debounce < 0 {
		return dberrors.NewValidation("watch.debounce", c.Watch.Debounce.String(), "must not be negative")
	}
	if _, err := c.BookMapping(); err != nil {
		return err
	}
	return nil
}

// BookMapping returns the canonical mapping with configured overrides applied.
func (c *Config) BookMapping() (canon.Mapping, error) {
	return canon.Default().WithOverrides(c.Mapping)
}

// InitLogging applies the log settings to the global logger.
func (c *Config) InitLogging() error {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return dberrors.NewValidation("log.level", c.Log.Level, err.Error())
	}
	format, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return dberrors.NewValidation("log.format", c.Log.Format, err.Error())
	}
	logging.InitLogger(level, format)
	return nil
}
