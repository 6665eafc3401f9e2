package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// captureLogOutput reinitializes the logger against a buffer, runs f and
// restores the default logger.
func captureLogOutput(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	InitLoggerTo(&buf, level, format)
	defer InitLogger(LevelWarn, FormatText)
	f()
	return buf.String()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelWarn, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Errorf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestInitLoggerLevels(t *testing.T) {
	out := captureLogOutput(LevelWarn, FormatText, func() {
		Info("hidden")
		Warn("shown")
	})
	if strings.Contains(out, "hidden") {
		t.Errorf("info message leaked at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	out := captureLogOutput(LevelDebug, FormatJSON, func() {
		Debug("dbg", "k", "v")
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if entry["msg"] != "dbg" || entry["k"] != "v" {
		t.Errorf("unexpected entry: %v", entry)
	}
	ts, _ := entry["time"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("time %q is not RFC3339: %v", ts, err)
	}
}

func TestRunIDContext(t *testing.T) {
	id := NewRunID()
	if len(id) != 36 {
		t.Fatalf("NewRunID() = %q, want a UUID", id)
	}
	ctx := WithRunID(context.Background(), id)
	if got := GetRunID(ctx); got != id {
		t.Errorf("GetRunID() = %q, want %q", got, id)
	}
	if GetRunID(context.Background()) != "" {
		t.Error("GetRunID() on empty context should be empty")
	}

	out := captureLogOutput(LevelInfo, FormatJSON, func() {
		InfoContext(ctx, "with run")
	})
	if !strings.Contains(out, id) {
		t.Errorf("run_id missing from log: %s", out)
	}
}

func TestDomainHelpers(t *testing.T) {
	ctx := context.Background()
	out := captureLogOutput(LevelInfo, FormatJSON, func() {
		DatasetLoaded(ctx, "assets/bible.json", 66, 12*time.Millisecond)
		DatasetError(ctx, "bad.json", errors.New("unexpected EOF"))
		StorageError(ctx, "write", "@dailybread:likedVerses", errors.New("disk full"))
	})

	for _, want := range []string{
		`"msg":"dataset_loaded"`, `"books":66`, `"duration_ms":12`,
		`"msg":"dataset_error"`, `"error":"unexpected EOF"`,
		`"msg":"storage_error"`, `"operation":"write"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
