package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/pixstorm/internal/logging"
	"github.com/dshills/pixstorm/internal/raster"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "pixstorm.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
[history]
max_entries = 50

[selection]
background = "#000000"
mask = true
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.History.MaxEntries = 50
	want.Selection.Background = "#000000"
	want.Selection.Mask = true
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	opts := s.SelectionOptions()
	if !opts.Mask || opts.Bg != raster.Black {
		t.Errorf("SelectionOptions() = %+v", opts)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("[history]\nmax_entires = 5\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Path != "<reader>" || !strings.Contains(pe.Message, "max_entires") {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("[history\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Line != 1 {
		t.Errorf("Line = %d, want 1", pe.Line)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		field  string
	}{
		{"max entries", func(s *Settings) { s.History.MaxEntries = 0 }, "history.max_entries"},
		{"drag threshold", func(s *Settings) { s.Selection.DragThreshold = -1 }, "selection.drag_threshold"},
		{"background", func(s *Settings) { s.Selection.Background = "teal" }, "selection.background"},
		{"level", func(s *Settings) { s.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			err := s.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() = %v, want ErrValidationFailed", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("field = %v, want %s", ve, tt.field)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PIXSTORM_MAX_UNDO", "7")
	t.Setenv("PIXSTORM_ALPHA", "yes")
	t.Setenv("PIXSTORM_LOG_LEVEL", "debug")

	path := writeFile(t, t.TempDir(), "[history]\nmax_entries = 50\n")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.History.MaxEntries != 7 {
		t.Errorf("MaxEntries = %d, want 7", s.History.MaxEntries)
	}
	if !s.Selection.Alpha {
		t.Error("Alpha not set from environment")
	}
	if s.LogLevel() != logging.LevelDebug {
		t.Errorf("LogLevel() = %v", s.LogLevel())
	}
}

func TestEnvOverrideWrongType(t *testing.T) {
	t.Setenv("PIXSTORM_MASK", "sometimes")
	_, err := Load("")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != "environment" {
		t.Errorf("error = %v, want environment ParseError", err)
	}
}

func TestSetByPath(t *testing.T) {
	m := make(map[string]any)
	setByPath(m, "a.b", 1)
	setByPath(m, "a.c", "x")
	want := map[string]any{"a": map[string]any{"b": 1, "c": "x"}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	s := Default()
	s.Selection.DragThreshold = 9
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 3, Column: 4, Message: "bad"}, "parse error in a.toml at line 3, column 4: bad"},
		{&ParseError{Path: "a.toml", Line: 3, Message: "bad"}, "parse error in a.toml at line 3: bad"},
		{&ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "[history]\nmax_entries = 10\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "[history]\nmax_entries = 20\n")

	select {
	case s := <-w.Updates():
		if s.History.MaxEntries != 20 {
			t.Errorf("MaxEntries = %d, want 20", s.History.MaxEntries)
		}
	case err := <-w.Errors():
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no update received")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := writeFile(t, t.TempDir(), "")
	w, err := NewWatcher(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if _, ok := <-w.Updates(); ok {
		t.Error("updates channel should be closed")
	}
}
