package config

import (
	"errors"

	"github.com/dshills/pixstorm/internal/logging"
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
)

// Default setting values.
const (
	DefaultMaxEntries    = 1000
	DefaultDragThreshold = 4
	DefaultBackground    = "#ffffff"
	DefaultLogLevel      = "info"
)

// Settings holds every configurable value.
type Settings struct {
	History   HistorySettings   `toml:"history"`
	Selection SelectionSettings `toml:"selection"`
	Logging   LoggingSettings   `toml:"logging"`
}

// HistorySettings configures the undo history.
type HistorySettings struct {
	// MaxEntries is the number of undo steps kept.
	MaxEntries int `toml:"max_entries"`
}

// SelectionSettings configures the selection tool.
type SelectionSettings struct {
	// DragThreshold is the distance in pixels a Shift-drag travels before
	// it locks to one axis.
	DragThreshold int `toml:"drag_threshold"`
	// Background is the paint left behind by moved pixels, as "#rrggbb" or
	// "#rrggbbaa".
	Background string `toml:"background"`
	// Mask makes background-coloured pixels transparent when stamping.
	Mask bool `toml:"mask"`
	// Alpha blends floating pixels instead of replacing.
	Alpha bool `toml:"alpha"`
}

// LoggingSettings configures logging.
type LoggingSettings struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		History: HistorySettings{MaxEntries: DefaultMaxEntries},
		Selection: SelectionSettings{
			DragThreshold: DefaultDragThreshold,
			Background:    DefaultBackground,
		},
		Logging: LoggingSettings{Level: DefaultLogLevel},
	}
}

// Validate checks every setting and returns all problems found, joined.
func (s Settings) Validate() error {
	var errs []error
	if s.History.MaxEntries <= 0 {
		errs = append(errs, &ValidationError{Field: "history.max_entries", Value: s.History.MaxEntries, Message: "must be positive"})
	}
	if s.Selection.DragThreshold < 0 {
		errs = append(errs, &ValidationError{Field: "selection.drag_threshold", Value: s.Selection.DragThreshold, Message: "must not be negative"})
	}
	if _, err := raster.ParsePaint(s.Selection.Background); err != nil {
		errs = append(errs, &ValidationError{Field: "selection.background", Value: s.Selection.Background, Message: "not a colour"})
	}
	if !logging.Valid(s.Logging.Level) {
		errs = append(errs, &ValidationError{Field: "logging.level", Value: s.Logging.Level, Message: "unknown level"})
	}
	return errors.Join(errs...)
}

// SelectionOptions returns the stamping options described by the
// selection settings. An unparsable background falls back to white;
// Validate reports it.
func (s Settings) SelectionOptions() selection.Options {
	bg, err := raster.ParsePaint(s.Selection.Background)
	if err != nil {
		bg = raster.White
	}
	return selection.Options{Mask: s.Selection.Mask, Bg: bg, Alpha: s.Selection.Alpha}
}

// LogLevel returns the configured log level.
func (s Settings) LogLevel() logging.Level {
	return logging.ParseLevel(s.Logging.Level)
}
