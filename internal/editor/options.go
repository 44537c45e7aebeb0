package editor

import (
	"github.com/dshills/pixstorm/internal/config"
	"github.com/dshills/pixstorm/internal/history"
	"github.com/dshills/pixstorm/internal/selection"
	"github.com/dshills/pixstorm/internal/task"
)

// Option configures a Session during creation.
type Option func(*Session)

// WithMaxUndoEntries sets the maximum number of undo entries.
func WithMaxUndoEntries(max int) Option {
	return func(s *Session) {
		if max > 0 {
			s.maxUndoEntries = max
		}
	}
}

// WithDragThreshold sets the distance a constrained drag travels before it
// locks to an axis.
func WithDragThreshold(px int) Option {
	return func(s *Session) {
		if px >= 0 {
			s.taskOpts.DragThreshold = px
		}
	}
}

// WithSelectionOptions sets the stamping options of the initial selection.
func WithSelectionOptions(opts selection.Options) Option {
	return func(s *Session) {
		s.selOpts = opts
	}
}

// WithSettings applies loaded settings.
func WithSettings(cfg config.Settings) Option {
	return func(s *Session) {
		WithMaxUndoEntries(cfg.History.MaxEntries)(s)
		WithDragThreshold(cfg.Selection.DragThreshold)(s)
		WithSelectionOptions(cfg.SelectionOptions())(s)
	}
}

func defaultSession() *Session {
	return &Session{
		maxUndoEntries: history.DefaultMaxEntries,
		taskOpts:       task.DefaultOptions(),
		selOpts:        selection.DefaultOptions(),
	}
}
