package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/pixstorm/internal/command"
)

// EntryInfo provides read-only info about an undo or redo entry.
// Used for displaying the history to users.
type EntryInfo struct {
	ID        uuid.UUID
	Name      string       // Human-readable name
	Type      command.Type // What the entry changes
	FrameID   uuid.UUID    // Frame the entry was applied to
	Timestamp time.Time    // When the entry was created
}

func (e *entry) info() EntryInfo {
	return EntryInfo{
		ID:        e.id,
		Name:      e.cmd.Name(),
		Type:      e.cmd.Type(),
		FrameID:   e.frameID,
		Timestamp: e.timestamp,
	}
}

// UndoInfo returns the undo entries, oldest first.
func (h *History) UndoInfo() []EntryInfo {
	return infos(h.undoStack)
}

// RedoInfo returns the redo entries, next to redo last.
func (h *History) RedoInfo() []EntryInfo {
	return infos(h.redoStack)
}

func infos(stack []*entry) []EntryInfo {
	out := make([]EntryInfo, len(stack))
	for i, e := range stack {
		out[i] = e.info()
	}
	return out
}

// UndoNames returns the names of the undo entries, most recent first, as
// an undo menu lists them.
func (h *History) UndoNames() []string {
	return names(h.undoStack)
}

// RedoNames returns the names of the redo entries, next to redo first.
func (h *History) RedoNames() []string {
	return names(h.redoStack)
}

func names(stack []*entry) []string {
	out := make([]string, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, stack[i].cmd.Name())
	}
	return out
}

// PeekUndo returns the entry Undo would reverse.
func (h *History) PeekUndo() (EntryInfo, bool) {
	if e := h.top(); e != nil {
		return e.info(), true
	}
	return EntryInfo{}, false
}

// PeekRedo returns the entry Redo would re-apply.
func (h *History) PeekRedo() (EntryInfo, bool) {
	if len(h.redoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}
