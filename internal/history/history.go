package history

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/pixstorm/internal/command"
	"github.com/dshills/pixstorm/internal/document"
	"github.com/dshills/pixstorm/internal/logging"
)

// DefaultMaxEntries is used when no positive limit is configured.
const DefaultMaxEntries = 1000

// entry wraps an applied command with the frame it targets.
type entry struct {
	id        uuid.UUID
	cmd       command.Command
	frameID   uuid.UUID
	timestamp time.Time
}

// ChangeCallback is called after the undo or redo list changes.
type ChangeCallback func(h *History)

// History manages the undo and redo lists of one image.
//
// History is not safe for concurrent use; all calls come from the editor's
// event loop.
type History struct {
	img *document.Image

	undoStack []*entry
	redoStack []*entry

	// Bundle state. bundle stays nil until the first Apply inside the
	// bundle so that an empty bundle leaves no trace.
	bundleOpen bool
	bundle     *command.Bunch

	maxEntries int
	savedID    uuid.UUID

	callbacks []ChangeCallback
	logger    *slog.Logger
}

// New creates a history for img keeping at most maxEntries undo steps.
func New(img *document.Image, maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{img: img, maxEntries: maxEntries, logger: logging.For("history")}
}

// Image returns the image the history edits.
func (h *History) Image() *document.Image { return h.img }

// Context returns the command context for the frame with the given ID.
func (h *History) Context(frameID uuid.UUID) *document.FrameContext {
	return document.NewFrameContext(h.img, frameID)
}

// OnChange registers fn to be called after every change.
func (h *History) OnChange(fn ChangeCallback) {
	h.callbacks = append(h.callbacks, fn)
}

func (h *History) notify() {
	for _, cb := range h.callbacks {
		if cb != nil {
			cb(h)
		}
	}
}

func (h *History) top() *entry {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// closeTop stops the top entry from merging anything further.
func (h *History) closeTop() {
	if e := h.top(); e != nil {
		if b, ok := e.cmd.(*command.Bunch); ok {
			b.Close()
		}
	}
}

// Apply runs cmd against the frame with the given ID and records it.
//
// Inside an open bundle cmd joins the bundle. Otherwise it is offered to
// the top entry's merge condition and only becomes a new entry if that is
// refused. If clearRedo is set the redo list is dropped. Apply reports
// whether a new undo entry was created.
func (h *History) Apply(cmd command.Command, clearRedo bool, frameID uuid.UUID) bool {
	created := false
	switch {
	case h.bundleOpen:
		created = h.applyToBundle(cmd, frameID)
	case h.merge(cmd, frameID):
		h.logger.Debug("merged", "command", cmd.Name(), "into", h.top().cmd.Name())
	default:
		h.closeTop()
		h.push(&entry{id: uuid.New(), cmd: cmd, frameID: frameID, timestamp: time.Now()})
		created = true
	}

	cmd.Do(h.Context(frameID))
	h.logger.Debug("apply", "command", cmd.Name(), "type", cmd.Type(), "new_entry", created)

	if clearRedo {
		h.redoStack = nil
	}
	h.notify()
	return created
}

// merge offers cmd to the top entry. Only entries for the same frame are
// considered.
func (h *History) merge(cmd command.Command, frameID uuid.UUID) bool {
	e := h.top()
	if e == nil || e.frameID != frameID {
		return false
	}
	b, ok := e.cmd.(*command.Bunch)
	if !ok || !b.Open() {
		return false
	}
	merged := b.TryAppend(cmd)
	if !merged {
		if other, ok := cmd.(*command.Bunch); ok {
			merged = b.TryMerge(other)
		}
	}
	if merged && command.ModifiesState(cmd) {
		// The entry now stands for different document content.
		e.id = uuid.New()
	}
	return merged
}

func (h *History) applyToBundle(cmd command.Command, frameID uuid.UUID) bool {
	// A bunch's own merge condition must not replace the bundle's.
	if b, ok := cmd.(*command.Bunch); ok {
		b.Close()
	}
	if h.bundle == nil {
		h.bundle = command.NewCommandBunch(cmd.Type(), "", []command.Command{cmd}, command.NewAppendAlways())
		h.closeTop()
		h.push(&entry{id: uuid.New(), cmd: h.bundle, frameID: frameID, timestamp: time.Now()})
		return true
	}
	e := h.top()
	if e.frameID != frameID {
		panic(fmt.Sprintf("history: bundle for frame %s received a command for frame %s", e.frameID, frameID))
	}
	h.bundle.TryAppend(cmd)
	if command.ModifiesState(cmd) {
		e.id = uuid.New()
	}
	return false
}

// push adds an entry to the undo list and enforces the size limit.
func (h *History) push(e *entry) {
	h.undoStack = append(h.undoStack, e)
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverses the top undo entry and moves it to the redo list. It
// returns false if there is nothing to undo. An open bundle is closed
// first.
func (h *History) Undo() bool {
	h.endBundle("")
	e := h.top()
	if e == nil {
		return false
	}
	h.closeTop()
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	e.cmd.Undo(h.Context(e.frameID))
	h.redoStack = append(h.redoStack, e)
	h.logger.Debug("undo", "command", e.cmd.Name())
	h.notify()
	return true
}

// Redo re-applies the top redo entry and moves it back to the undo list.
// It returns false if there is nothing to redo.
func (h *History) Redo() bool {
	h.endBundle("")
	if len(h.redoStack) == 0 {
		return false
	}
	h.closeTop()
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	e.cmd.Do(h.Context(e.frameID))
	h.push(e)
	h.logger.Debug("redo", "command", e.cmd.Name())
	h.notify()
	return true
}

// ApplyDWIM replaces the top undo entry with its alternate result: the
// entry is undone, the alternate is applied in its place and the redo list
// is left alone. It returns false if the top command has no alternate.
func (h *History) ApplyDWIM() bool {
	h.endBundle("")
	e := h.top()
	if e == nil {
		return false
	}
	alt, ok := e.cmd.(command.Alternative)
	if !ok {
		return false
	}

	ctx := h.Context(e.frameID)
	e.cmd.Undo(ctx)
	next := alt.Alternate()
	next.Do(ctx)
	e.cmd = next
	e.id = uuid.New()

	h.logger.Debug("dwim", "command", next.Name())
	h.notify()
	return true
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int { return len(h.undoStack) }

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int { return len(h.redoStack) }

// Clear drops both lists and any open bundle. The saved marker is kept, so
// a document with unsaved edits stays dirty.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.bundleOpen = false
	h.bundle = nil
	h.notify()
}

// SetMaxEntries changes the undo limit, dropping the oldest entries if the
// list is already longer.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	h.maxEntries = n
	if len(h.undoStack) > n {
		h.undoStack = h.undoStack[len(h.undoStack)-n:]
	}
}

// MaxEntries returns the undo limit.
func (h *History) MaxEntries() int { return h.maxEntries }

// LastModifyingID returns the ID of the top-most undo entry that changed
// the document, or uuid.Nil if there is none.
func (h *History) LastModifyingID() uuid.UUID {
	for i := len(h.undoStack) - 1; i >= 0; i-- {
		if command.ModifiesState(h.undoStack[i].cmd) {
			return h.undoStack[i].id
		}
	}
	return uuid.Nil
}

// MarkSaved records the current state as saved.
func (h *History) MarkSaved() {
	h.savedID = h.LastModifyingID()
}

// Dirty reports whether the document differs from the last saved state.
func (h *History) Dirty() bool {
	return h.LastModifyingID() != h.savedID
}
