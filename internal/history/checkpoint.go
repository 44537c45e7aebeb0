package history

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *History) CreateCheckpoint() Checkpoint {
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes every entry added since cp.
func (h *History) UndoToCheckpoint(cp Checkpoint) {
	for len(h.undoStack) > cp.undoDepth && h.Undo() {
	}
}

// RedoToCheckpoint redoes entries until the undo depth reaches cp again.
// It stops early if the redo list runs out.
func (h *History) RedoToCheckpoint(cp Checkpoint) {
	for len(h.undoStack) < cp.undoDepth && h.Redo() {
	}
}
