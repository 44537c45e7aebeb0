package history

// OpenUndoBundle starts collecting Apply calls into one undo entry.
// Nested calls are ignored.
func (h *History) OpenUndoBundle() {
	if h.bundleOpen {
		return
	}
	h.closeTop()
	h.bundleOpen = true
	h.bundle = nil
}

// CloseUndoBundle finishes the open bundle and names its entry. A bundle
// nothing was applied to adds no entry.
func (h *History) CloseUndoBundle(name string) {
	if !h.bundleOpen {
		return
	}
	h.endBundle(name)
	h.notify()
}

// endBundle closes any open bundle, naming it if name is set.
func (h *History) endBundle(name string) {
	if !h.bundleOpen {
		return
	}
	if h.bundle != nil {
		if name != "" {
			h.bundle.SetName(name)
		}
		h.bundle.Close()
		h.logger.Debug("bundle closed", "name", h.bundle.Name(), "commands", h.bundle.Len())
	}
	h.bundleOpen = false
	h.bundle = nil
}

// CancelUndoBundle closes the open bundle and reverts everything applied
// inside it. The reverted commands are discarded rather than kept for redo.
func (h *History) CancelUndoBundle() {
	if !h.bundleOpen {
		return
	}
	b := h.bundle
	h.bundleOpen = false
	h.bundle = nil
	if b == nil {
		return
	}
	e := h.top()
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	b.Close()
	b.Undo(h.Context(e.frameID))
	h.logger.Debug("bundle cancelled", "commands", b.Len())
	h.notify()
}

// IsBundling reports whether a bundle is open.
func (h *History) IsBundling() bool { return h.bundleOpen }

// BundleScope closes a bundle when End is called, typically with defer:
//
//	defer h.BundleScope("Crop").End()
type BundleScope struct {
	history *History
	name    string
	active  bool
}

// BundleScope opens a bundle and returns the scope closing it.
func (h *History) BundleScope(name string) *BundleScope {
	h.OpenUndoBundle()
	return &BundleScope{history: h, name: name, active: true}
}

// End closes the bundle. Only the first call has an effect.
func (s *BundleScope) End() {
	if s.active {
		s.history.CloseUndoBundle(s.name)
		s.active = false
	}
}

// Cancel reverts and discards the bundle.
func (s *BundleScope) Cancel() {
	if s.active {
		s.history.CancelUndoBundle()
		s.active = false
	}
}

// Transaction runs fn inside a bundle named name. If fn returns an error
// the bundle is cancelled and the error returned.
func (h *History) Transaction(name string, fn func() error) error {
	scope := h.BundleScope(name)
	if err := fn(); err != nil {
		scope.Cancel()
		return err
	}
	scope.End()
	return nil
}
