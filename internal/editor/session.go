package editor

import (
	"fmt"
	"log/slog"

	"github.com/dshills/pixstorm/internal/command"
	"github.com/dshills/pixstorm/internal/config"
	"github.com/dshills/pixstorm/internal/document"
	"github.com/dshills/pixstorm/internal/history"
	"github.com/dshills/pixstorm/internal/logging"
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
	"github.com/dshills/pixstorm/internal/task"
)

// Session edits one image. Pointer events and menu actions go to the
// current frame; every frame shares one undo history.
type Session struct {
	img     *document.Image
	frame   *document.Frame
	index   int
	history *history.History
	runner  *task.Runner
	logger  *slog.Logger

	// Configuration
	maxUndoEntries int
	taskOpts       task.Options
	selOpts        selection.Options
}

// New creates a session editing a one-frame image showing bmp.
func New(bmp *raster.Bitmap, opts ...Option) *Session {
	s := defaultSession()
	for _, opt := range opts {
		opt(s)
	}

	first := document.NewFrame(bmp, s.selOpts)
	s.img = document.NewImage(first)
	s.history = history.New(s.img, s.maxUndoEntries)
	s.logger = logging.For("editor")
	s.bindFrame(first)
	return s
}

// bindFrame makes f the current frame with a fresh task runner.
func (s *Session) bindFrame(f *document.Frame) {
	s.frame = f
	s.index = s.img.IndexOf(f.ID)
	s.runner = task.NewRunner(s.history, s.history.Context(f.ID), f.ID, s.taskOpts)
}

// syncFrame rebinds to a neighbouring frame when history has taken the
// current frame out of the image.
func (s *Session) syncFrame() {
	if i := s.img.IndexOf(s.frame.ID); i >= 0 {
		s.index = i
		return
	}
	i := min(s.index, s.img.FrameCount()-1)
	s.logger.Debug("current frame removed", "frame", s.frame.ID, "now", i)
	s.bindFrame(s.img.Frame(i))
}

// Image returns the document.
func (s *Session) Image() *document.Image { return s.img }

// Frame returns the current frame.
func (s *Session) Frame() *document.Frame { return s.frame }

// FrameIndex returns the position of the current frame.
func (s *Session) FrameIndex() int { return s.index }

// Bitmap returns the current frame pixels. A floating selection is not
// part of them until it is stamped.
func (s *Session) Bitmap() *raster.Bitmap { return s.frame.Bitmap() }

// Selection returns the committed selection.
func (s *Session) Selection() *selection.RasterSelection { return s.frame.RasterSelection() }

// History returns the undo history.
func (s *Session) History() *history.History { return s.history }

// Runner returns the task runner of the current frame. Switching frames
// replaces it.
func (s *Session) Runner() *task.Runner { return s.runner }

// VisibleSelection returns the selection to render: the working copy of a
// gesture in progress, or the committed selection.
func (s *Session) VisibleSelection() *selection.RasterSelection {
	if m := s.runner.Mirage(); m != nil {
		return m
	}
	return s.Selection()
}

// Pointer events.

// LeftDown forwards a primary button press.
func (s *Session) LeftDown(p task.PosInfo) task.Result { return s.runner.LeftDown(p) }

// Motion forwards pointer movement.
func (s *Session) Motion(p task.PosInfo) task.Result { return s.runner.Motion(p) }

// LeftUp forwards a primary button release.
func (s *Session) LeftUp(p task.PosInfo) task.Result { return s.runner.LeftUp(p) }

// RightDown forwards a secondary button press.
func (s *Session) RightDown(p task.PosInfo) task.Result { return s.runner.RightDown(p) }

// apply finishes any gesture and applies cmd as a fresh user action.
func (s *Session) apply(cmd command.Command) {
	s.runner.Preempt()
	s.history.Apply(cmd, true, s.frame.ID)
}

// Undo reverts the most recent undo entry.
func (s *Session) Undo() error {
	s.runner.Preempt()
	if !s.history.Undo() {
		return ErrNothingToUndo
	}
	s.syncFrame()
	return nil
}

// Redo re-applies the most recently undone entry.
func (s *Session) Redo() error {
	s.runner.Preempt()
	if !s.history.Redo() {
		return ErrNothingToRedo
	}
	s.syncFrame()
	return nil
}

// ApplyDWIM swaps the last command for its alternate result.
func (s *Session) ApplyDWIM() error {
	s.runner.Preempt()
	if !s.history.CanUndo() {
		return ErrNothingToUndo
	}
	if !s.history.ApplyDWIM() {
		return ErrNoAlternate
	}
	s.syncFrame()
	return nil
}

// OpenBundle starts grouping the following actions into one undo entry.
func (s *Session) OpenBundle() {
	s.runner.Preempt()
	s.history.OpenUndoBundle()
}

// CloseBundle ends the current group and names it.
func (s *Session) CloseBundle(name string) {
	s.runner.Preempt()
	s.history.CloseUndoBundle(name)
}

// Transaction runs fn as one undo entry named name. If fn fails everything
// it applied is reverted and the error returned. Undo and redo inside fn
// end the group early.
func (s *Session) Transaction(name string, fn func() error) error {
	s.runner.Preempt()
	err := s.history.Transaction(name, fn)
	s.syncFrame()
	return err
}

// Checkpoint marks the current position in the undo history.
func (s *Session) Checkpoint() history.Checkpoint {
	s.runner.Preempt()
	return s.history.CreateCheckpoint()
}

// Rewind undoes everything applied after cp.
func (s *Session) Rewind(cp history.Checkpoint) {
	s.runner.Preempt()
	s.history.UndoToCheckpoint(cp)
	s.syncFrame()
}

// Replay redoes undone entries until cp is reached again.
func (s *Session) Replay(cp history.Checkpoint) {
	s.runner.Preempt()
	s.history.RedoToCheckpoint(cp)
	s.syncFrame()
}

// SelectionDefaults returns the stamping options new selections should
// start with.
func (s *Session) SelectionDefaults() selection.Options { return s.selOpts }

// MarkSaved records the current state as saved.
func (s *Session) MarkSaved() { s.history.MarkSaved() }

// Dirty reports whether the image differs from the saved state.
func (s *Session) Dirty() bool { return s.history.Dirty() }

// dropFloating returns the commands that stamp a floating selection, and
// the selection state left after them.
func (s *Session) dropFloating() ([]command.Command, selection.State) {
	sel := s.Selection()
	st := sel.GetState()
	if !st.Floating() {
		return nil, st
	}
	return []command.Command{command.Deselect(sel)}, selection.EmptyState()
}

// SelectAll selects the whole frame.
func (s *Session) SelectAll() {
	s.runner.Preempt()
	cmds, prior := s.dropFloating()
	all := selection.RectangleState(s.Bitmap().Bounds())
	if prior.Equal(all) {
		return
	}
	cmds = append(cmds, command.NewSetSelection(all, prior, "Select All"))
	s.apply(command.PerhapsBunch(command.Hybrid, "Select All", cmds))
}

// Deselect clears the selection, stamping a floating one. It reports
// whether anything was selected.
func (s *Session) Deselect() bool {
	s.runner.Preempt()
	sel := s.Selection()
	if sel.Empty() {
		return false
	}
	s.apply(command.Deselect(sel))
	return true
}

// Paste floats a copy of bmp at topLeft. A floating selection is stamped
// first.
func (s *Session) Paste(bmp *raster.Bitmap, topLeft raster.IntPoint) {
	s.runner.Preempt()
	cmds, prior := s.dropFloating()
	cmds = append(cmds, command.NewSetSelection(selection.PastedState(bmp.Clone(), topLeft), prior, "Paste"))
	s.apply(command.PerhapsBunch(command.Hybrid, "Paste", cmds))
}

// Nudge moves the selection by d. A rectangle selection is floated first.
// Consecutive nudges share one undo entry.
func (s *Session) Nudge(d raster.IntPoint) error {
	s.runner.Preempt()
	sel := s.Selection()
	if sel.Empty() {
		return ErrNoSelection
	}
	if d == (raster.IntPoint{}) {
		return nil
	}

	work := sel.Clone()
	prior := work.GetState()
	var cmds []command.Command
	if !prior.Floating() {
		work.BeginFloat(s.Bitmap(), false)
		cmds = append(cmds, command.NewFloatSelection(work.GetState(), prior))
		prior = work.GetState()
	}
	work.Offset(d)
	cmds = append(cmds, command.NewSetSelection(work.GetState(), prior, "Move Selection"))

	s.apply(command.NewCommandBunch(command.Selection, "Move Selection", cmds, command.NewMergeSelectionNudge(s.frame.ID)))
	return nil
}

// Delete removes the selected pixels, leaving the background paint.
func (s *Session) Delete() error {
	s.runner.Preempt()
	sel := s.Selection()
	st := sel.GetState()
	clearCmd := command.NewSetSelection(selection.EmptyState(), st, "Delete Selection")

	switch {
	case st.Empty():
		return ErrNoSelection
	case st.Copying():
		s.apply(clearCmd)
	case st.Floating():
		fill := command.NewFillRect(st.OldRect(), sel.GetOptions().Bg)
		s.apply(command.PerhapsBunch(command.Hybrid, "Delete Selection", []command.Command{fill, clearCmd}))
	default:
		s.apply(command.PerhapsBunch(command.Hybrid, "Delete Selection", []command.Command{
			command.NewEraseSelection(sel),
			clearCmd,
		}))
	}
	return nil
}

// Crop trims the canvas to the selected rectangle. Its alternate result
// fills with transparency instead of the background paint.
func (s *Session) Crop() error {
	s.runner.Preempt()
	sel := s.Selection()
	if sel.Empty() {
		return ErrNoSelection
	}
	r := sel.GetRect()
	s.Flatten()
	return s.Resize("Crop", r.Intersect(s.Bitmap().Bounds()))
}

// Resize changes the canvas to rect, given in current image coordinates.
func (s *Session) Resize(name string, rect raster.IntRect) error {
	if rect.Empty() {
		return fmt.Errorf("resize to %v: %w", rect, ErrInvalidSize)
	}
	bg := s.Selection().GetOptions().Bg
	s.apply(command.NewResize(name, rect, bg, raster.Transparent))
	return nil
}

// Rescale scales the frame to w×h. Its alternate result uses the other
// interpolation quality.
func (s *Session) Rescale(w, h int, quality raster.Quality) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("rescale to %dx%d: %w", w, h, ErrInvalidSize)
	}
	alt := raster.QualityBilinear
	if quality == raster.QualityBilinear {
		alt = raster.QualityNearest
	}
	s.apply(command.NewRescale(w, h, quality, alt))
	return nil
}

// SetSelectionOptions changes the stamping options as an undoable step.
func (s *Session) SetSelectionOptions(opts selection.Options) {
	s.runner.Preempt()
	old := s.Selection().GetOptions()
	if old == opts {
		return
	}
	s.apply(command.NewSetSelectionOptions(opts, old, "Selection Options"))
}

// Flatten stamps a floating selection into the frame. It reports whether
// there was one.
func (s *Session) Flatten() bool {
	s.runner.Preempt()
	if !s.Selection().Floating() {
		return false
	}
	s.apply(command.Deselect(s.Selection()))
	return true
}

// ApplySettings adopts reloaded settings. Limits and gesture options take
// effect at once; the stamping options of the current selection are left
// to SetSelectionOptions.
func (s *Session) ApplySettings(cfg config.Settings) {
	s.maxUndoEntries = cfg.History.MaxEntries
	s.history.SetMaxEntries(cfg.History.MaxEntries)

	s.taskOpts.DragThreshold = cfg.Selection.DragThreshold
	s.runner.SetOptions(s.taskOpts)

	s.selOpts = cfg.SelectionOptions()
	s.logger.Info("settings applied", "max_entries", cfg.History.MaxEntries, "drag_threshold", cfg.Selection.DragThreshold)
}

// PollSettings applies the newest settings delivered by w, if any, without
// blocking. It reports whether settings were applied.
func (s *Session) PollSettings(w *config.Watcher) bool {
	select {
	case cfg, ok := <-w.Updates():
		if !ok {
			return false
		}
		s.ApplySettings(cfg)
		return true
	default:
		return false
	}
}
