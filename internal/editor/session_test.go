package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/pixstorm/internal/config"
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
	"github.com/dshills/pixstorm/internal/task"
)

var red = raster.RGBA(255, 0, 0, 255)

// newTestSession returns a session over a 20×20 white image with a red
// block at (2,2,8,6).
func newTestSession(opts ...Option) *Session {
	bmp := raster.NewBitmap(20, 20, raster.White)
	bmp.Fill(raster.Rect(2, 2, 8, 6), red)
	return New(bmp, opts...)
}

func isRed(s *Session, x, y int) bool {
	return red.Matches(s.Bitmap().At(raster.Pt(x, y)))
}

func selectRect(s *Session, a, b raster.IntPoint) {
	s.LeftDown(task.At(a.X, a.Y))
	s.Motion(task.At(b.X, b.Y))
	s.LeftUp(task.At(b.X, b.Y))
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession()
	if s.History().MaxEntries() != 1000 {
		t.Errorf("MaxEntries() = %d", s.History().MaxEntries())
	}
	if s.Runner().Options().DragThreshold != 4 {
		t.Errorf("DragThreshold = %d", s.Runner().Options().DragThreshold)
	}
	if !s.Selection().Empty() || s.Dirty() {
		t.Error("new session should be clean with no selection")
	}
	if s.Image().FrameCount() != 1 {
		t.Errorf("FrameCount() = %d", s.Image().FrameCount())
	}
}

func TestWithSettings(t *testing.T) {
	cfg := config.Default()
	cfg.History.MaxEntries = 12
	cfg.Selection.DragThreshold = 9
	cfg.Selection.Background = "#000000"
	cfg.Selection.Mask = true

	s := newTestSession(WithSettings(cfg))
	if s.History().MaxEntries() != 12 || s.Runner().Options().DragThreshold != 9 {
		t.Errorf("limits not applied: %d, %d", s.History().MaxEntries(), s.Runner().Options().DragThreshold)
	}
	want := selection.Options{Mask: true, Bg: raster.Black}
	if diff := cmp.Diff(want, s.Selection().GetOptions()); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoRedoErrors(t *testing.T) {
	s := newTestSession()
	if err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() = %v", err)
	}
	if err := s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() = %v", err)
	}
	if err := s.ApplyDWIM(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("ApplyDWIM() = %v", err)
	}
}

func TestVisibleSelection(t *testing.T) {
	s := newTestSession()
	if s.VisibleSelection() != s.Selection() {
		t.Fatal("idle session should show the committed selection")
	}

	s.LeftDown(task.At(2, 2))
	s.Motion(task.At(6, 6))
	vis := s.VisibleSelection()
	if vis == s.Selection() || vis.GetRect() != raster.Rect(2, 2, 4, 4) {
		t.Errorf("during drag VisibleSelection() = %v", vis.GetState())
	}
	s.LeftUp(task.At(6, 6))
	if s.VisibleSelection() != s.Selection() {
		t.Error("after the drag the committed selection should show")
	}
}

func TestSelectAllAndDelete(t *testing.T) {
	s := newTestSession()
	before := s.Bitmap().Clone()

	s.SelectAll()
	if s.Selection().GetRect() != raster.Rect(0, 0, 20, 20) {
		t.Fatalf("SelectAll rect = %v", s.Selection().GetRect())
	}
	if err := s.Delete(); err != nil {
		t.Fatal(err)
	}
	if isRed(s, 3, 3) || !s.Selection().Empty() {
		t.Error("Delete did not erase")
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if !s.Bitmap().Equal(before) || s.Selection().Empty() {
		t.Error("undo of Delete did not restore pixels and selection")
	}
	if err := s.Delete(); err != nil {
		t.Fatal(err)
	}
	s.Deselect()
	if err := s.Delete(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Delete() without selection = %v", err)
	}
}

func TestDeleteFloating(t *testing.T) {
	s := newTestSession()
	selectRect(s, raster.Pt(2, 2), raster.Pt(10, 8))
	if err := s.Nudge(raster.Pt(10, 10)); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(); err != nil {
		t.Fatal(err)
	}
	if isRed(s, 3, 3) || isRed(s, 13, 13) {
		t.Error("deleting a floating selection should leave background at both places")
	}
}

func TestNudgeMerges(t *testing.T) {
	s := newTestSession()
	selectRect(s, raster.Pt(2, 2), raster.Pt(10, 8))
	count := s.History().UndoCount()

	for range 3 {
		if err := s.Nudge(raster.Pt(1, 0)); err != nil {
			t.Fatal(err)
		}
	}
	sel := s.Selection()
	if !sel.Floating() || sel.GetRect() != raster.Rect(5, 2, 8, 6) {
		t.Fatalf("after nudges: %v", sel.GetState())
	}
	if s.History().UndoCount() != count+1 {
		t.Errorf("UndoCount() = %d, want %d", s.History().UndoCount(), count+1)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if !sel.GetState().Equal(selection.RectangleState(raster.Rect(2, 2, 8, 6))) {
		t.Errorf("undo left %v", sel.GetState())
	}
}

func TestNudgeWithoutSelection(t *testing.T) {
	s := newTestSession()
	if err := s.Nudge(raster.Pt(1, 1)); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Nudge() = %v", err)
	}
}

func TestPasteAndFlatten(t *testing.T) {
	s := newTestSession()
	patch := raster.NewBitmap(3, 3, red)

	s.Paste(patch, raster.Pt(15, 15))
	if !s.Selection().Copying() {
		t.Fatalf("paste state = %v", s.Selection().GetState())
	}
	if isRed(s, 16, 16) {
		t.Error("pasted pixels should float until stamped")
	}
	if !s.Flatten() {
		t.Fatal("Flatten() = false")
	}
	if !isRed(s, 16, 16) {
		t.Error("pasted pixels not stamped")
	}
	if s.Flatten() {
		t.Error("second Flatten() should find nothing")
	}
}

func TestCropAndDWIM(t *testing.T) {
	s := newTestSession()
	selectRect(s, raster.Pt(2, 2), raster.Pt(10, 8))

	if err := s.Crop(); err != nil {
		t.Fatal(err)
	}
	if s.Bitmap().Bounds() != raster.Rect(0, 0, 8, 6) {
		t.Fatalf("bounds = %v", s.Bitmap().Bounds())
	}
	if !isRed(s, 0, 0) || !s.Selection().Empty() {
		t.Error("crop content or selection wrong")
	}
	if err := s.ApplyDWIM(); err != nil {
		t.Errorf("ApplyDWIM() = %v", err)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.Bitmap().Bounds() != raster.Rect(0, 0, 20, 20) {
		t.Errorf("undo bounds = %v", s.Bitmap().Bounds())
	}
}

func TestApplyDWIMWithoutAlternate(t *testing.T) {
	s := newTestSession()
	s.SelectAll()
	if err := s.ApplyDWIM(); !errors.Is(err, ErrNoAlternate) {
		t.Errorf("ApplyDWIM() = %v", err)
	}
}

func TestInvalidSizes(t *testing.T) {
	s := newTestSession()
	if err := s.Rescale(0, 4, raster.QualityNearest); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Rescale() = %v", err)
	}
	if err := s.Resize("Resize", raster.Rect(0, 0, 0, 3)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize() = %v", err)
	}
	if err := s.Crop(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Crop() = %v", err)
	}
}

func TestRescale(t *testing.T) {
	s := newTestSession()
	if err := s.Rescale(40, 10, raster.QualityNearest); err != nil {
		t.Fatal(err)
	}
	if s.Bitmap().Bounds() != raster.Rect(0, 0, 40, 10) {
		t.Errorf("bounds = %v", s.Bitmap().Bounds())
	}
}

func TestMenuActionFinishesGesture(t *testing.T) {
	s := newTestSession()
	s.LeftDown(task.At(2, 2))
	s.Motion(task.At(6, 6))

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.Runner().Busy() {
		t.Error("gesture still running")
	}
	if !s.Selection().Empty() {
		t.Errorf("undo should revert the finished gesture, got %v", s.Selection().GetState())
	}
	if err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if s.Selection().GetRect() != raster.Rect(2, 2, 4, 4) {
		t.Errorf("redo rect = %v", s.Selection().GetRect())
	}
}

func TestBundle(t *testing.T) {
	s := newTestSession()
	s.OpenBundle()
	s.SelectAll()
	if err := s.Delete(); err != nil {
		t.Fatal(err)
	}
	s.CloseBundle("Clear Image")

	if diff := cmp.Diff([]string{"Clear Image"}, s.History().UndoNames()); diff != "" {
		t.Errorf("UndoNames() mismatch (-want +got):\n%s", diff)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if !isRed(s, 3, 3) || !s.Selection().Empty() {
		t.Error("bundle undo incomplete")
	}
}

func TestDirtyAndSave(t *testing.T) {
	s := newTestSession()
	s.SelectAll()
	if s.Dirty() {
		t.Error("selecting should not make the session dirty")
	}
	if err := s.Delete(); err != nil {
		t.Fatal(err)
	}
	if !s.Dirty() {
		t.Error("edit should make the session dirty")
	}
	s.MarkSaved()
	if s.Dirty() {
		t.Error("MarkSaved should clear dirty")
	}
	_ = s.Undo()
	if !s.Dirty() {
		t.Error("undo past the save point should be dirty")
	}
}

func TestSetSelectionOptions(t *testing.T) {
	s := newTestSession()
	opts := selection.Options{Mask: true, Bg: raster.Black}
	s.SetSelectionOptions(opts)
	if s.Selection().GetOptions() != opts {
		t.Fatalf("options = %+v", s.Selection().GetOptions())
	}
	s.SetSelectionOptions(opts)
	if s.History().UndoCount() != 1 {
		t.Errorf("unchanged options should not add history, UndoCount() = %d", s.History().UndoCount())
	}
	_ = s.Undo()
	if s.Selection().GetOptions() != selection.DefaultOptions() {
		t.Error("undo did not restore options")
	}
}

func TestApplySettings(t *testing.T) {
	s := newTestSession()
	cfg := config.Default()
	cfg.History.MaxEntries = 2
	cfg.Selection.DragThreshold = 0
	cfg.Selection.Background = "#000000"

	s.ApplySettings(cfg)
	if s.History().MaxEntries() != 2 || s.Runner().Options().DragThreshold != 0 {
		t.Error("settings not applied")
	}
	if s.SelectionDefaults().Bg != raster.Black {
		t.Errorf("SelectionDefaults().Bg = %v", s.SelectionDefaults().Bg)
	}
}

func TestPollSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pixstorm.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := config.NewWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	s := newTestSession()
	if s.PollSettings(w) {
		t.Fatal("no settings pending yet")
	}
	if err := os.WriteFile(path, []byte("[history]\nmax_entries = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !s.PollSettings(w) {
		if time.Now().After(deadline) {
			t.Fatal("settings never arrived")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if s.History().MaxEntries() != 3 {
		t.Errorf("MaxEntries() = %d, want 3", s.History().MaxEntries())
	}
}

func TestSelectAllAfterDroppingPaste(t *testing.T) {
	s := newTestSession()
	s.Paste(raster.NewBitmap(2, 2, red), raster.Pt(14, 14))
	s.LeftDown(task.At(0, 19))
	s.LeftUp(task.At(0, 19))
	s.SelectAll()

	if diff := cmp.Diff([]string{"Select All", "Deselect", "Paste"}, s.History().UndoNames()); diff != "" {
		t.Errorf("UndoNames() mismatch (-want +got):\n%s", diff)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if !s.Selection().Empty() {
		t.Errorf("undo of Select All left %v", s.Selection().GetState())
	}
	if !isRed(s, 14, 14) {
		t.Error("undo of Select All reverted the stamp")
	}
}
