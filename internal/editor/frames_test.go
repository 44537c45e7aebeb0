package editor

import (
	"errors"
	"testing"

	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/task"
)

func TestAddFrameAndUndo(t *testing.T) {
	s := newTestSession()
	first := s.Frame()

	f, err := s.AddFrame(99)
	if err != nil {
		t.Fatal(err)
	}
	if s.Image().FrameCount() != 2 || s.Frame() != f || s.FrameIndex() != 1 {
		t.Fatalf("new frame not current: index %d", s.FrameIndex())
	}
	if f.Bitmap().Bounds() != first.Bitmap().Bounds() {
		t.Errorf("new frame bounds = %v", f.Bitmap().Bounds())
	}

	// Edits on the new frame share the history with the first frame.
	selectRect(s, raster.Pt(1, 1), raster.Pt(4, 4))
	if !first.RasterSelection().Empty() {
		t.Error("selection leaked to the first frame")
	}

	for range 2 {
		if err := s.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	if s.Image().FrameCount() != 1 || s.Frame() != first {
		t.Errorf("undo did not remove the frame and return to the first")
	}
	if err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if s.Image().FrameCount() != 2 || s.Frame() != first {
		t.Error("redo should restore the frame without switching to it")
	}
}

func TestDuplicateFrame(t *testing.T) {
	s := newTestSession()
	if _, err := s.DuplicateFrame(); err != nil {
		t.Fatal(err)
	}
	if s.FrameIndex() != 1 || !isRed(s, 3, 3) {
		t.Error("duplicate should be current and carry the pixels")
	}
	s.Bitmap().Fill(raster.Rect(3, 3, 1, 1), raster.White)
	if !red.Matches(s.Image().Frame(0).Bitmap().At(raster.Pt(3, 3))) {
		t.Error("duplicate shares pixels with the original")
	}
}

func TestRemoveFrame(t *testing.T) {
	s := newTestSession()
	first := s.Frame()
	second, _ := s.AddFrame(1)

	if err := s.RemoveFrame(1); err != nil {
		t.Fatal(err)
	}
	if s.Frame() != first || s.Image().FrameCount() != 1 {
		t.Fatal("removing the current frame should switch to its neighbour")
	}
	if err := s.RemoveFrame(0); !errors.Is(err, ErrLastFrame) {
		t.Errorf("RemoveFrame(last) = %v", err)
	}
	if err := s.RemoveFrame(3); !errors.Is(err, ErrNoFrame) {
		t.Errorf("RemoveFrame(3) = %v", err)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.Image().Frame(1) != second {
		t.Error("undo did not restore the removed frame")
	}
}

func TestReorderFrame(t *testing.T) {
	s := newTestSession()
	first := s.Frame()
	if _, err := s.AddFrame(1); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectFrame(0); err != nil {
		t.Fatal(err)
	}

	if err := s.ReorderFrame(0, 10); err != nil {
		t.Fatal(err)
	}
	if s.Frame() != first || s.FrameIndex() != 1 {
		t.Errorf("current frame index = %d after reorder", s.FrameIndex())
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.FrameIndex() != 0 {
		t.Errorf("current frame index = %d after undo", s.FrameIndex())
	}
	if err := s.ReorderFrame(-1, 0); !errors.Is(err, ErrNoFrame) {
		t.Errorf("ReorderFrame(-1) = %v", err)
	}
}

func TestFrameSwitchInsideBundle(t *testing.T) {
	s := newTestSession()
	if _, err := s.AddFrame(1); err != nil {
		t.Fatal(err)
	}
	s.OpenBundle()
	s.SelectAll()
	if err := s.SelectFrame(0); !errors.Is(err, ErrBundleOpen) {
		t.Errorf("SelectFrame() = %v", err)
	}
	if _, err := s.AddFrame(0); !errors.Is(err, ErrBundleOpen) {
		t.Errorf("AddFrame() = %v", err)
	}
	if err := s.RemoveFrame(1); !errors.Is(err, ErrBundleOpen) {
		t.Errorf("RemoveFrame(current) = %v", err)
	}
	s.CloseBundle("Select")
}

func TestSelectFrameFinishesGesture(t *testing.T) {
	s := newTestSession()
	first := s.Frame()
	if _, err := s.AddFrame(1); err != nil {
		t.Fatal(err)
	}
	s.LeftDown(task.At(2, 2))
	s.Motion(task.At(6, 6))
	if err := s.SelectFrame(0); err != nil {
		t.Fatal(err)
	}
	if s.Image().Frame(1).RasterSelection().GetRect() != raster.Rect(2, 2, 4, 4) {
		t.Error("gesture on the left frame was not committed")
	}
	if s.Frame() != first || s.Runner().Busy() {
		t.Error("runner not rebound to the selected frame")
	}
}
