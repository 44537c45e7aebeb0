package editor

import (
	"fmt"

	"github.com/dshills/pixstorm/internal/command"
	"github.com/dshills/pixstorm/internal/document"
	"github.com/dshills/pixstorm/internal/raster"
)

// AddFrame inserts a blank frame the size of the current one at index and
// makes it current. An index past either end inserts at that end.
func (s *Session) AddFrame(index int) (*document.Frame, error) {
	if s.history.IsBundling() {
		return nil, ErrBundleOpen
	}
	s.runner.Preempt()
	cur := s.Bitmap()
	f := document.NewFrame(raster.NewBitmap(cur.Width(), cur.Height(), s.selOpts.Bg), s.selOpts)
	s.apply(command.NewAddFrame(f, index))
	s.bindFrame(f)
	return f, nil
}

// DuplicateFrame inserts a copy of the current frame's pixels after it and
// makes the copy current.
func (s *Session) DuplicateFrame() (*document.Frame, error) {
	if s.history.IsBundling() {
		return nil, ErrBundleOpen
	}
	s.runner.Preempt()
	f := document.NewFrame(s.Bitmap().Clone(), s.Selection().GetOptions())
	f.Delay = s.frame.Delay
	s.apply(command.NewAddFrame(f, s.index+1))
	s.bindFrame(f)
	return f, nil
}

// RemoveFrame removes the frame at index. Removing the current frame makes
// its neighbour current, which is refused while a bundle is open.
func (s *Session) RemoveFrame(index int) error {
	if err := s.checkFrameIndex(index); err != nil {
		return err
	}
	if s.img.FrameCount() == 1 {
		return ErrLastFrame
	}
	if index == s.index && s.history.IsBundling() {
		return ErrBundleOpen
	}
	s.runner.Preempt()
	if index == s.index {
		next := index + 1
		if next == s.img.FrameCount() {
			next = index - 1
		}
		s.bindFrame(s.img.Frame(next))
	}
	s.apply(command.NewRemoveFrame(index))
	s.syncFrame()
	return nil
}

// ReorderFrame moves the frame at from to index to.
func (s *Session) ReorderFrame(from, to int) error {
	if err := s.checkFrameIndex(from); err != nil {
		return err
	}
	s.apply(command.NewReorderFrame(from, to))
	s.syncFrame()
	return nil
}

// SelectFrame makes the frame at index current. A bundle belongs to one
// frame, so frames cannot be switched while it is open.
func (s *Session) SelectFrame(index int) error {
	if err := s.checkFrameIndex(index); err != nil {
		return err
	}
	if s.history.IsBundling() {
		return ErrBundleOpen
	}
	s.runner.Preempt()
	s.bindFrame(s.img.Frame(index))
	return nil
}

func (s *Session) checkFrameIndex(i int) error {
	if i < 0 || i >= s.img.FrameCount() {
		return fmt.Errorf("frame %d of %d: %w", i, s.img.FrameCount(), ErrNoFrame)
	}
	return nil
}
