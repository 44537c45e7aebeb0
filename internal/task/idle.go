package task

import (
	"github.com/dshills/pixstorm/internal/command"
)

// Idle waits for the start of a gesture.
type Idle struct {
	base
}

// NewIdle creates the idle task for the frame behind ctx.
func NewIdle(ctx command.Context, opts Options) *Idle {
	return &Idle{base: base{ctx: ctx, opts: opts}}
}

// Name returns "idle".
func (t *Idle) Name() string { return "idle" }

// LeftDown starts a move when the press is inside the selection (a copy
// with Ctrl held) and a new rectangle otherwise.
func (t *Idle) LeftDown(p PosInfo) Result {
	if t.committed().Contains(p.Pos) {
		t.next = NewMove(t.ctx, t.opts, p.Modifiers.HasCtrl())
	} else {
		t.next = NewRectangle(t.ctx, t.opts)
	}
	return Change
}

// RightDown handles the one-click secondary actions:
//
//   - Ctrl picks the background paint from the image.
//   - Inside a masked selection the mask is switched off.
//   - Outside the selection it is deselected, stamping it if floating.
func (t *Idle) RightDown(p PosInfo) Result {
	sel := t.committed()
	old := sel.GetOptions()

	switch {
	case p.Modifiers.HasCtrl():
		dc := t.ctx.GetDC()
		if !dc.Bounds().Contains(p.Pos) {
			return None
		}
		opts := old
		opts.Bg = dc.PaintAt(p.Pos)
		if opts == old {
			return None
		}
		return t.emit(command.NewSetSelectionOptions(opts, old, "Pick Background"), Commit)

	case sel.Contains(p.Pos):
		if !old.Mask {
			return None
		}
		opts := old
		opts.Mask = false
		return t.emit(command.NewSetSelectionOptions(opts, old, "Disable Mask"), Commit)

	case !sel.Empty():
		return t.emit(command.Deselect(sel), Commit)
	}
	return None
}
