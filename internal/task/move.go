package task

import (
	"github.com/dshills/pixstorm/internal/command"
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
)

// Move drags the selection. A rectangle selection is floated on the first
// movement; Ctrl makes the float a copy. Shift constrains the drag to one
// axis.
type Move struct {
	base

	copying  bool
	drag     dragTracker
	origin   raster.IntPoint
	detached bool
}

// NewMove creates a move task. copying selects a copy instead of a cut.
func NewMove(ctx command.Context, opts Options, copying bool) *Move {
	return &Move{base: base{ctx: ctx, opts: opts}, copying: copying}
}

// Name returns "move".
func (t *Move) Name() string { return "move" }

// LeftDown anchors the drag and takes the working copy of the selection.
func (t *Move) LeftDown(p PosInfo) Result {
	sel := t.committed()
	if sel.Empty() {
		return Cancel
	}
	t.mirage = sel.Clone()
	t.origin = sel.GetRect().TopLeft()
	t.drag.start(p.Pos)
	return Draw
}

// Motion moves the mirage. The first movement detaches the selection
// pixels, which is pushed as its own command.
func (t *Move) Motion(p PosInfo) Result {
	if !t.drag.isActive() {
		return None
	}
	t.drag.update(p.Pos, p.Modifiers.HasShift(), t.opts.DragThreshold)
	d := t.drag.delta()

	res := Draw
	if !t.detached && d != (raster.IntPoint{}) {
		res = t.detach()
	}
	t.mirage.Move(t.origin.Add(d))
	return res
}

// detach turns the mirage into a floating selection at its original
// position. A rectangle is floated by a FloatSelection command, which may
// join the undo step that created the rectangle. Copying an already
// floating selection stamps it and floats a duplicate.
func (t *Move) detach() Result {
	t.detached = true
	sel := t.committed()
	old := sel.GetState()

	switch {
	case !old.Floating():
		t.mirage.BeginFloat(t.ctx.GetDC(), t.copying)
		return t.emit(command.NewFloatSelection(t.mirage.GetState(), old), Push)

	case t.copying:
		dup := selection.PastedState(old.Bitmap(), old.Rect().TopLeft())
		t.mirage.SetState(dup)
		return t.emit(command.NewCommandBunch(command.Hybrid, "Duplicate Selection", []command.Command{
			command.NewStampFloating(old, sel.GetOptions()),
			command.NewSetSelection(dup, old, "Duplicate Selection"),
		}, nil), Push)
	}
	return Draw
}

// LeftUp commits the new position. A press without movement cancels.
func (t *Move) LeftUp(PosInfo) Result {
	if !t.drag.isActive() {
		return Cancel
	}
	t.drag.end()

	sel := t.committed()
	if !t.detached || t.mirage.GetState().Equal(sel.GetState()) {
		return Cancel
	}
	return t.emit(command.NewSetSelection(t.mirage.GetState(), sel.GetState(), "Move Selection"), Commit)
}

// Preempt commits the drag where it currently is.
func (t *Move) Preempt(p PosInfo) Result {
	return t.LeftUp(p)
}
