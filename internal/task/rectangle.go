package task

import (
	"github.com/dshills/pixstorm/internal/command"
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
)

// Rectangle drags out a new rectangular selection from an anchor point.
type Rectangle struct {
	base

	anchor raster.IntPoint
	active bool

	// stamp lets the committed rectangle join the stamp of a floating
	// selection. It must be closed when no rectangle follows.
	stamp *command.AppendOnce
}

// NewRectangle creates a rectangle task.
func NewRectangle(ctx command.Context, opts Options) *Rectangle {
	return &Rectangle{base: base{ctx: ctx, opts: opts}}
}

// Name returns "rectangle".
func (t *Rectangle) Name() string { return "rectangle" }

// LeftDown anchors the rectangle. A floating selection is stamped and
// dropped first; the new rectangle joins that undo step when it is
// committed.
func (t *Rectangle) LeftDown(p PosInfo) Result {
	t.anchor = p.Pos
	t.active = true

	sel := t.committed()
	t.mirage = selection.NewRasterSelection(sel.GetOptions())
	if sel.Floating() {
		t.stamp = command.NewAppendOnce(command.IsSelectionCommand, true)
		return t.emit(command.StampAndDeselect(sel, t.stamp), Push)
	}
	return Draw
}

// Motion grows the mirage to the pointer.
func (t *Rectangle) Motion(p PosInfo) Result {
	if !t.active {
		return None
	}
	t.mirage.SetRect(t.rectTo(p.Pos))
	return Draw
}

// LeftUp commits the rectangle. An empty rectangle deselects, or cancels if
// nothing was selected.
func (t *Rectangle) LeftUp(p PosInfo) Result {
	if !t.active {
		return t.cancel()
	}
	t.active = false

	r := t.rectTo(p.Pos)
	sel := t.committed()
	old := sel.GetState()
	if r.Empty() {
		if old.Empty() {
			return t.cancel()
		}
		return t.emit(command.Deselect(sel), Commit)
	}

	return t.emit(command.NewCommandBunch(command.Selection, "Select Rectangle", []command.Command{
		command.NewSetSelection(selection.RectangleState(r), old, "Select Rectangle"),
	}, command.NewAppendOnce(command.IsFloatSelection, false)), Commit)
}

// cancel ends the gesture without a rectangle. A pushed stamp stays its
// own undo step.
func (t *Rectangle) cancel() Result {
	if t.stamp != nil {
		t.stamp.Close()
		t.stamp = nil
	}
	return Cancel
}

// Preempt commits the rectangle at the last pointer position.
func (t *Rectangle) Preempt(p PosInfo) Result {
	return t.LeftUp(p)
}

// rectTo spans anchor and q, clipped to the image.
func (t *Rectangle) rectTo(q raster.IntPoint) raster.IntRect {
	return raster.RectFromPoints(t.anchor, q).Intersect(t.ctx.GetDC().Bounds())
}
