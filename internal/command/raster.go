package command

import (
	"github.com/dshills/pixstorm/internal/document"
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
)

// FillRect paints a rectangle of the frame bitmap.
type FillRect struct {
	name     string
	rect     raster.IntRect
	paint    raster.Paint
	snapshot regionSnapshot
}

// NewFillRect creates a fill of rect with paint.
func NewFillRect(rect raster.IntRect, paint raster.Paint) *FillRect {
	return &FillRect{name: "Fill Rectangle", rect: rect, paint: paint}
}

// NewEraseSelection fills the selected rectangle with the selection's
// background paint.
func NewEraseSelection(sel *selection.RasterSelection) *FillRect {
	return &FillRect{name: "Delete Selection", rect: sel.GetRect(), paint: sel.GetOptions().Bg}
}

// Do fills the rectangle.
func (c *FillRect) Do(ctx Context) {
	dc := ctx.GetDC()
	c.snapshot = takeSnapshot(dc, c.rect)
	dc.Fill(c.rect, c.paint)
}

// Undo restores the covered pixels.
func (c *FillRect) Undo(ctx Context) {
	c.snapshot.restore(ctx.GetDC())
}

// Name returns the command name.
func (c *FillRect) Name() string { return c.name }

// Type returns Raster.
func (c *FillRect) Type() Type { return Raster }

// DrawObject rasterizes an object onto the frame bitmap.
type DrawObject struct {
	obj      *document.Object
	snapshot regionSnapshot
}

// NewDrawObject creates the command.
func NewDrawObject(obj *document.Object) *DrawObject {
	return &DrawObject{obj: obj}
}

// Do paints the object's area with its fill.
func (c *DrawObject) Do(ctx Context) {
	dc := ctx.GetDC()
	c.snapshot = takeSnapshot(dc, c.obj.Rect)
	dc.Fill(c.obj.Rect, c.obj.Fill)
}

// Undo restores the covered pixels.
func (c *DrawObject) Undo(ctx Context) {
	c.snapshot.restore(ctx.GetDC())
}

// Name returns "Draw <object>".
func (c *DrawObject) Name() string { return "Draw " + c.obj.Name }

// Type returns Raster.
func (c *DrawObject) Type() Type { return Raster }
