package command

import (
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
)

// Resize changes the canvas to rect, given in current image coordinates.
// Area outside the old canvas is filled with bg. The alternate result uses
// altBg instead.
type Resize struct {
	name  string
	rect  raster.IntRect
	bg    raster.Paint
	altBg raster.Paint

	oldBmp *raster.Bitmap
	oldSel selection.State
}

// NewResize creates a canvas resize.
func NewResize(name string, rect raster.IntRect, bg, altBg raster.Paint) *Resize {
	return &Resize{name: name, rect: rect, bg: bg, altBg: altBg}
}

// Do swaps in the resized bitmap. The selection no longer maps onto the
// new canvas and is cleared.
func (c *Resize) Do(ctx Context) {
	c.oldBmp = ctx.GetDC()
	sel := ctx.GetRasterSelection()
	c.oldSel = sel.GetState()
	ctx.SetBitmap(c.oldBmp.Resized(c.rect, c.bg))
	sel.Deselect()
}

// Undo restores the previous bitmap and selection.
func (c *Resize) Undo(ctx Context) {
	ctx.SetBitmap(c.oldBmp)
	ctx.GetRasterSelection().SetState(c.oldSel)
}

// Name returns the command name.
func (c *Resize) Name() string { return c.name }

// Type returns Raster.
func (c *Resize) Type() Type { return Raster }

// Rect returns the target canvas rectangle.
func (c *Resize) Rect() raster.IntRect { return c.rect }

// Background returns the paint used for grown areas.
func (c *Resize) Background() raster.Paint { return c.bg }

// Alternate returns the same resize filling with the alternate paint.
func (c *Resize) Alternate() Command {
	return NewResize(c.name, c.rect, c.altBg, c.bg)
}

// Rescale scales the frame bitmap to a new size. The alternate result uses
// the other interpolation quality.
type Rescale struct {
	w, h       int
	quality    raster.Quality
	altQuality raster.Quality

	oldBmp *raster.Bitmap
	oldSel selection.State
}

// NewRescale creates a rescale to w×h.
func NewRescale(w, h int, quality, altQuality raster.Quality) *Rescale {
	return &Rescale{w: w, h: h, quality: quality, altQuality: altQuality}
}

// Do swaps in the scaled bitmap and clears the selection.
func (c *Rescale) Do(ctx Context) {
	c.oldBmp = ctx.GetDC()
	sel := ctx.GetRasterSelection()
	c.oldSel = sel.GetState()
	ctx.SetBitmap(c.oldBmp.Scaled(c.w, c.h, c.quality))
	sel.Deselect()
}

// Undo restores the previous bitmap and selection.
func (c *Rescale) Undo(ctx Context) {
	ctx.SetBitmap(c.oldBmp)
	ctx.GetRasterSelection().SetState(c.oldSel)
}

// Name returns "Rescale".
func (c *Rescale) Name() string { return "Rescale" }

// Type returns Raster.
func (c *Rescale) Type() Type { return Raster }

// Quality returns the interpolation used by Do.
func (c *Rescale) Quality() raster.Quality { return c.quality }

// Alternate returns the same rescale with the other quality.
func (c *Rescale) Alternate() Command {
	return NewRescale(c.w, c.h, c.altQuality, c.quality)
}
