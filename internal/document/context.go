package document

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
)

// FrameContext is the surface a command works against: one target frame of
// an image plus image-wide frame operations. The target is resolved by ID
// on every call so that it follows the frame through reorders.
type FrameContext struct {
	img     *Image
	frameID uuid.UUID
}

// NewFrameContext binds img and the frame with the given ID.
func NewFrameContext(img *Image, frameID uuid.UUID) *FrameContext {
	return &FrameContext{img: img, frameID: frameID}
}

// Image returns the image.
func (c *FrameContext) Image() *Image { return c.img }

// TargetFrame returns the frame commands draw on.
func (c *FrameContext) TargetFrame() *Frame {
	f, ok := c.img.FrameByID(c.frameID)
	if !ok {
		panic(fmt.Sprintf("document: target frame %s no longer exists", c.frameID))
	}
	return f
}

// GetDC returns the target frame's bitmap.
func (c *FrameContext) GetDC() *raster.Bitmap { return c.TargetFrame().Bitmap() }

// SetBitmap replaces the target frame's bitmap.
func (c *FrameContext) SetBitmap(bmp *raster.Bitmap) { c.TargetFrame().SetBitmap(bmp) }

// GetRasterSelection returns the target frame's selection.
func (c *FrameContext) GetRasterSelection() *selection.RasterSelection {
	return c.TargetFrame().RasterSelection()
}

// GetFrame returns the frame at index.
func (c *FrameContext) GetFrame(index int) *Frame { return c.img.Frame(index) }

// FrameCount returns the number of frames.
func (c *FrameContext) FrameCount() int { return c.img.FrameCount() }

// AddFrame inserts f at index.
func (c *FrameContext) AddFrame(f *Frame, index int) { c.img.AddFrame(f, index) }

// RemoveFrame removes the frame at index.
func (c *FrameContext) RemoveFrame(index int) *Frame { return c.img.RemoveFrame(index) }

// ReorderFrame moves a frame.
func (c *FrameContext) ReorderFrame(from, to int) { c.img.ReorderFrame(from, to) }

// AddObject adds obj to the target frame at stacking index z.
func (c *FrameContext) AddObject(obj *Object, z int) { c.TargetFrame().AddObject(obj, z) }

// RemoveObject removes obj from the target frame, returning its index.
func (c *FrameContext) RemoveObject(obj *Object) int { return c.TargetFrame().RemoveObject(obj) }

// SetObjectZ restacks obj in the target frame.
func (c *FrameContext) SetObjectZ(obj *Object, z int) { c.TargetFrame().SetObjectZ(obj, z) }

// GetObjectZ returns the stacking index of obj in the target frame.
func (c *FrameContext) GetObjectZ(obj *Object) int { return c.TargetFrame().ObjectZ(obj) }
