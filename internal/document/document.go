// Package document holds the image model the editing commands operate on:
// an Image made of frames, each with a bitmap, a stack of objects and its
// own raster selection.
//
// Frames and objects carry stable UUIDs so that recorded undo entries keep
// pointing at the right target after frames are reordered.
package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
)

// Object is a vector object layered above a frame's bitmap.
type Object struct {
	ID   uuid.UUID
	Name string
	Rect raster.IntRect
	Fill raster.Paint
}

// NewObject creates an object with a fresh ID.
func NewObject(name string, rect raster.IntRect, fill raster.Paint) *Object {
	return &Object{ID: uuid.New(), Name: name, Rect: rect, Fill: fill}
}

// Frame is one image of a possibly animated document.
type Frame struct {
	ID    uuid.UUID
	Delay time.Duration

	bitmap    *raster.Bitmap
	objects   []*Object
	selection *selection.RasterSelection
}

// NewFrame creates a frame showing bmp with an empty selection.
func NewFrame(bmp *raster.Bitmap, opts selection.Options) *Frame {
	return &Frame{
		ID:        uuid.New(),
		bitmap:    bmp,
		selection: selection.NewRasterSelection(opts),
	}
}

// Bitmap returns the frame's pixels.
func (f *Frame) Bitmap() *raster.Bitmap { return f.bitmap }

// SetBitmap replaces the frame's pixels.
func (f *Frame) SetBitmap(bmp *raster.Bitmap) { f.bitmap = bmp }

// RasterSelection returns the frame's raster selection.
func (f *Frame) RasterSelection() *selection.RasterSelection { return f.selection }

// Objects returns the objects bottom to top.
func (f *Frame) Objects() []*Object {
	out := make([]*Object, len(f.objects))
	copy(out, f.objects)
	return out
}

// ObjectZ returns the stacking index of obj, or -1 if it is not in the frame.
func (f *Frame) ObjectZ(obj *Object) int {
	for i, o := range f.objects {
		if o == obj {
			return i
		}
	}
	return -1
}

// AddObject inserts obj at stacking index z, clamped to the valid range.
func (f *Frame) AddObject(obj *Object, z int) {
	z = clamp(z, 0, len(f.objects))
	f.objects = append(f.objects, nil)
	copy(f.objects[z+1:], f.objects[z:])
	f.objects[z] = obj
}

// RemoveObject takes obj out of the frame and returns its former index,
// or -1 if it was not present.
func (f *Frame) RemoveObject(obj *Object) int {
	z := f.ObjectZ(obj)
	if z < 0 {
		return -1
	}
	f.objects = append(f.objects[:z], f.objects[z+1:]...)
	return z
}

// SetObjectZ moves obj to stacking index z.
func (f *Frame) SetObjectZ(obj *Object, z int) {
	if f.RemoveObject(obj) < 0 {
		panic(fmt.Sprintf("document: object %s not in frame", obj.ID))
	}
	f.AddObject(obj, z)
}

// Image is an ordered list of frames.
type Image struct {
	frames []*Frame
}

// NewImage creates an image from one or more frames.
func NewImage(frames ...*Frame) *Image {
	if len(frames) == 0 {
		panic("document: image needs at least one frame")
	}
	return &Image{frames: append([]*Frame(nil), frames...)}
}

// FrameCount returns the number of frames.
func (img *Image) FrameCount() int { return len(img.frames) }

// Frame returns the frame at index i.
func (img *Image) Frame(i int) *Frame { return img.frames[i] }

// Frames returns the frames in order.
func (img *Image) Frames() []*Frame {
	return append([]*Frame(nil), img.frames...)
}

// IndexOf returns the index of the frame with the given ID, or -1.
func (img *Image) IndexOf(id uuid.UUID) int {
	for i, f := range img.frames {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// FrameByID looks up a frame by ID.
func (img *Image) FrameByID(id uuid.UUID) (*Frame, bool) {
	i := img.IndexOf(id)
	if i < 0 {
		return nil, false
	}
	return img.frames[i], true
}

// AddFrame inserts f at index, clamped to the valid range.
func (img *Image) AddFrame(f *Frame, index int) {
	index = clamp(index, 0, len(img.frames))
	img.frames = append(img.frames, nil)
	copy(img.frames[index+1:], img.frames[index:])
	img.frames[index] = f
}

// RemoveFrame removes and returns the frame at index. The last frame can
// not be removed.
func (img *Image) RemoveFrame(index int) *Frame {
	if len(img.frames) == 1 {
		panic("document: removing the only frame")
	}
	f := img.frames[index]
	img.frames = append(img.frames[:index], img.frames[index+1:]...)
	return f
}

// ReorderFrame moves the frame at from so that it ends up at index to.
func (img *Image) ReorderFrame(from, to int) {
	f := img.frames[from]
	img.frames = append(img.frames[:from], img.frames[from+1:]...)
	img.AddFrame(f, to)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
