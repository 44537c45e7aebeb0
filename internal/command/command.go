package command

import (
	"github.com/dshills/pixstorm/internal/document"
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
)

// Type classifies what a command changes.
type Type uint8

const (
	// Raster commands change frame pixels.
	Raster Type = iota
	// Object commands change frame objects.
	Object
	// Hybrid commands change more than one kind of thing.
	Hybrid
	// Selection commands change the raster selection only.
	Selection
	// Frame commands change the frame list.
	Frame
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case Raster:
		return "raster"
	case Object:
		return "object"
	case Hybrid:
		return "hybrid"
	case Selection:
		return "selection"
	case Frame:
		return "frame"
	default:
		return "unknown"
	}
}

// Context is what a command operates on: one target frame plus the frame
// list of its image.
type Context interface {
	// GetDC returns the target frame's bitmap.
	GetDC() *raster.Bitmap
	// SetBitmap replaces the target frame's bitmap.
	SetBitmap(bmp *raster.Bitmap)
	// GetRasterSelection returns the target frame's selection.
	GetRasterSelection() *selection.RasterSelection

	GetFrame(index int) *document.Frame
	FrameCount() int
	AddFrame(f *document.Frame, index int)
	RemoveFrame(index int) *document.Frame
	ReorderFrame(from, to int)

	AddObject(obj *document.Object, z int)
	RemoveObject(obj *document.Object) int
	SetObjectZ(obj *document.Object, z int)
	GetObjectZ(obj *document.Object) int
}

var _ Context = (*document.FrameContext)(nil)

// Command is a reversible unit of edit work.
//
// Do must either complete or leave the document in an unusable state; there
// is no partial rollback. Undo must restore exactly what Do changed.
type Command interface {
	// Do applies the command. It is called again on redo.
	Do(ctx Context)

	// Undo reverses the most recent Do.
	Undo(ctx Context)

	// Name returns the human-readable name shown in undo menus.
	Name() string

	// Type classifies the change.
	Type() Type
}

// Alternative is implemented by commands that carry a precomputed alternate
// result.
type Alternative interface {
	Command

	// Alternate returns a command producing the alternate result. Its own
	// Alternate yields the original result again.
	Alternate() Command
}

// ModifiesState reports whether cmd changes the document content, as
// opposed to only the selection.
func ModifiesState(cmd Command) bool {
	return cmd.Type() != Selection
}

// IsSelectionCommand reports whether cmd only changes the selection.
func IsSelectionCommand(cmd Command) bool {
	return cmd.Type() == Selection
}

// regionSnapshot keeps the pixels under a rectangle so that a raster
// command can put them back.
type regionSnapshot struct {
	rect   raster.IntRect
	pixels *raster.Bitmap
}

func takeSnapshot(bmp *raster.Bitmap, r raster.IntRect) regionSnapshot {
	r = r.Intersect(bmp.Bounds())
	if r.Empty() {
		return regionSnapshot{}
	}
	return regionSnapshot{rect: r, pixels: bmp.SubBitmap(r)}
}

func (s regionSnapshot) restore(bmp *raster.Bitmap) {
	if s.pixels == nil {
		return
	}
	bmp.Blit(s.pixels, s.rect.TopLeft())
}
