package selection

import (
	"fmt"

	"github.com/dshills/pixstorm/internal/raster"
)

// Kind identifies which variant a State holds.
type Kind uint8

const (
	// KindEmpty means no region is selected.
	KindEmpty Kind = iota
	// KindRectangle is a plain rectangle over the image.
	KindRectangle
	// KindFloating is a captured bitmap detached from the image.
	KindFloating
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindRectangle:
		return "rectangle"
	case KindFloating:
		return "floating"
	default:
		return "unknown"
	}
}

// State is a selection value. The zero value is the empty selection.
type State struct {
	kind    Kind
	rect    raster.IntRect
	oldRect raster.IntRect
	bmp     *raster.Bitmap
	copy    bool
}

// EmptyState returns the empty selection.
func EmptyState() State {
	return State{}
}

// RectangleState returns a plain rectangle selection. An empty rectangle
// yields the empty selection.
func RectangleState(r raster.IntRect) State {
	if r.Empty() {
		return State{}
	}
	return State{kind: KindRectangle, rect: r}
}

// FloatingState returns a floating selection of bmp at rect. oldRect marks
// the source region and is ignored when copied is set.
func FloatingState(bmp *raster.Bitmap, rect, oldRect raster.IntRect, copied bool) State {
	require(bmp != nil, "floating state without bitmap")
	if copied {
		oldRect = raster.IntRect{}
	}
	return State{kind: KindFloating, bmp: bmp, rect: rect, oldRect: oldRect, copy: copied}
}

// PastedState returns a floating copy of bmp with its top-left at topLeft.
func PastedState(bmp *raster.Bitmap, topLeft raster.IntPoint) State {
	require(bmp != nil, "pasted state without bitmap")
	r := raster.Rect(topLeft.X, topLeft.Y, bmp.Width(), bmp.Height())
	return FloatingState(bmp, r, raster.IntRect{}, true)
}

// Kind returns the variant.
func (s State) Kind() Kind { return s.kind }

// Empty reports whether nothing is selected.
func (s State) Empty() bool { return s.kind == KindEmpty }

// Floating reports whether the selection carries its own pixels.
func (s State) Floating() bool { return s.kind == KindFloating }

// Copying reports whether a floating selection is a copy that leaves no
// hole when stamped.
func (s State) Copying() bool { return s.kind == KindFloating && s.copy }

// Rect returns the current position and size.
func (s State) Rect() raster.IntRect { return s.rect }

// OldRect returns the source region of a moved floating selection.
func (s State) OldRect() raster.IntRect { return s.oldRect }

// Bitmap returns the floating pixels, nil unless floating.
func (s State) Bitmap() *raster.Bitmap { return s.bmp }

// AffectedRect returns every image pixel a stamp of this state can touch.
func (s State) AffectedRect() raster.IntRect {
	if !s.Floating() {
		return raster.IntRect{}
	}
	if s.copy {
		return s.rect
	}
	return s.rect.Union(s.oldRect)
}

// Equal reports whether two states are the same selection, comparing
// floating pixels by value.
func (s State) Equal(o State) bool {
	if s.kind != o.kind || s.rect != o.rect {
		return false
	}
	if s.kind != KindFloating {
		return true
	}
	return s.copy == o.copy && s.oldRect == o.oldRect && s.bmp.Equal(o.bmp)
}

// String describes the state for logs and test failures.
func (s State) String() string {
	switch s.kind {
	case KindRectangle:
		return fmt.Sprintf("Rectangle{rect=%v}", s.rect)
	case KindFloating:
		if s.copy {
			return fmt.Sprintf("Floating{rect=%v, copy}", s.rect)
		}
		return fmt.Sprintf("Floating{rect=%v, oldRect=%v}", s.rect, s.oldRect)
	default:
		return "Empty"
	}
}

// moved returns a copy of s with its top-left at p.
func (s State) moved(p raster.IntPoint) State {
	s.rect = s.rect.MoveTo(p)
	return s
}

func require(cond bool, msg string) {
	if !cond {
		panic("selection: " + msg)
	}
}
