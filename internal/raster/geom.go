package raster

import (
	"fmt"
	"image"
)

// IntPoint is a pixel position in image coordinates.
type IntPoint struct {
	X int
	Y int
}

// Pt is shorthand for IntPoint{X: x, Y: y}.
func Pt(x, y int) IntPoint {
	return IntPoint{X: x, Y: y}
}

// Add returns p translated by d.
func (p IntPoint) Add(d IntPoint) IntPoint {
	return IntPoint{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the offset from o to p.
func (p IntPoint) Sub(o IntPoint) IntPoint {
	return IntPoint{X: p.X - o.X, Y: p.Y - o.Y}
}

// Point converts to an image.Point.
func (p IntPoint) Point() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// String returns "(x,y)".
func (p IntPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// IntRect is an axis-aligned rectangle given by its top-left corner and size.
// A rectangle with a non-positive width or height is empty.
type IntRect struct {
	X int
	Y int
	W int
	H int
}

// Rect is shorthand for IntRect{X: x, Y: y, W: w, H: h}.
func Rect(x, y, w, h int) IntRect {
	return IntRect{X: x, Y: y, W: w, H: h}
}

// RectFromPoints returns the rectangle spanned by two drag points.
// The points may be given in any order; the result covers [min, max).
func RectFromPoints(a, b IntPoint) IntRect {
	x0, x1 := a.X, b.X
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 := a.Y, b.Y
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return IntRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// FromRectangle converts an image.Rectangle.
func FromRectangle(r image.Rectangle) IntRect {
	r = r.Canon()
	return IntRect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Rectangle converts to an image.Rectangle.
func (r IntRect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Empty reports whether the rectangle covers no pixels.
func (r IntRect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// TopLeft returns the top-left corner.
func (r IntRect) TopLeft() IntPoint {
	return IntPoint{X: r.X, Y: r.Y}
}

// Size returns the width and height as a point.
func (r IntRect) Size() IntPoint {
	return IntPoint{X: r.W, Y: r.H}
}

// Contains reports whether p lies inside the rectangle.
func (r IntRect) Contains(p IntPoint) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersect returns the overlap of two rectangles. The result is the zero
// rectangle when they do not overlap.
func (r IntRect) Intersect(o IntRect) IntRect {
	if r.Empty() || o.Empty() {
		return IntRect{}
	}
	return FromRectangle(r.Rectangle().Intersect(o.Rectangle()))
}

// Union returns the smallest rectangle covering both. Empty operands are
// ignored.
func (r IntRect) Union(o IntRect) IntRect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return FromRectangle(r.Rectangle().Union(o.Rectangle()))
}

// Translate returns r moved by d.
func (r IntRect) Translate(d IntPoint) IntRect {
	return IntRect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// MoveTo returns r with its top-left corner at p.
func (r IntRect) MoveTo(p IntPoint) IntRect {
	return IntRect{X: p.X, Y: p.Y, W: r.W, H: r.H}
}

// String returns "(x,y,w,h)".
func (r IntRect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.W, r.H)
}
