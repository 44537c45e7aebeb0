package selection

import (
	"github.com/dshills/pixstorm/internal/raster"
)

// Options control how a floating selection is stamped.
type Options struct {
	// Mask makes pixels matching Bg transparent when stamping.
	Mask bool
	// Bg fills the hole left by a moved selection and is the mask colour.
	Bg raster.Paint
	// Alpha blends the floating pixels instead of replacing.
	Alpha bool
}

// DefaultOptions returns opaque stamping with a white background.
func DefaultOptions() Options {
	return Options{Bg: raster.White}
}

// RasterSelection is the selection of one frame.
type RasterSelection struct {
	state   State
	options Options
}

// NewRasterSelection creates an empty selection with the given options.
func NewRasterSelection(opts Options) *RasterSelection {
	return &RasterSelection{options: opts}
}

// Clone returns an independent selection with the same state and options.
// The floating bitmap is shared; it is never drawn on.
func (s *RasterSelection) Clone() *RasterSelection {
	c := *s
	return &c
}

// Empty reports whether nothing is selected.
func (s *RasterSelection) Empty() bool { return s.state.Empty() }

// Floating reports whether the selection is floating.
func (s *RasterSelection) Floating() bool { return s.state.Floating() }

// Copying reports whether the floating selection is a copy.
func (s *RasterSelection) Copying() bool { return s.state.Copying() }

// GetRect returns the selected rectangle (zero if empty).
func (s *RasterSelection) GetRect() raster.IntRect { return s.state.rect }

// GetOldRect returns the source rectangle of a moved floating selection.
func (s *RasterSelection) GetOldRect() raster.IntRect { return s.state.oldRect }

// GetBitmap returns the floating pixels, or nil.
func (s *RasterSelection) GetBitmap() *raster.Bitmap { return s.state.bmp }

// Contains reports whether p is inside the selected rectangle.
func (s *RasterSelection) Contains(p raster.IntPoint) bool {
	return !s.state.Empty() && s.state.rect.Contains(p)
}

// GetState returns the current state value.
func (s *RasterSelection) GetState() State { return s.state }

// SetState replaces the state. Used when replaying undo and redo.
func (s *RasterSelection) SetState(st State) { s.state = st }

// GetOptions returns the stamping options.
func (s *RasterSelection) GetOptions() Options { return s.options }

// SetOptions replaces the stamping options.
func (s *RasterSelection) SetOptions(o Options) { s.options = o }

// SetRect selects r as a plain rectangle, dropping any floating pixels.
func (s *RasterSelection) SetRect(r raster.IntRect) {
	s.state = RectangleState(r)
}

// Deselect clears the selection, discarding any floating bitmap.
func (s *RasterSelection) Deselect() {
	s.state = State{}
}

// BeginFloat captures the pixels of src under the selected rectangle.
// Unless copied is set, the source rectangle is remembered so that stamping
// later erases it with the background.
func (s *RasterSelection) BeginFloat(src *raster.Bitmap, copied bool) {
	require(!s.state.Empty(), "BeginFloat on empty selection")
	require(!s.state.Floating(), "BeginFloat on floating selection")
	r := s.state.rect
	s.state = FloatingState(src.SubBitmap(r), r, r, copied)
}

// Move places the selection's top-left corner at topLeft. A floating bitmap
// travels with it; the source rectangle stays where it was.
func (s *RasterSelection) Move(topLeft raster.IntPoint) {
	require(!s.state.Empty(), "Move on empty selection")
	s.state = s.state.moved(topLeft)
}

// Offset moves the selection by d.
func (s *RasterSelection) Offset(d raster.IntPoint) {
	s.Move(s.state.rect.TopLeft().Add(d))
}

// Clip restricts a rectangle selection to bounds. Floating and empty
// selections are left alone. A rectangle clipped away entirely becomes
// empty.
func (s *RasterSelection) Clip(bounds raster.IntRect) {
	if s.state.kind != KindRectangle {
		return
	}
	s.state = RectangleState(s.state.rect.Intersect(bounds))
}

// Paste makes bmp a floating copy at topLeft, replacing the current state.
func (s *RasterSelection) Paste(bmp *raster.Bitmap, topLeft raster.IntPoint) {
	s.state = PastedState(bmp, topLeft)
}

// Stamp commits the floating pixels onto dst using the current options.
func (s *RasterSelection) Stamp(dst *raster.Bitmap) {
	Stamp(dst, s.state, s.options)
}

// Stamp draws a floating state onto dst. A moved selection first fills its
// source rectangle with the background paint.
func Stamp(dst *raster.Bitmap, st State, opts Options) {
	require(st.Floating(), "stamp of non-floating selection")
	if !st.copy {
		dst.Fill(st.oldRect, opts.Bg)
	}
	at := st.rect.TopLeft()
	switch {
	case opts.Mask:
		dst.BlitMasked(st.bmp, at, opts.Bg, opts.Alpha)
	case opts.Alpha:
		dst.Blend(st.bmp, at)
	default:
		dst.Blit(st.bmp, at)
	}
}
