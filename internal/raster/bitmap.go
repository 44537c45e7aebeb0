package raster

import (
	"bytes"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Quality selects the interpolation used when scaling a bitmap.
type Quality uint8

const (
	// QualityNearest keeps hard pixel edges.
	QualityNearest Quality = iota
	// QualityBilinear smooths by linear interpolation.
	QualityBilinear
)

// String returns the quality name.
func (q Quality) String() string {
	switch q {
	case QualityNearest:
		return "nearest"
	case QualityBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

func (q Quality) interpolator() draw.Interpolator {
	if q == QualityBilinear {
		return draw.ApproxBiLinear
	}
	return draw.NearestNeighbor
}

// Bitmap is an RGBA pixel buffer anchored at the origin.
type Bitmap struct {
	img *image.RGBA
}

// NewBitmap creates a w×h bitmap filled with paint.
func NewBitmap(w, h int, fill Paint) *Bitmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Bitmap{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	if !fill.IsTransparent() {
		draw.Draw(b.img, b.img.Bounds(), fill.Uniform(), image.Point{}, draw.Src)
	}
	return b
}

// FromImage copies any image into a new origin-anchored bitmap.
func FromImage(src image.Image) *Bitmap {
	r := src.Bounds()
	b := &Bitmap{img: image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))}
	draw.Draw(b.img, b.img.Bounds(), src, r.Min, draw.Src)
	return b
}

// Image exposes the underlying buffer for read access by renderers and
// encoders.
func (b *Bitmap) Image() *image.RGBA {
	return b.img
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the height in pixels.
func (b *Bitmap) Height() int {
	return b.img.Rect.Dy()
}

// Bounds returns (0,0,w,h).
func (b *Bitmap) Bounds() IntRect {
	return FromRectangle(b.img.Rect)
}

// At returns the colour at p, or transparent outside the bitmap.
func (b *Bitmap) At(p IntPoint) color.NRGBA {
	return color.NRGBAModel.Convert(b.img.At(p.X, p.Y)).(color.NRGBA)
}

// PaintAt returns the pixel at p as a paint.
func (b *Bitmap) PaintAt(p IntPoint) Paint {
	return Paint{Color: b.At(p)}
}

// Set writes a single pixel. Points outside the bitmap are ignored.
func (b *Bitmap) Set(p IntPoint, paint Paint) {
	b.img.Set(p.X, p.Y, paint.Color)
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	img := image.NewRGBA(b.img.Rect)
	copy(img.Pix, b.img.Pix)
	return &Bitmap{img: img}
}

// SubBitmap copies the pixels under r into a new r.W×r.H bitmap. Parts of r
// outside the bitmap come out transparent.
func (b *Bitmap) SubBitmap(r IntRect) *Bitmap {
	sub := NewBitmap(r.W, r.H, Transparent)
	draw.Copy(sub.img, image.Point{}, b.img, r.Rectangle(), draw.Src, nil)
	return sub
}

// Fill paints r (clipped to the bitmap) with paint, replacing the pixels.
func (b *Bitmap) Fill(r IntRect, paint Paint) {
	dr := r.Rectangle().Intersect(b.img.Rect)
	if dr.Empty() {
		return
	}
	draw.Draw(b.img, dr, paint.Uniform(), image.Point{}, draw.Src)
}

// Blit replaces the pixels under src placed at topLeft.
func (b *Bitmap) Blit(src *Bitmap, topLeft IntPoint) {
	draw.Copy(b.img, topLeft.Point(), src.img, src.img.Rect, draw.Src, nil)
}

// Blend composites src over the pixels at topLeft.
func (b *Bitmap) Blend(src *Bitmap, topLeft IntPoint) {
	draw.Copy(b.img, topLeft.Point(), src.img, src.img.Rect, draw.Over, nil)
}

// BlitMasked draws src at topLeft, skipping every source pixel that matches
// mask. With alpha set the remaining pixels are blended rather than copied.
func (b *Bitmap) BlitMasked(src *Bitmap, topLeft IntPoint, mask Paint, alpha bool) {
	sr := src.img.Rect
	if alpha {
		m := image.NewAlpha(sr)
		for y := sr.Min.Y; y < sr.Max.Y; y++ {
			for x := sr.Min.X; x < sr.Max.X; x++ {
				if !mask.Matches(src.img.RGBAAt(x, y)) {
					m.SetAlpha(x, y, color.Alpha{A: 0xff})
				}
			}
		}
		// Over leaves destination pixels under a zero mask untouched; Src
		// would clear them, so the opaque case is copied pixel by pixel.
		draw.DrawMask(b.img, sr.Add(topLeft.Point()), src.img, sr.Min, m, sr.Min, draw.Over)
		return
	}
	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		for x := sr.Min.X; x < sr.Max.X; x++ {
			c := src.img.RGBAAt(x, y)
			if mask.Matches(c) {
				continue
			}
			b.img.SetRGBA(x+topLeft.X, y+topLeft.Y, c)
		}
	}
}

// Resized returns a new bitmap covering r of this bitmap: areas of r
// outside the current bounds are filled with bg. Used for cropping and
// canvas growth alike.
func (b *Bitmap) Resized(r IntRect, bg Paint) *Bitmap {
	out := NewBitmap(r.W, r.H, bg)
	draw.Copy(out.img, image.Point{X: -r.X, Y: -r.Y}, b.img, b.img.Rect, draw.Src, nil)
	return out
}

// Scaled returns the bitmap rescaled to w×h.
func (b *Bitmap) Scaled(w, h int, q Quality) *Bitmap {
	out := NewBitmap(w, h, Transparent)
	q.interpolator().Scale(out.img, out.img.Rect, b.img, b.img.Rect, draw.Src, nil)
	return out
}

// Equal reports whether both bitmaps have the same size and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.img.Rect == o.img.Rect && bytes.Equal(b.img.Pix, o.img.Pix)
}
