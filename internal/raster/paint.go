package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidPaint is returned by ParsePaint for malformed colour strings.
var ErrInvalidPaint = errors.New("invalid paint")

// Paint is a solid, non-premultiplied colour.
type Paint struct {
	Color color.NRGBA
}

// Common paints.
var (
	White       = RGBA(255, 255, 255, 255)
	Black       = RGBA(0, 0, 0, 255)
	Transparent = RGBA(0, 0, 0, 0)
)

// RGBA returns a paint with the given non-premultiplied components.
func RGBA(r, g, b, a uint8) Paint {
	return Paint{Color: color.NRGBA{R: r, G: g, B: b, A: a}}
}

// Solid converts any colour to a paint.
func Solid(c color.Color) Paint {
	return Paint{Color: color.NRGBAModel.Convert(c).(color.NRGBA)}
}

// ParsePaint parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParsePaint(s string) (Paint, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Paint{}, fmt.Errorf("%w: %q", ErrInvalidPaint, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Paint{}, fmt.Errorf("%w: %q", ErrInvalidPaint, s)
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// IsTransparent reports whether the paint has zero alpha.
func (p Paint) IsTransparent() bool {
	return p.Color.A == 0
}

// Matches reports whether c is the same colour as the paint once both are
// stored as 8-bit premultiplied pixels.
func (p Paint) Matches(c color.Color) bool {
	return color.RGBAModel.Convert(c) == color.RGBAModel.Convert(p.Color)
}

// Uniform returns an infinite image of the paint.
func (p Paint) Uniform() *image.Uniform {
	return image.NewUniform(p.Color)
}

// String returns the paint as "#rrggbbaa".
func (p Paint) String() string {
	c := p.Color
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
