package task

import (
	"fmt"

	"github.com/dshills/pixstorm/internal/raster"
)

// Button represents a pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary button.
	ButtonLeft
	// ButtonMiddle is the middle button.
	ButtonMiddle
	// ButtonRight is the secondary button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Modifier represents keyboard modifier keys held during a pointer event.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// PosInfo describes a pointer event in image coordinates.
type PosInfo struct {
	Pos       raster.IntPoint
	Button    Button
	Modifiers Modifier
}

// At returns a PosInfo for a plain left-button event at (x, y).
func At(x, y int) PosInfo {
	return PosInfo{Pos: raster.Pt(x, y), Button: ButtonLeft}
}

// With returns a copy with mods added.
func (p PosInfo) With(mods Modifier) PosInfo {
	p.Modifiers |= mods
	return p
}

// String returns a debug representation.
func (p PosInfo) String() string {
	return fmt.Sprintf("%v %s mods=%d", p.Pos, p.Button, p.Modifiers)
}
