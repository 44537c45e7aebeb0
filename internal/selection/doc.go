// Package selection implements the raster selection of a frame.
//
// A selection is always in one of three states:
//
//   - Empty: nothing selected.
//   - Rectangle: a region of the image, no pixels captured.
//   - Floating: a captured bitmap that can be moved before being stamped
//     back onto the image. A floating selection is either moved out of the
//     image (it leaves a hole at its source rectangle when stamped) or a
//     copy (pasted or cloned, no hole).
//
// State values are treated as immutable: a floating bitmap is never drawn
// on once it has been captured, so states may be copied freely and kept by
// undo commands.
//
// RasterSelection owns one State plus the Options that control stamping.
// Operations with unmet preconditions (moving an empty selection, floating
// twice) are programming errors and panic.
package selection
