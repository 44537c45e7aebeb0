// Package raster provides the pixel-level primitives the editing engine
// operates on: integer geometry, solid paints and RGBA bitmaps.
//
// Bitmaps are always anchored at the origin so that rectangles expressed in
// image coordinates can be used directly as pixel offsets. All drawing goes
// through golang.org/x/image/draw:
//
//	bmp := raster.NewBitmap(64, 48, raster.White)
//	bmp.Fill(raster.Rect(2, 2, 8, 6), raster.Black)
//	sub := bmp.SubBitmap(raster.Rect(0, 0, 16, 16))
//	bmp.Blit(sub, raster.Pt(20, 20))
package raster
