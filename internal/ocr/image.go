package ocr

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Normalize converts img into a pixel format the engine accepts.
// *image.Gray and fully opaque *image.RGBA are returned unchanged. Images
// with transparency are composited onto a white background, and any other
// model is converted to *image.RGBA.
func Normalize(img image.Image) image.Image {
	switch m := img.(type) {
	case *image.Gray:
		return m
	case *image.RGBA:
		if m.Opaque() {
			return m
		}
	}

	b := img.Bounds()
	dst := image.NewRGBA(b)
	if isOpaque(img) {
		draw.Draw(dst, b, img, b.Min, draw.Src)
		return dst
	}
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
