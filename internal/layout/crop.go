package layout

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
)

// subImager is implemented by the stdlib raster image types.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// CropBitmap cuts the horizontal band [top, bottom) out of a PNG bitmap
// and re-encodes it. The band is clamped to the bitmap.
func CropBitmap(bmp Bitmap, top, bottom float64) (Bitmap, error) {
	img, err := png.Decode(bytes.NewReader(bmp.PNG))
	if err != nil {
		return Bitmap{}, fmt.Errorf("layout: decoding bitmap: %w", err)
	}

	bounds := img.Bounds()
	y0 := bounds.Min.Y + clampPixel(top, bounds.Dy())
	y1 := bounds.Min.Y + clampPixel(bottom, bounds.Dy())
	if y1 <= y0 {
		return Bitmap{}, fmt.Errorf("%w: strip [%0.f, %0.f)", ErrEmptyBitmap, top, bottom)
	}
	rect := image.Rect(bounds.Min.X, y0, bounds.Max.X, y1)

	var band image.Image
	if si, ok := img.(subImager); ok {
		band = si.SubImage(rect)
	} else {
		dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
		band = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, band); err != nil {
		return Bitmap{}, fmt.Errorf("layout: encoding strip: %w", err)
	}
	return Bitmap{PNG: buf.Bytes(), Width: rect.Dx(), Height: rect.Dy()}, nil
}

func clampPixel(v float64, max int) int {
	p := int(math.Round(v))
	if p < 0 {
		return 0
	}
	if p > max {
		return max
	}
	return p
}
