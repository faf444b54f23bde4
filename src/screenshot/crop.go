package screenshot

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"regionshot/src/geometry"
)

// Crop copies the normalized rect out of img. Coordinates are truncated to whole
// pixels. The rect must already lie inside the image; Crop does not clamp it.
func Crop(r geometry.Rect, img *image.RGBA) (*image.RGBA, error) {
	b := img.Bounds()
	if r.Width < 0 || r.Height < 0 || !r.Within(float32(b.Dx()), float32(b.Dy())) {
		return nil, fmt.Errorf("crop %s from %dx%d image: %w", r, b.Dx(), b.Dy(), ErrOutOfBounds)
	}
	src := toImageRect(r).Add(b.Min)
	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Copy(out, image.Point{}, img, src, draw.Src, nil)
	return out, nil
}
