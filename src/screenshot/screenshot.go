package screenshot

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"regionshot/src/geometry"
)

var (
	// ErrNoDisplay is returned when no active display can be captured.
	ErrNoDisplay = errors.New("no active displays found")
	// ErrOutOfBounds is returned by Crop for a rectangle outside the image.
	ErrOutOfBounds = errors.New("selection is out of the image bounds")
)

// Capture captures the entire virtual screen across all active displays
func Capture() (*image.RGBA, error) {
	union, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(union)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	return img, nil
}

// CaptureRegion captures only r, given relative to the virtual screen origin.
func CaptureRegion(r geometry.Rect) (*image.RGBA, error) {
	n := r.Norm()
	if int(n.Width) <= 0 || int(n.Height) <= 0 {
		return nil, fmt.Errorf("invalid region dimensions: %s", n)
	}
	union, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	if !n.Within(float32(union.Dx()), float32(union.Dy())) {
		return nil, fmt.Errorf("region %s: %w", n, ErrOutOfBounds)
	}
	bounds := toImageRect(n).Add(union.Min)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture region: %w", err)
	}
	return img, nil
}

// VirtualBounds returns the union of all active display bounds.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}

// toImageRect truncates the normalized rect to whole pixels.
func toImageRect(r geometry.Rect) image.Rectangle {
	x, y := int(r.X), int(r.Y)
	return image.Rect(x, y, x+int(r.Width), y+int(r.Height))
}
