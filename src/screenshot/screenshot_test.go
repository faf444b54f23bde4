package screenshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"regionshot/src/geometry"
)

func TestCapture(t *testing.T) {
	// Needs a display; only check that it does not panic.
	img, err := Capture()
	if err != nil {
		t.Logf("Failed to capture screenshot (expected in headless environment): %v", err)
		return
	}
	if img.Bounds().Empty() {
		t.Error("expected a non-empty capture")
	}
}

func TestCaptureRegion(t *testing.T) {
	_, err := CaptureRegion(geometry.Rect{})
	if err == nil {
		t.Error("Expected error for invalid region dimensions")
	}

	_, err = CaptureRegion(geometry.Rect{Width: 100, Height: 100})
	if err != nil {
		t.Logf("Failed to capture region (expected in headless environment): %v", err)
	}
}

func TestVirtualBounds(t *testing.T) {
	if _, err := VirtualBounds(); err != nil {
		t.Logf("Failed to get display bounds (expected in headless environment): %v", err)
	}
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func TestCrop(t *testing.T) {
	img := gradient(200, 200)
	out, err := Crop(geometry.Rect{X: 50, Y: 50, Width: 100, Height: 70}, img)
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if got := out.Bounds(); got != image.Rect(0, 0, 100, 70) {
		t.Fatalf("unexpected bounds %v", got)
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{R: 50, G: 50, A: 255}) {
		t.Errorf("top-left pixel = %#v", got)
	}
	if got := out.RGBAAt(99, 69); got != (color.RGBA{R: 149, G: 119, A: 255}) {
		t.Errorf("bottom-right pixel = %#v", got)
	}
}

func TestCropTruncatesToPixels(t *testing.T) {
	img := gradient(20, 20)
	out, err := Crop(geometry.Rect{X: 1.9, Y: 2.7, Width: 5.99, Height: 3.2}, img)
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if got := out.Bounds(); got != image.Rect(0, 0, 5, 3) {
		t.Fatalf("unexpected bounds %v", got)
	}
	if got := out.RGBAAt(0, 0); got.R != 1 || got.G != 2 {
		t.Errorf("expected crop to start at (1,2), got %#v", got)
	}
}

func TestCropOutOfBounds(t *testing.T) {
	img := gradient(10, 10)
	for _, r := range []geometry.Rect{
		{X: 5, Y: 5, Width: 6, Height: 1},
		{X: -1, Y: 0, Width: 2, Height: 2},
		{X: 8, Y: 8, Width: -4, Height: -4},
	} {
		if _, err := Crop(r, img); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Crop(%s) error = %v, want ErrOutOfBounds", r, err)
		}
	}
}

func TestPNGRoundTrip(t *testing.T) {
	img := gradient(8, 4)
	path := filepath.Join(t.TempDir(), "nested", "shot.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !bytes.Equal(loaded.Pix, img.Pix) {
		t.Error("decoded pixels differ from the written image")
	}
}

func TestDecodeNormalizesOrigin(t *testing.T) {
	sub := gradient(10, 10).SubImage(image.Rect(2, 2, 6, 6))
	data, err := EncodePNG(sub)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Min != (image.Point{}) {
		t.Errorf("expected origin at 0,0, got %v", img.Bounds())
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for a missing file")
	}
}
