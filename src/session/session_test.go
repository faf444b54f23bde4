package session

import (
	"context"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regionshot/src/app"
	"regionshot/src/geometry"
	"regionshot/src/keymap"
	"regionshot/src/lastregion"
	"regionshot/src/messages"
	"regionshot/src/screenshot"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := range 100 {
		for x := range 200 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

type fakeClipboard struct {
	mu     sync.Mutex
	images []image.Image
}

func (c *fakeClipboard) WriteImage(img image.Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = append(c.images, img)
	return nil
}

func (c *fakeClipboard) WriteText(string) error { return nil }

type fakeUploader struct{}

func (fakeUploader) UploadImage(_ context.Context, img *image.RGBA) (messages.ImageUploaded, error) {
	b := img.Bounds()
	return messages.ImageUploaded{URL: "https://0x0.st/a.png", Width: b.Dx(), Height: b.Dy(), FileSize: 10}, nil
}

// fakeWindow replays input events once shown.
type fakeWindow struct {
	events []app.Event
	post   func(app.Event) bool
	closed atomic.Bool
}

func (w *fakeWindow) Render(*app.App) {}

func (w *fakeWindow) Show() {
	go func() {
		for _, ev := range w.events {
			w.post(ev)
		}
	}()
}

func (w *fakeWindow) Close() { w.closed.Store(true) }

func opener(w *fakeWindow) OpenWindowFunc {
	return func(_ *image.RGBA, post func(app.Event) bool) (Window, error) {
		w.post = post
		return w, nil
	}
}

func baseOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Capture:        func() (*image.RGBA, error) { return testImage(), nil },
		LastRegionPath: filepath.Join(t.TempDir(), lastregion.FileName),
		Now:            func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) },
	}
}

func TestHeadlessCopy(t *testing.T) {
	clip := &fakeClipboard{}
	opts := baseOptions(t)
	opts.Region = &geometry.Rect{X: 5, Y: 6, Width: 10, Height: 20}
	opts.AcceptOnSelect = messages.AcceptCopy
	opts.Clipboard = clip

	res, err := Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, res.Copied)
	require.Len(t, clip.images, 1)
	assert.Equal(t, image.Rect(0, 0, 10, 20), clip.images[0].Bounds())
	assert.Equal(t, color.RGBA{R: 5, G: 6, A: 255}, clip.images[0].At(0, 0))

	saved, err := lastregion.Read(opts.LastRegionPath)
	require.NoError(t, err)
	assert.Equal(t, *opts.Region, saved)
}

func TestHeadlessSave(t *testing.T) {
	dir := t.TempDir()
	opts := baseOptions(t)
	opts.Region = &geometry.Rect{Width: 30, Height: 40}
	opts.AcceptOnSelect = messages.AcceptSave
	opts.SavePath = dir

	res, err := Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "regionshot-2026-03-04_05-06-07.png"), res.SavedPath)

	img, err := screenshot.LoadFile(res.SavedPath)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 40), img.Bounds())
}

func TestSaveToFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shot.png")
	opts := baseOptions(t)
	opts.Region = &geometry.Rect{Width: 3, Height: 4}
	opts.AcceptOnSelect = messages.AcceptSave
	opts.SavePath = path

	res, err := Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, path, res.SavedPath)
	assert.FileExists(t, path)
}

func TestHeadlessUpload(t *testing.T) {
	opts := baseOptions(t)
	opts.Region = &geometry.Rect{Width: 8, Height: 9}
	opts.AcceptOnSelect = messages.AcceptUpload
	opts.Uploader = fakeUploader{}

	res, err := Execute(context.Background(), opts)
	require.NoError(t, err)
	require.NotNil(t, res.Uploaded)
	assert.Equal(t, 8, res.Uploaded.Width)
	assert.Equal(t, "https://0x0.st/a.png", res.Uploaded.URL)
}

func TestHeadlessRegionOutOfBounds(t *testing.T) {
	opts := baseOptions(t)
	opts.Region = &geometry.Rect{X: 150, Width: 100, Height: 10}
	opts.AcceptOnSelect = messages.AcceptSave

	_, err := Execute(context.Background(), opts)
	assert.ErrorIs(t, err, screenshot.ErrOutOfBounds)
}

func TestLastRegion(t *testing.T) {
	opts := baseOptions(t)
	require.NoError(t, lastregion.Write(opts.LastRegionPath, geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}))
	opts.LastRegion = true
	opts.AcceptOnSelect = messages.AcceptSave
	opts.SavePath = t.TempDir()

	res, err := Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}, res.Region)
}

func TestLastRegionMissing(t *testing.T) {
	opts := baseOptions(t)
	opts.LastRegion = true

	_, err := Execute(context.Background(), opts)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestInteractiveCopy(t *testing.T) {
	clip := &fakeClipboard{}
	win := &fakeWindow{events: []app.Event{
		app.PointerPressed{Button: app.ButtonLeft, Pos: geometry.Point{X: 10, Y: 10}},
		app.CursorMoved{Pos: geometry.Point{X: 60, Y: 40}},
		app.PointerReleased{Button: app.ButtonLeft, Pos: geometry.Point{X: 60, Y: 40}},
		app.KeyPressed{Key: keymap.Name(keymap.Enter)},
	}}
	opts := baseOptions(t)
	opts.OpenWindow = opener(win)
	opts.Clipboard = clip

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := Execute(ctx, opts)
	require.NoError(t, err)
	assert.True(t, res.Copied)
	assert.Equal(t, geometry.Rect{X: 10, Y: 10, Width: 50, Height: 30}, res.Region)
	assert.True(t, win.closed.Load())
}

func TestInteractiveEscape(t *testing.T) {
	win := &fakeWindow{events: []app.Event{app.KeyPressed{Key: keymap.Name(keymap.Escape)}}}
	opts := baseOptions(t)
	opts.OpenWindow = opener(win)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := Execute(ctx, opts)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.True(t, win.closed.Load())

	_, statErr := os.Stat(opts.LastRegionPath)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestNoWindowWithoutAccept(t *testing.T) {
	opts := baseOptions(t)
	opts.Region = &geometry.Rect{Width: 1, Height: 1}

	_, err := Execute(context.Background(), opts)
	assert.ErrorContains(t, err, "no display")
}

func TestDelayHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := baseOptions(t)
	opts.Delay = time.Hour

	_, err := Execute(ctx, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, screenshot.WritePNG(path, testImage()))
	opts := baseOptions(t)
	opts.Capture = func() (*image.RGBA, error) { t.Fatal("capture called"); return nil, nil }
	opts.File = path
	opts.Region = &geometry.Rect{X: 199, Y: 99, Width: 1, Height: 1}
	opts.AcceptOnSelect = messages.AcceptSave
	opts.SavePath = filepath.Join(t.TempDir(), "out.png")

	_, err := Execute(context.Background(), opts)
	require.NoError(t, err)
}
