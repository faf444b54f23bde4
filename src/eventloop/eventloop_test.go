package eventloop

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regionshot/src/app"
	"regionshot/src/geometry"
	"regionshot/src/keymap"
	"regionshot/src/messages"
)

type fakeClipboard struct {
	mu    sync.Mutex
	image image.Image
	text  string
	err   error
}

func (c *fakeClipboard) WriteImage(img image.Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.image = img
	return nil
}

func (c *fakeClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return c.err
}

type fakeUploader struct {
	info messages.ImageUploaded
	err  error
}

func (u fakeUploader) UploadImage(ctx context.Context, img *image.RGBA) (messages.ImageUploaded, error) {
	if u.err != nil {
		return messages.ImageUploaded{}, u.err
	}
	info := u.info
	info.Width, info.Height = img.Bounds().Dx(), img.Bounds().Dy()
	return info, nil
}

type renderCounter struct {
	mu sync.Mutex
	n  int
}

func (r *renderCounter) Render(*app.App) {
	r.mu.Lock()
	r.n++
	r.mu.Unlock()
}

func newApp(t *testing.T, region *geometry.Rect) *app.App {
	t.Helper()
	a, err := app.New(app.Options{
		Image:         image.NewRGBA(image.Rect(0, 0, 200, 200)),
		InitialRegion: region,
	})
	require.NoError(t, err)
	return a
}

func key(k keymap.Key, mods keymap.Modifiers) app.Event {
	return app.KeyPressed{Key: k, Mods: mods}
}

type result struct {
	out Outcome
	err error
}

func run(l *Loop) <-chan result {
	ch := make(chan result, 1)
	go func() {
		out, err := l.Run(context.Background())
		ch <- result{out, err}
	}()
	return ch
}

func wait(t *testing.T, ch <-chan result) result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit")
		return result{}
	}
}

func TestCopyExits(t *testing.T) {
	region := geometry.Rect{X: 10, Y: 20, Width: 30, Height: 40}
	clip := &fakeClipboard{}
	view := &renderCounter{}
	l := New(Options{App: newApp(t, &region), View: view, Clipboard: clip})
	done := run(l)

	require.True(t, l.Post(key(keymap.Name(keymap.Enter), 0)))
	r := wait(t, done)

	require.NoError(t, r.err)
	assert.True(t, r.out.Copied)
	require.NotNil(t, r.out.Region)
	assert.Equal(t, region, *r.out.Region)
	assert.Nil(t, r.out.Saved)
	require.NotNil(t, clip.image)
	assert.Equal(t, image.Rect(0, 0, 30, 40), clip.image.Bounds())
	assert.GreaterOrEqual(t, view.n, 2)

	assert.False(t, l.Post(key(keymap.Name(keymap.Escape), 0)), "posting after exit fails")
}

func TestCopyFailureKeepsRunning(t *testing.T) {
	region := geometry.Rect{Width: 10, Height: 10}
	a := newApp(t, &region)
	l := New(Options{App: a, Clipboard: &fakeClipboard{err: errors.New("no display")}})
	done := run(l)

	l.Post(key(keymap.Name(keymap.Enter), 0))
	l.Post(key(keymap.Name(keymap.Escape), 0))
	r := wait(t, done)

	require.NoError(t, r.err)
	assert.False(t, r.out.Copied)
	assert.Equal(t, []string{"Could not copy the image: no display"}, a.Errors())
}

func TestSaveFillsSlot(t *testing.T) {
	region := geometry.Rect{X: 5, Y: 5, Width: 20, Height: 10}
	l := New(Options{App: newApp(t, &region)})
	done := run(l)

	l.Post(key(keymap.Char('s'), keymap.ModCtrl))
	r := wait(t, done)

	require.NoError(t, r.err)
	require.NotNil(t, r.out.Saved)
	assert.Equal(t, image.Rect(0, 0, 20, 10), r.out.Saved.Bounds())
}

// popupView signals when the upload popup opens. Render runs on the loop
// goroutine, so it is the only safe place to inspect the app.
type popupView struct {
	opened chan struct{}
	once   sync.Once
}

func (v *popupView) Render(a *app.App) {
	if _, ok := a.Popup().(*app.Uploaded); ok {
		v.once.Do(func() { close(v.opened) })
	}
}

func TestUploadRoundTrip(t *testing.T) {
	region := geometry.Rect{Width: 50, Height: 60}
	clip := &fakeClipboard{}
	view := &popupView{opened: make(chan struct{})}
	l := New(Options{
		App:       newApp(t, &region),
		View:      view,
		Clipboard: clip,
		Uploader:  fakeUploader{info: messages.ImageUploaded{URL: "https://0x0.st/q.png"}},
	})
	done := run(l)

	l.Post(key(keymap.Char('u'), keymap.ModCtrl))
	select {
	case <-view.opened:
	case <-time.After(5 * time.Second):
		t.Fatal("upload popup did not open")
	}

	l.Post(key(keymap.Char('y'), 0))
	l.Post(key(keymap.Name(keymap.Escape), 0)) // closes the popup
	l.Post(key(keymap.Name(keymap.Escape), 0)) // exits
	r := wait(t, done)

	require.NoError(t, r.err)
	require.NotNil(t, r.out.Uploaded)
	assert.Equal(t, "https://0x0.st/q.png", r.out.Uploaded.URL)
	assert.Equal(t, 50, r.out.Uploaded.Width)
	assert.Equal(t, region, *r.out.Region)
	assert.Equal(t, "https://0x0.st/q.png", clip.text)
}

type errorView struct {
	shown chan struct{}
	once  sync.Once
}

func (v *errorView) Render(a *app.App) {
	if len(a.Errors()) > 0 {
		v.once.Do(func() { close(v.shown) })
	}
}

func TestUploadFailureIsShown(t *testing.T) {
	region := geometry.Rect{Width: 50, Height: 60}
	a := newApp(t, &region)
	view := &errorView{shown: make(chan struct{})}
	l := New(Options{App: a, View: view, Uploader: fakeUploader{err: errors.New("503")}})
	done := run(l)

	l.Post(key(keymap.Char('u'), keymap.ModCtrl))
	select {
	case <-view.shown:
	case <-time.After(5 * time.Second):
		t.Fatal("upload error was not shown")
	}
	l.Post(key(keymap.Name(keymap.Escape), 0))
	r := wait(t, done)

	require.NoError(t, r.err)
	assert.Nil(t, r.out.Uploaded)
	assert.Equal(t, []string{"Could not upload the image: 503"}, a.Errors())
	assert.False(t, a.Uploading())
}

type stalledUploader struct {
	started chan struct{}
	ended   chan error
}

func (u stalledUploader) UploadImage(ctx context.Context, img *image.RGBA) (messages.ImageUploaded, error) {
	close(u.started)
	select {
	case <-ctx.Done():
		u.ended <- ctx.Err()
		return messages.ImageUploaded{}, ctx.Err()
	case <-time.After(3 * time.Second):
		u.ended <- nil
		return messages.ImageUploaded{URL: "https://0x0.st/late.png"}, nil
	}
}

func TestExitAbandonsUpload(t *testing.T) {
	region := geometry.Rect{Width: 50, Height: 60}
	up := stalledUploader{started: make(chan struct{}), ended: make(chan error, 1)}
	l := New(Options{App: newApp(t, &region), Uploader: up})
	done := run(l)

	l.Post(key(keymap.Char('u'), keymap.ModCtrl))
	select {
	case <-up.started:
	case <-time.After(5 * time.Second):
		t.Fatal("upload did not start")
	}

	start := time.Now()
	l.Post(app.ActionRequested{Action: messages.Exit{}})
	r := wait(t, done)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	require.NoError(t, r.err)
	assert.Nil(t, r.out.Uploaded)

	select {
	case err := <-up.ended:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("upload context was not cancelled")
	}
}

func TestContextCancel(t *testing.T) {
	l := New(Options{App: newApp(t, nil)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
