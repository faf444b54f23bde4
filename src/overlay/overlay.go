// Package overlay is the full-screen fyne window that shows the capture and the
// selection, and feeds mouse and keyboard input to the event loop.
package overlay

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"regionshot/src/app"
	"regionshot/src/geometry"
	"regionshot/src/logutil"
	"regionshot/src/messages"
)

// Options toggle optional parts of the overlay.
type Options struct {
	SizeIndicator  bool
	SelectionIcons bool
}

// Overlay is one overlay window. New, Show and the input callbacks run on the
// fyne thread; Render and Close may be called from any goroutine.
type Overlay struct {
	window   fyne.Window
	size     geometry.Size
	post     func(app.Event) bool
	opts     Options
	keys     keyState
	drawing  *fyne.Container
	controls *fyne.Container
}

// New creates the window for img. post delivers input to the event loop.
func New(fa fyne.App, img *image.RGBA, post func(app.Event) bool, opts Options) *Overlay {
	b := img.Bounds()
	o := &Overlay{
		window:   fa.NewWindow("regionshot"),
		size:     geometry.Size{Width: float32(b.Dx()), Height: float32(b.Dy())},
		post:     post,
		opts:     opts,
		drawing:  container.NewWithoutLayout(),
		controls: container.NewWithoutLayout(),
	}

	bg := canvas.NewImageFromImage(img)
	bg.FillMode = canvas.ImageFillStretch
	bg.ScaleMode = canvas.ImageScalePixels

	o.window.SetContent(container.NewStack(bg, o.drawing, newSurface(o.toImage, post), o.controls))
	o.window.SetPadded(false)
	o.window.SetFullScreen(true)
	o.window.SetCloseIntercept(func() {
		post(app.ActionRequested{Action: messages.Exit{}})
	})

	c := o.window.Canvas()
	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) { o.postAll(o.keys.down(ev.Name)) })
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) { o.postAll(o.keys.up(ev.Name)) })
	} else {
		logutil.Warnf("overlay: canvas has no key down events, named keys are unavailable")
	}
	c.SetOnTypedRune(func(r rune) { o.postAll(o.keys.typed(r)) })
	return o
}

func (o *Overlay) postAll(events []app.Event) {
	for _, ev := range events {
		o.post(ev)
	}
}

// Show displays the window and takes keyboard focus.
func (o *Overlay) Show() {
	o.window.Show()
	o.window.RequestFocus()
}

// Render implements eventloop.View.
func (o *Overlay) Render(a *app.App) {
	f := Snapshot(a, o.opts)
	fyne.Do(func() { o.draw(f) })
}

// Close closes the window.
func (o *Overlay) Close() {
	fyne.Do(o.window.Close)
}

// scale is image pixels per canvas unit. The capture is stretched over the
// window, so this folds in the display scale factor.
func (o *Overlay) scale() (float32, float32) {
	sz := o.window.Canvas().Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return 1, 1
	}
	return o.size.Width / sz.Width, o.size.Height / sz.Height
}

func (o *Overlay) toImage(p fyne.Position) geometry.Point {
	sx, sy := o.scale()
	return geometry.Point{X: p.X * sx, Y: p.Y * sy}
}

func (o *Overlay) toCanvas(p geometry.Point) fyne.Position {
	sx, sy := o.scale()
	return fyne.NewPos(p.X/sx, p.Y/sy)
}

func (o *Overlay) rectToCanvas(r geometry.Rect) (fyne.Position, fyne.Size) {
	sx, sy := o.scale()
	return fyne.NewPos(r.X/sx, r.Y/sy), fyne.NewSize(r.Width/sx, r.Height/sy)
}
