package main

import (
	"image"

	"fyne.io/fyne/v2"

	"regionshot/src/app"
	"regionshot/src/config"
	"regionshot/src/overlay"
	"regionshot/src/session"
)

// overlayWindow moves Show onto the fyne thread.
type overlayWindow struct {
	*overlay.Overlay
}

func (w overlayWindow) Show() { fyne.Do(w.Overlay.Show) }

func overlayOpener(fa fyne.App, cfg *config.Config) session.OpenWindowFunc {
	opts := overlay.Options{SizeIndicator: cfg.SizeIndicator, SelectionIcons: cfg.SelectionIcons}
	return func(img *image.RGBA, post func(app.Event) bool) (session.Window, error) {
		var o *overlay.Overlay
		fyne.DoAndWait(func() { o = overlay.New(fa, img, post, opts) })
		return overlayWindow{o}, nil
	}
}
