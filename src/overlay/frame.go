package overlay

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"regionshot/src/app"
	"regionshot/src/geometry"
	"regionshot/src/keymap"
	"regionshot/src/letters"
	"regionshot/src/selection"
)

const (
	hintText     = "Drag to select a region. Press ? for key bindings, Esc to exit."
	uploadingMsg = "Uploading..."
)

// Frame is everything drawn for one app state. It is built on the event loop
// goroutine and handed to the UI thread, so it shares no memory with the app.
type Frame struct {
	Selection *geometry.Rect
	// Handles are the corner points of the selection.
	Handles   []geometry.Point
	SizeLabel string
	// Icons shows the copy, save and upload buttons next to the selection.
	Icons  bool
	Hint   string
	Errors []string
	Debug  []string

	Cheatsheet    []keymap.Row
	Letters       []letters.Box
	LettersCorner string
	Uploaded      *UploadedInfo
}

// UploadedInfo is the content of the upload finished popup.
type UploadedInfo struct {
	URL        string
	Details    string
	LinkCopied bool
}

// Snapshot builds the frame for a.
func Snapshot(a *app.App, opts Options) Frame {
	f := Frame{Errors: a.Errors()}
	if a.Debug() {
		f.Debug = a.DebugLines()
	}

	r, ok := a.Selection()
	if ok {
		f.Selection = &r
		cs := r.Corners()
		f.Handles = []geometry.Point{cs.TopLeft, cs.TopRight, cs.BottomLeft, cs.BottomRight}
		if opts.SizeIndicator {
			f.SizeLabel = fmt.Sprintf("%d x %d", int(r.Width), int(r.Height))
		}
		_, idle := a.Status().(selection.Idle)
		f.Icons = opts.SelectionIcons && idle && a.Popup() == nil && r.Width > 0 && r.Height > 0
	} else if a.Popup() == nil {
		f.Hint = hintText
	}
	if a.Uploading() {
		f.Hint = uploadingMsg
	}

	switch p := a.Popup().(type) {
	case app.Cheatsheet:
		f.Cheatsheet = keymap.Cheatsheet(a.KeyMap())
	case *app.LetterPicker:
		f.Letters = p.Picker.Boxes()
		f.LettersCorner = p.Picker.Corner.String()
	case *app.Uploaded:
		f.Uploaded = &UploadedInfo{
			URL: p.Info.URL,
			Details: fmt.Sprintf("%dx%d, %s",
				p.Info.Width, p.Info.Height, humanize.IBytes(uint64(max(p.Info.FileSize, 0)))),
			LinkCopied: p.LinkCopied,
		}
	}
	return f
}
