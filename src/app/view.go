package app

import (
	"fmt"
	"image"

	"regionshot/src/geometry"
	"regionshot/src/keymap"
	"regionshot/src/selection"
)

// The accessors below are read by the renderer after each update.

// Image returns the captured image.
func (a *App) Image() *image.RGBA { return a.image }

// Size returns the image dimensions.
func (a *App) Size() geometry.Size { return geometry.Size{Width: a.width, Height: a.height} }

// Selection returns the normalized selection rectangle, if any.
func (a *App) Selection() (geometry.Rect, bool) {
	if a.selection == nil {
		return geometry.Rect{}, false
	}
	return a.selection.Norm(), true
}

// Status returns the selection status, or nil without a selection.
func (a *App) Status() selection.Status {
	if a.selection == nil {
		return nil
	}
	return a.selection.Status
}

// Cursor returns the last known cursor position.
func (a *App) Cursor() geometry.Point { return a.cursor }

// Errors returns the errors to show, newest first.
func (a *App) Errors() []string { return a.errors.Visible(a.now()) }

// Popup returns the open popup or nil.
func (a *App) Popup() Popup { return a.popup }

// Debug reports whether the debug overlay is shown.
func (a *App) Debug() bool { return a.debug }

// Uploading reports whether an upload is in flight.
func (a *App) Uploading() bool { return a.uploading }

// KeyMap returns the bindings, for the cheatsheet.
func (a *App) KeyMap() *keymap.KeyMap { return a.keys }

// DebugLines describes the internal state for the debug overlay.
func (a *App) DebugLines() []string {
	lines := []string{fmt.Sprintf("image: %gx%g", a.width, a.height)}
	if a.selection == nil {
		lines = append(lines, "selection: none")
	} else {
		lines = append(lines,
			"selection: "+a.selection.Norm().String(),
			"status: "+a.selection.Status.String(),
		)
		if _, ok := a.selection.Status.(selection.Resize); ok {
			lines = append(lines, "resizing: "+a.selection.ResizeSide().String())
		}
	}
	lines = append(lines, fmt.Sprintf("cursor: %g,%g", a.cursor.X, a.cursor.Y))
	if last := a.resolver.Last(); !last.IsZero() {
		lines = append(lines, "pending key: "+last.String())
	}
	if count, ok := a.resolver.Count(); ok {
		lines = append(lines, fmt.Sprintf("count: %d", count))
	}
	lines = append(lines, fmt.Sprintf("selections created: %d", a.selectionsCreated))
	if a.uploading {
		lines = append(lines, "uploading")
	}
	for _, entry := range a.logged {
		lines = append(lines, "> "+entry)
	}
	return lines
}
