package app

import (
	"image"
	"time"

	"regionshot/src/geometry"
	"regionshot/src/keymap"
	"regionshot/src/messages"
)

// Button is a pointer button. Touch input is reported as ButtonLeft.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Event is an input fed into App.Update by the host.
type Event interface {
	isEvent()
}

// PointerPressed is a button press at Pos in image coordinates.
type PointerPressed struct {
	Button Button
	Pos    geometry.Point
}

// PointerReleased is a button release at Pos in image coordinates.
type PointerReleased struct {
	Button Button
	Pos    geometry.Point
}

// CursorMoved reports the new cursor position in image coordinates.
type CursorMoved struct {
	Pos geometry.Point
}

// KeyPressed is a key press. Key is the character produced with the current
// modifiers applied, so shift+g arrives as 'G'.
type KeyPressed struct {
	Key  keymap.Key
	Mods keymap.Modifiers
}

// KeyReleased is a key release.
type KeyReleased struct {
	Key  keymap.Key
	Mods keymap.Modifiers
}

// Tick advances the clock. Expired errors are dropped.
type Tick struct {
	Now time.Time
}

// ActionRequested runs an action directly, for clickable controls and the
// window manager's close button.
type ActionRequested struct {
	Action messages.Action
}

// Result delivers the outcome of an effect (upload, clipboard write) back into
// the update loop.
type Result struct {
	Message messages.Message
}

func (PointerPressed) isEvent()  {}
func (PointerReleased) isEvent() {}
func (CursorMoved) isEvent()     {}
func (KeyPressed) isEvent()      {}
func (KeyReleased) isEvent()     {}
func (Tick) isEvent()            {}
func (ActionRequested) isEvent() {}
func (Result) isEvent()          {}

// Effect is work the host performs after an update. App never performs I/O itself.
type Effect interface {
	isEffect()
}

// Copied asks the host to put Image on the clipboard and report back with
// messages.CopyFinished.
type Copied struct {
	Image  *image.RGBA
	Region geometry.Rect
}

// Saved hands the final image to the caller. It is always followed by Exit.
type Saved struct {
	Image  *image.RGBA
	Region geometry.Rect
}

// UploadRequested asks the host to upload Image and report back with
// messages.ImageUploaded or messages.UploadFailed.
type UploadRequested struct {
	Image  *image.RGBA
	Region geometry.Rect
}

// CopyText asks the host to put Text on the clipboard.
type CopyText struct {
	Text string
}

// Exit asks the host to close the overlay once the current event is handled.
type Exit struct{}

func (Copied) isEffect()          {}
func (Saved) isEffect()           {}
func (UploadRequested) isEffect() {}
func (CopyText) isEffect()        {}
func (Exit) isEffect()            {}
