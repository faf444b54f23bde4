// Package app holds the overlay state and the update function that turns input
// events into selection changes and effects for the host to run.
package app

import (
	"errors"
	"fmt"
	"image"
	"time"

	"regionshot/src/geometry"
	"regionshot/src/keymap"
	"regionshot/src/letters"
	"regionshot/src/logutil"
	"regionshot/src/messages"
	"regionshot/src/selection"
)

const maxLoggedActions = 20

// ErrRegionOutOfBounds is returned by New when the initial region does not fit
// the image.
var ErrRegionOutOfBounds = errors.New("region does not fit the screen")

// Options are the process-lifetime inputs of an App.
type Options struct {
	Image          *image.RGBA
	KeyMap         *keymap.KeyMap
	AcceptOnSelect messages.AcceptOnSelect
	InitialRegion  *geometry.Rect
	Debug          bool
	// Now is the clock used for error expiry. Defaults to time.Now.
	Now func() time.Time
}

// App is the state of one overlay session. It is not safe for concurrent use;
// the event loop owns it.
type App struct {
	image         *image.RGBA
	width, height float32
	keys          *keymap.KeyMap
	accept        messages.AcceptOnSelect
	now           func() time.Time

	selection         *selection.Selection
	selectionsCreated int
	input             selection.Input
	cursor            geometry.Point
	resolver          *keymap.Resolver

	errors    ErrorQueue
	popup     Popup
	debug     bool
	uploading bool
	logged    []string
}

// New validates opts and returns the initial state.
func New(opts Options) (*App, error) {
	if opts.Image == nil {
		return nil, errors.New("app: image is required")
	}
	km := opts.KeyMap
	if km == nil {
		km = keymap.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	b := opts.Image.Bounds()
	a := &App{
		image:    opts.Image,
		width:    float32(b.Dx()),
		height:   float32(b.Dy()),
		keys:     km,
		accept:   opts.AcceptOnSelect,
		now:      now,
		resolver: keymap.NewResolver(km),
		debug:    opts.Debug,
	}
	if r := opts.InitialRegion; r != nil {
		if !r.Within(a.width, a.height) {
			return nil, fmt.Errorf("%w: %s on a %gx%g screen", ErrRegionOutOfBounds, r, a.width, a.height)
		}
		a.selection = selection.FromRect(r.Norm(), true)
		a.selectionsCreated++
	}
	return a, nil
}

// Update applies one event and returns the effects to run, in order.
func (a *App) Update(ev Event) []Effect {
	switch ev := ev.(type) {
	case Tick:
		a.errors.Prune(ev.Now)
		return nil
	case Result:
		return a.handleResult(ev.Message)
	case ActionRequested:
		return a.Dispatch(ev.Action, 1)
	}

	a.track(ev)

	if a.popup != nil {
		return a.updatePopup(ev)
	}

	if a.selection != nil {
		if effects, handled := a.updateSelection(ev); handled {
			return effects
		}
	}

	switch ev := ev.(type) {
	case KeyPressed:
		if action, count, ok := a.resolver.Press(ev.Key, ev.Mods); ok {
			return a.Dispatch(action, count)
		}
	case PointerPressed:
		if ev.Button == ButtonLeft {
			a.createSelection(ev.Pos)
		}
	}
	return nil
}

// track records cursor, button and modifier state.
func (a *App) track(ev Event) {
	switch ev := ev.(type) {
	case CursorMoved:
		a.cursor = ev.Pos
	case PointerPressed:
		a.cursor = ev.Pos
		switch ev.Button {
		case ButtonLeft:
			a.input.LeftDown = true
		case ButtonRight:
			a.input.RightDown = true
		}
	case PointerReleased:
		a.cursor = ev.Pos
		switch ev.Button {
		case ButtonLeft:
			a.input.LeftDown = false
		case ButtonRight:
			a.input.RightDown = false
		}
	case KeyPressed:
		switch ev.Key {
		case keymap.Name(keymap.Control):
			a.input.CtrlDown = true
		case keymap.Name(keymap.Shift):
			a.input.ShiftDown = true
		}
	case KeyReleased:
		switch ev.Key {
		case keymap.Name(keymap.Control):
			a.input.CtrlDown = false
		case keymap.Name(keymap.Shift):
			a.input.ShiftDown = false
		}
	}
}

// updateSelection feeds ev to the existing selection. handled is false when the
// event should continue to key binding resolution.
func (a *App) updateSelection(ev Event) (effects []Effect, handled bool) {
	sel := a.selection
	switch ev := ev.(type) {
	case PointerPressed:
		switch ev.Button {
		case ButtonLeft:
			if !sel.PressLeft(ev.Pos) {
				a.createSelection(ev.Pos)
			}
			return nil, true
		case ButtonRight:
			sel.PressRight(ev.Pos, a.width, a.height)
			return nil, true
		}
	case PointerReleased:
		switch ev.Button {
		case ButtonLeft:
			if action := sel.ReleaseLeft(a.input, a.accept); action != nil {
				return a.Dispatch(action, 1), true
			}
			return nil, true
		case ButtonRight:
			sel.ReleaseRight()
			return nil, true
		}
	case CursorMoved:
		if !sel.IsIdle() {
			sel.CursorMoved(ev.Pos, a.input.Speed(), a.width, a.height)
			return nil, true
		}
	case KeyPressed:
		if ev.Key == keymap.Name(keymap.Shift) {
			switch sel.Status.(type) {
			case selection.Move, selection.Resize:
				sel.PressShift(a.cursor)
				return nil, true
			}
		}
	}
	return nil, false
}

func (a *App) createSelection(p geometry.Point) {
	a.selection = selection.New(p, a.selectionsCreated == 0)
	a.selectionsCreated++
}

func (a *App) updatePopup(ev Event) []Effect {
	kp, ok := ev.(KeyPressed)
	if !ok {
		return nil
	}
	if kp.Key == keymap.Name(keymap.Escape) {
		a.popup = nil
		return nil
	}
	switch p := a.popup.(type) {
	case *LetterPicker:
		if kp.Key.Named != 0 {
			return nil
		}
		point, done := p.Picker.Press(kp.Key.Char)
		if done {
			a.pickCorner(p.Picker.Corner, point)
			a.popup = nil
		}
	case *Uploaded:
		if kp.Key == keymap.Name(keymap.Enter) || kp.Key == keymap.Char('y') {
			p.LinkCopied = true
			return []Effect{CopyText{Text: p.Info.URL}}
		}
	}
	return nil
}

func (a *App) pickCorner(corner letters.Corner, p geometry.Point) {
	sel := a.selection
	if sel == nil {
		sel = selection.FromRect(geometry.Rect{}, false)
	}
	switch corner {
	case letters.TopLeft:
		sel.SetTopLeft(p)
	case letters.BottomRight:
		sel.SetBottomRight(p)
	}
	sel.Status = selection.Idle{}
	a.selection = sel
}

func (a *App) handleResult(msg messages.Message) []Effect {
	switch msg := msg.(type) {
	case messages.CopyFinished:
		if msg.Err != nil {
			a.pushError(fmt.Sprintf("Could not copy the image: %v", msg.Err))
			return nil
		}
		return []Effect{Exit{}}
	case messages.ImageUploaded:
		a.uploading = false
		a.popup = &Uploaded{Info: msg}
	case messages.UploadFailed:
		a.uploading = false
		a.pushError(fmt.Sprintf("Could not upload the image: %v", msg.Err))
	case messages.Error:
		a.pushError(msg.Text)
	default:
		logutil.Warnf("app: unexpected result %s", msg.Type())
	}
	return nil
}

func (a *App) pushError(text string) {
	logutil.Errorf("app: %s", text)
	a.errors.Push(text, a.now())
}
