package overlay

import (
	"image/color"
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"regionshot/src/app"
	"regionshot/src/geometry"
	"regionshot/src/keymap"
)

var namedKeys = map[fyne.KeyName]keymap.Named{
	fyne.KeyEscape:    keymap.Escape,
	fyne.KeyReturn:    keymap.Enter,
	fyne.KeyEnter:     keymap.Enter,
	fyne.KeyTab:       keymap.Tab,
	fyne.KeyBackspace: keymap.Backspace,
	fyne.KeyDelete:    keymap.Delete,
	fyne.KeyInsert:    keymap.Insert,
	fyne.KeyHome:      keymap.Home,
	fyne.KeyEnd:       keymap.End,
	fyne.KeyPageUp:    keymap.PageUp,
	fyne.KeyPageDown:  keymap.PageDown,
	fyne.KeyUp:        keymap.ArrowUp,
	fyne.KeyDown:      keymap.ArrowDown,
	fyne.KeyLeft:      keymap.ArrowLeft,
	fyne.KeyRight:     keymap.ArrowRight,
	fyne.KeySpace:     keymap.Space,

	desktop.KeyShiftLeft:    keymap.Shift,
	desktop.KeyShiftRight:   keymap.Shift,
	desktop.KeyControlLeft:  keymap.Control,
	desktop.KeyControlRight: keymap.Control,
	desktop.KeyAltLeft:      keymap.Alt,
	desktop.KeyAltRight:     keymap.Alt,
	desktop.KeySuperLeft:    keymap.Super,
	desktop.KeySuperRight:   keymap.Super,
}

func init() {
	fkeys := []fyne.KeyName{
		fyne.KeyF1, fyne.KeyF2, fyne.KeyF3, fyne.KeyF4, fyne.KeyF5, fyne.KeyF6,
		fyne.KeyF7, fyne.KeyF8, fyne.KeyF9, fyne.KeyF10, fyne.KeyF11, fyne.KeyF12,
	}
	for i, k := range fkeys {
		namedKeys[k] = keymap.F(i + 1)
	}
}

var modifierBits = map[keymap.Named]keymap.Modifiers{
	keymap.Shift:   keymap.ModShift,
	keymap.Control: keymap.ModCtrl,
	keymap.Alt:     keymap.ModAlt,
	keymap.Super:   keymap.ModSuper,
}

// keyState turns fyne key callbacks into app key events. Characters normally
// arrive through the typed rune callback with shift already applied. With ctrl,
// alt or super held no rune is typed, so those come from the key down callback.
type keyState struct {
	mods keymap.Modifiers
}

const chordMods = keymap.ModCtrl | keymap.ModAlt | keymap.ModSuper

func (k *keyState) down(name fyne.KeyName) []app.Event {
	if n, ok := namedKeys[name]; ok {
		k.mods |= modifierBits[n]
		return []app.Event{app.KeyPressed{Key: keymap.Name(n), Mods: k.mods}}
	}
	if k.mods&chordMods == 0 {
		return nil
	}
	s := string(name)
	if len(s) != 1 {
		return nil
	}
	r := rune(s[0])
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return nil
	}
	if k.mods.Has(keymap.ModShift) {
		r = unicode.ToUpper(r)
	} else {
		r = unicode.ToLower(r)
	}
	return []app.Event{app.KeyPressed{Key: keymap.Char(r), Mods: k.mods}}
}

func (k *keyState) up(name fyne.KeyName) []app.Event {
	n, ok := namedKeys[name]
	if !ok {
		return nil
	}
	k.mods &^= modifierBits[n]
	return []app.Event{app.KeyReleased{Key: keymap.Name(n), Mods: k.mods}}
}

func (k *keyState) typed(r rune) []app.Event {
	if k.mods&chordMods != 0 || r == ' ' || !unicode.IsPrint(r) {
		return nil
	}
	return []app.Event{app.KeyPressed{Key: keymap.Char(r), Mods: k.mods}}
}

var pointerButtons = map[desktop.MouseButton]app.Button{
	desktop.MouseButtonPrimary:   app.ButtonLeft,
	desktop.MouseButtonSecondary: app.ButtonRight,
	desktop.MouseButtonTertiary:  app.ButtonMiddle,
}

// surface is a transparent widget over the screenshot that receives pointer input.
type surface struct {
	widget.BaseWidget
	toImage func(fyne.Position) geometry.Point
	post    func(app.Event) bool
}

func newSurface(toImage func(fyne.Position) geometry.Point, post func(app.Event) bool) *surface {
	s := &surface{toImage: toImage, post: post}
	s.ExtendBaseWidget(s)
	return s
}

func (s *surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (s *surface) MouseDown(ev *desktop.MouseEvent) {
	if b, ok := pointerButtons[ev.Button]; ok {
		s.post(app.PointerPressed{Button: b, Pos: s.toImage(ev.Position)})
	}
}

func (s *surface) MouseUp(ev *desktop.MouseEvent) {
	if b, ok := pointerButtons[ev.Button]; ok {
		s.post(app.PointerReleased{Button: b, Pos: s.toImage(ev.Position)})
	}
}

func (s *surface) MouseIn(ev *desktop.MouseEvent) {
	s.post(app.CursorMoved{Pos: s.toImage(ev.Position)})
}

func (s *surface) MouseMoved(ev *desktop.MouseEvent) {
	s.post(app.CursorMoved{Pos: s.toImage(ev.Position)})
}

func (s *surface) MouseOut() {}

// Dragged reports motion while a button is held; fyne sends no MouseMoved then.
func (s *surface) Dragged(ev *fyne.DragEvent) {
	s.post(app.CursorMoved{Pos: s.toImage(ev.Position)})
}

func (s *surface) DragEnd() {}
