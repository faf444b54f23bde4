package overlay

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/stretchr/testify/assert"

	"regionshot/src/app"
	"regionshot/src/keymap"
)

func TestTypedRunes(t *testing.T) {
	var k keyState
	assert.Equal(t, []app.Event{app.KeyPressed{Key: keymap.Char('g')}}, k.typed('g'))
	assert.Nil(t, k.typed(' '), "space arrives as a named key")

	k.down(desktop.KeyShiftLeft)
	assert.Equal(t, []app.Event{app.KeyPressed{Key: keymap.Char('G'), Mods: keymap.ModShift}}, k.typed('G'))
}

func TestNamedKeys(t *testing.T) {
	var k keyState
	assert.Equal(t, []app.Event{app.KeyPressed{Key: keymap.Name(keymap.Escape)}}, k.down(fyne.KeyEscape))
	assert.Equal(t, []app.Event{app.KeyPressed{Key: keymap.Name(keymap.Space)}}, k.down(fyne.KeySpace))
	assert.Equal(t, []app.Event{app.KeyPressed{Key: keymap.Name(keymap.F(12))}}, k.down(fyne.KeyF12))
	assert.Nil(t, k.down(fyne.KeyA), "plain letters come from typed runes")
}

func TestCtrlChords(t *testing.T) {
	var k keyState
	assert.Equal(t,
		[]app.Event{app.KeyPressed{Key: keymap.Name(keymap.Control), Mods: keymap.ModCtrl}},
		k.down(desktop.KeyControlLeft))
	assert.Equal(t, []app.Event{app.KeyPressed{Key: keymap.Char('s'), Mods: keymap.ModCtrl}}, k.down(fyne.KeyS))
	assert.Nil(t, k.typed('s'), "no duplicate when the platform also types a rune")

	assert.Equal(t,
		[]app.Event{app.KeyReleased{Key: keymap.Name(keymap.Control)}},
		k.up(desktop.KeyControlLeft))
	assert.Nil(t, k.down(fyne.KeyS))
}
