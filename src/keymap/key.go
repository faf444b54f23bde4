// Package keymap parses key sequences and modifiers from the config file and
// resolves key presses to actions at runtime.
package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// Named is a non-character key.
type Named int

const (
	Space Named = iota + 1
	Enter
	Escape
	Tab
	Backspace
	Delete
	Insert
	Home
	End
	PageUp
	PageDown
	ArrowUp
	ArrowDown
	ArrowLeft
	ArrowRight
	Shift
	Control
	Alt
	Super
	F1
)

// F returns the function key Fn, 1 <= n <= 35.
func F(n int) Named {
	if n < 1 || n > 35 {
		panic(fmt.Sprintf("keymap: no function key F%d", n))
	}
	return F1 + Named(n-1)
}

const lastNamed = F1 + 34

var namedNames = map[Named]string{
	Space:      "space",
	Enter:      "enter",
	Escape:     "escape",
	Tab:        "tab",
	Backspace:  "backspace",
	Delete:     "delete",
	Insert:     "insert",
	Home:       "home",
	End:        "end",
	PageUp:     "page-up",
	PageDown:   "page-down",
	ArrowUp:    "arrow-up",
	ArrowDown:  "arrow-down",
	ArrowLeft:  "arrow-left",
	ArrowRight: "arrow-right",
	Shift:      "shift",
	Control:    "control",
	Alt:        "alt",
	Super:      "super",
}

var namedByName = func() map[string]Named {
	m := make(map[string]Named, len(namedNames)+35)
	for k, v := range namedNames {
		m[v] = k
	}
	for n := 1; n <= 35; n++ {
		m[fmt.Sprintf("f%d", n)] = F(n)
	}
	return m
}()

func (n Named) String() string {
	if n >= F1 && n <= lastNamed {
		return fmt.Sprintf("f%d", int(n-F1)+1)
	}
	if s, ok := namedNames[n]; ok {
		return s
	}
	return fmt.Sprintf("named(%d)", int(n))
}

var errUnknownNamed = errors.New("Matching variant not found")

// ParseNamed looks up a named key by its kebab-case name.
func ParseNamed(s string) (Named, error) {
	if n, ok := namedByName[s]; ok {
		return n, nil
	}
	return 0, errUnknownNamed
}

// IsArrow reports whether n is one of the four arrow keys.
func (n Named) IsArrow() bool {
	return n == ArrowUp || n == ArrowDown || n == ArrowLeft || n == ArrowRight
}

// Key is a single key press: a character or a named key. The zero Key is invalid.
type Key struct {
	Char  rune
	Named Named
}

// Char returns the key for the character c.
func Char(c rune) Key { return Key{Char: c} }

// Name returns the key for the named key n.
func Name(n Named) Key { return Key{Named: n} }

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool { return k.Char == 0 && k.Named == 0 }

// IsArrow reports whether k is an arrow key.
func (k Key) IsArrow() bool { return k.Named.IsArrow() }

// Digit returns the value of a 0-9 character key.
func (k Key) Digit() (uint32, bool) {
	if k.Named == 0 && k.Char >= '0' && k.Char <= '9' {
		return uint32(k.Char - '0'), true
	}
	return 0, false
}

// String renders k the way ParseSequence reads it back.
func (k Key) String() string {
	if k.Named != 0 {
		return "<" + k.Named.String() + ">"
	}
	return string(k.Char)
}

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether all of m2 are set in m.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// String renders m in the config file syntax, e.g. "ctrl+shift".
func (m Modifiers) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModSuper) {
		parts = append(parts, "super")
	}
	return strings.Join(parts, "+")
}
