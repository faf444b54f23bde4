package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse is matched by every error returned from ParseSequence and ParseModifiers.
var ErrParse = errors.New("keymap parse error")

// ParseError is a configuration error in a key or modifier string. Its message is
// shown to the user as is.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// Is makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func parseErr(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// Sequence is one or two keys pressed in a row.
type Sequence struct {
	First  Key
	Second Key // zero when the sequence has a single key
}

// Single reports whether s has only one key.
func (s Sequence) Single() bool { return s.Second.IsZero() }

func (s Sequence) String() string {
	if s.Single() {
		return s.First.String()
	}
	return s.First.String() + s.Second.String()
}

// ParseSequence parses strings like "gg", "<space>x" or "<f5>".
//
// A '<' starts a named key that runs until the next '>'. "<<" is two '<' keys,
// "<>" is '<' followed by '>', and a '<' that is never closed is taken literally
// together with whatever followed it.
func ParseSequence(s string) (Sequence, error) {
	var keys []Key
	open := false
	var buf strings.Builder

	// flush emits a pending '<' and anything after it as plain keys.
	flush := func() {
		keys = append(keys, Char('<'))
		for _, b := range buf.String() {
			keys = append(keys, Char(b))
		}
		buf.Reset()
	}

	for _, ch := range s {
		switch {
		case ch == '<':
			if open {
				flush()
			}
			open = true
		case open && ch == '>':
			if buf.Len() == 0 {
				keys = append(keys, Char('<'), Char('>'))
			} else {
				n, err := ParseNamed(buf.String())
				if err != nil {
					return Sequence{}, parseErr("Invalid key: <%s>. %v", buf.String(), err)
				}
				keys = append(keys, Name(n))
				buf.Reset()
			}
			open = false
		case open:
			buf.WriteRune(ch)
		default:
			keys = append(keys, Char(ch))
		}
	}
	if open {
		flush()
	}

	switch {
	case len(keys) == 0:
		return Sequence{}, parseErr("Expected at least 1 key.")
	case len(keys) > 2:
		return Sequence{}, parseErr("At the moment, only up to 2 keys in a sequence are supported.")
	case len(keys) == 1:
		return Sequence{First: keys[0]}, nil
	default:
		return Sequence{First: keys[0], Second: keys[1]}, nil
	}
}

// MustParseSequence is ParseSequence for literals known to be valid.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// ParseModifiers parses "+"-joined modifier names. The empty string is no modifiers.
func ParseModifiers(s string) (Modifiers, error) {
	var mods Modifiers
	if s == "" {
		return mods, nil
	}
	for _, name := range strings.Split(s, "+") {
		var m Modifiers
		switch name {
		case "shift":
			m = ModShift
		case "ctrl":
			m = ModCtrl
		case "alt":
			m = ModAlt
		case "super", "windows", "command":
			m = ModSuper
		default:
			return 0, parseErr("Invalid modifier: %s", name)
		}
		if mods.Has(m) {
			return 0, parseErr("Duplicate modifier: %s", name)
		}
		mods |= m
	}
	return mods, nil
}
