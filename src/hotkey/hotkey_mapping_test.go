package hotkey

import (
	"errors"
	"testing"
)

func TestKeyNameToRawcodes(t *testing.T) {
	tests := []struct {
		keyName  string
		variants int
	}{
		{"ctrl", 2},
		{"alt", 2},
		{"shift", 2},
		{"cmd", 2},
		{"q", 0},
		{"0", 1},
		{"9", 1},
		{"f1", 1},
		{"f24", 1},
		{"space", 1},
		{"enter", 1},
		{"esc", 1},
		{"print", 1},
		{"unknown", -1},
	}

	for _, tt := range tests {
		t.Run(tt.keyName, func(t *testing.T) {
			result := keyNameToRawcodes(tt.keyName)
			switch {
			case tt.variants < 0:
				if result != nil {
					t.Errorf("keyNameToRawcodes(%q) = %v, expected nil", tt.keyName, result)
				}
			case tt.variants == 0:
				if len(result) == 0 {
					t.Errorf("keyNameToRawcodes(%q) returned no rawcodes", tt.keyName)
				}
			case len(result) != tt.variants:
				t.Errorf("keyNameToRawcodes(%q) returned %d rawcodes, expected %d",
					tt.keyName, len(result), tt.variants)
			}
		})
	}
}

func TestFunctionKeysAreDistinct(t *testing.T) {
	seen := map[uint16]string{}
	for n := 1; n <= 24; n++ {
		name := fkey(n)
		codes := keyNameToRawcodes(name)
		if len(codes) != 1 {
			t.Fatalf("%s has %d rawcodes", name, len(codes))
		}
		if prev, ok := seen[codes[0]]; ok {
			t.Fatalf("%s and %s share rawcode %d", prev, name, codes[0])
		}
		seen[codes[0]] = name
	}
}

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Ctrl+Alt+S", []string{"ctrl", "alt", "s"}},
		{"Ctrl+Shift+O", []string{"ctrl", "shift", "o"}},
		{"Control+alt+e", []string{"ctrl", "alt", "e"}},
		{"Alt+F4", []string{"alt", "f4"}},
		{"Ctrl+Shift+F13", []string{"ctrl", "shift", "f13"}},
		{"Ctrl+Win+E", []string{"ctrl", "cmd", "e"}},
		{"Win+Shift+S", []string{"cmd", "shift", "s"}},
		{"Super+Alt+T", []string{"cmd", "alt", "t"}},
		{" Print ", []string{"print"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("Parse(%q) returned %d keys, expected %d", tt.input, len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Parse(%q)[%d] = %q, expected %q", tt.input, i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParseHotkeyErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "Ctrl+", "Ctrl+Hyper+S", "Alt++x"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); !errors.Is(err, ErrInvalidHotkey) {
				t.Fatalf("Parse(%q) error = %v, expected ErrInvalidHotkey", input, err)
			}
		})
	}
}

func TestMatcher(t *testing.T) {
	m := newMatcher([]string{"ctrl", "alt", "s"})
	ctrl := keyNameToRawcodes("ctrl")
	alt := keyNameToRawcodes("alt")
	s := keyNameToRawcodes("s")[0]

	if m.press(ctrl[1]) || m.press(alt[0]) {
		t.Fatal("matched before the combination was complete")
	}
	if !m.press(s) {
		t.Fatal("combination not detected")
	}
	if m.press(s) {
		t.Fatal("matched again without pressing the modifiers")
	}

	m.press(ctrl[0])
	m.press(alt[0])
	m.release(alt[0])
	if m.press(s) {
		t.Fatal("matched after a modifier was released")
	}
}
