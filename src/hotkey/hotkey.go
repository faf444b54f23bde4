// Package hotkey watches for the global shortcut that starts a capture in
// daemon mode.
package hotkey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"

	"regionshot/src/logutil"
)

var ErrInvalidHotkey = errors.New("invalid hotkey")

// Parse converts a hotkey string like "Ctrl+Alt+s" to normalized key names.
func Parse(hotkeyConfig string) ([]string, error) {
	if strings.TrimSpace(hotkeyConfig) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidHotkey)
	}
	keys := parseHotkey(hotkeyConfig)
	for _, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("%w: %q has an empty key", ErrInvalidHotkey, hotkeyConfig)
		}
		if len(keyNameToRawcodes(k)) == 0 {
			return nil, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidHotkey, k, hotkeyConfig)
		}
	}
	return keys, nil
}

func parseHotkey(hotkeyConfig string) []string {
	parts := strings.Split(strings.ToLower(hotkeyConfig), "+")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl", "control":
			keys = append(keys, "ctrl")
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}

func keyNameToRawcodes(keyName string) []uint16 {
	return rawcodes[strings.ToLower(strings.TrimSpace(keyName))]
}

type keyState struct {
	name     string
	rawcodes []uint16
	pressed  bool
}

// matcher tracks which keys of the combination are held.
type matcher struct {
	mu   sync.Mutex
	keys []keyState
}

func newMatcher(names []string) *matcher {
	m := &matcher{}
	for _, name := range names {
		m.keys = append(m.keys, keyState{name: name, rawcodes: keyNameToRawcodes(name)})
	}
	return m
}

// press records a key down and reports whether the whole combination is now
// held. A match resets the state so holding the keys fires once.
func (m *matcher) press(rawcode uint16) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.keys {
		if m.keys[i].matches(rawcode) {
			m.keys[i].pressed = true
			logutil.Debugf("hotkey: %s pressed", m.keys[i].name)
		}
	}
	for i := range m.keys {
		if !m.keys[i].pressed {
			return false
		}
	}
	for i := range m.keys {
		m.keys[i].pressed = false
	}
	return true
}

func (m *matcher) release(rawcode uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.keys {
		if m.keys[i].matches(rawcode) && m.keys[i].pressed {
			m.keys[i].pressed = false
			logutil.Debugf("hotkey: %s released", m.keys[i].name)
		}
	}
}

func (k keyState) matches(rawcode uint16) bool {
	for _, rc := range k.rawcodes {
		if rc == rawcode {
			return true
		}
	}
	return false
}

// Listen starts the global keyboard hook and calls callback each time the
// combination is pressed, until ctx is cancelled. The callback runs on the
// hook goroutine and should hand work off quickly.
func Listen(ctx context.Context, hotkeyConfig string, callback func()) error {
	keys, err := Parse(hotkeyConfig)
	if err != nil {
		return err
	}
	m := newMatcher(keys)
	logutil.Infof("hotkey: listening for %s (%v)", hotkeyConfig, keys)

	evChan := gohook.Start()
	if evChan == nil {
		return errors.New("hotkey: keyboard hook did not start")
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logutil.Errorf("hotkey: panic in hook goroutine: %v", r)
			}
		}()
		<-ctx.Done()
		gohook.End()
	}()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logutil.Errorf("hotkey: panic in hook goroutine: %v", r)
			}
		}()
		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown:
				if m.press(ev.Rawcode) {
					logutil.Infof("hotkey: %s activated", hotkeyConfig)
					if callback != nil {
						callback()
					}
				}
			case gohook.KeyUp:
				m.release(ev.Rawcode)
			}
		}
		logutil.Infof("hotkey: event channel closed")
	}()
	return nil
}

func fkey(n int) string { return fmt.Sprintf("f%d", n) }
