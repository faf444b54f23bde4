package keymap

import "regionshot/src/messages"

// Resolver turns individual key presses into actions. It remembers the previous
// key so two-key sequences can complete, and accumulates digits typed before a
// binding into a repeat count.
type Resolver struct {
	keys  *KeyMap
	last  Key
	count uint32
	typed bool // a digit was typed since the last match
}

// NewResolver returns a Resolver over km.
func NewResolver(km *KeyMap) *Resolver {
	return &Resolver{keys: km}
}

// Press feeds one key press. It returns the matched action and its repeat count,
// which defaults to 1 when no digits were typed first.
func (r *Resolver) Press(key Key, mods Modifiers) (messages.Action, uint32, bool) {
	if d, ok := key.Digit(); ok {
		r.count = r.count*10 + d
		r.typed = true
	}

	// Shift is implied by shifted characters like 'G' or '<'.
	if !key.IsArrow() {
		mods &^= ModShift
	}

	action, ok := r.lookup(key, mods)
	if ok {
		r.last = Key{}
		count := uint32(1)
		if r.typed {
			count = r.count
		}
		r.count, r.typed = 0, false
		return action, count, true
	}

	if key != Name(Shift) {
		r.last = key
	}
	return nil, 0, false
}

func (r *Resolver) lookup(key Key, mods Modifiers) (messages.Action, bool) {
	if !r.last.IsZero() {
		if a, ok := r.keys.Get(r.last, key, mods); ok {
			return a, true
		}
	}
	return r.keys.Get(key, Key{}, mods)
}

// Count returns the repeat count typed so far, if any.
func (r *Resolver) Count() (uint32, bool) { return r.count, r.typed }

// Last returns the key waiting for a second key, or the zero Key.
func (r *Resolver) Last() Key { return r.last }

// Reset forgets the pending key and repeat count.
func (r *Resolver) Reset() {
	r.last = Key{}
	r.count, r.typed = 0, false
}
