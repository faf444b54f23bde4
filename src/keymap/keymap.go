package keymap

import "regionshot/src/messages"

// Binding maps a key sequence pressed with a set of modifiers to an action.
type Binding struct {
	Sequence  Sequence
	Modifiers Modifiers
	Action    messages.Action
}

type bindingKey struct {
	seq  Sequence
	mods Modifiers
}

// KeyMap holds bindings in insertion order. Binding the same sequence and
// modifiers again replaces the earlier action in place.
type KeyMap struct {
	bindings []Binding
	index    map[bindingKey]int
}

// New returns a KeyMap with the given bindings applied in order.
func New(bindings ...Binding) *KeyMap {
	km := &KeyMap{index: make(map[bindingKey]int)}
	for _, b := range bindings {
		km.Bind(b)
	}
	return km
}

// Bind adds b, overriding an existing binding for the same keys.
func (km *KeyMap) Bind(b Binding) {
	if km.index == nil {
		km.index = make(map[bindingKey]int)
	}
	k := bindingKey{seq: b.Sequence, mods: b.Modifiers}
	if i, ok := km.index[k]; ok {
		km.bindings[i] = b
		return
	}
	km.index[k] = len(km.bindings)
	km.bindings = append(km.bindings, b)
}

// Merge binds every binding of other on top of km.
func (km *KeyMap) Merge(other *KeyMap) {
	if other == nil {
		return
	}
	for _, b := range other.bindings {
		km.Bind(b)
	}
}

// Get returns the action bound to first (followed by second when non-zero)
// pressed with mods.
func (km *KeyMap) Get(first, second Key, mods Modifiers) (messages.Action, bool) {
	if km == nil {
		return nil, false
	}
	i, ok := km.index[bindingKey{seq: Sequence{First: first, Second: second}, mods: mods}]
	if !ok {
		return nil, false
	}
	return km.bindings[i].Action, true
}

// Bindings returns a copy of the bindings in insertion order.
func (km *KeyMap) Bindings() []Binding {
	if km == nil {
		return nil
	}
	out := make([]Binding, len(km.bindings))
	copy(out, km.bindings)
	return out
}

// Len returns the number of bindings.
func (km *KeyMap) Len() int {
	if km == nil {
		return 0
	}
	return len(km.bindings)
}
