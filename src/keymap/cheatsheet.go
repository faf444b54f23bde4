package keymap

import (
	"strings"

	"regionshot/src/messages"
)

// Row is one line of the key binding cheatsheet.
type Row struct {
	Keys   string
	Action string
}

// Keys renders the binding as typed, e.g. "ctrl+s" or "<space>w".
func (b Binding) Keys() string {
	if b.Modifiers == 0 {
		return b.Sequence.String()
	}
	return b.Modifiers.String() + "+" + b.Sequence.String()
}

// Cheatsheet lists the bindings of km, merging keys that run the same action.
// Rows keep the order of the first binding of each action.
func Cheatsheet(km *KeyMap) []Row {
	var rows []Row
	index := make(map[string]int)
	for _, b := range km.Bindings() {
		desc := messages.Describe(b.Action)
		if i, ok := index[desc]; ok {
			rows[i].Keys += ", " + b.Keys()
			continue
		}
		index[desc] = len(rows)
		rows = append(rows, Row{Keys: b.Keys(), Action: desc})
	}
	return rows
}

// Filter returns the rows whose keys or action contain query, case-insensitively.
func Filter(rows []Row, query string) []Row {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	var out []Row
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Action), query) || strings.Contains(strings.ToLower(r.Keys), query) {
			out = append(out, r)
		}
	}
	return out
}
