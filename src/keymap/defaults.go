package keymap

import (
	"regionshot/src/geometry"
	"regionshot/src/messages"
)

func bind(seq string, action messages.Action) Binding {
	return Binding{Sequence: MustParseSequence(seq), Action: action}
}

func bindCtrl(seq string, action messages.Action) Binding {
	return Binding{Sequence: MustParseSequence(seq), Modifiers: ModCtrl, Action: action}
}

// Default returns the built-in vim-style keymap. User bindings are merged on top.
func Default() *KeyMap {
	type dirKeys struct {
		dir       geometry.Direction
		one, five string
		side      geometry.Place
		sideSeq   string
	}
	km := New(
		bind("<", messages.Goto{Place: geometry.PlaceBottomLeft}),
		bind(">", messages.Goto{Place: geometry.PlaceTopRight}),
		bind("gc", messages.Goto{Place: geometry.Center}),
		bind("gg", messages.Goto{Place: geometry.PlaceTopLeft}),
		bind("G", messages.Goto{Place: geometry.PlaceBottomRight}),
	)

	for _, d := range []dirKeys{
		{geometry.Up, "k", "w", geometry.PlaceTop, "gk"},
		{geometry.Right, "l", "e", geometry.PlaceRight, "gl"},
		{geometry.Left, "h", "b", geometry.PlaceLeft, "gh"},
		{geometry.Down, "j", "n", geometry.PlaceBottom, "gj"},
	} {
		km.Bind(bind(d.sideSeq, messages.Goto{Place: d.side}))
		for _, step := range []struct {
			key    string
			amount uint32
		}{{d.one, 1}, {d.five, 5}} {
			km.Bind(bind(step.key, messages.Move{Direction: d.dir, Amount: step.amount}))
			km.Bind(bind(upper(step.key), messages.Extend{Direction: d.dir, Amount: step.amount}))
			km.Bind(bindCtrl(step.key, messages.Shrink{Direction: d.dir, Amount: step.amount}))
		}
	}

	for _, b := range []Binding{
		bind("<escape>", messages.Exit{}),
		bind("<enter>", messages.CopyToClipboard{}),
		bindCtrl("c", messages.CopyToClipboard{}),
		bindCtrl("s", messages.SaveScreenshot{}),
		bindCtrl("u", messages.UploadScreenshot{}),
		bindCtrl("a", messages.SelectFullScreen{}),
		bind("x", messages.ClearSelection{}),
		bind("<f12>", messages.ToggleDebugOverlay{}),
		bind("?", messages.OpenKeybindingsCheatsheet{}),
		bind("t", messages.PickTopLeftCorner{}),
		bind("T", messages.PickBottomRightCorner{}),
		bind("<space>w", messages.SetWidth{}),
		bind("<space>h", messages.SetHeight{}),
	} {
		km.Bind(b)
	}
	return km
}

func upper(s string) string {
	r := []rune(s)
	if len(r) == 1 && r[0] >= 'a' && r[0] <= 'z' {
		return string(r[0] - 'a' + 'A')
	}
	return s
}
