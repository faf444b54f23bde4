//go:build !windows

package hotkey

// rawcodes maps key names to X11 keysyms, which the hook reports as raw codes.
// Modifiers list both the left and right variants.
var rawcodes = map[string][]uint16{
	"ctrl":  {0xffe3, 0xffe4},
	"alt":   {0xffe9, 0xffea},
	"shift": {0xffe1, 0xffe2},
	"cmd":   {0xffeb, 0xffec},

	"space":     {0x0020},
	"enter":     {0xff0d},
	"return":    {0xff0d},
	"esc":       {0xff1b},
	"escape":    {0xff1b},
	"tab":       {0xff09},
	"backspace": {0xff08},
	"delete":    {0xffff},
	"insert":    {0xff63},
	"home":      {0xff50},
	"end":       {0xff57},
	"pageup":    {0xff55},
	"pagedown":  {0xff56},
	"left":      {0xff51},
	"up":        {0xff52},
	"right":     {0xff53},
	"down":      {0xff54},
	"print":     {0xff61},
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		// with shift held the keysym is the upper case letter
		rawcodes[string(c)] = []uint16{uint16(c), uint16(c - 'a' + 'A')}
	}
	for c := '0'; c <= '9'; c++ {
		rawcodes[string(c)] = []uint16{uint16(c)}
	}
	for n := 1; n <= 24; n++ {
		rawcodes[fkey(n)] = []uint16{uint16(0xffbd + n)} // XK_F1 is 0xffbe
	}
}
