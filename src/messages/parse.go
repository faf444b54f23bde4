package messages

import (
	"fmt"
	"strconv"
	"strings"

	"regionshot/src/geometry"
)

// ParseAction builds an action from a command name and its arguments, as written
// in the config file (e.g. "move", ["left", "5"]).
func ParseAction(name string, args []string) (Action, error) {
	simple := map[string]Action{
		TypeNoOp:                      NoOp{},
		TypeExit:                      Exit{},
		TypeCopyToClipboard:           CopyToClipboard{},
		TypeSaveScreenshot:            SaveScreenshot{},
		TypeUploadScreenshot:          UploadScreenshot{},
		TypeClearSelection:            ClearSelection{},
		TypeSelectFullScreen:          SelectFullScreen{},
		TypeToggleDebugOverlay:        ToggleDebugOverlay{},
		TypeOpenKeybindingsCheatsheet: OpenKeybindingsCheatsheet{},
		TypePickTopLeftCorner:         PickTopLeftCorner{},
		TypePickBottomRightCorner:     PickBottomRightCorner{},
		TypeSetWidth:                  SetWidth{},
		TypeSetHeight:                 SetHeight{},
	}
	name = strings.TrimSpace(name)
	if a, ok := simple[name]; ok {
		if len(args) != 0 {
			return nil, fmt.Errorf("%s takes no arguments, got %d", name, len(args))
		}
		return a, nil
	}

	switch name {
	case TypeGoto:
		if len(args) != 1 {
			return nil, fmt.Errorf("goto expects 1 argument (place), got %d", len(args))
		}
		place, err := geometry.ParsePlace(args[0])
		if err != nil {
			return nil, err
		}
		return Goto{Place: place}, nil
	case TypeMove, TypeExtend, TypeShrink:
		if len(args) != 2 {
			return nil, fmt.Errorf("%s expects 2 arguments (direction, amount), got %d", name, len(args))
		}
		dir, err := geometry.ParseDirection(args[0])
		if err != nil {
			return nil, err
		}
		amount, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid amount %q: %w", name, args[1], err)
		}
		switch name {
		case TypeMove:
			return Move{Direction: dir, Amount: uint32(amount)}, nil
		case TypeExtend:
			return Extend{Direction: dir, Amount: uint32(amount)}, nil
		default:
			return Shrink{Direction: dir, Amount: uint32(amount)}, nil
		}
	}
	return nil, fmt.Errorf("unknown action %q", name)
}

// Args returns the config-file arguments of a, the inverse of ParseAction.
func Args(a Action) []string {
	switch a := a.(type) {
	case Goto:
		return []string{a.Place.String()}
	case Move:
		return []string{a.Direction.String(), strconv.FormatUint(uint64(a.Amount), 10)}
	case Extend:
		return []string{a.Direction.String(), strconv.FormatUint(uint64(a.Amount), 10)}
	case Shrink:
		return []string{a.Direction.String(), strconv.FormatUint(uint64(a.Amount), 10)}
	default:
		return nil
	}
}

// AcceptOnSelect is the action run as soon as the first selection is released.
type AcceptOnSelect string

const (
	AcceptNone   AcceptOnSelect = ""
	AcceptCopy   AcceptOnSelect = "copy"
	AcceptSave   AcceptOnSelect = "save"
	AcceptUpload AcceptOnSelect = "upload"
)

// ParseAcceptOnSelect parses copy, save or upload. The empty string disables it.
func ParseAcceptOnSelect(s string) (AcceptOnSelect, error) {
	switch v := AcceptOnSelect(strings.ToLower(strings.TrimSpace(s))); v {
	case AcceptNone, AcceptCopy, AcceptSave, AcceptUpload:
		return v, nil
	default:
		return AcceptNone, fmt.Errorf("invalid accept-on-select value %q: expected copy, save or upload", s)
	}
}

// Action maps the accept mode to the action it triggers, or nil when disabled.
func (a AcceptOnSelect) Action() Action {
	switch a {
	case AcceptCopy:
		return CopyToClipboard{}
	case AcceptSave:
		return SaveScreenshot{}
	case AcceptUpload:
		return UploadScreenshot{}
	default:
		return nil
	}
}

// String implements pflag.Value.
func (a *AcceptOnSelect) String() string { return string(*a) }

// Set implements pflag.Value.
func (a *AcceptOnSelect) Set(s string) error {
	v, err := ParseAcceptOnSelect(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Type implements pflag.Value.
func (a *AcceptOnSelect) Type() string { return "action" }
