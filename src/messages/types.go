package messages

import (
	"fmt"

	"regionshot/src/geometry"
)

// Message is the base interface for everything that flows through the event loop:
// the actions bound to keys and the results posted back by collaborators.
type Message interface {
	Type() string
}

// Action is a Message that can be bound to a key sequence.
type Action interface {
	Message
	isAction()
}

// Action and result type names. Action names double as the command names used in
// the config file.
const (
	TypeNoOp                      = "no-op"
	TypeExit                      = "exit"
	TypeCopyToClipboard           = "copy-to-clipboard"
	TypeSaveScreenshot            = "save-screenshot"
	TypeUploadScreenshot          = "upload-screenshot"
	TypeClearSelection            = "clear-selection"
	TypeSelectFullScreen          = "select-region"
	TypeToggleDebugOverlay        = "toggle-debug-overlay"
	TypeOpenKeybindingsCheatsheet = "open-keybindings-cheatsheet"
	TypePickTopLeftCorner         = "pick-top-left-corner"
	TypePickBottomRightCorner     = "pick-bottom-right-corner"
	TypeSetWidth                  = "set-width"
	TypeSetHeight                 = "set-height"
	TypeGoto                      = "goto"
	TypeMove                      = "move"
	TypeExtend                    = "extend"
	TypeShrink                    = "shrink"

	TypeImageUploaded = "ImageUploaded"
	TypeUploadFailed  = "UploadFailed"
	TypeCopyFinished  = "CopyFinished"
	TypeError         = "Error"
)

// NoOp does nothing. Binding a key to it disables a default binding.
type NoOp struct{}

func (NoOp) Type() string { return TypeNoOp }
func (NoOp) isAction()    {}

// Exit closes the overlay without producing an image.
type Exit struct{}

func (Exit) Type() string { return TypeExit }
func (Exit) isAction()    {}

// CopyToClipboard copies the cropped selection and exits.
type CopyToClipboard struct{}

func (CopyToClipboard) Type() string { return TypeCopyToClipboard }
func (CopyToClipboard) isAction()    {}

// SaveScreenshot hands the cropped selection to the caller and exits.
type SaveScreenshot struct{}

func (SaveScreenshot) Type() string { return TypeSaveScreenshot }
func (SaveScreenshot) isAction()    {}

// UploadScreenshot uploads the cropped selection to the configured image host.
type UploadScreenshot struct{}

func (UploadScreenshot) Type() string { return TypeUploadScreenshot }
func (UploadScreenshot) isAction()    {}

// ClearSelection removes the selection.
type ClearSelection struct{}

func (ClearSelection) Type() string { return TypeClearSelection }
func (ClearSelection) isAction()    {}

// SelectFullScreen replaces the selection with one covering the whole image.
type SelectFullScreen struct{}

func (SelectFullScreen) Type() string { return TypeSelectFullScreen }
func (SelectFullScreen) isAction()    {}

// ToggleDebugOverlay shows or hides the debug panel.
type ToggleDebugOverlay struct{}

func (ToggleDebugOverlay) Type() string { return TypeToggleDebugOverlay }
func (ToggleDebugOverlay) isAction()    {}

// OpenKeybindingsCheatsheet opens the keybindings popup.
type OpenKeybindingsCheatsheet struct{}

func (OpenKeybindingsCheatsheet) Type() string { return TypeOpenKeybindingsCheatsheet }
func (OpenKeybindingsCheatsheet) isAction()    {}

// PickTopLeftCorner opens the letter grid to place the top-left corner.
type PickTopLeftCorner struct{}

func (PickTopLeftCorner) Type() string { return TypePickTopLeftCorner }
func (PickTopLeftCorner) isAction()    {}

// PickBottomRightCorner opens the letter grid to place the bottom-right corner.
type PickBottomRightCorner struct{}

func (PickBottomRightCorner) Type() string { return TypePickBottomRightCorner }
func (PickBottomRightCorner) isAction()    {}

// SetWidth sets the selection width to the typed repeat count.
type SetWidth struct{}

func (SetWidth) Type() string { return TypeSetWidth }
func (SetWidth) isAction()    {}

// SetHeight sets the selection height to the typed repeat count.
type SetHeight struct{}

func (SetHeight) Type() string { return TypeSetHeight }
func (SetHeight) isAction()    {}

// Goto moves the selection, keeping its size.
type Goto struct {
	Place geometry.Place
}

func (Goto) Type() string { return TypeGoto }
func (Goto) isAction()    {}

// Move shifts the selection by Amount pixels times the repeat count.
type Move struct {
	Direction geometry.Direction
	Amount    uint32
}

func (Move) Type() string { return TypeMove }
func (Move) isAction()    {}

// Extend grows the selection towards Direction.
type Extend struct {
	Direction geometry.Direction
	Amount    uint32
}

func (Extend) Type() string { return TypeExtend }
func (Extend) isAction()    {}

// Shrink pulls the selection edge facing Direction inwards.
type Shrink struct {
	Direction geometry.Direction
	Amount    uint32
}

func (Shrink) Type() string { return TypeShrink }
func (Shrink) isAction()    {}

// ImageUploaded is posted when an upload finished.
type ImageUploaded struct {
	URL      string
	Width    int
	Height   int
	FileSize int64
	Path     string
}

func (ImageUploaded) Type() string { return TypeImageUploaded }

// UploadFailed is posted when an upload failed.
type UploadFailed struct {
	Err error
}

func (UploadFailed) Type() string { return TypeUploadFailed }

// CopyFinished is posted after the clipboard write. Err is nil on success.
type CopyFinished struct {
	Err error
}

func (CopyFinished) Type() string { return TypeCopyFinished }

// Error carries a user-visible error from any collaborator.
type Error struct {
	Text string
}

func (Error) Type() string { return TypeError }

// Describe renders an action with its arguments, e.g. "move left 5".
func Describe(a Action) string {
	switch a := a.(type) {
	case Goto:
		return fmt.Sprintf("%s %s", a.Type(), a.Place)
	case Move:
		return fmt.Sprintf("%s %s %d", a.Type(), a.Direction, a.Amount)
	case Extend:
		return fmt.Sprintf("%s %s %d", a.Type(), a.Direction, a.Amount)
	case Shrink:
		return fmt.Sprintf("%s %s %d", a.Type(), a.Direction, a.Amount)
	default:
		return a.Type()
	}
}
