package app

import (
	"regionshot/src/letters"
	"regionshot/src/messages"
)

// Popup is a modal layer over the canvas. While one is open it receives all key
// presses and Escape closes it.
type Popup interface {
	isPopup()
}

// Cheatsheet lists the key bindings.
type Cheatsheet struct{}

// LetterPicker places a selection corner with the letter grid.
type LetterPicker struct {
	Picker *letters.Picker
}

// Uploaded shows the link of a finished upload.
type Uploaded struct {
	Info       messages.ImageUploaded
	LinkCopied bool
}

func (Cheatsheet) isPopup()    {}
func (*LetterPicker) isPopup() {}
func (*Uploaded) isPopup()     {}
