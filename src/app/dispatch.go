package app

import (
	"fmt"

	"regionshot/src/letters"
	"regionshot/src/messages"
	"regionshot/src/screenshot"
	"regionshot/src/selection"
)

// Dispatch runs a bound action count times where that makes sense (moves) or
// with count as its value (set-width, set-height).
func (a *App) Dispatch(action messages.Action, count uint32) []Effect {
	a.logAction(action, count)

	switch action := action.(type) {
	case messages.NoOp:
	case messages.Exit:
		return []Effect{Exit{}}
	case messages.CopyToClipboard:
		return a.copy()
	case messages.SaveScreenshot:
		return a.save()
	case messages.UploadScreenshot:
		return a.upload()
	case messages.ClearSelection:
		a.selection = nil
	case messages.SelectFullScreen:
		a.selection = selection.FullScreen(a.width, a.height, a.selectionsCreated == 0)
		a.selectionsCreated++
	case messages.ToggleDebugOverlay:
		a.debug = !a.debug
	case messages.OpenKeybindingsCheatsheet:
		a.popup = Cheatsheet{}
	case messages.PickTopLeftCorner:
		a.popup = &LetterPicker{Picker: letters.New(letters.TopLeft, a.width, a.height)}
	case messages.PickBottomRightCorner:
		a.popup = &LetterPicker{Picker: letters.New(letters.BottomRight, a.width, a.height)}
	default:
		a.keyboardCommand(action, count)
	}
	return nil
}

// keyboardCommand applies the commands that edit an existing selection.
func (a *App) keyboardCommand(action messages.Action, count uint32) {
	sel := a.selection
	if sel == nil {
		a.pushError("Nothing is selected.")
		return
	}
	times := func(amount uint32) float32 { return float32(amount) * float32(count) }

	switch action := action.(type) {
	case messages.SetWidth:
		sel.SetWidth(float32(count), a.width)
	case messages.SetHeight:
		sel.SetHeight(float32(count), a.height)
	case messages.Goto:
		sel.Goto(action.Place, a.width, a.height)
	case messages.Move:
		sel.MoveBy(action.Direction, times(action.Amount), a.width, a.height)
	case messages.Extend:
		sel.Extend(action.Direction, times(action.Amount), a.width, a.height)
	case messages.Shrink:
		sel.Shrink(action.Direction, times(action.Amount))
	default:
		panic(fmt.Sprintf("app: unhandled action %T", action))
	}
}

func (a *App) copy() []Effect {
	if a.selection == nil {
		a.pushError("There is no selection to copy")
		return nil
	}
	region := a.selection.Norm()
	img, err := screenshot.Crop(region, a.image)
	if err != nil {
		a.pushError(fmt.Sprintf("Could not copy the image: %v", err))
		return nil
	}
	return []Effect{Copied{Image: img, Region: region}}
}

func (a *App) save() []Effect {
	if a.selection == nil {
		a.pushError("Selection does not exist. There is nothing to copy!")
		return nil
	}
	region := a.selection.Norm()
	img, err := screenshot.Crop(region, a.image)
	if err != nil {
		a.pushError(err.Error())
		return nil
	}
	return []Effect{Saved{Image: img, Region: region}, Exit{}}
}

func (a *App) upload() []Effect {
	if a.selection == nil {
		a.pushError("Select something on the screen to upload it")
		return nil
	}
	if a.uploading {
		a.pushError("An image is already being uploaded")
		return nil
	}
	region := a.selection.Norm()
	img, err := screenshot.Crop(region, a.image)
	if err != nil {
		a.pushError(err.Error())
		return nil
	}
	a.uploading = true
	return []Effect{UploadRequested{Image: img, Region: region}}
}

func (a *App) logAction(action messages.Action, count uint32) {
	if !a.debug {
		return
	}
	entry := messages.Describe(action)
	if count != 1 {
		entry = fmt.Sprintf("%dx %s", count, entry)
	}
	a.logged = append(a.logged, entry)
	if len(a.logged) > maxLoggedActions {
		a.logged = a.logged[len(a.logged)-maxLoggedActions:]
	}
}
