package overlay

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"regionshot/src/app"
	"regionshot/src/messages"
)

var (
	shadeColor   = color.NRGBA{A: 120}
	frameColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	accentColor  = color.NRGBA{R: 0x3d, G: 0xae, B: 0xe9, A: 0xff}
	textColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelColor   = color.NRGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xe6}
	errorBg      = color.NRGBA{R: 0xb0, G: 0x20, B: 0x20, A: 0xe6}
	debugColor   = color.NRGBA{R: 0x9a, G: 0xe6, B: 0x7a, A: 0xff}
	lettersColor = color.NRGBA{R: 0xff, G: 0xd1, B: 0x4a, A: 0xff}
)

const (
	handleRadius = 5
	textSize     = 14
	margin       = 12
	lineGap      = 4
)

// draw replaces the canvas objects with those of f. It runs on the fyne thread.
func (o *Overlay) draw(f Frame) {
	var objs []fyne.CanvasObject
	add := func(obj fyne.CanvasObject, pos fyne.Position, size fyne.Size) {
		obj.Move(pos)
		obj.Resize(size)
		objs = append(objs, obj)
	}
	win := o.window.Canvas().Size()

	if f.Selection == nil {
		add(canvas.NewRectangle(shadeColor), fyne.NewPos(0, 0), win)
	} else {
		pos, size := o.rectToCanvas(*f.Selection)
		right, bottom := pos.X+size.Width, pos.Y+size.Height
		for _, r := range [][4]float32{
			{0, 0, win.Width, pos.Y},
			{0, bottom, win.Width, win.Height - bottom},
			{0, pos.Y, pos.X, size.Height},
			{right, pos.Y, win.Width - right, size.Height},
		} {
			if r[2] > 0 && r[3] > 0 {
				add(canvas.NewRectangle(shadeColor), fyne.NewPos(r[0], r[1]), fyne.NewSize(r[2], r[3]))
			}
		}

		border := canvas.NewRectangle(color.Transparent)
		border.StrokeColor = frameColor
		border.StrokeWidth = 2
		add(border, pos, size)

		for _, h := range f.Handles {
			c := o.toCanvas(h)
			dot := canvas.NewCircle(frameColor)
			dot.StrokeColor = accentColor
			dot.StrokeWidth = 2
			add(dot, fyne.NewPos(c.X-handleRadius, c.Y-handleRadius), fyne.NewSize(2*handleRadius, 2*handleRadius))
		}

		if f.SizeLabel != "" {
			objs = append(objs, label(f.SizeLabel, textColor, panelColor, fyne.NewPos(right-textWidth(f.SizeLabel)-2*lineGap, bottom+lineGap))...)
		}
	}

	if f.Hint != "" {
		w := textWidth(f.Hint)
		objs = append(objs, label(f.Hint, textColor, panelColor, fyne.NewPos((win.Width-w)/2, margin))...)
	}

	y := float32(margin)
	for _, e := range f.Errors {
		objs = append(objs, label(e, textColor, errorBg, fyne.NewPos(win.Width-textWidth(e)-margin-2*lineGap, y))...)
		y += lineHeight() + 2*lineGap
	}

	y = margin
	for _, line := range f.Debug {
		t := canvas.NewText(line, debugColor)
		t.TextSize = textSize
		t.TextStyle = fyne.TextStyle{Monospace: true}
		add(t, fyne.NewPos(margin, y), t.MinSize())
		y += lineHeight()
	}

	switch {
	case f.Cheatsheet != nil:
		lines := make([]string, 0, len(f.Cheatsheet)+2)
		lines = append(lines, "Key bindings (Esc to close)", "")
		width := 0
		for _, r := range f.Cheatsheet {
			width = max(width, len(r.Keys))
		}
		for _, r := range f.Cheatsheet {
			lines = append(lines, fmt.Sprintf("%-*s  %s", width, r.Keys, r.Action))
		}
		objs = append(objs, panel(lines, win)...)
	case f.Letters != nil:
		for _, b := range f.Letters {
			pos, size := o.rectToCanvas(b.Rect)
			cell := canvas.NewRectangle(color.Transparent)
			cell.StrokeColor = lettersColor
			cell.StrokeWidth = 1
			add(cell, pos, size)

			t := canvas.NewText(string(b.Letter), lettersColor)
			t.TextSize = min(textSize*2, max(size.Height/2, 6))
			t.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
			ts := t.MinSize()
			add(t, fyne.NewPos(pos.X+(size.Width-ts.Width)/2, pos.Y+(size.Height-ts.Height)/2), ts)
		}
	case f.Uploaded != nil:
		status := "Press Enter or y to copy the link, Esc to close"
		if f.Uploaded.LinkCopied {
			status = "Link copied!"
		}
		objs = append(objs, panel([]string{"Image uploaded", f.Uploaded.URL, f.Uploaded.Details, "", status}, win)...)
	}

	o.drawing.Objects = objs
	o.drawing.Refresh()
	o.drawControls(f)
}

func (o *Overlay) drawControls(f Frame) {
	o.controls.Objects = nil
	if f.Icons && f.Selection != nil {
		pos, size := o.rectToCanvas(*f.Selection)
		win := o.window.Canvas().Size()
		buttons := []struct {
			icon   fyne.Resource
			action messages.Action
		}{
			{theme.ContentCopyIcon(), messages.CopyToClipboard{}},
			{theme.DocumentSaveIcon(), messages.SaveScreenshot{}},
			{theme.UploadIcon(), messages.UploadScreenshot{}},
		}
		const side = 32
		x := pos.X + size.Width + lineGap
		if x+side > win.Width {
			x = pos.X - side - lineGap
		}
		y := pos.Y
		for _, b := range buttons {
			action := b.action
			btn := widget.NewButtonWithIcon("", b.icon, func() {
				o.post(app.ActionRequested{Action: action})
			})
			btn.Move(fyne.NewPos(max(x, 0), y))
			btn.Resize(fyne.NewSize(side, side))
			o.controls.Objects = append(o.controls.Objects, btn)
			y += side + lineGap
		}
	}
	o.controls.Refresh()
}

func textWidth(s string) float32 {
	return fyne.MeasureText(s, textSize, fyne.TextStyle{}).Width
}

func lineHeight() float32 {
	return fyne.MeasureText("Mg", textSize, fyne.TextStyle{}).Height
}

// label is text on a filled box with its top-left corner at pos.
func label(s string, fg, bg color.Color, pos fyne.Position) []fyne.CanvasObject {
	t := canvas.NewText(s, fg)
	t.TextSize = textSize
	ts := t.MinSize()
	box := canvas.NewRectangle(bg)
	box.CornerRadius = 4
	box.Move(pos)
	box.Resize(fyne.NewSize(ts.Width+2*lineGap, ts.Height+2*lineGap))
	t.Move(fyne.NewPos(pos.X+lineGap, pos.Y+lineGap))
	t.Resize(ts)
	return []fyne.CanvasObject{box, t}
}

// panel is a centered box of monospace lines.
func panel(lines []string, win fyne.Size) []fyne.CanvasObject {
	style := fyne.TextStyle{Monospace: true}
	var w float32
	for _, l := range lines {
		w = max(w, fyne.MeasureText(l, textSize, style).Width)
	}
	lh := fyne.MeasureText("Mg", textSize, style).Height
	h := lh * float32(len(lines))
	pos := fyne.NewPos(max((win.Width-w)/2-margin, 0), max((win.Height-h)/2-margin, 0))

	box := canvas.NewRectangle(panelColor)
	box.CornerRadius = 8
	box.StrokeColor = accentColor
	box.StrokeWidth = 1
	box.Move(pos)
	box.Resize(fyne.NewSize(w+2*margin, h+2*margin))
	objs := []fyne.CanvasObject{box}
	for i, l := range lines {
		t := canvas.NewText(l, textColor)
		t.TextSize = textSize
		t.TextStyle = style
		t.Move(fyne.NewPos(pos.X+margin, pos.Y+margin+float32(i)*lh))
		t.Resize(t.MinSize())
		objs = append(objs, t)
	}
	return objs
}
