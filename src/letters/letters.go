// Package letters implements the keyboard point picker: the screen is split into a
// 5x5 grid of lettered boxes, each letter narrows the area down, and the third
// letter picks the center of the final box.
package letters

import (
	"regionshot/src/geometry"
)

const (
	columns = 5
	rows    = 5
	levels  = 3
)

// Corner is the selection corner the picked point is applied to.
type Corner int

const (
	TopLeft Corner = iota
	BottomRight
)

func (c Corner) String() string {
	if c == BottomRight {
		return "bottom-right"
	}
	return "top-left"
}

// Box is one lettered cell of the grid.
type Box struct {
	Letter rune
	Rect   geometry.Rect
}

// Picker is the state of one letter grid popup.
type Picker struct {
	Corner Corner

	width, height float32
	level         int
	origin        geometry.Point
}

// New returns a picker over a width x height screen.
func New(corner Corner, width, height float32) *Picker {
	return &Picker{Corner: corner, width: width, height: height}
}

// Level is the current zoom level, starting at 0.
func (p *Picker) Level() int { return p.level }

func (p *Picker) boxSize() (float32, float32) {
	w, h := p.width/columns, p.height/rows
	for range p.level {
		w /= columns
		h /= rows
	}
	return w, h
}

// Boxes returns the cells to draw at the current level.
func (p *Picker) Boxes() []Box {
	bw, bh := p.boxSize()
	boxes := make([]Box, 0, columns*rows)
	for col := range columns {
		for row := range rows {
			boxes = append(boxes, Box{
				Letter: rune('a' + col*rows + row),
				Rect: geometry.Rect{
					X:      p.origin.X + float32(col)*bw,
					Y:      p.origin.Y + float32(row)*bh,
					Width:  bw,
					Height: bh,
				},
			})
		}
	}
	return boxes
}

// Press narrows the grid to the box labeled ch. On the last level it returns the
// center of that box and done is true. Keys that label no box are ignored.
func (p *Picker) Press(ch rune) (point geometry.Point, done bool) {
	idx := int(ch - 'a')
	if idx < 0 || idx >= columns*rows {
		return geometry.Point{}, false
	}
	bw, bh := p.boxSize()
	next := geometry.Point{
		X: p.origin.X + float32(idx/rows)*bw,
		Y: p.origin.Y + float32(idx%rows)*bh,
	}
	if p.level == levels-1 {
		return geometry.Point{X: next.X + bw/2, Y: next.Y + bh/2}, true
	}
	p.origin = next
	p.level++
	return geometry.Point{}, false
}
