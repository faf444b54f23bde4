package geometry

import (
	"fmt"
	"strings"
)

// InteractionArea is the thickness in pixels of the grab zone around each edge
// and the side of the square grab zone around each corner.
const InteractionArea float32 = 35

// Side of a rectangle.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

var sideNames = [...]string{"top", "right", "bottom", "left"}

func (s Side) String() string { return sideNames[s] }

// ResizeRect drags side s of initial by (dx, dy), leaving the opposite side in place.
func (s Side) ResizeRect(initial Rect, dy, dx float32) Rect {
	r := initial
	switch s {
	case SideTop:
		r.Height -= dy
		r.Y += dy
	case SideRight:
		r.Width += dx
	case SideBottom:
		r.Height += dy
	case SideLeft:
		r.Width -= dx
		r.X += dx
	}
	return r
}

// Corner of a rectangle.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

var cornerNames = [...]string{"top-left", "top-right", "bottom-left", "bottom-right"}

func (c Corner) String() string { return cornerNames[c] }

// ResizeRect moves the two edges adjacent to c by (dx, dy). The corner diagonally
// opposite to c keeps its exact coordinates.
func (c Corner) ResizeRect(initial Rect, dy, dx float32) Rect {
	r := initial
	switch c {
	case TopLeft:
		r.Y += dy
		r.X += dx
		r.Width -= dx
		r.Height -= dy
	case TopRight:
		r.Y += dy
		r.Width += dx
		r.Height -= dy
	case BottomLeft:
		r.X += dx
		r.Width -= dx
		r.Height += dy
	case BottomRight:
		r.Width += dx
		r.Height += dy
	}
	return r
}

// Opposite returns the diagonally opposite corner.
func (c Corner) Opposite() Corner {
	switch c {
	case TopLeft:
		return BottomRight
	case TopRight:
		return BottomLeft
	case BottomLeft:
		return TopRight
	default:
		return TopLeft
	}
}

// SideOrCorner is the grab target under the cursor: exactly one of a side or a corner.
type SideOrCorner struct {
	side     Side
	corner   Corner
	isCorner bool
}

// OfSide wraps a side.
func OfSide(s Side) SideOrCorner { return SideOrCorner{side: s} }

// OfCorner wraps a corner.
func OfCorner(c Corner) SideOrCorner { return SideOrCorner{corner: c, isCorner: true} }

// Side returns the side and true when sc holds a side.
func (sc SideOrCorner) Side() (Side, bool) { return sc.side, !sc.isCorner }

// Corner returns the corner and true when sc holds a corner.
func (sc SideOrCorner) Corner() (Corner, bool) { return sc.corner, sc.isCorner }

func (sc SideOrCorner) String() string {
	if sc.isCorner {
		return sc.corner.String()
	}
	return sc.side.String()
}

// ResizeRect applies the side or corner resize to initial.
func (sc SideOrCorner) ResizeRect(initial Rect, dy, dx float32) Rect {
	if sc.isCorner {
		return sc.corner.ResizeRect(initial, dy, dx)
	}
	return sc.side.ResizeRect(initial, dy, dx)
}

// Corners are the four corner points of a normalized rectangle.
type Corners struct {
	TopLeft     Point
	TopRight    Point
	BottomLeft  Point
	BottomRight Point
}

// Point returns the position of corner c.
func (cs Corners) Point(c Corner) Point {
	switch c {
	case TopLeft:
		return cs.TopLeft
	case TopRight:
		return cs.TopRight
	case BottomLeft:
		return cs.BottomLeft
	default:
		return cs.BottomRight
	}
}

// Nearest returns the corner closest to p. On equal distance the first corner in
// top-left, top-right, bottom-left, bottom-right order wins.
func (cs Corners) Nearest(p Point) (Point, Corner) {
	best := TopLeft
	bestDist := p.Distance(cs.TopLeft)
	for _, c := range []Corner{TopRight, BottomLeft, BottomRight} {
		if d := p.Distance(cs.Point(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return cs.Point(best), best
}

// SideAt hit-tests p against the grab zones. Corner zones overlap the side zones at
// the vertices, so corners are tested first.
func (cs Corners) SideAt(p Point) (SideOrCorner, bool) {
	const half = InteractionArea / 2
	square := func(c Point) Rect {
		return Rect{X: c.X - half, Y: c.Y - half, Width: InteractionArea, Height: InteractionArea}
	}
	zones := []struct {
		area Rect
		hit  SideOrCorner
	}{
		{square(cs.TopLeft), OfCorner(TopLeft)},
		{square(cs.TopRight), OfCorner(TopRight)},
		{square(cs.BottomLeft), OfCorner(BottomLeft)},
		{square(cs.BottomRight), OfCorner(BottomRight)},
		{Rect{X: cs.TopLeft.X, Y: cs.TopLeft.Y - half, Width: cs.TopRight.X - cs.TopLeft.X, Height: InteractionArea}, OfSide(SideTop)},
		{Rect{X: cs.TopRight.X - half, Y: cs.TopRight.Y, Width: InteractionArea, Height: cs.BottomRight.Y - cs.TopRight.Y}, OfSide(SideRight)},
		{Rect{X: cs.TopLeft.X - half, Y: cs.TopLeft.Y, Width: InteractionArea, Height: cs.BottomLeft.Y - cs.TopLeft.Y}, OfSide(SideLeft)},
		{Rect{X: cs.BottomLeft.X, Y: cs.BottomLeft.Y - half, Width: cs.BottomRight.X - cs.BottomLeft.X, Height: InteractionArea}, OfSide(SideBottom)},
	}
	for _, z := range zones {
		if z.area.Contains(p) {
			return z.hit, true
		}
	}
	return SideOrCorner{}, false
}

// Direction of a keyboard movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string { return directionNames[d] }

// ParseDirection parses up, down, left or right.
func ParseDirection(s string) (Direction, error) {
	for i, n := range directionNames {
		if strings.EqualFold(s, n) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("invalid direction %q: expected one of %s", s, strings.Join(directionNames[:], ", "))
}

// Place is a position of the selection relative to the image.
type Place int

const (
	Center Place = iota
	XCenter
	YCenter
	PlaceTopLeft
	PlaceTopRight
	PlaceBottomLeft
	PlaceBottomRight
	PlaceTop
	PlaceBottom
	PlaceLeft
	PlaceRight
)

var placeNames = [...]string{
	"center", "x-center", "y-center",
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top", "bottom", "left", "right",
}

func (p Place) String() string { return placeNames[p] }

// ParsePlace parses a kebab-case place name.
func ParsePlace(s string) (Place, error) {
	for i, n := range placeNames {
		if strings.EqualFold(s, n) {
			return Place(i), nil
		}
	}
	return 0, fmt.Errorf("invalid place %q: expected one of %s", s, strings.Join(placeNames[:], ", "))
}
