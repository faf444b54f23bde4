// Package geometry holds the rectangle math behind the selection: normalization,
// corner and side hit-testing, anchored resizing and the WxH+X+Y text form.
package geometry

import "math"

// Point is a position in image pixel coordinates.
type Point struct {
	X float32
	Y float32
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Scale multiplies both coordinates by f.
func (p Point) Scale(f float32) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Distance is the Euclidean distance between p and q.
func (p Point) Distance(q Point) float32 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return float32(math.Hypot(dx, dy))
}

// Size is a width and a height.
type Size struct {
	Width  float32
	Height float32
}

// Rect is an axis-aligned rectangle. Width and Height may be negative while the
// user drags up or left; call Norm before reading corners.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// NewRect builds a rectangle from a position and a size.
func NewRect(pos Point, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Norm folds negative sizes into the position so that the top-left corner is
// geometrically top-left. Norm is idempotent.
func (r Rect) Norm() Rect {
	if math.Signbit(float64(r.Width)) {
		r.X += r.Width
		r.Width = -r.Width
	}
	if math.Signbit(float64(r.Height)) {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Pos is the stored top-left position (not normalized).
func (r Rect) Pos() Point { return Point{X: r.X, Y: r.Y} }

// Size is the stored size (not normalized).
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// WithPos returns a copy of r moved to p.
func (r Rect) WithPos(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// WithSize returns a copy of r with size s.
func (r Rect) WithSize(s Size) Rect {
	r.Width, r.Height = s.Width, s.Height
	return r
}

// Contains reports whether p lies inside the normalized rectangle. The right and
// bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	n := r.Norm()
	return n.X <= p.X && p.X < n.X+n.Width && n.Y <= p.Y && p.Y < n.Y+n.Height
}

// Center of the normalized rectangle.
func (r Rect) Center() Point {
	n := r.Norm()
	return Point{X: n.X + n.Width/2, Y: n.Y + n.Height/2}
}

// Corners derives the four corners from the normalized rectangle.
func (r Rect) Corners() Corners {
	n := r.Norm()
	tl := n.Pos()
	return Corners{
		TopLeft:     tl,
		TopRight:    Point{X: tl.X + n.Width, Y: tl.Y},
		BottomLeft:  Point{X: tl.X, Y: tl.Y + n.Height},
		BottomRight: Point{X: tl.X + n.Width, Y: tl.Y + n.Height},
	}
}

// Within reports whether the normalized rectangle fits inside [0,w]x[0,h].
func (r Rect) Within(w, h float32) bool {
	n := r.Norm()
	return n.X >= 0 && n.Y >= 0 && n.X+n.Width <= w && n.Y+n.Height <= h
}

// Clamp limits p to [0,w]x[0,h].
func (p Point) Clamp(w, h float32) Point {
	return Point{X: max(min(p.X, w), 0), Y: max(min(p.Y, h), 0)}
}

// Clamp limits both edges of r to [0,w]x[0,h]. A rectangle with a negative size
// keeps its orientation.
func (r Rect) Clamp(w, h float32) Rect {
	start := r.Pos().Clamp(w, h)
	end := Point{X: r.X + r.Width, Y: r.Y + r.Height}.Clamp(w, h)
	return Rect{X: start.X, Y: start.Y, Width: end.X - start.X, Height: end.Y - start.Y}
}
