package selection

import "regionshot/src/geometry"

// The keyboard commands below operate on the normalized rectangle and write it
// back. width and height are the image dimensions.

// MoveBy shifts the selection, keeping it inside the image.
func (s *Selection) MoveBy(dir geometry.Direction, amount, width, height float32) {
	r := s.Norm()
	switch dir {
	case geometry.Up:
		r.Y = max(r.Y-amount, 0)
	case geometry.Down:
		r.Y = min(r.Y+amount, height-r.Height)
	case geometry.Left:
		r.X = max(r.X-amount, 0)
	case geometry.Right:
		r.X = min(r.X+amount, width-r.Width)
	}
	s.Rect = r
}

// Extend grows the selection towards dir. The opposite edge stays fixed and the
// moving edge stops at the image border.
func (s *Selection) Extend(dir geometry.Direction, amount, width, height float32) {
	r := s.Norm()
	bottom, right := r.Y+r.Height, r.X+r.Width
	switch dir {
	case geometry.Up:
		r.Y = max(r.Y-amount, 0)
		r.Height = min(r.Height+amount, bottom)
	case geometry.Down:
		r.Height = min(r.Height+amount, height-r.Y)
	case geometry.Left:
		r.X = max(r.X-amount, 0)
		r.Width = min(r.Width+amount, right)
	case geometry.Right:
		r.Width = min(r.Width+amount, width-r.X)
	}
	s.Rect = r
}

// Shrink pulls the edge facing dir inwards. The size never goes below zero.
func (s *Selection) Shrink(dir geometry.Direction, amount float32) {
	r := s.Norm()
	switch dir {
	case geometry.Up:
		r.Y = min(r.Y+amount, r.Y+r.Height)
		r.Height = max(r.Height-amount, 0)
	case geometry.Down:
		r.Height = max(r.Height-amount, 0)
	case geometry.Left:
		r.X = min(r.X+amount, r.X+r.Width)
		r.Width = max(r.Width-amount, 0)
	case geometry.Right:
		r.Width = max(r.Width-amount, 0)
	}
	s.Rect = r
}

// SetWidth sets the width to n, limited by the right image border.
func (s *Selection) SetWidth(n, width float32) {
	r := s.Norm()
	r.Width = min(n, width-r.X)
	s.Rect = r
}

// SetHeight sets the height to n, limited by the bottom image border.
func (s *Selection) SetHeight(n, height float32) {
	r := s.Norm()
	r.Height = min(n, height-r.Y)
	s.Rect = r
}

// Goto moves the selection to place, keeping its size.
func (s *Selection) Goto(place geometry.Place, width, height float32) {
	r := s.Norm()
	right, bottom := width-r.Width, height-r.Height
	switch place {
	case geometry.Center:
		r.X, r.Y = right/2, bottom/2
	case geometry.XCenter:
		r.X = right / 2
	case geometry.YCenter:
		r.Y = bottom / 2
	case geometry.PlaceTopLeft:
		r.X, r.Y = 0, 0
	case geometry.PlaceTopRight:
		r.X, r.Y = right, 0
	case geometry.PlaceBottomLeft:
		r.X, r.Y = 0, bottom
	case geometry.PlaceBottomRight:
		r.X, r.Y = right, bottom
	case geometry.PlaceTop:
		r.Y = 0
	case geometry.PlaceBottom:
		r.Y = bottom
	case geometry.PlaceLeft:
		r.X = 0
	case geometry.PlaceRight:
		r.X = right
	}
	s.Rect = r
}

// SetTopLeft moves the top-left corner to p, keeping the size.
func (s *Selection) SetTopLeft(p geometry.Point) {
	s.Rect = s.Norm().WithPos(p)
}

// SetBottomRight stretches the selection so its bottom-right corner is at p.
func (s *Selection) SetBottomRight(p geometry.Point) {
	r := s.Norm()
	r.Width, r.Height = p.X-r.X, p.Y-r.Y
	s.Rect = r
}

// FullScreen returns an idle selection covering the whole image.
func FullScreen(width, height float32, isFirst bool) *Selection {
	return FromRect(geometry.Rect{Width: width, Height: height}, isFirst)
}
