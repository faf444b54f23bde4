package selection

import (
	"regionshot/src/geometry"
	"regionshot/src/messages"
)

// Selection is the selected area of the image.
type Selection struct {
	Rect   geometry.Rect
	Status Status
	// IsFirst marks the first selection made in this session. Releasing it runs
	// the accept-on-select action.
	IsFirst bool
}

// New returns a zero-sized selection at p that is being created.
func New(p geometry.Point, isFirst bool) *Selection {
	return &Selection{
		Rect:    geometry.Rect{X: p.X, Y: p.Y},
		Status:  Create{},
		IsFirst: isFirst,
	}
}

// FromRect returns an idle selection covering r.
func FromRect(r geometry.Rect, isFirst bool) *Selection {
	return &Selection{Rect: r, Status: Idle{}, IsFirst: isFirst}
}

// Norm returns the normalized selection rectangle.
func (s *Selection) Norm() geometry.Rect { return s.Rect.Norm() }

// Corners returns the corners of the normalized rectangle.
func (s *Selection) Corners() geometry.Corners { return s.Rect.Corners() }

// IsIdle reports whether no drag is in progress.
func (s *Selection) IsIdle() bool {
	_, ok := s.Status.(Idle)
	return ok
}

// Input is the button and modifier state the selection reacts to.
type Input struct {
	LeftDown  bool
	RightDown bool
	ShiftDown bool
	CtrlDown  bool
}

// Speed returns the drag speed implied by the held modifiers.
func (in Input) Speed() Speed {
	if in.ShiftDown {
		return Slow
	}
	return Regular
}

// PressLeft starts resizing when cursor is on an edge or corner and moving when
// it is inside. It returns false when the press is elsewhere; the caller then
// starts a new selection.
func (s *Selection) PressLeft(cursor geometry.Point) bool {
	if side, ok := s.Corners().SideAt(cursor); ok {
		s.Status = Resize{InitialRect: s.Norm(), InitialCursor: cursor, Side: side}
		return true
	}
	if s.Norm().Contains(cursor) {
		s.Status = Move{InitialRectPos: s.Norm().Pos(), InitialCursor: cursor}
		return true
	}
	return false
}

// ReleaseLeft ends the drag. For the first selection, with ctrl not held, it
// returns the accept-on-select action to dispatch instead.
func (s *Selection) ReleaseLeft(in Input, accept messages.AcceptOnSelect) messages.Action {
	s.Status = Idle{}
	if a := accept.Action(); a != nil && s.IsFirst && !in.CtrlDown {
		return a
	}
	return nil
}

// PressRight snaps the nearest corner to cursor and keeps resizing from that
// corner while the button is held. It also opts this selection out of
// accept-on-select. width and height bound the image.
func (s *Selection) PressRight(cursor geometry.Point, width, height float32) {
	cursor = cursor.Clamp(width, height)
	norm := s.Norm()
	point, corner := norm.Corners().Nearest(cursor)
	s.Rect = corner.ResizeRect(norm, cursor.Y-point.Y, cursor.X-point.X)
	s.Status = Resize{InitialRect: s.Rect, InitialCursor: cursor, Side: geometry.OfCorner(corner)}
	s.IsFirst = false
}

// ReleaseRight ends the snap resize.
func (s *Selection) ReleaseRight() {
	s.Status = Idle{}
}

// PressShift re-anchors an ongoing move or resize at the current rect and
// cursor, so switching to slow speed does not make the selection jump.
func (s *Selection) PressShift(cursor geometry.Point) {
	switch st := s.Status.(type) {
	case Resize:
		s.Status = Resize{InitialRect: s.Rect, InitialCursor: cursor, Side: st.Side}
	case Move:
		s.Rect = s.Norm()
		s.Status = Move{InitialRectPos: s.Rect.Pos(), InitialCursor: cursor}
	}
}

// CursorMoved applies a pointer move. width and height bound the image; the
// window keeps reporting drags that leave it, so the result is clamped.
func (s *Selection) CursorMoved(cursor geometry.Point, speed Speed, width, height float32) {
	switch st := s.Status.(type) {
	case Create:
		size := geometry.Size{Width: cursor.X - s.Rect.X, Height: cursor.Y - s.Rect.Y}
		s.Rect = s.Rect.WithSize(size).Clamp(width, height)
	case Resize:
		s.resize(st, cursor, speed, width, height)
	case Move:
		s.move(st, cursor, speed, width, height)
	}
}

// resize works from the anchor, so clamping here never accumulates drift.
func (s *Selection) resize(st Resize, cursor geometry.Point, speed Speed, width, height float32) {
	d := cursor.Sub(st.InitialCursor).Scale(float32(speed))
	s.Rect = st.Side.ResizeRect(st.InitialRect, d.Y, d.X).Clamp(width, height)
}

func (s *Selection) move(st Move, cursor geometry.Point, speed Speed, width, height float32) {
	r := s.Norm()
	pos := st.InitialRectPos.Add(cursor.Sub(st.InitialCursor).Scale(float32(speed)))

	oldX, oldY := int(pos.X), int(pos.Y)
	pos.X = max(min(pos.X, width-r.Width), 0)
	pos.Y = max(min(pos.Y, height-r.Height), 0)
	s.Rect = r.WithPos(pos)

	// hitting the image border re-anchors so the cursor stays in sync
	if int(pos.X) != oldX || int(pos.Y) != oldY {
		s.Status = Move{InitialRectPos: pos, InitialCursor: cursor}
	}
}

// mustResize returns the resize state or panics; reaching a resize-only path in
// another status is a state machine bug.
func (s *Selection) mustResize() Resize {
	st, ok := s.Status.(Resize)
	if !ok {
		panic("selection: expected resize status, got " + s.Status.String())
	}
	return st
}

// ResizeSide returns the side or corner being resized. It panics when the
// selection is not resizing.
func (s *Selection) ResizeSide() geometry.SideOrCorner {
	return s.mustResize().Side
}
