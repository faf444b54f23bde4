// Package selection implements the selected rectangle and the state machine that
// drives it from pointer and keyboard input.
package selection

import (
	"fmt"

	"regionshot/src/geometry"
)

// Status is what the selection is doing right now: Idle, Create, Move or Resize.
type Status interface {
	fmt.Stringer
	isStatus()
}

// Idle means no interaction is in progress.
type Idle struct{}

// Create means the selection is being drawn by the initial drag.
type Create struct{}

// Move means the whole selection is being dragged. Positions are computed from
// the anchor recorded when the drag started.
type Move struct {
	InitialRectPos geometry.Point
	InitialCursor  geometry.Point
}

// Resize means one side or corner is being dragged from the anchor rect.
type Resize struct {
	InitialRect   geometry.Rect
	InitialCursor geometry.Point
	Side          geometry.SideOrCorner
}

func (Idle) isStatus()   {}
func (Create) isStatus() {}
func (Move) isStatus()   {}
func (Resize) isStatus() {}

func (Idle) String() string   { return "idle" }
func (Create) String() string { return "create" }
func (m Move) String() string {
	return fmt.Sprintf("move from %v (cursor %v)", m.InitialRectPos, m.InitialCursor)
}
func (r Resize) String() string {
	return fmt.Sprintf("resize %s from %v (cursor %v)", r.Side, r.InitialRect, r.InitialCursor)
}

// Speed scales cursor deltas while dragging.
type Speed float32

const (
	Regular Speed = 1.0
	Slow    Speed = 0.1
)
