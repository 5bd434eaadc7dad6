// Package selection tracks the single selected entity and drags it around.
package selection

import (
	"TacticBoard/internal/state"
)

// Target is a hit-tested entity together with the position it had when it
// was hit. Strokes and curves have no position of their own and use the
// zero point.
type Target struct {
	Ref      state.EntityRef
	Position state.Point
}

// ToLocal converts a point in the parent's space to the target's own space.
func (t Target) ToLocal(p state.Point) state.Point {
	return p.Sub(t.Position)
}

// Positioner applies position changes requested by a drag.
type Positioner interface {
	SetPosition(ref state.EntityRef, pos state.Point) bool
}

type Phase int

const (
	Idle Phase = iota
	Selected
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Selected:
		return "selected"
	case Dragging:
		return "dragging"
	}
	return "idle"
}

// Controller holds at most one selected target. Pointer positions passed
// to it are already in the board's local space.
type Controller struct {
	store    Positioner
	target   *Target
	dragging bool
	offset   state.Point
}

func New(store Positioner) *Controller {
	return &Controller{store: store}
}

// Select replaces the current target. With drag set, the offset between
// pointer and target is recorded and dragging starts.
func (c *Controller) Select(t Target, drag bool, pointer state.Point) {
	c.Unselect()
	c.target = &t
	if drag {
		c.dragging = true
		c.offset = t.ToLocal(pointer)
	}
}

// Move drags the target so that it keeps its offset to the pointer.
// It reports whether a position update was applied.
func (c *Controller) Move(pointer state.Point) bool {
	if !c.dragging || c.target == nil {
		return false
	}
	pos := pointer.Sub(c.offset)
	if !c.store.SetPosition(c.target.Ref, pos) {
		return false
	}
	c.target.Position = pos
	return true
}

// UnsetDrag stops dragging but keeps the selection.
func (c *Controller) UnsetDrag() {
	c.dragging = false
	c.offset = state.Point{}
}

// Unselect drops the target.
func (c *Controller) Unselect() {
	c.target = nil
	c.UnsetDrag()
}

// Target returns the selected target, if any.
func (c *Controller) Target() (Target, bool) {
	if c.target == nil {
		return Target{}, false
	}
	return *c.target, true
}

func (c *Controller) Phase() Phase {
	switch {
	case c.target == nil:
		return Idle
	case c.dragging:
		return Dragging
	}
	return Selected
}

func (c *Controller) DragOffset() state.Point { return c.offset }

func (c *Controller) IsSelected(ref state.EntityRef) bool {
	return c.target != nil && c.target.Ref == ref
}

// Decoration returns how ref should be drawn given the current selection.
func (c *Controller) Decoration(ref state.EntityRef) Decoration {
	return Decorate(c.IsSelected(ref))
}

// Decoration is the extra styling the renderer applies to an entity.
type Decoration struct {
	Highlighted bool
	// ShadowOffset is the drop-shadow displacement in board units.
	ShadowOffset state.Point
}

// Decorate maps selection state to styling.
func Decorate(selected bool) Decoration {
	if !selected {
		return Decoration{}
	}
	return Decoration{Highlighted: true, ShadowOffset: state.Point{X: 0.4, Y: 0.4}}
}
