package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TacticBoard/internal/state"
)

func TestSelectionExclusivity(t *testing.T) {
	board := state.NewBoard()
	a := state.TokenRef(state.ColorRed, board.AddToken(state.ColorRed, state.Point{X: 1, Y: 1}))
	b := state.DiscRef(board.PlaceDisc(state.Point{X: 5, Y: 5}))
	c := New(board)

	c.Select(Target{Ref: a, Position: state.Point{X: 1, Y: 1}}, false, state.Point{})
	assert.True(t, c.Decoration(a).Highlighted)
	assert.Equal(t, Selected, c.Phase())

	c.Select(Target{Ref: b, Position: state.Point{X: 5, Y: 5}}, true, state.Point{X: 5, Y: 5})
	assert.False(t, c.Decoration(a).Highlighted)
	assert.True(t, c.Decoration(b).Highlighted)
	got, ok := c.Target()
	require.True(t, ok)
	assert.Equal(t, b, got.Ref)
	assert.Equal(t, Dragging, c.Phase())

	c.Unselect()
	assert.False(t, c.Decoration(a).Highlighted)
	assert.False(t, c.Decoration(b).Highlighted)
	_, ok = c.Target()
	assert.False(t, ok)
	assert.Equal(t, Idle, c.Phase())

	// unselecting an idle controller is fine
	c.Unselect()
	assert.Equal(t, Idle, c.Phase())
}

func TestDragOffset(t *testing.T) {
	board := state.NewBoard()
	id := board.AddToken(state.ColorBlue, state.Point{X: 10, Y: 10})
	ref := state.TokenRef(state.ColorBlue, id)
	c := New(board)

	c.Select(Target{Ref: ref, Position: state.Point{X: 10, Y: 10}}, true, state.Point{X: 12, Y: 11})
	assert.Equal(t, state.Point{X: 2, Y: 1}, c.DragOffset())

	assert.True(t, c.Move(state.Point{X: 20, Y: 15}))
	pos, ok := board.Position(ref)
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 18, Y: 14}, pos)

	got, _ := c.Target()
	assert.Equal(t, state.Point{X: 18, Y: 14}, got.Position)
}

func TestMoveOnlyWhileDragging(t *testing.T) {
	board := state.NewBoard()
	id := board.AddToken(state.ColorRed, state.Point{X: 3, Y: 3})
	ref := state.TokenRef(state.ColorRed, id)
	c := New(board)

	assert.False(t, c.Move(state.Point{X: 9, Y: 9}))

	c.Select(Target{Ref: ref, Position: state.Point{X: 3, Y: 3}}, false, state.Point{})
	assert.False(t, c.Move(state.Point{X: 9, Y: 9}))

	c.Select(Target{Ref: ref, Position: state.Point{X: 3, Y: 3}}, true, state.Point{X: 3, Y: 3})
	c.UnsetDrag()
	assert.Equal(t, Selected, c.Phase())
	assert.Equal(t, state.Point{}, c.DragOffset())
	assert.False(t, c.Move(state.Point{X: 9, Y: 9}))

	// pointer up with nothing being dragged
	c.UnsetDrag()
	assert.Equal(t, Selected, c.Phase())

	pos, _ := board.Position(ref)
	assert.Equal(t, state.Point{X: 3, Y: 3}, pos)
}

func TestMoveStrokeIsNotApplied(t *testing.T) {
	board := state.NewBoard()
	key := board.AddStroke(state.NewStroke(state.Point{}))
	c := New(board)

	c.Select(Target{Ref: state.StrokeRef(key)}, true, state.Point{X: 1, Y: 1})
	assert.False(t, c.Move(state.Point{X: 4, Y: 4}))
	assert.True(t, c.IsSelected(state.StrokeRef(key)))
}

func TestMoveAfterTargetDeleted(t *testing.T) {
	board := state.NewBoard()
	id := board.PlaceDisc(state.Point{})
	c := New(board)
	c.Select(Target{Ref: state.DiscRef(id)}, true, state.Point{})

	board.RemoveDisc(id)
	assert.False(t, c.Move(state.Point{X: 1, Y: 1}))
}

func TestDecorate(t *testing.T) {
	assert.Equal(t, Decoration{}, Decorate(false))
	assert.True(t, Decorate(true).Highlighted)
	assert.Equal(t, "dragging", Dragging.String())
}
