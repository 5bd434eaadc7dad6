package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TacticBoard/internal/brush"
	"TacticBoard/internal/editor"
	"TacticBoard/internal/state"
)

func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func newTestBoard(t *testing.T) (*BoardWidget, *int) {
	test.NewTempApp(t)
	ed := editor.New(state.NewBoard())
	w := NewBoardWidget(ed, 10, nil)
	changes := 0
	w.OnChange = func() { changes++ }
	return w, &changes
}

func TestBoardWidgetPenStroke(t *testing.T) {
	w, changes := newTestBoard(t)
	w.Editor().ChangeTool(brush.ToolPen)

	w.MouseDown(press(10, 10))
	w.Dragged(drag(20, 20))
	w.Dragged(drag(30, 20))
	w.DragEnd()
	w.MouseUp(press(30, 20))

	strokes := w.Editor().Board().Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, state.Point{X: 1, Y: 1}, strokes[0].Start)
	assert.Equal(t, []state.Point{{X: 2, Y: 2}, {X: 3, Y: 2}}, strokes[0].Points)
	assert.Equal(t, 1, *changes)
}

func TestBoardWidgetDragsToken(t *testing.T) {
	w, changes := newTestBoard(t)
	id := w.Editor().AddToken(state.ColorPurple)
	ref := state.TokenRef(state.ColorPurple, id)

	w.MouseDown(press(200, 200))
	target, ok := w.Editor().Selected()
	require.True(t, ok)
	assert.Equal(t, ref, target.Ref)

	w.Dragged(drag(300, 250))
	w.MouseUp(press(300, 250))

	pos, ok := w.Editor().Board().Position(ref)
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 30, Y: 25}, pos)
	assert.Equal(t, 1, *changes)
}

func TestBoardWidgetCurveTaps(t *testing.T) {
	w, changes := newTestBoard(t)
	w.Editor().ChangeTool(brush.ToolCurve3)

	for _, x := range []float32{100, 200, 300, 400} {
		w.Tapped(&fyne.PointEvent{Position: fyne.NewPos(x, 150)})
	}
	curves := w.Editor().Board().Curves()
	require.Len(t, curves, 1)
	assert.Equal(t, state.Point{X: 20, Y: 15}, curves[0].Points[0])
	assert.Equal(t, 1, *changes)
}

func TestBoardWidgetRenderer(t *testing.T) {
	w, _ := newTestBoard(t)
	r := test.WidgetRenderer(w)
	// background, field and two end zone lines
	assert.Len(t, r.Objects(), 4)

	w.Editor().AddToken(state.ColorRed)
	w.Editor().AddDisc()
	w.Refresh()
	assert.Len(t, r.Objects(), 4+2+3)

	assert.Equal(t, fyne.NewSize(1200, 570), r.MinSize())
}
