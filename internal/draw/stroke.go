// Package draw turns pointer gestures into finished strokes and curves.
package draw

import (
	"TacticBoard/internal/brush"
	"TacticBoard/internal/state"
)

// StrokeSink receives finished strokes.
type StrokeSink interface {
	AddStroke(s state.Stroke) string
}

// StrokeBuilder records a freehand path while the pen tool is active.
// A gesture is pointer down, any number of moves, then pointer up.
type StrokeBuilder struct {
	sink    StrokeSink
	drawing bool
	current *state.Stroke
}

func NewStrokeBuilder(sink StrokeSink) *StrokeBuilder {
	return &StrokeBuilder{sink: sink}
}

// PointerDown starts a new stroke at pos when mode uses the pen.
func (b *StrokeBuilder) PointerDown(mode brush.Mode, pos state.Point) {
	if mode.Tool != brush.ToolPen {
		return
	}
	s := state.NewStroke(pos)
	b.drawing = true
	b.current = &s
}

// PointerMove extends the stroke in progress.
func (b *StrokeBuilder) PointerMove(mode brush.Mode, pos state.Point) {
	if mode.Tool != brush.ToolPen || !b.drawing || b.current == nil {
		return
	}
	next := b.current.Append(pos)
	b.current = &next
}

// PointerUp hands the stroke in progress to the sink and reports whether
// one was finished. Without a stroke in progress it does nothing.
func (b *StrokeBuilder) PointerUp(mode brush.Mode) bool {
	if mode.Tool != brush.ToolPen || !b.drawing {
		return false
	}
	b.drawing = false
	if b.current == nil {
		return false
	}
	finished := *b.current
	b.current = nil
	b.sink.AddStroke(finished)
	return true
}

// Clear drops the stroke in progress. Finished strokes are not touched.
func (b *StrokeBuilder) Clear() {
	b.drawing = false
	b.current = nil
}

func (b *StrokeBuilder) Drawing() bool { return b.drawing }

// Current returns the stroke in progress, if any.
func (b *StrokeBuilder) Current() (state.Stroke, bool) {
	if b.current == nil {
		return state.Stroke{}, false
	}
	return *b.current, true
}
