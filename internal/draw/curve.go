package draw

import (
	"TacticBoard/internal/brush"
	"TacticBoard/internal/state"
)

// CurveSink receives finished curves.
type CurveSink interface {
	AddCurve(c state.Curve) string
}

// CurveBuilder collects curve points one click at a time. The first click
// only starts the curve; each following click adds one point until the
// tool's point count is reached.
type CurveBuilder struct {
	sink      CurveSink
	building  bool
	remaining int
	current   *state.Curve
}

func NewCurveBuilder(sink CurveSink) *CurveBuilder {
	return &CurveBuilder{sink: sink}
}

// Click feeds one click and reports whether it completed a curve.
func (b *CurveBuilder) Click(mode brush.Mode, pos state.Point) bool {
	n := mode.Tool.CurvePoints()
	if n == 0 {
		return false
	}
	if !b.building && b.remaining == 0 {
		b.building = true
		b.remaining = n
		b.current = &state.Curve{Points: []state.Point{}}
		return false
	}
	if !b.building || b.remaining <= 0 || b.current == nil {
		return false
	}

	b.remaining--
	next := b.current.AddPoint(pos)
	if b.remaining > 0 {
		b.current = &next
		return false
	}
	b.building = false
	b.current = nil
	b.sink.AddCurve(next)
	return true
}

// Clear abandons the curve in progress.
func (b *CurveBuilder) Clear() {
	b.building = false
	b.remaining = 0
	b.current = nil
}

func (b *CurveBuilder) Building() bool { return b.building }

// Remaining is the number of clicks still needed to finish the curve.
func (b *CurveBuilder) Remaining() int { return b.remaining }

// Current returns the curve in progress, if any.
func (b *CurveBuilder) Current() (state.Curve, bool) {
	if b.current == nil {
		return state.Curve{}, false
	}
	return *b.current, true
}
