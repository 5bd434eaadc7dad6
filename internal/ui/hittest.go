package ui

import (
	"TacticBoard/internal/selection"
	"TacticBoard/internal/state"
)

// curveSamples is how finely curves are flattened for drawing and hit tests.
const curveSamples = 24

// HitTest finds the topmost entity under p. Curves and strokes are drawn
// above discs, which are drawn above tokens. Lines count as hit within
// tolerance board units.
func HitTest(b *state.Board, p state.Point, tolerance float64) *selection.Target {
	curves := b.Curves()
	for i := len(curves) - 1; i >= 0; i-- {
		path := curves[i].Sample(curveSamples)
		if nearPath(p, path, tolerance) {
			return &selection.Target{Ref: state.CurveRef(curves[i].ID)}
		}
	}
	strokes := b.Strokes()
	for i := len(strokes) - 1; i >= 0; i-- {
		if nearPath(p, strokes[i].Path(), tolerance) {
			return &selection.Target{Ref: state.StrokeRef(strokes[i].ID)}
		}
	}
	discs := b.Discs()
	for i := len(discs) - 1; i >= 0; i-- {
		d := discs[i]
		if state.Distance(p, d.Position) <= state.DiscRadius {
			return &selection.Target{Ref: state.DiscRef(d.Object.ID), Position: d.Position}
		}
	}
	tokens := b.AllTokens()
	for i := len(tokens) - 1; i >= 0; i-- {
		t := tokens[i]
		if state.Distance(p, t.Position) <= state.TokenRadius {
			return &selection.Target{Ref: state.TokenRef(t.Object.Color, t.Object.ID), Position: t.Position}
		}
	}
	return nil
}

func nearPath(p state.Point, path []state.Point, tolerance float64) bool {
	if len(path) == 0 {
		return false
	}
	probe := state.BoundsOf([]state.Point{p}, tolerance)
	if !state.BoundsOf(path, 0).Overlaps(probe) {
		return false
	}
	return state.PolylineDistance(p, path) <= tolerance
}
