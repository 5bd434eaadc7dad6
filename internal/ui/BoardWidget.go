package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"TacticBoard/internal/editor"
	"TacticBoard/internal/selection"
	"TacticBoard/internal/state"
)

var (
	fieldGreen   = color.NRGBA{R: 0x35, G: 0xcc, B: 0x5a, A: 0xff}
	lineWhite    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	strokeRed    = color.NRGBA{R: 0xff, A: 0xff}
	shadowColor  = color.NRGBA{A: 0x60}
	highlightRim = color.NRGBA{R: 0xff, G: 0xd7, A: 0xff}
)

// hitTolerance is how close, in board units, a pointer must be to a line.
const hitTolerance = 0.8

// BoardWidget shows the field and forwards pointer input to the editor.
// Positions on screen are board units multiplied by scale.
type BoardWidget struct {
	widget.BaseWidget
	ed    *editor.Editor
	scale float32
	log   *zap.Logger

	pressed bool

	// OnChange runs after any edit that changed the board.
	OnChange func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Tappable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(ed *editor.Editor, scale float32, log *zap.Logger) *BoardWidget {
	if scale <= 0 {
		scale = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	b := &BoardWidget{ed: ed, scale: scale, log: log}
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Editor() *editor.Editor { return b.ed }

// Changed redraws the board and notifies OnChange.
func (b *BoardWidget) Changed() {
	b.Refresh()
	if b.OnChange != nil {
		b.OnChange()
	}
}

func (b *BoardWidget) toLocal(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X / b.scale), Y: float64(p.Y / b.scale)}
}

func (b *BoardWidget) toScreen(p state.Point) fyne.Position {
	return fyne.NewPos(float32(p.X)*b.scale, float32(p.Y)*b.scale)
}

func (b *BoardWidget) length(v float64) float32 { return float32(v) * b.scale }

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = true
	pos := b.toLocal(e.Position)
	b.ed.PointerDown(pos, HitTest(b.ed.Board(), pos, hitTolerance))
	b.Refresh()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.ed.PointerMove(b.toLocal(e.Position))
	b.Refresh()
}

// MouseUp and DragEnd both finish the gesture, whichever comes first.
func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.finishGesture()
}

func (b *BoardWidget) DragEnd() {
	b.finishGesture()
}

func (b *BoardWidget) finishGesture() {
	if !b.pressed {
		return
	}
	b.pressed = false
	before := len(b.ed.Board().Strokes())
	_, selected := b.ed.Selected()
	b.ed.PointerUp()
	if len(b.ed.Board().Strokes()) != before || selected {
		b.Changed()
		return
	}
	b.Refresh()
}

func (b *BoardWidget) Tapped(e *fyne.PointEvent) {
	before := len(b.ed.Board().Curves())
	b.ed.Click(b.toLocal(e.Position))
	if len(b.ed.Board().Curves()) != before {
		b.log.Debug("curve finished", zap.Int("curves", before+1))
		b.Changed()
		return
	}
	b.Refresh()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.NRGBA{R: 0xf5, G: 0xf6, B: 0xf8, A: 0xff})
	r.rebuild()
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardWidgetRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) rebuild() {
	b := r.board
	board := b.ed.Board()
	objects := []fyne.CanvasObject{r.background}
	objects = append(objects, r.field()...)

	for _, t := range board.AllTokens() {
		ref := state.TokenRef(t.Object.Color, t.Object.ID)
		objects = append(objects, r.token(t, b.ed.Decoration(ref))...)
	}
	for _, d := range board.Discs() {
		objects = append(objects, r.disc(d, b.ed.Decoration(state.DiscRef(d.Object.ID)))...)
	}
	for _, s := range board.Strokes() {
		objects = append(objects, r.path(s.Path(), b.ed.Decoration(state.StrokeRef(s.ID)))...)
	}
	for _, c := range board.Curves() {
		objects = append(objects, r.path(c.Sample(curveSamples), b.ed.Decoration(state.CurveRef(c.ID)))...)
	}
	if s, ok := b.ed.CurrentStroke(); ok {
		objects = append(objects, r.path(s.Path(), selection.Decoration{})...)
	}
	if c, ok := b.ed.CurrentCurve(); ok {
		for _, p := range c.Points {
			dot := canvas.NewCircle(strokeRed)
			dot.Resize(fyne.NewSize(6, 6))
			dot.Move(b.toScreen(p).SubtractXY(3, 3))
			objects = append(objects, dot)
		}
	}
	r.objects = objects
}

func (r *boardWidgetRenderer) field() []fyne.CanvasObject {
	b := r.board
	f := state.Field
	grass := canvas.NewRectangle(fieldGreen)
	grass.StrokeColor = lineWhite
	grass.StrokeWidth = 2
	grass.Move(b.toScreen(state.Point{X: f.X, Y: f.Y}))
	grass.Resize(fyne.NewSize(b.length(f.Width), b.length(f.Height)))

	out := []fyne.CanvasObject{grass}
	for _, ratio := range []float64{state.EndZoneRatio, 1 - state.EndZoneRatio} {
		x := f.X + f.Width*ratio
		line := canvas.NewLine(lineWhite)
		line.StrokeWidth = 2
		line.Position1 = b.toScreen(state.Point{X: x, Y: f.Y})
		line.Position2 = b.toScreen(state.Point{X: x, Y: f.Y + f.Height})
		out = append(out, line)
	}
	return out
}

func (r *boardWidgetRenderer) circle(center state.Point, radius float64, fill color.Color) *canvas.Circle {
	b := r.board
	c := canvas.NewCircle(fill)
	d := b.length(radius * 2)
	c.Resize(fyne.NewSize(d, d))
	c.Move(b.toScreen(center).SubtractXY(d/2, d/2))
	return c
}

func (r *boardWidgetRenderer) shadow(center state.Point, radius float64, deco selection.Decoration) []fyne.CanvasObject {
	if !deco.Highlighted {
		return nil
	}
	return []fyne.CanvasObject{r.circle(center.Add(deco.ShadowOffset), radius, shadowColor)}
}

func (r *boardWidgetRenderer) token(t state.Positioned[state.ChessToken], deco selection.Decoration) []fyne.CanvasObject {
	out := r.shadow(t.Position, state.TokenRadius, deco)
	body := r.circle(t.Position, state.TokenRadius, t.Object.Color.RGBA())
	body.StrokeColor = color.Black
	body.StrokeWidth = 1
	if deco.Highlighted {
		body.StrokeColor = highlightRim
		body.StrokeWidth = 3
	}

	label := canvas.NewText(strconv.Itoa(t.Object.ID), color.Black)
	label.TextStyle.Bold = true
	label.Alignment = fyne.TextAlignCenter
	size := label.MinSize()
	label.Resize(size)
	label.Move(r.board.toScreen(t.Position).SubtractXY(size.Width/2, size.Height/2))
	return append(out, body, label)
}

func (r *boardWidgetRenderer) disc(d state.Positioned[state.Disc], deco selection.Decoration) []fyne.CanvasObject {
	out := r.shadow(d.Position, state.DiscRadius, deco)
	outer := r.circle(d.Position, state.DiscRadius, lineWhite)
	outer.StrokeColor = color.Black
	outer.StrokeWidth = 1
	if deco.Highlighted {
		outer.StrokeColor = highlightRim
		outer.StrokeWidth = 3
	}
	return append(out,
		outer,
		r.circle(d.Position, state.DiscRadius*0.7, strokeRed),
		r.circle(d.Position, state.DiscRadius*0.3, lineWhite),
	)
}

func (r *boardWidgetRenderer) path(points []state.Point, deco selection.Decoration) []fyne.CanvasObject {
	b := r.board
	var out []fyne.CanvasObject
	width := float32(3)
	if deco.Highlighted {
		width = 5
		for i := 1; i < len(points); i++ {
			out = append(out, r.segment(points[i-1].Add(deco.ShadowOffset), points[i].Add(deco.ShadowOffset), shadowColor, width))
		}
	}
	for i := 1; i < len(points); i++ {
		out = append(out, r.segment(points[i-1], points[i], strokeRed, width))
	}
	if len(points) == 1 {
		out = append(out, r.circle(points[0], float64(width/2/b.scale), strokeRed))
	}
	return out
}

func (r *boardWidgetRenderer) segment(from, to state.Point, c color.Color, width float32) *canvas.Line {
	line := canvas.NewLine(c)
	line.StrokeWidth = width
	line.Position1 = r.board.toScreen(from)
	line.Position2 = r.board.toScreen(to)
	return line
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (r *boardWidgetRenderer) Destroy()               {}
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}
func (r *boardWidgetRenderer) MinSize() fyne.Size {
	f := state.Field
	return fyne.NewSize(r.board.length(f.X*2+f.Width), r.board.length(f.Y*2+f.Height))
}
