package state

import (
	"fmt"
	"image/color"
)

// Point is a position in the editor's local coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// ChessColor identifies a token group. Values are the RGB triple the group is drawn with.
type ChessColor int

const (
	ColorRed    ChessColor = 0xFF0000
	ColorGreen  ChessColor = 0x00FF00
	ColorBlue   ChessColor = 0x0000FF
	ColorYellow ChessColor = 0xFFFF00
	ColorPurple ChessColor = 0xFF00FF
	ColorCyan   ChessColor = 0x00FFFF
)

// ChessColors lists every token color in toolbar order.
var ChessColors = []ChessColor{ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorPurple, ColorCyan}

func (c ChessColor) Valid() bool {
	for _, known := range ChessColors {
		if c == known {
			return true
		}
	}
	return false
}

func (c ChessColor) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorCyan:
		return "cyan"
	}
	return fmt.Sprintf("color(%#06x)", int(c))
}

// RGBA returns the opaque color the group is painted with.
func (c ChessColor) RGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

// ChessToken is a player piece. Its id is only unique inside its color group.
type ChessToken struct {
	Color ChessColor `json:"color"`
	ID    int        `json:"id"`
}

// Disc is a thrown-object marker with a board-wide unique id.
type Disc struct {
	ID int `json:"id"`
}

// Positioned pairs a payload with its position on the board.
type Positioned[T any] struct {
	Object   T     `json:"object"`
	Position Point `json:"position"`
}

// MoveTo returns a copy placed at pos. The payload is left untouched.
func (p Positioned[T]) MoveTo(pos Point) Positioned[T] {
	return Positioned[T]{Object: p.Object, Position: pos}
}

// Stroke is a finished freehand path. ID is assigned by the Board when the
// stroke is added and stays stable for the stroke's lifetime.
type Stroke struct {
	ID     string  `json:"id,omitempty"`
	Start  Point   `json:"start"`
	Points []Point `json:"points"`
}

func NewStroke(start Point) Stroke {
	return Stroke{Start: start, Points: []Point{}}
}

// Append returns a new stroke with p added to the end. The receiver is not modified.
func (s Stroke) Append(p Point) Stroke {
	points := make([]Point, len(s.Points), len(s.Points)+1)
	copy(points, s.Points)
	return Stroke{ID: s.ID, Start: s.Start, Points: append(points, p)}
}

// Path returns the start point followed by every recorded point.
func (s Stroke) Path() []Point {
	path := make([]Point, 0, len(s.Points)+1)
	path = append(path, s.Start)
	return append(path, s.Points...)
}

// CurveKind classifies a curve by its number of points.
type CurveKind int

const (
	CurveEmpty CurveKind = iota
	CurveQuadratic
	CurveCubic
	CurveInvalid
)

// Curve holds the points of a Bezier curve in the order
// start, end, control[, control2].
type Curve struct {
	ID     string  `json:"id,omitempty"`
	Points []Point `json:"points"`
}

// AddPoint returns a new curve with p appended.
func (c Curve) AddPoint(p Point) Curve {
	points := make([]Point, len(c.Points), len(c.Points)+1)
	copy(points, c.Points)
	return Curve{ID: c.ID, Points: append(points, p)}
}

func (c Curve) Kind() CurveKind {
	switch len(c.Points) {
	case 0:
		return CurveEmpty
	case 3:
		return CurveQuadratic
	case 4:
		return CurveCubic
	}
	return CurveInvalid
}

// Sample flattens the curve into n+1 points along its length. Curves that
// cannot be drawn yield nil.
func (c Curve) Sample(n int) []Point {
	kind := c.Kind()
	if n < 1 || (kind != CurveQuadratic && kind != CurveCubic) {
		return nil
	}
	start, end, ctrl := c.Points[0], c.Points[1], c.Points[2]
	out := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		var x, y float64
		if kind == CurveQuadratic {
			x = u*u*start.X + 2*u*t*ctrl.X + t*t*end.X
			y = u*u*start.Y + 2*u*t*ctrl.Y + t*t*end.Y
		} else {
			ctrl2 := c.Points[3]
			x = u*u*u*start.X + 3*u*u*t*ctrl.X + 3*u*t*t*ctrl2.X + t*t*t*end.X
			y = u*u*u*start.Y + 3*u*u*t*ctrl.Y + 3*u*t*t*ctrl2.Y + t*t*t*end.Y
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}

// Kind tags what an EntityRef points at.
type Kind string

const (
	KindToken  Kind = "token"
	KindDisc   Kind = "disc"
	KindStroke Kind = "stroke"
	KindCurve  Kind = "curve"
)

// EntityRef identifies one entity on the board. Tokens use Color and ID,
// discs use ID, strokes and curves use Key.
type EntityRef struct {
	Kind  Kind
	Color ChessColor
	ID    int
	Key   string
}

func TokenRef(color ChessColor, id int) EntityRef {
	return EntityRef{Kind: KindToken, Color: color, ID: id}
}

func DiscRef(id int) EntityRef { return EntityRef{Kind: KindDisc, ID: id} }

func StrokeRef(key string) EntityRef { return EntityRef{Kind: KindStroke, Key: key} }

func CurveRef(key string) EntityRef { return EntityRef{Kind: KindCurve, Key: key} }

func (r EntityRef) String() string {
	switch r.Kind {
	case KindToken:
		return fmt.Sprintf("token(%s/%d)", r.Color, r.ID)
	case KindDisc:
		return fmt.Sprintf("disc(%d)", r.ID)
	case KindStroke, KindCurve:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Key)
	}
	return "none"
}
