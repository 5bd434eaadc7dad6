// Package brush holds the tool, color and line style that decide how a
// pointer gesture on the board is interpreted.
package brush

// Tool selects what pointer gestures do.
type Tool string

const (
	ToolPointer Tool = "pointer"
	ToolPen     Tool = "pen"
	ToolCurve3  Tool = "curve3"
	ToolCurve4  Tool = "curve4"
	ToolCircle  Tool = "circle"
)

// Tools lists every tool in menu order.
var Tools = []Tool{ToolPointer, ToolPen, ToolCurve3, ToolCurve4, ToolCircle}

// CurvePoints is the number of points a curve drawn with t collects, or 0
// when t does not draw curves.
func (t Tool) CurvePoints() int {
	switch t {
	case ToolCurve3:
		return 3
	case ToolCurve4:
		return 4
	}
	return 0
}

type Color int

const (
	ColorRed   Color = 0xff0000
	ColorGreen Color = 0x00ff00
	ColorBlue  Color = 0x0000ff
)

var Colors = []Color{ColorRed, ColorGreen, ColorBlue}

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	}
	return "unknown"
}

type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

var LineStyles = []LineStyle{LineSolid, LineDashed}

// Mode is the current brush. It is a value: every change produces a new
// Mode, so a handler holding the Mode it started with never sees a partial
// update.
type Mode struct {
	Tool      Tool
	Color     Color
	LineStyle LineStyle
}

// Default is the brush a new editor starts with.
func Default() Mode {
	return Mode{Tool: ToolPointer, Color: ColorRed, LineStyle: LineSolid}
}

func ChangeTool(m Mode, tool Tool) Mode {
	return Mode{Tool: tool, Color: m.Color, LineStyle: m.LineStyle}
}

func ChangeColor(m Mode, color Color) Mode {
	return Mode{Tool: m.Tool, Color: color, LineStyle: m.LineStyle}
}

func ChangeLineStyle(m Mode, style LineStyle) Mode {
	return Mode{Tool: m.Tool, Color: m.Color, LineStyle: style}
}
