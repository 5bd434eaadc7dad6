package brush

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert.Equal(t, Mode{Tool: ToolPointer, Color: ColorRed, LineStyle: LineSolid}, Default())
}

func TestTransitionsReturnNewValues(t *testing.T) {
	start := Default()

	pen := ChangeTool(start, ToolPen)
	blue := ChangeColor(pen, ColorBlue)
	dashed := ChangeLineStyle(blue, LineDashed)

	assert.Equal(t, Default(), start)
	assert.Equal(t, Mode{Tool: ToolPen, Color: ColorRed, LineStyle: LineSolid}, pen)
	assert.Equal(t, Mode{Tool: ToolPen, Color: ColorBlue, LineStyle: LineSolid}, blue)
	assert.Equal(t, Mode{Tool: ToolPen, Color: ColorBlue, LineStyle: LineDashed}, dashed)
}

func TestCurvePoints(t *testing.T) {
	want := map[Tool]int{
		ToolPointer: 0,
		ToolPen:     0,
		ToolCurve3:  3,
		ToolCurve4:  4,
		ToolCircle:  0,
	}
	for _, tool := range Tools {
		assert.Equal(t, want[tool], tool.CurvePoints(), tool)
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "green", ColorGreen.String())
	assert.Equal(t, "unknown", Color(1).String())
}
