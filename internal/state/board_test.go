package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialKeys() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("k%d", n)
	}
}

func TestAddTokenAllocatesNextIDInGroup(t *testing.T) {
	b := NewBoard()

	// first token of an empty group
	assert.Equal(t, 1, b.AddToken(ColorRed, Point{X: 20, Y: 20}))

	doc := Document{Chesses: []ChessEntry{{
		Color: ColorBlue,
		Tokens: []Positioned[ChessToken]{
			{Object: ChessToken{Color: ColorBlue, ID: 2}},
			{Object: ChessToken{Color: ColorBlue, ID: 5}},
			{Object: ChessToken{Color: ColorBlue, ID: 7}},
		},
	}}}
	require.NoError(t, b.ImportDocument(doc))
	assert.Equal(t, 8, b.AddToken(ColorBlue, Point{}))
	// ids are scoped per color
	assert.Equal(t, 1, b.AddToken(ColorGreen, Point{}))
}

func TestAddTokenReusesIDAfterRemovingHighest(t *testing.T) {
	b := NewBoard()
	b.AddToken(ColorRed, Point{})
	second := b.AddToken(ColorRed, Point{})
	b.RemoveToken(ColorRed, second)

	assert.Equal(t, second, b.AddToken(ColorRed, Point{}))
}

func TestRemoveTokenUnknownIDIsNoop(t *testing.T) {
	b := NewBoard()
	b.AddToken(ColorRed, Point{X: 1})
	b.AddToken(ColorRed, Point{X: 2})
	before := b.Tokens(ColorRed)

	b.RemoveToken(ColorRed, 42)
	b.RemoveToken(ColorCyan, 1)

	assert.Equal(t, before, b.Tokens(ColorRed))
	assert.Empty(t, b.Tokens(ColorCyan))
}

func TestRemoveTokenKeepsOrder(t *testing.T) {
	b := NewBoard()
	for i := 0; i < 3; i++ {
		b.AddToken(ColorYellow, Point{X: float64(i)})
	}
	b.RemoveToken(ColorYellow, 2)

	tokens := b.Tokens(ColorYellow)
	require.Len(t, tokens, 2)
	assert.Equal(t, 1, tokens[0].Object.ID)
	assert.Equal(t, 3, tokens[1].Object.ID)
}

func TestDiscs(t *testing.T) {
	b := NewBoard()
	first := b.PlaceDisc(Point{X: 20, Y: 20})
	second := b.PlaceDisc(Point{X: 20, Y: 20})
	assert.NotEqual(t, first, second)

	b.AddDisc(100, Point{})
	assert.Equal(t, 101, b.NextDiscID())

	b.RemoveDisc(first)
	b.RemoveDisc(999)
	discs := b.Discs()
	require.Len(t, discs, 2)
	assert.Equal(t, second, discs[0].Object.ID)
	assert.Equal(t, 100, discs[1].Object.ID)
}

func TestStrokesGetStableIDs(t *testing.T) {
	b := NewBoard(WithKeyGenerator(sequentialKeys()))
	a := b.AddStroke(NewStroke(Point{X: 1}))
	c := b.AddStroke(NewStroke(Point{X: 2}))
	d := b.AddStroke(NewStroke(Point{X: 3}))
	assert.Equal(t, []string{"k1", "k2", "k3"}, []string{a, c, d})

	b.RemoveStroke(a)
	// the id still names the same stroke after earlier ones are removed
	b.RemoveStroke(d)
	b.RemoveStroke("missing")

	strokes := b.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, c, strokes[0].ID)
}

func TestRemoveStrokeAt(t *testing.T) {
	b := NewBoard(WithKeyGenerator(sequentialKeys()))
	b.AddStroke(NewStroke(Point{X: 1}))
	b.AddStroke(NewStroke(Point{X: 2}))

	b.RemoveStrokeAt(-1)
	b.RemoveStrokeAt(2)
	assert.Len(t, b.Strokes(), 2)

	b.RemoveStrokeAt(0)
	strokes := b.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, "k2", strokes[0].ID)
}

func TestCurves(t *testing.T) {
	b := NewBoard(WithKeyGenerator(sequentialKeys()))
	id := b.AddCurve(Curve{Points: []Point{{X: 0}, {X: 1}, {X: 2}}})
	assert.Equal(t, "k1", id)
	require.Len(t, b.Curves(), 1)

	b.RemoveCurve("nope")
	assert.Len(t, b.Curves(), 1)
	b.RemoveCurve(id)
	assert.Empty(t, b.Curves())
}

func TestSetPosition(t *testing.T) {
	b := NewBoard()
	id := b.AddToken(ColorPurple, Point{X: 1, Y: 1})
	disc := b.PlaceDisc(Point{X: 5, Y: 5})

	assert.True(t, b.SetPosition(TokenRef(ColorPurple, id), Point{X: 9, Y: 8}))
	assert.True(t, b.SetPosition(DiscRef(disc), Point{X: 3, Y: 4}))
	assert.False(t, b.SetPosition(TokenRef(ColorRed, id), Point{}))
	assert.False(t, b.SetPosition(DiscRef(disc+1), Point{}))
	assert.False(t, b.SetPosition(StrokeRef("k1"), Point{}))

	pos, ok := b.Position(TokenRef(ColorPurple, id))
	require.True(t, ok)
	assert.Equal(t, Point{X: 9, Y: 8}, pos)
	assert.Equal(t, ChessToken{Color: ColorPurple, ID: id}, b.Tokens(ColorPurple)[0].Object)

	pos, ok = b.Position(DiscRef(disc))
	require.True(t, ok)
	assert.Equal(t, Point{X: 3, Y: 4}, pos)
}

func TestSnapshotIsDetached(t *testing.T) {
	b := NewBoard()
	b.AddToken(ColorRed, Point{X: 1})
	snap := b.Snapshot()

	b.SetPosition(TokenRef(ColorRed, 1), Point{X: 50})
	b.AddToken(ColorRed, Point{})

	tokens := snap.Chesses.Get(ColorRed)
	require.Len(t, tokens, 1)
	assert.Equal(t, Point{X: 1}, tokens[0].Position)
}

func TestResetAndIsEmpty(t *testing.T) {
	b := NewBoard()
	assert.True(t, b.IsEmpty())
	b.SetSaveName("drill")
	assert.True(t, b.IsEmpty())

	b.AddToken(ColorRed, Point{})
	b.PlaceDisc(Point{})
	assert.False(t, b.IsEmpty())

	b.Reset()
	assert.True(t, b.IsEmpty())
	assert.Empty(t, b.SaveName())
	assert.Equal(t, 1, b.NextDiscID())
}

func TestImportDocumentAppliesInvalidDocument(t *testing.T) {
	b := NewBoard(WithKeyGenerator(sequentialKeys()))
	doc := Document{
		SaveName: "broken",
		Chesses: []ChessEntry{{
			Color: ColorRed,
			Tokens: []Positioned[ChessToken]{
				{Object: ChessToken{Color: ColorRed, ID: 1}},
				{Object: ChessToken{Color: ColorRed, ID: 1}},
			},
		}},
		Frisbees: []Positioned[Disc]{{Object: Disc{ID: 7}}},
		Strokes:  []Stroke{{Start: Point{X: 1}}},
		Curves:   []Curve{{Points: []Point{{}, {}}}},
	}

	err := b.ImportDocument(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate token id 1")
	assert.Contains(t, err.Error(), "curve 0 has 2 points")

	assert.Equal(t, "broken", b.SaveName())
	assert.Len(t, b.Tokens(ColorRed), 2)
	assert.Equal(t, 8, b.NextDiscID())

	strokes := b.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, "k1", strokes[0].ID)
	assert.Equal(t, []Point{}, strokes[0].Points)
	assert.Equal(t, "k2", b.Curves()[0].ID)
}
