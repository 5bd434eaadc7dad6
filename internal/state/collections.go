package state

import "slices"

// ChessMap groups tokens by color. Group order is the order in which colors
// were first set; token order inside a group is the drawing order.
type ChessMap struct {
	groups map[ChessColor][]Positioned[ChessToken]
	order  []ChessColor
}

// Get returns the tokens of one color. An absent color yields an empty group.
func (m *ChessMap) Get(color ChessColor) []Positioned[ChessToken] {
	return m.groups[color]
}

// Set replaces the group for color, keeping the color's original place in
// the group order.
func (m *ChessMap) Set(color ChessColor, tokens []Positioned[ChessToken]) {
	if m.groups == nil {
		m.groups = make(map[ChessColor][]Positioned[ChessToken])
	}
	if _, ok := m.groups[color]; !ok {
		m.order = append(m.order, color)
	}
	if tokens == nil {
		tokens = []Positioned[ChessToken]{}
	}
	m.groups[color] = tokens
}

// Colors returns the group colors in order.
func (m *ChessMap) Colors() []ChessColor {
	return slices.Clone(m.order)
}

// Len is the number of color groups, empty ones included.
func (m *ChessMap) Len() int { return len(m.order) }

// Count is the number of tokens across every group.
func (m *ChessMap) Count() int {
	n := 0
	for _, tokens := range m.groups {
		n += len(tokens)
	}
	return n
}

// All flattens every group in group order.
func (m *ChessMap) All() []Positioned[ChessToken] {
	out := make([]Positioned[ChessToken], 0, m.Count())
	for _, color := range m.order {
		out = append(out, m.groups[color]...)
	}
	return out
}

func (m *ChessMap) Clone() ChessMap {
	var out ChessMap
	for _, color := range m.order {
		out.Set(color, slices.Clone(m.groups[color]))
	}
	return out
}

// Collections is the whole board: every entity plus the document label.
type Collections struct {
	Chesses  ChessMap
	Discs    []Positioned[Disc]
	Strokes  []Stroke
	Curves   []Curve
	SaveName string
}

func emptyCollections() Collections {
	return Collections{
		Discs:   []Positioned[Disc]{},
		Strokes: []Stroke{},
		Curves:  []Curve{},
	}
}

func (c Collections) Clone() Collections {
	return Collections{
		Chesses:  c.Chesses.Clone(),
		Discs:    slices.Clone(c.Discs),
		Strokes:  slices.Clone(c.Strokes),
		Curves:   slices.Clone(c.Curves),
		SaveName: c.SaveName,
	}
}

// IsEmpty reports whether the board holds no entity. The save name is ignored.
func (c Collections) IsEmpty() bool {
	return c.Chesses.Count() == 0 && len(c.Discs) == 0 && len(c.Strokes) == 0 && len(c.Curves) == 0
}
