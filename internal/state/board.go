package state

import (
	"slices"

	"go.uber.org/zap"
)

// Board is the entity store. It owns every token, disc, stroke and curve on
// the diagram; all mutations go through it. A Board is used by one event
// dispatcher at a time and does no locking of its own.
type Board struct {
	c       Collections
	discIDs Sequence
	newKey  func() string
	log     *zap.Logger
}

type Option func(*Board)

func WithLogger(l *zap.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// WithKeyGenerator replaces the uuid source used for stroke and curve ids.
func WithKeyGenerator(fn func() string) Option {
	return func(b *Board) {
		if fn != nil {
			b.newKey = fn
		}
	}
}

func NewBoard(opts ...Option) *Board {
	b := &Board{
		c:      emptyCollections(),
		newKey: newEntityKey,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// --- tokens ---

// AddToken places a new token of the given color and returns its id, one
// past the highest id currently in that color group.
func (b *Board) AddToken(color ChessColor, pos Point) int {
	tokens := b.c.Chesses.Get(color)
	id := 1
	for _, t := range tokens {
		if t.Object.ID >= id {
			id = t.Object.ID + 1
		}
	}
	next := make([]Positioned[ChessToken], len(tokens), len(tokens)+1)
	copy(next, tokens)
	next = append(next, Positioned[ChessToken]{Object: ChessToken{Color: color, ID: id}, Position: pos})
	b.c.Chesses.Set(color, next)
	b.log.Debug("token added", zap.Stringer("color", color), zap.Int("id", id))
	return id
}

// RemoveToken drops the token with the given id from its color group.
// Unknown ids are ignored.
func (b *Board) RemoveToken(color ChessColor, id int) {
	tokens := b.c.Chesses.Get(color)
	idx := slices.IndexFunc(tokens, func(t Positioned[ChessToken]) bool { return t.Object.ID == id })
	if idx < 0 {
		return
	}
	b.c.Chesses.Set(color, slices.Delete(slices.Clone(tokens), idx, idx+1))
	b.log.Debug("token removed", zap.Stringer("color", color), zap.Int("id", id))
}

// Tokens returns a copy of one color group.
func (b *Board) Tokens(color ChessColor) []Positioned[ChessToken] {
	return slices.Clone(b.c.Chesses.Get(color))
}

// AllTokens returns every token, group by group, in drawing order.
func (b *Board) AllTokens() []Positioned[ChessToken] {
	return b.c.Chesses.All()
}

// --- discs ---

// NextDiscID returns a disc id that has not been used on this board.
func (b *Board) NextDiscID() int {
	return b.discIDs.Next()
}

// AddDisc appends a disc with a caller-supplied id. Uniqueness is the
// caller's responsibility; NextDiscID provides ids that satisfy it.
func (b *Board) AddDisc(id int, pos Point) {
	b.discIDs.Observe(id)
	b.c.Discs = append(slices.Clone(b.c.Discs), Positioned[Disc]{Object: Disc{ID: id}, Position: pos})
	b.log.Debug("disc added", zap.Int("id", id))
}

// PlaceDisc adds a disc with a fresh id and returns the id.
func (b *Board) PlaceDisc(pos Point) int {
	id := b.NextDiscID()
	b.AddDisc(id, pos)
	return id
}

// RemoveDisc drops the first disc with the given id. Unknown ids are ignored.
func (b *Board) RemoveDisc(id int) {
	idx := slices.IndexFunc(b.c.Discs, func(d Positioned[Disc]) bool { return d.Object.ID == id })
	if idx < 0 {
		return
	}
	b.c.Discs = slices.Delete(slices.Clone(b.c.Discs), idx, idx+1)
	b.log.Debug("disc removed", zap.Int("id", id))
}

func (b *Board) Discs() []Positioned[Disc] {
	return slices.Clone(b.c.Discs)
}

// --- strokes and curves ---

// AddStroke appends a finished stroke and returns its id. Strokes without
// an id get a fresh one.
func (b *Board) AddStroke(s Stroke) string {
	if s.ID == "" {
		s.ID = b.newKey()
	}
	if s.Points == nil {
		s.Points = []Point{}
	}
	b.c.Strokes = append(slices.Clone(b.c.Strokes), s)
	b.log.Debug("stroke added", zap.String("id", s.ID), zap.Int("points", len(s.Points)))
	return s.ID
}

// RemoveStroke drops the stroke with the given id. Unknown ids are ignored.
func (b *Board) RemoveStroke(id string) {
	idx := slices.IndexFunc(b.c.Strokes, func(s Stroke) bool { return s.ID == id })
	if idx < 0 {
		return
	}
	b.removeStrokeIndex(idx)
}

// RemoveStrokeAt drops the stroke at a position in the current drawing
// order. Indexes shift after every removal, so callers holding an index
// from an older snapshot may hit a different stroke; RemoveStroke is the
// stable alternative. Out of range indexes are ignored.
func (b *Board) RemoveStrokeAt(index int) {
	if index < 0 || index >= len(b.c.Strokes) {
		return
	}
	b.removeStrokeIndex(index)
}

func (b *Board) removeStrokeIndex(idx int) {
	id := b.c.Strokes[idx].ID
	b.c.Strokes = slices.Delete(slices.Clone(b.c.Strokes), idx, idx+1)
	b.log.Debug("stroke removed", zap.String("id", id))
}

func (b *Board) Strokes() []Stroke {
	return slices.Clone(b.c.Strokes)
}

// AddCurve appends a finished curve and returns its id.
func (b *Board) AddCurve(c Curve) string {
	if c.ID == "" {
		c.ID = b.newKey()
	}
	if c.Points == nil {
		c.Points = []Point{}
	}
	b.c.Curves = append(slices.Clone(b.c.Curves), c)
	b.log.Debug("curve added", zap.String("id", c.ID), zap.Int("points", len(c.Points)))
	return c.ID
}

// RemoveCurve drops the curve with the given id. Unknown ids are ignored.
func (b *Board) RemoveCurve(id string) {
	idx := slices.IndexFunc(b.c.Curves, func(c Curve) bool { return c.ID == id })
	if idx < 0 {
		return
	}
	b.c.Curves = slices.Delete(slices.Clone(b.c.Curves), idx, idx+1)
	b.log.Debug("curve removed", zap.String("id", id))
}

func (b *Board) Curves() []Curve {
	return slices.Clone(b.c.Curves)
}

// --- positions ---

// SetPosition moves a token or disc. Strokes, curves and unknown entities
// are left alone and false is returned.
func (b *Board) SetPosition(ref EntityRef, pos Point) bool {
	switch ref.Kind {
	case KindToken:
		tokens := b.c.Chesses.Get(ref.Color)
		idx := slices.IndexFunc(tokens, func(t Positioned[ChessToken]) bool { return t.Object.ID == ref.ID })
		if idx < 0 {
			return false
		}
		next := slices.Clone(tokens)
		next[idx] = next[idx].MoveTo(pos)
		b.c.Chesses.Set(ref.Color, next)
		return true
	case KindDisc:
		idx := slices.IndexFunc(b.c.Discs, func(d Positioned[Disc]) bool { return d.Object.ID == ref.ID })
		if idx < 0 {
			return false
		}
		next := slices.Clone(b.c.Discs)
		next[idx] = next[idx].MoveTo(pos)
		b.c.Discs = next
		return true
	}
	return false
}

// Position looks up where a token or disc currently sits.
func (b *Board) Position(ref EntityRef) (Point, bool) {
	switch ref.Kind {
	case KindToken:
		for _, t := range b.c.Chesses.Get(ref.Color) {
			if t.Object.ID == ref.ID {
				return t.Position, true
			}
		}
	case KindDisc:
		for _, d := range b.c.Discs {
			if d.Object.ID == ref.ID {
				return d.Position, true
			}
		}
	}
	return Point{}, false
}

// --- document ---

func (b *Board) SaveName() string { return b.c.SaveName }

func (b *Board) SetSaveName(name string) { b.c.SaveName = name }

func (b *Board) IsEmpty() bool { return b.c.IsEmpty() }

// Snapshot returns a copy of every collection.
func (b *Board) Snapshot() Collections {
	return b.c.Clone()
}

// Reset clears every collection and the save name.
func (b *Board) Reset() {
	b.c = emptyCollections()
	b.discIDs.Reset()
	b.log.Debug("board reset")
}

// ExportDocument returns the board in its transport form.
func (b *Board) ExportDocument() Document {
	return ToDocument(b.c)
}

// ImportDocument replaces the whole board with doc. The document is always
// applied; structural problems found by Validate are logged and returned so
// the caller can report a degraded import.
func (b *Board) ImportDocument(doc Document) error {
	c := FromDocument(doc)
	var ids Sequence
	for _, d := range c.Discs {
		ids.Observe(d.Object.ID)
	}
	// Files written before strokes carried ids still need deletable entries.
	for i := range c.Strokes {
		if c.Strokes[i].ID == "" {
			c.Strokes[i].ID = b.newKey()
		}
	}
	for i := range c.Curves {
		if c.Curves[i].ID == "" {
			c.Curves[i].ID = b.newKey()
		}
	}
	b.c = c
	b.discIDs = ids
	b.log.Debug("board imported",
		zap.Int("tokens", c.Chesses.Count()),
		zap.Int("discs", len(c.Discs)),
		zap.Int("strokes", len(c.Strokes)),
		zap.Int("curves", len(c.Curves)))

	if err := Validate(doc); err != nil {
		b.log.Warn("imported document has problems", zap.Error(err))
		return err
	}
	return nil
}
