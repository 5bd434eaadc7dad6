package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrMalformedDocument is returned when a payload cannot be parsed as a board document.
	ErrMalformedDocument = errors.New("malformed board document")
	// ErrPartialDocument is returned by Decode together with a usable
	// document when some fields had to be dropped.
	ErrPartialDocument = errors.New("board document has unreadable fields")
)

// ChessEntry is one color group in its transport form: a two element
// array of the numeric color and the token list.
type ChessEntry struct {
	Color  ChessColor
	Tokens []Positioned[ChessToken]
}

func (e ChessEntry) MarshalJSON() ([]byte, error) {
	tokens := e.Tokens
	if tokens == nil {
		tokens = []Positioned[ChessToken]{}
	}
	return json.Marshal([2]any{e.Color, tokens})
}

func (e *ChessEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("chess entry: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("chess entry: want [color, tokens], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Color); err != nil {
		return fmt.Errorf("chess entry color: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Tokens); err != nil {
		return fmt.Errorf("chess entry tokens: %w", err)
	}
	return nil
}

// Document is the flat, transport-safe form of Collections.
type Document struct {
	SaveName string             `json:"saveName"`
	Chesses  []ChessEntry       `json:"chesses"`
	Frisbees []Positioned[Disc] `json:"frisbees"`
	Strokes  []Stroke           `json:"strokes"`
	Curves   []Curve            `json:"curves"`
}

// UnmarshalJSON also accepts the key spellings used by older export files:
// "players" for chesses, "name" for saveName and "discs" for frisbees.
// Any field with the wrong shape fails the whole document; Decode is the
// lenient entry point.
func (d *Document) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	doc, problems, err := decodeFields(data)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}
	*d = doc
	return nil
}

// decodeFields decodes each top level key on its own. A key that fails to
// decode is left empty and reported in problems; err is set only when data
// is not a JSON object.
func decodeFields(data []byte) (doc Document, problems []error, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Document{}, nil, err
	}
	if fields == nil {
		return Document{}, nil, errors.New("expected a JSON object")
	}
	doc.SaveName = decodeField[string](fields, &problems, "saveName", "name")
	doc.Chesses = decodeField[[]ChessEntry](fields, &problems, "chesses", "players")
	doc.Frisbees = decodeField[[]Positioned[Disc]](fields, &problems, "frisbees", "discs")
	doc.Strokes = decodeField[[]Stroke](fields, &problems, "strokes")
	doc.Curves = decodeField[[]Curve](fields, &problems, "curves")
	return doc, problems, nil
}

// decodeField decodes the first of keys that is present and not null.
func decodeField[T any](fields map[string]json.RawMessage, problems *[]error, keys ...string) T {
	var zero T
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			*problems = append(*problems, fmt.Errorf("%s: %w", key, err))
			return zero
		}
		return v
	}
	return zero
}

// ToDocument flattens collections for transport. Color groups keep their order.
func ToDocument(c Collections) Document {
	doc := Document{
		SaveName: c.SaveName,
		Chesses:  make([]ChessEntry, 0, c.Chesses.Len()),
		Frisbees: slices.Clone(c.Discs),
		Strokes:  slices.Clone(c.Strokes),
		Curves:   slices.Clone(c.Curves),
	}
	for _, color := range c.Chesses.order {
		doc.Chesses = append(doc.Chesses, ChessEntry{
			Color:  color,
			Tokens: slices.Clone(c.Chesses.groups[color]),
		})
	}
	return doc
}

// FromDocument rebuilds collections from a document. Missing collections
// become empty ones. When a color appears more than once the last entry
// wins and the group keeps the place of the first. A token takes the color
// of the group it is listed under.
func FromDocument(doc Document) Collections {
	c := emptyCollections()
	c.SaveName = doc.SaveName
	for _, entry := range doc.Chesses {
		tokens := slices.Clone(entry.Tokens)
		for i := range tokens {
			tokens[i].Object.Color = entry.Color
		}
		c.Chesses.Set(entry.Color, tokens)
	}
	if doc.Frisbees != nil {
		c.Discs = slices.Clone(doc.Frisbees)
	}
	for _, s := range doc.Strokes {
		if s.Points == nil {
			s.Points = []Point{}
		}
		c.Strokes = append(c.Strokes, s)
	}
	for _, cv := range doc.Curves {
		if cv.Points == nil {
			cv.Points = []Point{}
		}
		c.Curves = append(c.Curves, cv)
	}
	return c
}

// Validate reports every structural problem in doc. A nil result means the
// document can be imported without degradation.
func Validate(doc Document) error {
	var errs []error
	seenColors := make(map[ChessColor]bool)
	for _, entry := range doc.Chesses {
		if !entry.Color.Valid() {
			errs = append(errs, fmt.Errorf("unknown token color %s", entry.Color))
		}
		if seenColors[entry.Color] {
			errs = append(errs, fmt.Errorf("color %s listed more than once", entry.Color))
		}
		seenColors[entry.Color] = true

		ids := make(map[int]bool)
		for _, t := range entry.Tokens {
			if ids[t.Object.ID] {
				errs = append(errs, fmt.Errorf("duplicate token id %d in %s group", t.Object.ID, entry.Color))
			}
			ids[t.Object.ID] = true
			if t.Object.Color != entry.Color {
				errs = append(errs, fmt.Errorf("token %d is %s but listed under %s", t.Object.ID, t.Object.Color, entry.Color))
			}
		}
	}
	discs := make(map[int]bool)
	for _, d := range doc.Frisbees {
		if discs[d.Object.ID] {
			errs = append(errs, fmt.Errorf("duplicate disc id %d", d.Object.ID))
		}
		discs[d.Object.ID] = true
	}
	for i, cv := range doc.Curves {
		if cv.Kind() == CurveInvalid {
			errs = append(errs, fmt.Errorf("curve %d has %d points, want 0, 3 or 4", i, len(cv.Points)))
		}
	}
	return errors.Join(errs...)
}

// Encode serializes doc as compact JSON.
func Encode(doc Document) ([]byte, error) {
	return json.Marshal(normalize(doc))
}

// EncodeIndent serializes doc as pretty-printed JSON for export files.
func EncodeIndent(doc Document) ([]byte, error) {
	return json.MarshalIndent(normalize(doc), "", "  ")
}

// Decode parses a serialized document. Missing keys decode as empty
// collections. A key holding the wrong shape is also left empty and the
// returned error wraps ErrPartialDocument; the document is still usable.
// Input that is not a JSON object fails with ErrMalformedDocument.
func Decode(data []byte) (Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Document{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedDocument)
	}
	doc, problems, err := decodeFields(data)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if len(problems) > 0 {
		return doc, fmt.Errorf("%w: %w", ErrPartialDocument, errors.Join(problems...))
	}
	return doc, nil
}

// normalize swaps nil collections for empty ones so they encode as [] instead of null.
func normalize(doc Document) Document {
	if doc.Chesses == nil {
		doc.Chesses = []ChessEntry{}
	}
	if doc.Frisbees == nil {
		doc.Frisbees = []Positioned[Disc]{}
	}
	strokes := make([]Stroke, len(doc.Strokes))
	for i, s := range doc.Strokes {
		if s.Points == nil {
			s.Points = []Point{}
		}
		strokes[i] = s
	}
	doc.Strokes = strokes
	curves := make([]Curve, len(doc.Curves))
	for i, cv := range doc.Curves {
		if cv.Points == nil {
			cv.Points = []Point{}
		}
		curves[i] = cv
	}
	doc.Curves = curves
	return doc
}
