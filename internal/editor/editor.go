// Package editor wires the board, the brush, the gesture builders and the
// selection together, and moves boards in and out of storage and files.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"TacticBoard/internal/brush"
	"TacticBoard/internal/draw"
	"TacticBoard/internal/export"
	"TacticBoard/internal/persist"
	"TacticBoard/internal/selection"
	"TacticBoard/internal/state"
)

// ErrEmptyBoard is returned when exporting a board with nothing on it.
var ErrEmptyBoard = errors.New("board is empty")

// DefaultStorageKey is where the board is kept when no key is configured.
const DefaultStorageKey = "tactic-board-storage"

// SpawnPoint is where new tokens and discs are placed.
var SpawnPoint = state.Point{X: 20, Y: 20}

// Editor handles one board. Its methods are called from a single event
// loop, one event at a time.
type Editor struct {
	board   *state.Board
	mode    brush.Mode
	strokes *draw.StrokeBuilder
	curves  *draw.CurveBuilder
	sel     *selection.Controller

	store   persist.Store
	key     string
	pdfOpts export.Options
	now     func() time.Time
	log     *zap.Logger
}

type Option func(*Editor)

func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithPersistence sets where Save and Load keep the board. An empty key
// uses DefaultStorageKey.
func WithPersistence(store persist.Store, key string) Option {
	return func(e *Editor) {
		e.store = store
		if key != "" {
			e.key = key
		}
	}
}

func WithPDFOptions(opts export.Options) Option {
	return func(e *Editor) { e.pdfOpts = opts }
}

// WithClock replaces time.Now for default export names.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

func New(board *state.Board, opts ...Option) *Editor {
	e := &Editor{
		board:   board,
		mode:    brush.Default(),
		strokes: draw.NewStrokeBuilder(board),
		curves:  draw.NewCurveBuilder(board),
		sel:     selection.New(board),
		key:     DefaultStorageKey,
		pdfOpts: export.DefaultOptions(),
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Board() *state.Board { return e.board }

// --- brush ---

func (e *Editor) Brush() brush.Mode { return e.mode }

func (e *Editor) SetBrush(m brush.Mode) {
	e.mode = m
	e.log.Debug("brush changed", zap.String("tool", string(m.Tool)), zap.Stringer("color", m.Color), zap.String("line", string(m.LineStyle)))
}

func (e *Editor) ChangeTool(t brush.Tool) { e.SetBrush(brush.ChangeTool(e.mode, t)) }

func (e *Editor) ChangeColor(c brush.Color) { e.SetBrush(brush.ChangeColor(e.mode, c)) }

func (e *Editor) ChangeLineStyle(s brush.LineStyle) { e.SetBrush(brush.ChangeLineStyle(e.mode, s)) }

// --- pointer events ---

// PointerDown starts a stroke with the pen. With any other tool it selects
// the hit entity for dragging, or clears the selection when nothing was hit.
func (e *Editor) PointerDown(pos state.Point, hit *selection.Target) {
	mode := e.mode
	if mode.Tool == brush.ToolPen {
		e.strokes.PointerDown(mode, pos)
		return
	}
	if hit == nil {
		e.sel.Unselect()
		return
	}
	e.sel.Select(*hit, true, pos)
	e.log.Debug("selected", zap.Stringer("target", hit.Ref))
}

func (e *Editor) PointerMove(pos state.Point) {
	mode := e.mode
	e.strokes.PointerMove(mode, pos)
	e.sel.Move(pos)
}

func (e *Editor) PointerUp() {
	mode := e.mode
	e.strokes.PointerUp(mode)
	e.sel.UnsetDrag()
}

func (e *Editor) Click(pos state.Point) {
	e.curves.Click(e.mode, pos)
}

// CancelGesture drops any stroke or curve in progress.
func (e *Editor) CancelGesture() {
	e.strokes.Clear()
	e.curves.Clear()
}

func (e *Editor) CurrentStroke() (state.Stroke, bool) { return e.strokes.Current() }

func (e *Editor) CurrentCurve() (state.Curve, bool) { return e.curves.Current() }

// --- selection ---

func (e *Editor) Selected() (selection.Target, bool) { return e.sel.Target() }

func (e *Editor) Unselect() { e.sel.Unselect() }

func (e *Editor) Decoration(ref state.EntityRef) selection.Decoration {
	return e.sel.Decoration(ref)
}

// Delete removes the selected entity and clears the selection. Without a
// selection it does nothing.
func (e *Editor) Delete() {
	target, ok := e.sel.Target()
	if !ok {
		return
	}
	ref := target.Ref
	switch ref.Kind {
	case state.KindToken:
		e.board.RemoveToken(ref.Color, ref.ID)
	case state.KindDisc:
		e.board.RemoveDisc(ref.ID)
	case state.KindStroke:
		e.board.RemoveStroke(ref.Key)
	case state.KindCurve:
		e.board.RemoveCurve(ref.Key)
	}
	e.sel.Unselect()
	e.log.Debug("deleted", zap.Stringer("target", ref))
}

// --- placing ---

func (e *Editor) AddToken(color state.ChessColor) int {
	return e.board.AddToken(color, SpawnPoint)
}

func (e *Editor) AddDisc() int {
	return e.board.PlaceDisc(SpawnPoint)
}

func (e *Editor) SetSaveName(name string) { e.board.SetSaveName(name) }

// Reset empties the board, drops any gesture or selection and forgets the
// stored copy.
func (e *Editor) Reset(ctx context.Context) error {
	e.CancelGesture()
	e.sel.Unselect()
	e.board.Reset()
	if e.store == nil {
		return nil
	}
	if err := e.store.Remove(ctx, e.key); err != nil {
		return fmt.Errorf("remove %s: %w", e.key, err)
	}
	return nil
}

// --- persistence ---

// Save writes the board to the configured store.
func (e *Editor) Save(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	data, err := state.Encode(e.board.ExportDocument())
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if err := e.store.Set(ctx, e.key, data); err != nil {
		e.log.Error("save failed", zap.String("key", e.key), zap.Error(err))
		return fmt.Errorf("save %s: %w", e.key, err)
	}
	return nil
}

// Load replaces the board with the stored copy. A missing copy leaves an
// empty board. A copy that cannot be parsed also leaves an empty board and
// the parse error is returned for reporting.
func (e *Editor) Load(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	e.CancelGesture()
	e.sel.Unselect()

	data, err := e.store.Get(ctx, e.key)
	if errors.Is(err, persist.ErrNotFound) {
		e.board.Reset()
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", e.key, err)
	}
	doc, err := state.Decode(data)
	if errors.Is(err, state.ErrMalformedDocument) {
		e.board.Reset()
		e.log.Error("stored board unreadable", zap.String("key", e.key), zap.Error(err))
		return fmt.Errorf("load %s: %w", e.key, err)
	}
	if err != nil {
		e.log.Warn("stored board partly unreadable", zap.String("key", e.key), zap.Error(err))
	}
	return errors.Join(err, e.board.ImportDocument(doc))
}

// --- files ---

// ExportName is the file name suggested for an export.
func (e *Editor) ExportName() string {
	return e.exportSaveName() + ".json"
}

func (e *Editor) PDFName() string {
	return e.exportSaveName() + ".pdf"
}

func (e *Editor) exportSaveName() string {
	if name := e.board.SaveName(); name != "" {
		return name
	}
	return "tactic-board-" + e.now().Format("2006-01-02")
}

// Export writes the board as an indented JSON document.
func (e *Editor) Export(w io.Writer) error {
	if e.board.IsEmpty() {
		return ErrEmptyBoard
	}
	doc := e.board.ExportDocument()
	doc.SaveName = e.exportSaveName()
	data, err := state.EncodeIndent(doc)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	return nil
}

// Import replaces the board with a document read from r. When r does not
// hold a document the board is left unchanged and the error is returned.
// Fields that cannot be read are imported as empty and reported together
// with any validation problems.
func (e *Editor) Import(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read board: %w", err)
	}
	doc, err := state.Decode(data)
	if errors.Is(err, state.ErrMalformedDocument) {
		e.log.Warn("import rejected", zap.Error(err))
		return err
	}
	e.CancelGesture()
	e.sel.Unselect()
	return errors.Join(err, e.board.ImportDocument(doc))
}

// ExportPDF renders the board as a PDF page.
func (e *Editor) ExportPDF(w io.Writer) error {
	if e.board.IsEmpty() {
		return ErrEmptyBoard
	}
	doc := e.board.ExportDocument()
	doc.SaveName = e.exportSaveName()
	return export.WritePDF(w, doc, e.pdfOpts)
}
