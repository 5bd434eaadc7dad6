package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"TacticBoard/internal/brush"
	"TacticBoard/internal/editor"
	"TacticBoard/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func()
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

func brushRGBA(c brush.Color) color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

// Toolbar holds the controls above the board.
type Toolbar struct {
	win   fyne.Window
	board *BoardWidget
	log   *zap.Logger

	saveName *widget.Entry
}

func NewToolbar(win fyne.Window, board *BoardWidget, log *zap.Logger) *Toolbar {
	if log == nil {
		log = zap.NewNop()
	}
	return &Toolbar{win: win, board: board, log: log}
}

func (t *Toolbar) editor() *editor.Editor { return t.board.Editor() }

// Build assembles the toolbar widgets.
func (t *Toolbar) Build() fyne.CanvasObject {
	ed := t.editor()

	tools := make([]string, len(brush.Tools))
	for i, tool := range brush.Tools {
		tools[i] = string(tool)
	}
	toolSelect := widget.NewSelect(tools, func(s string) {
		ed.CancelGesture()
		ed.ChangeTool(brush.Tool(s))
		t.board.Refresh()
	})
	toolSelect.SetSelected(string(ed.Brush().Tool))

	styles := make([]string, len(brush.LineStyles))
	for i, s := range brush.LineStyles {
		styles[i] = string(s)
	}
	lineRadio := widget.NewRadioGroup(styles, func(s string) {
		if s != "" {
			ed.ChangeLineStyle(brush.LineStyle(s))
		}
	})
	lineRadio.Horizontal = true
	lineRadio.SetSelected(string(ed.Brush().LineStyle))

	brushColors := container.NewHBox()
	for _, c := range brush.Colors {
		c := c
		brushColors.Add(newColorSwatch(brushRGBA(c), func() { ed.ChangeColor(c) }))
	}

	tokens := container.NewHBox()
	for _, c := range state.ChessColors {
		c := c
		tokens.Add(newColorSwatch(c.RGBA(), func() { t.AddToken(c) }))
	}

	t.saveName = widget.NewEntry()
	t.saveName.SetPlaceHolder("save name")
	t.saveName.SetText(ed.Board().SaveName())
	t.saveName.OnChanged = func(s string) {
		ed.SetSaveName(s)
		if t.board.OnChange != nil {
			t.board.OnChange()
		}
	}
	nameBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(180, 36)), t.saveName)

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.RadioButtonIcon(), t.AddDisc),
		widget.NewToolbarAction(theme.DeleteIcon(), t.Delete),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.exportJSON),
		widget.NewToolbarAction(theme.FolderOpenIcon(), t.importJSON),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), t.exportPDF),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentClearIcon(), t.confirmReset),
	)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolSelect,
		lineRadio,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		brushColors,
		widget.NewSeparator(),
		widget.NewLabel("Players:"),
		tokens,
		widget.NewSeparator(),
		actions,
		layout.NewSpacer(),
		nameBox,
	)
}

func (t *Toolbar) AddToken(c state.ChessColor) {
	id := t.editor().AddToken(c)
	t.log.Debug("token added", zap.Stringer("color", c), zap.Int("id", id))
	t.board.Changed()
}

func (t *Toolbar) AddDisc() {
	id := t.editor().AddDisc()
	t.log.Debug("disc added", zap.Int("id", id))
	t.board.Changed()
}

func (t *Toolbar) Delete() {
	if _, ok := t.editor().Selected(); !ok {
		return
	}
	t.editor().Delete()
	t.board.Changed()
}

func (t *Toolbar) reset() {
	if err := t.editor().Reset(context.Background()); err != nil {
		t.log.Error("reset failed", zap.Error(err))
		dialog.ShowError(err, t.win)
	}
	if t.saveName != nil {
		t.saveName.SetText("")
	}
	t.board.Refresh()
}

func (t *Toolbar) confirmReset() {
	dialog.ShowConfirm("Clear board", "Remove everything from the board?", func(ok bool) {
		if ok {
			t.reset()
		}
	}, t.win)
}

func (t *Toolbar) exportJSON() {
	if t.editor().Board().IsEmpty() {
		dialog.ShowInformation("Export", "There is nothing to export yet.", t.win)
		return
	}
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.win)
			return
		}
		if w == nil {
			return
		}
		t.writeTo(w, t.editor().Export)
	}, t.win)
	d.SetFileName(t.editor().ExportName())
	d.Show()
}

func (t *Toolbar) exportPDF() {
	if t.editor().Board().IsEmpty() {
		dialog.ShowInformation("Export", "There is nothing to export yet.", t.win)
		return
	}
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.win)
			return
		}
		if w == nil {
			return
		}
		t.writeTo(w, t.editor().ExportPDF)
	}, t.win)
	d.SetFileName(t.editor().PDFName())
	d.Show()
}

func (t *Toolbar) writeTo(w fyne.URIWriteCloser, write func(io.Writer) error) {
	defer func() {
		if err := w.Close(); err != nil {
			t.log.Error("close export", zap.String("uri", w.URI().String()), zap.Error(err))
		}
	}()
	if err := write(w); err != nil {
		t.log.Error("export failed", zap.String("uri", w.URI().String()), zap.Error(err))
		dialog.ShowError(err, t.win)
		return
	}
	t.log.Info("board exported", zap.String("uri", w.URI().String()))
}

func (t *Toolbar) importJSON() {
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.win)
			return
		}
		if r == nil {
			return
		}
		t.importAndClose(r)
	}, t.win)
}

func (t *Toolbar) importAndClose(r fyne.URIReadCloser) {
	defer func() {
		if err := r.Close(); err != nil {
			t.log.Error("close import", zap.String("uri", r.URI().String()), zap.Error(err))
		}
	}()
	t.importFrom(r)
}

func (t *Toolbar) importFrom(r fyne.URIReadCloser) {
	err := t.editor().Import(r)
	if err != nil {
		t.log.Warn("import", zap.String("uri", r.URI().String()), zap.Error(err))
	}
	if errors.Is(err, state.ErrMalformedDocument) {
		dialog.ShowError(fmt.Errorf("%s is not a board file: %w", r.URI().Name(), err), t.win)
		return
	}
	if t.saveName != nil {
		t.saveName.SetText(t.editor().Board().SaveName())
	}
	t.board.Changed()
	if err != nil {
		dialog.ShowError(err, t.win)
	}
}
