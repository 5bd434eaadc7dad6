package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"go.uber.org/zap"

	"TacticBoard/internal/editor"
)

// Options configures the main window.
type Options struct {
	Title string
	// Scale is screen pixels per board unit.
	Scale float32
}

// NewMainWindow builds the board window. Every change to the board is
// saved through the editor.
func NewMainWindow(a fyne.App, ed *editor.Editor, opts Options, log *zap.Logger) fyne.Window {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = "Tactic Board"
	}
	w := a.NewWindow(opts.Title)

	board := NewBoardWidget(ed, opts.Scale, log)
	board.OnChange = func() {
		if err := ed.Save(context.Background()); err != nil {
			log.Error("autosave failed", zap.Error(err))
		}
	}
	toolbar := NewToolbar(w, board, log)

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			toolbar.Delete()
		case fyne.KeyEscape:
			ed.CancelGesture()
			ed.Unselect()
			board.Refresh()
		}
	})

	content := container.NewBorder(toolbar.Build(), nil, nil, nil, container.NewScroll(board))
	w.SetContent(content)
	w.Resize(fyne.NewSize(1100, 560))
	return w
}

func RunApp(a fyne.App, ed *editor.Editor, opts Options, log *zap.Logger) {
	NewMainWindow(a, ed, opts, log).ShowAndRun()
}
