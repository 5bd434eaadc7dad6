package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"TacticBoard/internal/config"
	"TacticBoard/internal/editor"
	"TacticBoard/internal/export"
	"TacticBoard/internal/logging"
	"TacticBoard/internal/persist"
	"TacticBoard/internal/state"
	"TacticBoard/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	a := app.NewWithID(cfg.AppID)
	store := persist.NewPreferences(a.Preferences())

	pdfOpts := export.DefaultOptions()
	pdfOpts.Scale = cfg.PDFScale

	board := state.NewBoard(state.WithLogger(log.Named("board")))
	ed := editor.New(board,
		editor.WithLogger(log.Named("editor")),
		editor.WithPersistence(store, cfg.StorageKey),
		editor.WithPDFOptions(pdfOpts),
	)
	if err := ed.Load(context.Background()); err != nil {
		log.Warn("starting from stored board with problems", zap.String("key", cfg.StorageKey), zap.Error(err))
	}

	log.Info("starting", zap.String("app_id", cfg.AppID), zap.Int("tokens", len(board.AllTokens())))
	ui.RunApp(a, ed, ui.Options{Scale: cfg.FieldScale}, log.Named("ui"))
}
