package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"TacticBoard/internal/editor"
	"TacticBoard/internal/persist"
	"TacticBoard/internal/state"
)

func TestToolbarActions(t *testing.T) {
	a := test.NewTempApp(t)
	store := persist.NewMemory()
	ed := editor.New(state.NewBoard(), editor.WithPersistence(store, ""))
	w := NewMainWindow(a, ed, Options{Scale: 8}, zap.NewNop())
	defer w.Close()

	board := NewBoardWidget(ed, 8, nil)
	board.OnChange = func() { require.NoError(t, ed.Save(context.Background())) }
	tb := NewToolbar(w, board, nil)
	require.NotNil(t, tb.Build())

	tb.AddToken(state.ColorCyan)
	tb.AddToken(state.ColorCyan)
	tb.AddDisc()
	assert.Len(t, ed.Board().Tokens(state.ColorCyan), 2)
	assert.Len(t, ed.Board().Discs(), 1)

	// every change is saved
	data, err := store.Get(context.Background(), editor.DefaultStorageKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"frisbees"`)

	// nothing selected, nothing deleted
	tb.Delete()
	assert.Len(t, ed.Board().Tokens(state.ColorCyan), 2)

	tb.saveName.SetText("zone")
	assert.Equal(t, "zone", ed.Board().SaveName())

	tb.reset()
	assert.True(t, ed.Board().IsEmpty())
	assert.Equal(t, "", tb.saveName.Text)
}

func TestBrushRGBA(t *testing.T) {
	assert.Equal(t, uint8(0xff), brushRGBA(0x00ff00).G)
	assert.Equal(t, uint8(0), brushRGBA(0x00ff00).R)
}

type fileReader struct {
	*strings.Reader
	uri      fyne.URI
	closeErr error
	closed   bool
}

func (f *fileReader) URI() fyne.URI { return f.uri }

func (f *fileReader) Close() error {
	f.closed = true
	return f.closeErr
}

func TestImportLogsCloseError(t *testing.T) {
	a := test.NewTempApp(t)
	core, logs := observer.New(zap.DebugLevel)
	ed := editor.New(state.NewBoard())
	w := a.NewWindow("import")
	defer w.Close()

	tb := NewToolbar(w, NewBoardWidget(ed, 8, nil), zap.New(core))
	r := &fileReader{
		Reader:   strings.NewReader(`{"saveName": "from file", "frisbees": [{"object": {"id": 2}, "position": {"x": 5, "y": 5}}]}`),
		uri:      storage.NewFileURI("/tmp/board.json"),
		closeErr: errors.New("disk gone"),
	}
	tb.importAndClose(r)

	assert.True(t, r.closed)
	assert.Equal(t, "from file", ed.Board().SaveName())
	assert.Len(t, ed.Board().Discs(), 1)

	entries := logs.FilterMessage("close import").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "file:///tmp/board.json", entries[0].ContextMap()["uri"])
	assert.Equal(t, "disk gone", entries[0].ContextMap()["error"])
}
