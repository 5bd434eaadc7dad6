package persist

import (
	"context"

	"fyne.io/fyne/v2"
)

// Preferences stores documents in the fyne application's preferences, so a
// board survives restarts of the desktop app.
type Preferences struct {
	prefs fyne.Preferences
}

var _ Store = (*Preferences)(nil)

func NewPreferences(prefs fyne.Preferences) *Preferences {
	return &Preferences{prefs: prefs}
}

func (p *Preferences) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value := p.prefs.StringWithFallback(key, "")
	if value == "" {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

func (p *Preferences) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.prefs.SetString(key, string(data))
	return nil
}

func (p *Preferences) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.prefs.RemoveValue(key)
	return nil
}
