// Package config reads application settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds settings for the desktop app. FieldScale is screen pixels
// per board unit and PDFScale is millimetres per board unit.
type Config struct {
	AppID      string  `env:"TACTICBOARD_APP_ID"      envDefault:"io.tacticboard.app"`
	StorageKey string  `env:"TACTICBOARD_STORAGE_KEY" envDefault:"tactic-board-storage"`
	LogLevel   string  `env:"TACTICBOARD_LOG_LEVEL"   envDefault:"info"`
	FieldScale float32 `env:"TACTICBOARD_FIELD_SCALE" envDefault:"8"`
	PDFScale   float64 `env:"TACTICBOARD_PDF_SCALE"   envDefault:"2.4"`
}

// Load parses Config from the environment, filling in defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FieldScale <= 0 {
		return Config{}, fmt.Errorf("TACTICBOARD_FIELD_SCALE must be positive, got %v", cfg.FieldScale)
	}
	if cfg.PDFScale <= 0 {
		return Config{}, fmt.Errorf("TACTICBOARD_PDF_SCALE must be positive, got %v", cfg.PDFScale)
	}
	return cfg, nil
}
