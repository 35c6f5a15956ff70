package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/tatianab/rps-game/internal/models"
)

// Config holds the application configuration.
type Config struct {
	// Variant selects the move vocabulary: "classic" or "extended".
	Variant string `env:"RPS_VARIANT" envDefault:"classic"`
	// Adaptive switches the opponent from a fixed personality to the
	// frequency-counter strategy.
	Adaptive bool `env:"RPS_ADAPTIVE" envDefault:"false"`
	// WinLimit is the number of won rounds that takes the match.
	WinLimit int `env:"RPS_WIN_LIMIT" envDefault:"3"`
	// Seed fixes the opponent's randomness; 0 means time-based.
	Seed int64 `env:"RPS_SEED" envDefault:"0"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch models.Variant(cfg.Variant) {
	case models.VariantClassic, models.VariantExtended:
	default:
		return nil, fmt.Errorf("RPS_VARIANT must be %q or %q, got %q",
			models.VariantClassic, models.VariantExtended, cfg.Variant)
	}
	if cfg.WinLimit <= 0 {
		return nil, fmt.Errorf("RPS_WIN_LIMIT must be positive, got %d", cfg.WinLimit)
	}

	return &cfg, nil
}
