// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hailam/chess3d/internal/mana"
)

// Config holds the runtime settings. Every field has a usable default.
type Config struct {
	// DataDir overrides the XDG data directory used for preferences and stats.
	DataDir       string        `env:"CHESS3D_DATA_DIR"`
	GameOverDelay time.Duration `env:"CHESS3D_GAME_OVER_DELAY" envDefault:"1s"`
	StartingMana  int           `env:"CHESS3D_STARTING_MANA"   envDefault:"100"`
	NoStorage     bool          `env:"CHESS3D_NO_STORAGE"      envDefault:"false"`
	Sound         bool          `env:"CHESS3D_SOUND"           envDefault:"true"`
	WindowWidth   int           `env:"CHESS3D_WINDOW_WIDTH"    envDefault:"1024"`
	WindowHeight  int           `env:"CHESS3D_WINDOW_HEIGHT"   envDefault:"680"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the settings used when the environment is empty.
func Default() Config {
	return Config{
		GameOverDelay: time.Second,
		StartingMana:  mana.Max,
		Sound:         true,
		WindowWidth:   1024,
		WindowHeight:  680,
	}
}

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.GameOverDelay < 0 {
		errs = append(errs, fmt.Errorf("game over delay %v is negative", c.GameOverDelay))
	}
	if c.StartingMana < 0 || c.StartingMana > mana.Max {
		errs = append(errs, fmt.Errorf("starting mana %d outside [0, %d]", c.StartingMana, mana.Max))
	}
	if c.WindowWidth < 320 || c.WindowHeight < 240 {
		errs = append(errs, fmt.Errorf("window %dx%d is smaller than 320x240", c.WindowWidth, c.WindowHeight))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
