package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid config")

// Load loads the game configuration. Files are decoded over the defaults so
// a partial file only overrides what it names.
// Search order: customPath -> ~/.striker/configs/game.yaml -> ./configs/game.yaml -> embedded default
func Load(customPath string) (Game, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultGame(), err
		}
		if err := cfg.Validate(); err != nil {
			return DefaultGame(), fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("game.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "game.yaml")); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultGame()
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGame(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadFile(path string) (Game, error) {
	cfg := DefaultGame()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(path, data, &cfg); err != nil {
		return DefaultGame(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode picks the format from the file extension: .toml is TOML, anything
// else is YAML.
func Decode(path string, data []byte, cfg *Game) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".striker", "configs", filename)
}

// Validate rejects values the simulation cannot run with.
func (g Game) Validate() error {
	c := g.Constants
	switch {
	case g.Runner.TickRate <= 0:
		return fmt.Errorf("%w: runner.tick_rate must be positive", ErrInvalid)
	case g.Runner.TickRate > int(time.Second):
		// The step would truncate to zero
		return fmt.Errorf("%w: runner.tick_rate must be at most %d", ErrInvalid, int(time.Second))
	case g.Flow.CountdownSpeed <= 0:
		return fmt.Errorf("%w: flow.countdown_speed must be positive", ErrInvalid)
	case g.Flow.ScoreTarget == 0:
		return fmt.Errorf("%w: flow.score_target must be positive", ErrInvalid)
	case c.PinCount < 0:
		return fmt.Errorf("%w: constants.pin_count must not be negative", ErrInvalid)
	case c.PlayerRadius <= 0 || c.BallRadius <= 0:
		return fmt.Errorf("%w: radii must be positive", ErrInvalid)
	case c.DribbleSmoothing <= 0:
		return fmt.Errorf("%w: constants.dribble_smoothing must be positive", ErrInvalid)
	case c.BallBounds.X <= c.BallRadius || c.BallBounds.Y <= c.BallRadius:
		return fmt.Errorf("%w: ball_bounds smaller than the ball", ErrInvalid)
	case c.PlayerBounds.X <= c.PlayerRadius || c.PlayerBounds.Y <= c.PlayerRadius:
		return fmt.Errorf("%w: player_bounds smaller than a player", ErrInvalid)
	}
	return nil
}

// Encode renders the config as YAML, for `striker config`.
func (g Game) Encode() ([]byte, error) {
	return yaml.Marshal(g)
}
