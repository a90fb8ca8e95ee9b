// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by Validate for any out-of-range value.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// SnakeConfig contains all tunable parameters of the snake game.
type SnakeConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// GridConfig defines the board.
type GridConfig struct {
	Size          int `yaml:"size"`           // Side length of the square board
	InitialLength int `yaml:"initial_length"` // Snake length at the start of a run
}

// TimingConfig defines the move cadence.
type TimingConfig struct {
	BaseIntervalMS int `yaml:"base_interval_ms"` // Minimum time between moves at multiplier 1
}

// ScoringConfig defines points and speed-up rules.
type ScoringConfig struct {
	PointsPerFood  int     `yaml:"points_per_food"`
	SpeedThreshold int     `yaml:"speed_threshold"` // Speed up whenever score hits a multiple of this
	SpeedStep      float64 `yaml:"speed_step"`      // Added to the speed multiplier per threshold
}

// BaseInterval returns the base move interval as a duration.
func (c SnakeConfig) BaseInterval() time.Duration {
	return time.Duration(c.Timing.BaseIntervalMS) * time.Millisecond
}

// Validate checks that the configuration describes a playable game.
func (c SnakeConfig) Validate() error {
	if c.Grid.InitialLength < 1 {
		return fmt.Errorf("%w: grid.initial_length must be at least 1, got %d", ErrInvalidConfig, c.Grid.InitialLength)
	}
	if c.Grid.Size < c.Grid.InitialLength+2 {
		return fmt.Errorf("%w: grid.size %d too small for initial length %d", ErrInvalidConfig, c.Grid.Size, c.Grid.InitialLength)
	}
	if c.Grid.Size/4-(c.Grid.InitialLength-1) < 0 {
		return fmt.Errorf("%w: snake of length %d does not fit left of x=%d", ErrInvalidConfig, c.Grid.InitialLength, c.Grid.Size/4)
	}
	if c.Timing.BaseIntervalMS <= 0 {
		return fmt.Errorf("%w: timing.base_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.Scoring.PointsPerFood <= 0 {
		return fmt.Errorf("%w: scoring.points_per_food must be positive", ErrInvalidConfig)
	}
	if c.Scoring.SpeedThreshold <= 0 {
		return fmt.Errorf("%w: scoring.speed_threshold must be positive", ErrInvalidConfig)
	}
	if c.Scoring.SpeedStep < 0 {
		return fmt.Errorf("%w: scoring.speed_step must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// Description returns a one-line summary for menus and listings.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Slower start, speeds up with score"
	case DifficultyNormal:
		return "Classic pace, speeds up with score"
	case DifficultyHard:
		return "Faster start, speeds up with score"
	case DifficultyFixed:
		return "Config pace, never speeds up"
	default:
		return ""
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// Easy and hard scale the configured base interval by 4/3 and 2/3, so the
// default 150ms becomes 200ms and 100ms.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.BaseIntervalMS = cfg.Timing.BaseIntervalMS * 4 / 3
	case DifficultyHard:
		cfg.Timing.BaseIntervalMS = cfg.Timing.BaseIntervalMS * 2 / 3
	case DifficultyFixed:
		cfg.Scoring.SpeedStep = 0
	}
}
