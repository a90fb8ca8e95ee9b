package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseSnakeYAML(defaultSnakeYAML)
	if err != nil {
		t.Fatalf("parseSnakeYAML(embedded) failed: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultSnakeConfig())
	}
}

func TestOptionalConfigPaths(t *testing.T) {
	paths := optionalConfigPaths("snake.yaml")
	if len(paths) == 0 || paths[len(paths)-1] != filepath.Join("configs", "snake.yaml") {
		t.Errorf("optionalConfigPaths() = %v, expected the local configs dir last", paths)
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := DefaultSnakeConfig()

	if cfg.Grid.Size != 20 {
		t.Errorf("Grid.Size = %d, expected 20", cfg.Grid.Size)
	}
	if cfg.BaseInterval() != 150*time.Millisecond {
		t.Errorf("BaseInterval() = %v, expected 150ms", cfg.BaseInterval())
	}
	if cfg.Scoring.SpeedThreshold != 50 {
		t.Errorf("SpeedThreshold = %d, expected 50", cfg.Scoring.SpeedThreshold)
	}
	if cfg.Scoring.SpeedStep != 0.1 {
		t.Errorf("SpeedStep = %v, expected 0.1", cfg.Scoring.SpeedStep)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("grid:\n  size: 30\ntiming:\n  base_interval_ms: 120\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Grid.Size != 30 {
		t.Errorf("Grid.Size = %d, expected 30", cfg.Grid.Size)
	}
	if cfg.Timing.BaseIntervalMS != 120 {
		t.Errorf("BaseIntervalMS = %d, expected 120", cfg.Timing.BaseIntervalMS)
	}
	// Unspecified values keep their defaults.
	if cfg.Grid.InitialLength != 3 {
		t.Errorf("InitialLength = %d, expected 3", cfg.Grid.InitialLength)
	}
	if cfg.Scoring.PointsPerFood != 10 {
		t.Errorf("PointsPerFood = %d, expected 10", cfg.Scoring.PointsPerFood)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := LoadSnake(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("LoadSnake() should fail for a missing custom path")
	}
}

func TestLoadCustomPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  size: 3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	_, err := LoadSnake(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadSnake() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvGridSize, "24")
	t.Setenv(EnvBaseIntervalMS, "90")
	t.Setenv(EnvSpeedThreshold, "30")
	t.Setenv(EnvSpeedStep, "0.25")

	cfg := DefaultSnakeConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}

	if cfg.Grid.Size != 24 {
		t.Errorf("Grid.Size = %d, expected 24", cfg.Grid.Size)
	}
	if cfg.Timing.BaseIntervalMS != 90 {
		t.Errorf("BaseIntervalMS = %d, expected 90", cfg.Timing.BaseIntervalMS)
	}
	if cfg.Scoring.SpeedThreshold != 30 {
		t.Errorf("SpeedThreshold = %d, expected 30", cfg.Scoring.SpeedThreshold)
	}
	if cfg.Scoring.SpeedStep != 0.25 {
		t.Errorf("SpeedStep = %v, expected 0.25", cfg.Scoring.SpeedStep)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv(EnvGridSize, "twenty")

	cfg := DefaultSnakeConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv() should reject a non-integer grid size")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
		ok     bool
	}{
		{"defaults", func(*SnakeConfig) {}, true},
		{"zero initial length", func(c *SnakeConfig) { c.Grid.InitialLength = 0 }, false},
		{"grid too small", func(c *SnakeConfig) { c.Grid.Size = 4 }, false},
		{"snake too long for start column", func(c *SnakeConfig) { c.Grid.InitialLength = 7 }, false},
		{"zero interval", func(c *SnakeConfig) { c.Timing.BaseIntervalMS = 0 }, false},
		{"zero points", func(c *SnakeConfig) { c.Scoring.PointsPerFood = 0 }, false},
		{"zero threshold", func(c *SnakeConfig) { c.Scoring.SpeedThreshold = 0 }, false},
		{"negative step", func(c *SnakeConfig) { c.Scoring.SpeedStep = -0.1 }, false},
		{"zero step", func(c *SnakeConfig) { c.Scoring.SpeedStep = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplySnakePreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		interval int
		step     float64
	}{
		{DifficultyEasy, 200, 0.1},
		{DifficultyNormal, 150, 0.1},
		{DifficultyHard, 100, 0.1},
		{DifficultyFixed, 150, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			ApplySnakePreset(&cfg, tc.preset)
			if cfg.Timing.BaseIntervalMS != tc.interval {
				t.Errorf("BaseIntervalMS = %d, expected %d", cfg.Timing.BaseIntervalMS, tc.interval)
			}
			if cfg.Scoring.SpeedStep != tc.step {
				t.Errorf("SpeedStep = %v, expected %v", cfg.Scoring.SpeedStep, tc.step)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v; expected normal", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(\"hard\") = %q, %v; expected hard", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(\"insane\") should fail")
	}
}

func TestSpeedSchedule(t *testing.T) {
	s := NewSpeedSchedule(DefaultSnakeConfig())

	crossed := []struct {
		score int
		want  bool
	}{
		{0, false},
		{10, false},
		{40, false},
		{50, true},
		{60, false},
		{100, true},
		{150, true},
	}
	for _, tc := range crossed {
		if got := s.Crossed(tc.score); got != tc.want {
			t.Errorf("Crossed(%d) = %v, expected %v", tc.score, got, tc.want)
		}
	}

	if s.Multiplier(0) != 1.0 {
		t.Errorf("Multiplier(0) = %v, expected 1.0", s.Multiplier(0))
	}
	if s.Interval(0) != 150*time.Millisecond {
		t.Errorf("Interval(0) = %v, expected 150ms", s.Interval(0))
	}
	// 150ms / 1.5 = 100ms
	if got := s.Interval(5); got != 100*time.Millisecond {
		t.Errorf("Interval(5) = %v, expected 100ms", got)
	}
}

func TestSpeedScheduleFixed(t *testing.T) {
	cfg := DefaultSnakeConfig()
	ApplySnakePreset(&cfg, DifficultyFixed)
	s := NewSpeedSchedule(cfg)

	if s.IsEnabled() {
		t.Error("fixed preset should disable speed progression")
	}
	if s.Crossed(50) {
		t.Error("fixed preset should never speed up")
	}
}
