package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvGridSize       = "SNAKE_GRID_SIZE"
	EnvBaseIntervalMS = "SNAKE_BASE_INTERVAL_MS"
	EnvSpeedThreshold = "SNAKE_SPEED_THRESHOLD"
	EnvSpeedStep      = "SNAKE_SPEED_STEP"
)

// LoadSnake builds the game configuration. The first file found among
// customPath, ~/.snake3d/configs/snake.yaml and ./configs/snake.yaml is
// layered over the defaults; only customPath must exist. SNAKE_* variables,
// read from the environment or a .env file, are applied last.
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg, err := loadSnakeFile(customPath)
	if err != nil {
		return cfg, err
	}

	// A missing .env is normal; real environment variables win over it.
	_ = godotenv.Load()

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func loadSnakeFile(customPath string) (SnakeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSnakeConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseSnakeYAML(data)
		if err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Unreadable or malformed optional files are skipped.
	for _, path := range optionalConfigPaths("snake.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseSnakeYAML(data); err == nil {
			return cfg, nil
		}
	}
	return parseSnakeYAML(defaultSnakeYAML)
}

// parseSnakeYAML layers data over DefaultSnakeConfig, so a partial file
// only overrides the keys it names.
func parseSnakeYAML(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultSnakeConfig(), err
	}
	return cfg, nil
}

func optionalConfigPaths(filename string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".snake3d", "configs", filename))
	}
	return append(paths, filepath.Join("configs", filename))
}

// ApplyEnv overrides config values from SNAKE_* environment variables.
// Unset or empty variables leave the value alone.
func ApplyEnv(cfg *SnakeConfig) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvGridSize, &cfg.Grid.Size},
		{EnvBaseIntervalMS, &cfg.Timing.BaseIntervalMS},
		{EnvSpeedThreshold, &cfg.Scoring.SpeedThreshold},
	}
	for _, o := range ints {
		v := os.Getenv(o.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", o.key, err)
		}
		*o.dst = n
	}

	if v := os.Getenv(EnvSpeedStep); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s must be a number: %w", EnvSpeedStep, err)
		}
		cfg.Scoring.SpeedStep = f
	}
	return nil
}
