package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration: a 20x20 board,
// a 150ms base move interval and +0.1 speed every 50 points.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Size:          20,
			InitialLength: 3,
		},
		Timing: TimingConfig{
			BaseIntervalMS: 150,
		},
		Scoring: ScoringConfig{
			PointsPerFood:  10,
			SpeedThreshold: 50,
			SpeedStep:      0.1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
