package config

import "time"

// SpeedSchedule turns score events into speed levels and move intervals.
// The multiplier is derived from an integer level so repeated steps never
// accumulate floating-point drift.
type SpeedSchedule struct {
	base      time.Duration
	threshold int
	step      float64
}

// NewSpeedSchedule creates a schedule from the config.
func NewSpeedSchedule(cfg SnakeConfig) SpeedSchedule {
	return SpeedSchedule{
		base:      cfg.BaseInterval(),
		threshold: cfg.Scoring.SpeedThreshold,
		step:      cfg.Scoring.SpeedStep,
	}
}

// IsEnabled reports whether scoring ever changes the speed.
func (s SpeedSchedule) IsEnabled() bool {
	return s.step > 0 && s.threshold > 0
}

// Crossed reports whether a score reached by a scoring event earns a speed-up.
func (s SpeedSchedule) Crossed(score int) bool {
	if !s.IsEnabled() {
		return false
	}
	return score > 0 && score%s.threshold == 0
}

// Multiplier returns the speed multiplier for a level (1.0 at level 0).
func (s SpeedSchedule) Multiplier(level int) float64 {
	return 1.0 + float64(level)*s.step
}

// Interval returns the minimum time between moves at a level.
func (s SpeedSchedule) Interval(level int) time.Duration {
	return time.Duration(float64(s.base) / s.Multiplier(level))
}
