package core

import "time"

// DefaultTickRate is the frame rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig holds what a front end knows about its surroundings: the
// terminal size, how often it calls Session.OnFrame, and the food seed.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // frames per second
	Seed     int64 // 0 lets the front end pick a time-based seed
}

// DefaultConfig returns an 80x24 screen at the default frame rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// FrameInterval is the delay between frames for a rate in frames per
// second. Non-positive rates fall back to DefaultTickRate.
func FrameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// FrameInterval is the delay between frames for this config.
func (c RuntimeConfig) FrameInterval() time.Duration {
	return FrameInterval(c.TickRate)
}
