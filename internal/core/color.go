package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorGray
)

// Palette for board elements, matching the browser scene (green snake,
// red apple, dark grid).
const (
	ColorSnakeHead = ColorBrightGreen
	ColorSnakeBody = ColorGreen
	ColorFood      = ColorBrightRed
	ColorGrid      = ColorGray
	ColorHUD       = ColorWhite
	ColorAlert     = ColorBrightYellow
)
