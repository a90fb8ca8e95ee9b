// Package render provides a terminal renderer for the snake session. Board
// collects the primitive renderer calls into a top-down picture of the
// x/z plane and draws it to a core.Screen.
package render

import (
	"fmt"

	"github.com/vovakirdan/snake3d/internal/core"
	"github.com/vovakirdan/snake3d/internal/game"
	"github.com/vovakirdan/snake3d/internal/grid"
)

const (
	hudHeight = 2 // title line + separator
	cellWidth = 2 // each board cell is two columns wide so it looks square
)

// Glyphs used on the board.
const (
	GlyphHead  = '@'
	GlyphBody  = 'o'
	GlyphFood  = '*'
	GlyphEmpty = '·'
)

// HUD holds values shown in the status line that the session does not push
// through the renderer.
type HUD struct {
	Title     string
	Speed     float64
	HighScore int
}

// Board is a game.Renderer that remembers what it was told to show.
type Board struct {
	size     int
	segments map[grid.Cell]bool // true for the head
	food     grid.Cell
	hasFood  bool
	score    int
	over     bool
	final    int
	paused   bool
}

var _ game.Renderer = (*Board)(nil)

// NewBoard creates an empty board for a grid of the given size.
func NewBoard(size int) *Board {
	return &Board{
		size:     size,
		segments: make(map[grid.Cell]bool),
	}
}

func (b *Board) PlaceSegment(c grid.Cell, isHead bool) {
	b.segments[c] = isHead
}

func (b *Board) RemoveSegment(c grid.Cell) {
	delete(b.segments, c)
}

func (b *Board) PlaceFood(c grid.Cell) {
	b.food = c
	b.hasFood = true
}

func (b *Board) RemoveFood() {
	b.hasFood = false
}

func (b *Board) SetScoreDisplay(score int) {
	b.score = score
}

func (b *Board) SetGameOverVisible(visible bool, finalScore int) {
	b.over = visible
	b.final = finalScore
}

func (b *Board) SetPauseVisible(visible bool) {
	b.paused = visible
}

// Score returns the last score shown.
func (b *Board) Score() int {
	return b.score
}

// GameOverVisible reports whether the game over overlay is up.
func (b *Board) GameOverVisible() bool {
	return b.over
}

// PauseVisible reports whether the pause overlay is up.
func (b *Board) PauseVisible() bool {
	return b.paused
}

// SegmentCount returns the number of segments on the board.
func (b *Board) SegmentCount() int {
	return len(b.segments)
}

// MinScreenSize returns the smallest screen the board fits on.
func (b *Board) MinScreenSize() (w, h int) {
	return b.size*cellWidth + 2, b.size + 2 + hudHeight
}

// Draw renders the HUD, the board and any overlay to dst.
func (b *Board) Draw(dst *core.Screen, hud HUD) {
	dst.Clear()
	b.drawHUD(dst, hud)

	minW, minH := b.MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		drawOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	frame := core.NewRect(0, hudHeight, minW, b.size+2)
	frame.X = (dst.Width() - frame.W) / 2
	dst.DrawBox(frame, core.ColorGrid)

	originX := frame.X + 1
	originY := frame.Y + 1
	for z := range b.size {
		for x := range b.size {
			dst.SetColored(originX+x*cellWidth, originY+z, GlyphEmpty, core.ColorGrid)
		}
	}

	if b.hasFood {
		dst.SetColored(originX+b.food.X*cellWidth, originY+b.food.Z, GlyphFood, core.ColorFood)
	}

	for c, isHead := range b.segments {
		if isHead {
			dst.SetColored(originX+c.X*cellWidth, originY+c.Z, GlyphHead, core.ColorSnakeHead)
		} else {
			dst.SetColored(originX+c.X*cellWidth, originY+c.Z, GlyphBody, core.ColorSnakeBody)
		}
	}

	switch {
	case b.over:
		drawOverlay(dst, "Game Over", fmt.Sprintf("Final Score: %d", b.final), "R restart  B menu")
	case b.paused:
		drawOverlay(dst, "Paused", "Press P to continue")
	}
}

func (b *Board) drawHUD(dst *core.Screen, hud HUD) {
	title := hud.Title
	if title == "" {
		title = "Snake 3D"
	}
	line := fmt.Sprintf(" %s  Score: %d  Speed: x%.1f", title, b.score, hud.Speed)
	if hud.HighScore > 0 {
		line += fmt.Sprintf("  Best: %d", hud.HighScore)
	}
	dst.DrawTextColored(0, 0, line, core.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGrid)
}

// drawOverlay draws a boxed message in the middle of the screen.
func drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}

	screen := core.NewRect(0, 0, dst.Width(), dst.Height())
	box := screen.Centered(maxLen+4, len(lines)+2)
	box.X = core.Clamp(box.X, 0, max(0, dst.Width()-box.W))
	box.Y = core.Clamp(box.Y, 0, max(0, dst.Height()-box.H))
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorAlert)

	for i, l := range lines {
		color := core.ColorHUD
		if i == 0 {
			color = core.ColorAlert
		}
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, color)
	}
}
