package game

import "github.com/vovakirdan/snake3d/internal/grid"

// Renderer is the presentation collaborator. The session calls it at the
// moments the visible board changes; it never reads game state back.
type Renderer interface {
	// PlaceSegment shows a snake segment at c. A cell that already holds a
	// segment is updated in place (used to demote the old head to body).
	PlaceSegment(c grid.Cell, isHead bool)
	RemoveSegment(c grid.Cell)
	PlaceFood(c grid.Cell)
	RemoveFood()
	SetScoreDisplay(score int)
	SetGameOverVisible(visible bool, finalScore int)
	SetPauseVisible(visible bool)
}

// NopRenderer ignores every call. Useful for headless runs.
type NopRenderer struct{}

func (NopRenderer) PlaceSegment(grid.Cell, bool) {}
func (NopRenderer) RemoveSegment(grid.Cell) {}
func (NopRenderer) PlaceFood(grid.Cell) {}
func (NopRenderer) RemoveFood() {}
func (NopRenderer) SetScoreDisplay(int) {}
func (NopRenderer) SetGameOverVisible(bool, int) {}
func (NopRenderer) SetPauseVisible(bool) {}

// Ensure NopRenderer implements Renderer
var _ Renderer = NopRenderer{}
