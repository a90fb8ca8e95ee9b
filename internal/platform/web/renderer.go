package web

import (
	"github.com/vovakirdan/snake3d/internal/game"
	"github.com/vovakirdan/snake3d/internal/grid"
)

// eventRenderer records renderer calls as events until the client loop
// flushes them. It is owned by a single client goroutine.
type eventRenderer struct {
	pending []Event
}

var _ game.Renderer = (*eventRenderer)(nil)

func (r *eventRenderer) PlaceSegment(c grid.Cell, head bool) {
	r.pending = append(r.pending, Event{Type: EventPlaceSegment, Cell: cellPos(c), Head: head})
}

func (r *eventRenderer) RemoveSegment(c grid.Cell) {
	r.pending = append(r.pending, Event{Type: EventRemoveSegment, Cell: cellPos(c)})
}

func (r *eventRenderer) PlaceFood(c grid.Cell) {
	r.pending = append(r.pending, Event{Type: EventPlaceFood, Cell: cellPos(c)})
}

func (r *eventRenderer) RemoveFood() {
	r.pending = append(r.pending, Event{Type: EventRemoveFood})
}

func (r *eventRenderer) SetScoreDisplay(score int) {
	r.pending = append(r.pending, Event{Type: EventScore, Score: &score})
}

func (r *eventRenderer) SetGameOverVisible(visible bool, finalScore int) {
	r.pending = append(r.pending, Event{Type: EventGameOver, Visible: &visible, Score: &finalScore})
}

func (r *eventRenderer) SetPauseVisible(visible bool) {
	r.pending = append(r.pending, Event{Type: EventPause, Visible: &visible})
}

// flush returns the recorded events and starts a new batch.
func (r *eventRenderer) flush() []Event {
	if len(r.pending) == 0 {
		return nil
	}
	out := r.pending
	r.pending = nil
	return out
}
