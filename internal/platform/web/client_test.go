package web

import (
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/game"
	"github.com/vovakirdan/snake3d/internal/grid"
	"github.com/vovakirdan/snake3d/internal/storage"
)

func testSnakeConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Timing.BaseIntervalMS = 200
	return cfg
}

// newTestClient builds a client without a connection; tests drive its
// loop methods directly and read batches from the send channel.
func newTestClient(t *testing.T, store *storage.Store) *client {
	t.Helper()
	c := newClient(clientOptions{
		codec:  JSONCodec{},
		snake:  testSnakeConfig(),
		preset: config.DifficultyNormal,
		seed:   7,
		fps:    60,
		store:  store,
		logger: log.New(io.Discard),
	})
	c.start()
	return c
}

// batches decodes everything queued so far.
func batches(t *testing.T, c *client) [][]Event {
	t.Helper()
	var out [][]Event
	for {
		select {
		case data := <-c.send:
			var events []Event
			if err := json.Unmarshal(data, &events); err != nil {
				t.Fatalf("decode batch: %v", err)
			}
			out = append(out, events)
		default:
			return out
		}
	}
}

func TestClientStartBatch(t *testing.T) {
	c := newTestClient(t, nil)

	got := batches(t, c)
	if len(got) != 1 {
		t.Fatalf("queued %d batches, expected 1", len(got))
	}
	first := got[0]
	if first[0].Type != EventRun {
		t.Fatalf("first event = %v, expected run", first[0].Type)
	}
	if first[0].ClientID != c.id || first[0].RunID != c.runID {
		t.Errorf("run event = %+v, expected client %s run %s", first[0], c.id, c.runID)
	}
	if first[0].GridSize != 20 || first[0].Preset != "normal" {
		t.Errorf("run event = %+v, expected grid 20 preset normal", first[0])
	}
	if len(first) != 6 {
		t.Errorf("start batch has %d events, expected 6", len(first))
	}
}

func TestClientAppliesInputsOnFrame(t *testing.T) {
	c := newTestClient(t, nil)
	batches(t, c)

	c.inputs <- Input{Type: InputDirection, Dir: "+z"}
	c.inputs <- Input{Type: InputDirection, Dir: "-x"} // reverse of the committed +x

	now := time.Unix(50, 0)
	c.drainInputs()
	c.frame(now)
	if c.session.Pending() != grid.PosZ {
		t.Fatalf("Pending() = %v, expected +z", c.session.Pending())
	}
	if got := batches(t, c); len(got) != 0 {
		t.Errorf("arming frame sent %d batches, expected none", len(got))
	}

	c.frame(now.Add(201 * time.Millisecond))
	got := batches(t, c)
	if len(got) != 1 {
		t.Fatalf("tick sent %d batches, expected 1", len(got))
	}
	last := got[0][len(got[0])-1]
	if last.Type != EventPlaceSegment || !last.Head || *last.Cell != (CellPos{X: 5, Z: 11}) {
		t.Errorf("last event = %+v, expected head placed at (5,11)", last)
	}
}

func TestClientPauseEvents(t *testing.T) {
	c := newTestClient(t, nil)
	batches(t, c)

	c.apply(Input{Type: InputPause})
	c.frame(time.Unix(50, 0))

	got := batches(t, c)
	if len(got) != 1 || len(got[0]) != 1 {
		t.Fatalf("pause sent %v, expected one event", got)
	}
	e := got[0][0]
	if e.Type != EventPause || e.Visible == nil || !*e.Visible {
		t.Errorf("pause event = %+v, expected visible pause", e)
	}
	if c.session.Status() != game.StatusPaused {
		t.Errorf("Status() = %v, expected paused", c.session.Status())
	}
}

// chase steers the head toward the food, stepping sideways when the food
// is straight behind.
func chase(c *client) {
	s := c.session
	head, food, dir := s.Snake()[0], s.Food(), s.Direction()
	var d grid.Direction
	switch {
	case food.X > head.X && dir != grid.NegX:
		d = grid.PosX
	case food.X < head.X && dir != grid.PosX:
		d = grid.NegX
	case food.Z > head.Z && dir != grid.NegZ:
		d = grid.PosZ
	case food.Z < head.Z && dir != grid.PosZ:
		d = grid.NegZ
	case dir == grid.PosX || dir == grid.NegX:
		d = grid.PosZ
		if head.Z >= s.GridSize()/2 {
			d = grid.NegZ
		}
	default:
		d = grid.PosX
		if head.X >= s.GridSize()/2 {
			d = grid.NegX
		}
	}
	c.apply(Input{Type: InputDirection, Dir: d.String()})
}

func TestClientSavesRunAndRestarts(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	c := newTestClient(t, store)
	firstRun := c.runID
	batches(t, c)

	now := time.Unix(50, 0)
	c.frame(now)
	var sawGameOver bool
	for range 5000 {
		if c.session.Status() == game.StatusGameOver {
			break
		}
		if c.session.Score() == 0 {
			chase(c)
		}
		now = now.Add(250 * time.Millisecond)
		c.frame(now)
		for _, b := range batches(t, c) {
			for _, e := range b {
				if e.Type == EventGameOver && e.Visible != nil && *e.Visible {
					sawGameOver = true
				}
			}
		}
	}
	if c.session.Status() != game.StatusGameOver {
		t.Fatal("run never ended")
	}
	if !sawGameOver {
		t.Error("no game_over event was sent")
	}
	score := c.session.Score()
	if score == 0 {
		t.Fatal("snake never reached the food")
	}

	// Further frames must not save the run again.
	c.frame(now.Add(time.Second))
	c.frame(now.Add(2 * time.Second))

	entries, err := store.TopScores("normal", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(entries))
	}
	if entries[0].RunID != firstRun || entries[0].Source != "web" || entries[0].Score != score {
		t.Errorf("saved run = %+v, expected run %s from web with score %d", entries[0], firstRun, score)
	}

	c.apply(Input{Type: InputRestart})
	c.frame(now.Add(3 * time.Second))
	if c.runID == firstRun {
		t.Error("restart kept the old run ID")
	}
	if c.saved {
		t.Error("saved flag not reset on restart")
	}

	got := batches(t, c)
	if len(got) != 1 {
		t.Fatalf("restart sent %d batches, expected 1", len(got))
	}
	runAt, placeAt := -1, -1
	for i, e := range got[0] {
		if e.Type == EventRun && runAt < 0 {
			runAt = i
			if e.RunID != c.runID {
				t.Errorf("run event ID = %s, expected %s", e.RunID, c.runID)
			}
		}
		if e.Type == EventPlaceSegment && placeAt < 0 {
			placeAt = i
		}
	}
	if runAt < 0 || placeAt < 0 || runAt > placeAt {
		t.Errorf("run event at %d, first segment at %d: run must come first", runAt, placeAt)
	}
}

func TestClientRestartIgnoredWhileRunning(t *testing.T) {
	c := newTestClient(t, nil)
	batches(t, c)
	run := c.runID

	c.apply(Input{Type: InputRestart})
	c.frame(time.Unix(50, 0))

	if c.runID != run {
		t.Error("restart while running changed the run ID")
	}
	if got := batches(t, c); len(got) != 0 {
		t.Errorf("ignored restart sent %v", got)
	}
}

func TestClientCloseIsIdempotent(t *testing.T) {
	c := newTestClient(t, nil)
	c.close()
	c.close()

	select {
	case <-c.done:
	default:
		t.Error("done not closed")
	}

	// Pushing after close must not block.
	c.push([]Event{{Type: EventRemoveFood}})
}
