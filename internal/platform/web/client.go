package web

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/core"
	"github.com/vovakirdan/snake3d/internal/game"
	"github.com/vovakirdan/snake3d/internal/storage"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	sendBufferSize  = 64
	inputBufferSize = 16
)

// client is one WebSocket connection playing its own session. Only the
// loop goroutine touches the session and the renderer; the read pump
// hands inputs over through a channel and the write pump is the only
// writer on the connection.
type client struct {
	id      string
	runID   string
	conn    *websocket.Conn
	codec   Codec
	preset  config.DifficultyPreset
	fps     int
	session *game.Session
	render  *eventRenderer
	store   *storage.Store
	logger  *log.Logger
	saved   bool // current run already recorded

	inputs   chan Input
	send     chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

type clientOptions struct {
	conn   *websocket.Conn
	codec  Codec
	snake  config.SnakeConfig
	preset config.DifficultyPreset
	seed   int64
	fps    int
	store  *storage.Store
	logger *log.Logger
}

func newClient(opts clientOptions) *client {
	id := uuid.NewString()
	render := &eventRenderer{}
	logger := opts.logger.With("client", id[:8])
	c := &client{
		id:     id,
		runID:  uuid.NewString(),
		conn:   opts.conn,
		codec:  opts.codec,
		preset: opts.preset,
		fps:    opts.fps,
		render: render,
		store:  opts.store,
		logger: logger,
		inputs: make(chan Input, inputBufferSize),
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
	c.session = game.NewSession(game.Options{
		Config:   opts.snake,
		Seed:     opts.seed,
		Renderer: render,
		Logger:   logger,
	})
	return c
}

// runEvent announces the current run. It goes out ahead of the run's
// initial drawing.
func (c *client) runEvent() Event {
	return Event{
		Type:     EventRun,
		ClientID: c.id,
		RunID:    c.runID,
		GridSize: c.session.GridSize(),
		Preset:   string(c.preset),
	}
}

// start queues the first batch: the run announcement and the initial board.
func (c *client) start() {
	c.push(append([]Event{c.runEvent()}, c.render.flush()...))
}

// loop drives the session from a ticker until the client disconnects or
// ctx is cancelled.
func (c *client) loop(ctx context.Context) {
	ticker := time.NewTicker(core.FrameInterval(c.fps))
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.drainInputs()
			c.frame(now)
		case <-ctx.Done():
			c.close()
			return
		case <-c.done:
			return
		}
	}
}

// drainInputs applies every input received since the previous frame.
func (c *client) drainInputs() {
	for {
		select {
		case in := <-c.inputs:
			c.apply(in)
		default:
			return
		}
	}
}

// apply hands one input to the session. Inputs have been validated by
// the codec.
func (c *client) apply(in Input) {
	switch in.Type {
	case InputDirection:
		if d, err := in.Direction(); err == nil {
			c.session.RequestDirection(d)
		}
	case InputPause:
		c.session.TogglePause()
	case InputRestart:
		// The run event goes ahead of everything Restart draws.
		before := c.render.flush()
		if !c.session.Restart() {
			c.render.pending = before
			return
		}
		c.saved = false
		c.runID = uuid.NewString()
		redraw := c.render.flush()
		c.render.pending = append(append(before, c.runEvent()), redraw...)
	}
}

// frame advances the session and sends whatever the renderer recorded.
func (c *client) frame(now time.Time) {
	c.session.OnFrame(now)

	if c.session.Status() == game.StatusGameOver && !c.saved {
		c.saveRun()
		c.saved = true
	}

	if events := c.render.flush(); len(events) > 0 {
		c.push(events)
	}
}

// saveRun records the finished run. Best effort: the game continues
// without storage.
func (c *client) saveRun() {
	st := c.session.State()
	c.logger.Info("run finished", "run", c.runID, "score", st.Score, "reason", st.Reason)
	if c.store == nil || st.Score <= 0 {
		return
	}
	_, err := c.store.SaveRun(storage.RunRecord{
		RunID:  c.runID,
		Preset: string(c.preset),
		Score:  st.Score,
		Length: st.Length,
		Reason: st.Reason.String(),
		Source: "web",
	})
	if err != nil {
		c.logger.Warn("could not save score", "error", err)
	}
}

// push encodes a batch and queues it for the write pump. A client that
// cannot keep up is disconnected, since dropping a batch would leave its
// board out of sync.
func (c *client) push(events []Event) {
	data, err := c.codec.Encode(events)
	if err != nil {
		c.logger.Error("encode events", "error", err)
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	default:
		c.logger.Warn("send buffer full, disconnecting")
		c.close()
	}
}

// close ends the client. Safe to call more than once.
func (c *client) close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// readPump decodes inbound frames and forwards them to the loop.
func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "error", err)
			}
			return
		}

		in, err := decodeFrame(messageType, data)
		if err != nil {
			c.logger.Debug("ignoring input", "error", err)
			continue
		}

		select {
		case c.inputs <- in:
		case <-c.done:
			return
		default:
			// Input buffer full, drop it
		}
	}
}

// writePump is the only goroutine that writes to the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(c.codec.MessageType(), data); err != nil {
				c.close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
