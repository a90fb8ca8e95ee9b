// Package web serves the snake game over WebSocket. Each connection gets
// its own game session; renderer calls are streamed to the browser as
// event batches and the browser sends back direction, pause and restart
// requests.
package web

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/snake3d/internal/grid"
)

// EventType identifies an outbound event.
type EventType string

const (
	EventRun           EventType = "run"
	EventPlaceSegment  EventType = "place_segment"
	EventRemoveSegment EventType = "remove_segment"
	EventPlaceFood     EventType = "place_food"
	EventRemoveFood    EventType = "remove_food"
	EventScore         EventType = "score"
	EventGameOver      EventType = "game_over"
	EventPause         EventType = "pause"
)

// CellPos is a board position on the wire.
type CellPos struct {
	X int `json:"x" msgpack:"x"`
	Z int `json:"z" msgpack:"z"`
}

func cellPos(c grid.Cell) *CellPos {
	return &CellPos{X: c.X, Z: c.Z}
}

// Event is one renderer primitive sent to the browser. Only the fields
// relevant to Type are set.
type Event struct {
	Type    EventType `json:"type" msgpack:"type"`
	Cell    *CellPos  `json:"cell,omitempty" msgpack:"cell,omitempty"`
	Head    bool      `json:"head,omitempty" msgpack:"head,omitempty"`
	Score   *int      `json:"score,omitempty" msgpack:"score,omitempty"`
	Visible *bool     `json:"visible,omitempty" msgpack:"visible,omitempty"`

	// Run only: sent on connect and after each restart.
	ClientID string `json:"client_id,omitempty" msgpack:"client_id,omitempty"`
	RunID    string `json:"run_id,omitempty" msgpack:"run_id,omitempty"`
	GridSize int    `json:"grid_size,omitempty" msgpack:"grid_size,omitempty"`
	Preset   string `json:"preset,omitempty" msgpack:"preset,omitempty"`
}

// InputType identifies an inbound request.
type InputType string

const (
	InputDirection InputType = "direction"
	InputPause     InputType = "pause"
	InputRestart   InputType = "restart"
)

// Input is a request from the browser, e.g. {"type":"direction","dir":"+x"}.
type Input struct {
	Type InputType `json:"type" msgpack:"type"`
	Dir  string    `json:"dir,omitempty" msgpack:"dir,omitempty"`
}

// ErrUnknownInput is returned for inputs with an unknown type or direction.
var ErrUnknownInput = errors.New("web: unknown input")

// Direction parses the Dir field of a direction input.
func (in Input) Direction() (grid.Direction, error) {
	d, ok := grid.ParseDirection(in.Dir)
	if !ok {
		return 0, fmt.Errorf("%w: direction %q", ErrUnknownInput, in.Dir)
	}
	return d, nil
}

// Codec encodes event batches and decodes inputs.
type Codec interface {
	Name() string
	// MessageType is the WebSocket frame type used for outbound batches.
	MessageType() int
	Encode(events []Event) ([]byte, error)
	Decode(data []byte) (Input, error)
}

// ParseCodec returns the codec named by the ?codec= query value. An
// empty name selects JSON.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	}
	return nil, fmt.Errorf("web: unknown codec %q", name)
}

// JSONCodec sends text frames.
type JSONCodec struct{}

func (JSONCodec) Name() string     { return "json" }
func (JSONCodec) MessageType() int { return websocket.TextMessage }

func (JSONCodec) Encode(events []Event) ([]byte, error) {
	return json.Marshal(events)
}

func (JSONCodec) Decode(data []byte) (Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("web: decode json input: %w", err)
	}
	return in, validate(in)
}

// MsgpackCodec sends binary frames.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string     { return "msgpack" }
func (MsgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (MsgpackCodec) Encode(events []Event) ([]byte, error) {
	return msgpack.Marshal(events)
}

func (MsgpackCodec) Decode(data []byte) (Input, error) {
	var in Input
	if err := msgpack.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("web: decode msgpack input: %w", err)
	}
	return in, validate(in)
}

// decodeFrame picks the codec from the frame type so a client may send
// JSON text frames even when it receives msgpack.
func decodeFrame(messageType int, data []byte) (Input, error) {
	if messageType == websocket.BinaryMessage {
		return MsgpackCodec{}.Decode(data)
	}
	return JSONCodec{}.Decode(data)
}

func validate(in Input) error {
	switch in.Type {
	case InputPause, InputRestart:
		return nil
	case InputDirection:
		_, err := in.Direction()
		return err
	}
	return fmt.Errorf("%w: type %q", ErrUnknownInput, in.Type)
}
