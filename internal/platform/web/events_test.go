package web

import (
	"errors"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/snake3d/internal/game"
	"github.com/vovakirdan/snake3d/internal/grid"
)

func TestParseCodec(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		wantErr  bool
	}{
		{"", "json", false},
		{"json", "json", false},
		{"msgpack", "msgpack", false},
		{"xml", "", true},
	}

	for _, tc := range tests {
		codec, err := ParseCodec(tc.name)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCodec(%q) expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCodec(%q) failed: %v", tc.name, err)
		}
		if codec.Name() != tc.expected {
			t.Errorf("ParseCodec(%q).Name() = %q, expected %q", tc.name, codec.Name(), tc.expected)
		}
	}

	if (JSONCodec{}).MessageType() != websocket.TextMessage {
		t.Error("JSON batches should be text frames")
	}
	if (MsgpackCodec{}).MessageType() != websocket.BinaryMessage {
		t.Error("msgpack batches should be binary frames")
	}
}

func TestJSONDecode(t *testing.T) {
	tests := []struct {
		input    string
		expected Input
		wantErr  bool
	}{
		{`{"type":"direction","dir":"+x"}`, Input{Type: InputDirection, Dir: "+x"}, false},
		{`{"type":"direction","dir":"-z"}`, Input{Type: InputDirection, Dir: "-z"}, false},
		{`{"type":"pause"}`, Input{Type: InputPause}, false},
		{`{"type":"restart"}`, Input{Type: InputRestart}, false},
		{`{"type":"direction","dir":"up"}`, Input{}, true},
		{`{"type":"jump"}`, Input{}, true},
		{`not json`, Input{}, true},
	}

	for _, tc := range tests {
		in, err := JSONCodec{}.Decode([]byte(tc.input))
		if tc.wantErr {
			if err == nil {
				t.Errorf("Decode(%s) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Decode(%s) failed: %v", tc.input, err)
			continue
		}
		if in != tc.expected {
			t.Errorf("Decode(%s) = %+v, expected %+v", tc.input, in, tc.expected)
		}
	}

	_, err := JSONCodec{}.Decode([]byte(`{"type":"jump"}`))
	if !errors.Is(err, ErrUnknownInput) {
		t.Errorf("unknown type error = %v, expected ErrUnknownInput", err)
	}
}

func TestDecodeFrameByType(t *testing.T) {
	packed, err := msgpack.Marshal(&Input{Type: InputDirection, Dir: "-x"})
	if err != nil {
		t.Fatalf("msgpack.Marshal failed: %v", err)
	}

	in, err := decodeFrame(websocket.BinaryMessage, packed)
	if err != nil {
		t.Fatalf("decodeFrame(binary) failed: %v", err)
	}
	d, err := in.Direction()
	if err != nil || d != grid.NegX {
		t.Errorf("Direction() = %v, %v, expected -x", d, err)
	}

	in, err = decodeFrame(websocket.TextMessage, []byte(`{"type":"pause"}`))
	if err != nil || in.Type != InputPause {
		t.Errorf("decodeFrame(text) = %+v, %v, expected pause", in, err)
	}
}

func TestJSONEncodeShape(t *testing.T) {
	score := 0
	visible := true
	data, err := JSONCodec{}.Encode([]Event{
		{Type: EventPlaceSegment, Cell: &CellPos{X: 0, Z: 2}, Head: true},
		{Type: EventScore, Score: &score},
		{Type: EventPause, Visible: &visible},
		{Type: EventRemoveFood},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got := string(data)
	expected := `[{"type":"place_segment","cell":{"x":0,"z":2},"head":true},` +
		`{"type":"score","score":0},` +
		`{"type":"pause","visible":true},` +
		`{"type":"remove_food"}]`
	if got != expected {
		t.Errorf("Encode() = %s\nexpected %s", got, expected)
	}
}

func TestMsgpackEncode(t *testing.T) {
	score := 40
	data, err := MsgpackCodec{}.Encode([]Event{
		{Type: EventPlaceFood, Cell: &CellPos{X: 7, Z: 3}},
		{Type: EventScore, Score: &score},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var events []Event
	if err := msgpack.Unmarshal(data, &events); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("decoded %d events, expected 2", len(events))
	}
	if events[0].Type != EventPlaceFood || *events[0].Cell != (CellPos{X: 7, Z: 3}) {
		t.Errorf("events[0] = %+v, expected food at (7,3)", events[0])
	}
	if events[1].Score == nil || *events[1].Score != 40 {
		t.Errorf("events[1] = %+v, expected score 40", events[1])
	}
}

func TestEventRendererRecordsInitialRun(t *testing.T) {
	r := &eventRenderer{}
	s := game.NewSession(game.Options{Config: testSnakeConfig(), Seed: 1, Renderer: r})

	events := r.flush()
	var types []string
	for _, e := range events {
		types = append(types, string(e.Type))
	}
	expected := "place_segment place_segment place_segment score place_food"
	if got := strings.Join(types, " "); got != expected {
		t.Fatalf("initial events = %q, expected %q", got, expected)
	}

	head := events[2]
	if !head.Head || *head.Cell != (CellPos{X: 5, Z: 10}) {
		t.Errorf("head event = %+v, expected head at (5,10)", head)
	}
	if food := events[4].Cell; food == nil || (grid.Cell{X: food.X, Z: food.Z}) != s.Food() {
		t.Errorf("food event = %+v, expected %v", events[4], s.Food())
	}

	if again := r.flush(); again != nil {
		t.Errorf("second flush = %v, expected nil", again)
	}
}
