package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/swimrace/engine"
)

// Format selects the snapshot encoding for a subscriber
type Format uint8

const (
	FormatMsgpack Format = iota // Binary frames
	FormatJSON                  // Text frames
)

// String returns the query parameter value
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "msgpack"
}

// ParseFormat resolves a ?format value
func ParseFormat(s string) (Format, error) {
	switch s {
	case "msgpack":
		return FormatMsgpack, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// frameType returns the websocket message type carrying f
func (f Format) frameType() int {
	if f == FormatJSON {
		return websocket.TextMessage
	}
	return websocket.BinaryMessage
}

// Client message types
const (
	MsgInput   = "input"
	MsgStart   = "start"
	MsgPowerUp = "powerup"
)

// ErrUnknownMessage is returned for well-formed messages of an unknown type
var ErrUnknownMessage = errors.New("unknown message type")

// ClientMessage is a JSON message sent by a browser host
type ClientMessage struct {
	Type string `json:"type"`
	Up   bool   `json:"up,omitempty"`
	Down bool   `json:"down,omitempty"`
	Kind string `json:"kind,omitempty"` // Power-up id for MsgPowerUp
}

// DecodeClientMessage parses and validates a client message
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("decode client message: %w", err)
	}
	switch msg.Type {
	case MsgInput, MsgStart, MsgPowerUp:
		return msg, nil
	}
	return msg, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
}

// EncodeSnapshot serializes snap for f
// msgpack reuses the json tags so both formats share field names
func EncodeSnapshot(snap *engine.Snapshot, f Format) ([]byte, error) {
	if f == FormatJSON {
		return json.Marshal(snap)
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot reverses EncodeSnapshot, used by Go clients and tests
func DecodeSnapshot(data []byte, f Format) (engine.Snapshot, error) {
	var snap engine.Snapshot
	if f == FormatJSON {
		err := json.Unmarshal(data, &snap)
		return snap, err
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	err := dec.Decode(&snap)
	return snap, err
}
