package network

import (
	"encoding/json"
	"fmt"

	"github.com/elgoog577215-beep/skyfall/engine"
	"github.com/elgoog577215-beep/skyfall/input"
)

// MessageType identifies the semantic meaning of a message
type MessageType string

const (
	// Client → server
	MsgPress         MessageType = "press"
	MsgRelease       MessageType = "release"
	MsgPointer       MessageType = "pointer"
	MsgClearPointer  MessageType = "clear_pointer"
	MsgRestart       MessageType = "restart"
	MsgRebind        MessageType = "rebind"
	MsgResetBindings MessageType = "reset_bindings"

	// Server → client
	MsgWelcome  MessageType = "welcome"
	MsgBindings MessageType = "bindings"
	MsgFrame    MessageType = "frame"
	MsgRebound  MessageType = "rebound"
	MsgConflict MessageType = "conflict"
	MsgError    MessageType = "error"
)

// ClientMessage is a decoded peer request, fields are used per Type
type ClientMessage struct {
	Type   MessageType `json:"type"`
	Code   input.Code  `json:"code,omitempty"`
	Action string      `json:"action,omitempty"`
	X      float64     `json:"x,omitempty"`
	Y      float64     `json:"y,omitempty"`
}

// DecodeClient parses and validates a client message
func DecodeClient(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("decode message: %w", err)
	}
	switch msg.Type {
	case MsgPress, MsgRelease:
		if msg.Code == "" {
			return msg, fmt.Errorf("%s without code", msg.Type)
		}
	case MsgRebind:
		if msg.Code == "" || msg.Action == "" {
			return msg, fmt.Errorf("rebind needs action and code")
		}
	case MsgPointer, MsgClearPointer, MsgRestart, MsgResetBindings:
	default:
		return msg, fmt.Errorf("unknown message type %q", msg.Type)
	}
	return msg, nil
}

// BindingsMessage greets a new peer with its ID and the active bindings (welcome),
// or reports the table after reset_bindings (bindings, Peer omitted)
type BindingsMessage struct {
	Type     MessageType             `json:"type"`
	Peer     PeerID                  `json:"peer,omitempty"`
	Bindings map[string][]input.Code `json:"bindings"`
}

// FrameMessage carries one snapshot to spectators
type FrameMessage struct {
	Type     MessageType      `json:"type"`
	Snapshot *engine.Snapshot `json:"snapshot"`
}

// BindingMessage answers a rebind: rebound with the new codes, or conflict naming the holder
type BindingMessage struct {
	Type    MessageType  `json:"type"`
	Action  string       `json:"action"`
	Code    input.Code   `json:"code,omitempty"`
	Codes   []input.Code `json:"codes,omitempty"`
	Holder  string       `json:"holder,omitempty"`
	Message string       `json:"message,omitempty"`
}

// ErrorMessage reports a rejected request
type ErrorMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// wireBindings converts a table to canonical action names
func wireBindings(t input.Table) map[string][]input.Code {
	out := make(map[string][]input.Code, len(t))
	for a, codes := range t {
		out[a.String()] = codes
	}
	return out
}
