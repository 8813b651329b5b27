package live

import (
	"encoding/json"
)

// Message is the envelope of every websocket frame, in both directions.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client to server
	TypeDrawBegin   = "draw.begin"
	TypeDrawCommand = "draw.command"
	TypeDrawEnd     = "draw.end"

	// Server to client
	TypeWelcome      = "welcome"
	TypeDrawFragment = "draw.fragment"
	TypeDrawDone     = "draw.done"
	TypeError        = "error"
)

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId,omitempty"`
}

// BeginPayload opens a canvas. The payload of draw.command is a
// script.Command.
type BeginPayload struct {
	Name   string  `json:"name,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FragmentPayload carries output exactly as the canvas wrote it; the
// concatenation of every fragment of a drawing is the SVG document.
type FragmentPayload struct {
	SVG string `json:"svg"`
}

type DonePayload struct {
	Commands int   `json:"commands"`
	Bytes    int64 `json:"bytes"`
}

// ErrorPayload reports rejected input. The session goes on after it;
// failures that end the connection are reported by the close status.
type ErrorPayload struct {
	Message string `json:"message"`
	Command int    `json:"command,omitempty"` // 1-based index of the rejected command
}
