package bridge

import (
	"encoding/json"

	hookerrors "github.com/vango-dev/uihooks/internal/errors"
)

// WindowTarget addresses the window instead of a node.
const WindowTarget = "window"

// Message is one event on the wire.
type Message struct {
	Type   string         `json:"type"`
	Target string         `json:"target,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Decode parses a client message. Errors are *errors.HookError with code
// E020 (not JSON) or E021 (no event type).
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, hookerrors.New("E020").Wrap(err)
	}
	if msg.Type == "" {
		return Message{}, hookerrors.New("E021").WithDetailf("message %s", truncate(data, 64))
	}
	return msg, nil
}

// Encode serializes msg for the wire.
func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
