package dom

import (
	"fmt"
	"strconv"
	"time"
)

// Common event types.
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
	EventResize  = "resize"
)

// Event is a dispatched event.
type Event struct {
	// Type is the event type ("click", "keydown", ...).
	Type string

	// Target is the node the event was dispatched at. nil for events
	// dispatched at a Window directly.
	Target *Node

	// CurrentTarget is the target whose listeners are running.
	CurrentTarget EventTarget

	// Data carries event payload (key, clientX, ...), usually decoded from
	// a client message.
	Data map[string]any

	// TimeStamp is when the event was created.
	TimeStamp time.Time

	stopped          bool
	immediateStopped bool
}

// NewEvent creates an event of the given type with no target.
func NewEvent(eventType string) *Event {
	return &Event{
		Type:      eventType,
		TimeStamp: time.Now(),
	}
}

// StopPropagation stops the event from bubbling past the current target.
// Other listeners on the current target still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// StopImmediatePropagation stops bubbling and skips the remaining listeners
// on the current target.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.immediateStopped = true
}

// Stopped reports whether propagation has been stopped.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Accessors

func (e *Event) String(key string) string {
	if v, ok := e.Data[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func (e *Event) Int(key string) int {
	if v, ok := e.Data[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

func (e *Event) Bool(key string) bool {
	if v, ok := e.Data[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := strconv.ParseBool(fmt.Sprintf("%v", v))
		return b
	}
	return false
}
