package dom

import (
	"sync"
	"sync/atomic"
)

var listenerIDCounter atomic.Uint64

// Listener is a subscription handle. Adding the same Listener to a target
// twice for one event type has no effect, and removing it needs the same
// handle; this is how a func value, which Go cannot compare, gets identity.
type Listener struct {
	id uint64
	fn func(*Event)
}

// NewListener wraps fn in a new handle.
func NewListener(fn func(*Event)) *Listener {
	return &Listener{
		id: listenerIDCounter.Add(1),
		fn: fn,
	}
}

// ID returns the unique identifier for this listener.
func (l *Listener) ID() uint64 {
	return l.id
}

// EventTarget is anything that can be subscribed to by event type.
type EventTarget interface {
	AddEventListener(eventType string, l *Listener)
	RemoveEventListener(eventType string, l *Listener)
}

// EventListeners is a listener registry keyed by event type. It implements
// EventTarget and is embedded by Node and Window; on its own it serves as
// a bare event source.
//
// The zero value is ready to use.
type EventListeners struct {
	mu     sync.RWMutex
	byType map[string][]*Listener
}

var _ EventTarget = (*EventListeners)(nil)

// AddEventListener subscribes l to eventType. A nil listener or a listener
// already subscribed to eventType is ignored.
func (s *EventListeners) AddEventListener(eventType string, l *Listener) {
	if l == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byType[eventType] {
		if existing == l {
			return
		}
	}
	if s.byType == nil {
		s.byType = make(map[string][]*Listener)
	}
	s.byType[eventType] = append(s.byType[eventType], l)
}

// RemoveEventListener unsubscribes l from eventType. Removing a listener
// that is not subscribed is a no-op.
func (s *EventListeners) RemoveEventListener(eventType string, l *Listener) {
	if l == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byType[eventType]
	for i, existing := range list {
		if existing == l {
			// Keep registration order; dispatch order follows it.
			s.byType[eventType] = append(list[:i:i], list[i+1:]...)
			if len(s.byType[eventType]) == 0 {
				delete(s.byType, eventType)
			}
			return
		}
	}
}

// ListenerCount returns how many listeners are subscribed to eventType.
func (s *EventListeners) ListenerCount(eventType string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byType[eventType])
}

// notify calls every listener for e.Type in registration order. The list is
// copied first, so listeners may add or remove listeners while running;
// such changes take effect from the next event.
func (s *EventListeners) notify(e *Event) {
	s.mu.RLock()
	list := make([]*Listener, len(s.byType[e.Type]))
	copy(list, s.byType[e.Type])
	s.mu.RUnlock()

	for _, l := range list {
		if e.immediateStopped {
			return
		}
		l.fn(e)
	}
}

// Emit delivers e to this registry's listeners only, without bubbling.
func (s *EventListeners) Emit(e *Event) {
	s.notify(e)
}
