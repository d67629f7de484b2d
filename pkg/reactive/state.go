package reactive

import (
	"reflect"
	"sync"
)

// State is a component-local value whose changes re-render the component.
type State[T any] struct {
	value T
	mu    sync.RWMutex
	owner *Owner

	// equal decides whether Set changed anything. nil uses defaultEquals.
	equal func(T, T) bool
}

// UseState returns the component's State for this call site, created with
// initial on the first render.
func UseState[T any](initial T) *State[T] {
	o := renderingOwner("UseState")
	o.TrackHook(HookState)

	if s := useSlot[State[T]](o, "UseState"); s != nil {
		return s
	}
	s := &State[T]{value: initial, owner: o}
	o.SetHookSlot(s)
	return s
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value and invalidates the owning component if it changed.
// Writes to the State of a disposed component are dropped.
func (s *State[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update atomically replaces the value with fn(current).
func (s *State[T]) Update(fn func(T) T) {
	if s.owner.IsDisposed() {
		return
	}

	s.mu.Lock()
	old := s.value
	next := fn(old)
	changed := !s.equals(old, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.owner.Invalidate()
	}
}

// WithEquals configures a custom equality function and returns s.
func (s *State[T]) WithEquals(fn func(T, T) bool) *State[T] {
	s.equal = fn
	return s
}

func (s *State[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals compares with reflect.DeepEqual, except that errors compare
// by identity: storing a new error with the same text is still a change.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if _, isErr := av.(error); isErr {
		return sameValue(av, bv)
	}
	return reflect.DeepEqual(av, bv)
}
