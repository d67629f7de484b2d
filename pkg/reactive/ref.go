package reactive

import "sync"

// Ref holds a mutable reference to a value.
//
// Writing a Ref never re-renders anything. Hooks use it as an indirection
// cell: write the latest value during render, read it later from an event
// handler. The outside-click hook reads the watched element through one.
//
// Ref[T] is safe for concurrent access.
type Ref[T any] struct {
	value T
	mu    sync.RWMutex
}

// NewRef creates a new Ref with the given initial value.
// Use UseRef inside a render to keep the same Ref across renders.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{value: initial}
}

// UseRef returns the component's Ref for this call site, creating it with
// initial on the first render. Later renders ignore initial.
func UseRef[T any](initial T) *Ref[T] {
	o := renderingOwner("UseRef")
	o.TrackHook(HookRef)

	if r := useSlot[Ref[T]](o, "UseRef"); r != nil {
		return r
	}
	r := NewRef(initial)
	o.SetHookSlot(r)
	return r
}

// Current returns the current value of the ref.
func (r *Ref[T]) Current() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set sets the ref's value.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
}
