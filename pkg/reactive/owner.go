package reactive

import (
	"sync"
	"sync/atomic"

	hookerrors "github.com/vango-dev/uihooks/internal/errors"
)

// HookType identifies the type of hook call for order validation.
type HookType uint8

const (
	HookState HookType = iota + 1
	HookMemo
	HookCallback
	HookEffect
	HookRef
	HookContext
)

// String returns a human-readable name for the hook type.
func (h HookType) String() string {
	switch h {
	case HookState:
		return "State"
	case HookMemo:
		return "Memo"
	case HookCallback:
		return "Callback"
	case HookEffect:
		return "Effect"
	case HookRef:
		return "Ref"
	case HookContext:
		return "Context"
	default:
		return "Unknown"
	}
}

// Owner represents a component scope that owns hook state.
// When an Owner is disposed, its effects are torn down, its cleanups run
// and every child Owner is disposed first.
//
// Owners form a hierarchy mirroring the component tree. Context values set
// on an Owner are visible to all of its descendants.
type Owner struct {
	id uint64

	// parent is nil for a root Owner.
	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	// effects registered by UseEffect, torn down on Dispose.
	effects   []*Effect
	effectsMu sync.Mutex

	// cleanups registered via OnCleanup.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// pendingEffects are effects whose deps changed during the last render.
	pendingEffects   []*Effect
	pendingEffectsMu sync.Mutex

	values   map[any]any
	valuesMu sync.RWMutex

	disposed atomic.Bool

	// invalidate asks the owning component to render again. Set by Mount.
	invalidate func()

	// Dev-mode hook order tracking (only used when DebugMode is true)
	hookOrder   []HookType
	hookIndex   int
	renderCount int

	// Hook slot storage for stable identity across renders.
	hookSlots   []any
	hookSlotIdx int
	rendering   bool
}

// NewOwner creates a new Owner with the given parent.
// The new Owner is registered as a child of the parent.
// If parent is nil, creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// registerEffect adds an effect to this Owner.
// The effect will be disposed when this Owner is disposed.
func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// OnCleanup registers a cleanup function to run when this Owner is disposed.
// On an already disposed Owner the function runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) scheduleEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.pendingEffectsMu.Lock()
	defer o.pendingEffectsMu.Unlock()
	o.pendingEffects = append(o.pendingEffects, e)
}

// Invalidate asks the component that owns this scope to render again.
// It is a no-op on a disposed Owner or on an Owner not driven by a Component.
func (o *Owner) Invalidate() {
	if o.disposed.Load() || o.invalidate == nil {
		return
	}
	o.invalidate()
}

// RunPendingEffects runs the teardown and setup of every effect whose deps
// changed during the last render, in registration order, then recurses into
// child owners.
func (o *Owner) RunPendingEffects() {
	if o.disposed.Load() {
		return
	}

	o.pendingEffectsMu.Lock()
	effects := o.pendingEffects
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()

	for _, e := range effects {
		if e.pending.Load() {
			e.run()
		}
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		child.RunPendingEffects()
	}
}

// Dispose disposes this Owner and all its children, effects, and cleanups.
// Children are disposed in reverse order (last created first).
// After disposal, the Owner cannot be used.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()

	for _, e := range effects {
		e.dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.pendingEffectsMu.Lock()
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()
}

// =============================================================================
// Render phase and hook order validation
// =============================================================================

// StartRender is called at the beginning of a component render.
// It resets the hook slot index and, in debug mode, the order index.
func (o *Owner) StartRender() {
	o.hookSlotIdx = 0
	o.rendering = true
	if DebugMode {
		o.hookIndex = 0
	}
}

// EndRender is called at the end of a component render.
// In debug mode, it validates that all expected hooks were called.
func (o *Owner) EndRender() {
	o.rendering = false
	if !DebugMode {
		return
	}
	if o.renderCount == 0 {
		o.renderCount = 1
		return
	}
	if o.hookIndex < len(o.hookOrder) {
		panic(hookerrors.New("E002").
			WithDetailf("expected %d hooks, got %d", len(o.hookOrder), o.hookIndex))
	}
}

// TrackHook records a hook call during render for order validation.
// In debug mode, hooks must be called in the same order on every render;
// violations panic with a *errors.HookError (E002).
func (o *Owner) TrackHook(ht HookType) {
	if !DebugMode {
		return
	}

	if o.renderCount == 0 {
		o.hookOrder = append(o.hookOrder, ht)
	} else {
		if o.hookIndex >= len(o.hookOrder) {
			panic(hookerrors.New("E002").
				WithDetailf("extra %s hook at index %d", ht, o.hookIndex))
		}
		if expected := o.hookOrder[o.hookIndex]; expected != ht {
			panic(hookerrors.New("E002").
				WithDetailf("index %d: expected %s, got %s", o.hookIndex, expected, ht))
		}
	}
	o.hookIndex++
}

// UseHookSlot returns the stored value for the current hook slot, or nil on
// the first render, and advances the slot index.
//
// Usage pattern:
//
//	if slot := owner.UseHookSlot(); slot != nil {
//	    return slot.(*myHook)
//	}
//	h := &myHook{...}
//	owner.SetHookSlot(h)
//	return h
func (o *Owner) UseHookSlot() any {
	idx := o.hookSlotIdx
	o.hookSlotIdx++
	if idx < len(o.hookSlots) {
		return o.hookSlots[idx]
	}
	return nil
}

// SetHookSlot stores a value in the current hook slot.
// Must be called after UseHookSlot returns nil.
func (o *Owner) SetHookSlot(value any) {
	o.hookSlots = append(o.hookSlots, value)
}

// isRendering reports whether StartRender has been called without a
// matching EndRender.
func (o *Owner) isRendering() bool {
	return o.rendering
}

// renderingOwner returns the owner currently rendering on this goroutine and
// panics with E001 when there is none.
func renderingOwner(hook string) *Owner {
	o := CurrentOwner()
	if o == nil || !o.isRendering() {
		panic(hookerrors.New("E001").
			WithDetailf("%s called outside a render", hook).
			WithSuggestion("Call hooks unconditionally at the top of the render function"))
	}
	if o.IsDisposed() {
		panic(hookerrors.New("E004").WithDetailf("%s called on a disposed component", hook))
	}
	return o
}

// useSlot is the shared slot lookup for the typed hooks in this package.
// It returns the stored *T, or nil on first render.
func useSlot[T any](o *Owner, hook string) *T {
	slot := o.UseHookSlot()
	if slot == nil {
		return nil
	}
	v, ok := slot.(*T)
	if !ok {
		panic(hookerrors.New("E003").WithDetailf("%s found %T in its slot", hook, slot))
	}
	return v
}
