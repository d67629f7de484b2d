package reactive

// Callback is a stable handle to a function value.
//
// UseCallback returns the same *Callback across renders until its deps
// change; then it returns a new one. Go func values cannot be compared, so
// the handle's pointer identity is what other hooks key on:
//
//	load := reactive.UseCallback(fetchUser, reactive.Deps{userID})
//	reactive.UseEffect(func() reactive.Cleanup {
//	    load.Fn()()
//	    return nil
//	}, reactive.Deps{load})
type Callback[F any] struct {
	fn F
}

// Fn returns the wrapped function.
func (c *Callback[F]) Fn() F {
	return c.fn
}

type callbackSlot[F any] struct {
	current *Callback[F]
	deps    Deps
}

// UseCallback caches fn keyed by deps and returns a handle that keeps its
// identity while deps stay the same.
func UseCallback[F any](fn F, deps Deps) *Callback[F] {
	o := renderingOwner("UseCallback")
	o.TrackHook(HookCallback)

	slot := useSlot[callbackSlot[F]](o, "UseCallback")
	if slot == nil {
		slot = &callbackSlot[F]{}
		o.SetHookSlot(slot)
	} else if SameDeps(slot.deps, deps) {
		return slot.current
	}

	slot.current = &Callback[F]{fn: fn}
	slot.deps = deps
	return slot.current
}

type memoSlot[T any] struct {
	value T
	deps  Deps
}

// UseMemo returns compute's result, recomputing only when deps change.
func UseMemo[T any](compute func() T, deps Deps) T {
	o := renderingOwner("UseMemo")
	o.TrackHook(HookMemo)

	slot := useSlot[memoSlot[T]](o, "UseMemo")
	if slot == nil {
		slot = &memoSlot[T]{value: compute(), deps: deps}
		o.SetHookSlot(slot)
		return slot.value
	}
	if !SameDeps(slot.deps, deps) {
		slot.value = compute()
		slot.deps = deps
	}
	return slot.value
}
