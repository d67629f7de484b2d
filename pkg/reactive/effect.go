package reactive

import "sync/atomic"

// Cleanup is returned by an effect's setup. It runs before the setup runs
// again and when the owning component is disposed.
type Cleanup func()

// Effect is a registered side effect keyed by a dependency list.
//
// The setup runs after the first render and again after any render whose
// deps differ from the previous ones (see SameDeps). The Cleanup returned by
// the previous setup always runs first, so at most one setup result is live
// at a time.
type Effect struct {
	id uint64

	setup   func() Cleanup
	cleanup Cleanup
	deps    Deps

	owner *Owner

	// pending indicates the effect is scheduled to run after the render.
	pending atomic.Bool

	disposed atomic.Bool

	runs atomic.Int64
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs returns how many times the setup has executed.
func (e *Effect) Runs() int {
	return int(e.runs.Load())
}

// schedule queues the effect on its owner if it is not queued already.
func (e *Effect) schedule() {
	if e.disposed.Load() {
		return
	}
	if e.pending.CompareAndSwap(false, true) {
		e.owner.scheduleEffect(e)
	}
}

// run tears down the previous setup and runs the current one.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.runs.Add(1)
	e.cleanup = e.setup()
}

// dispose runs the last cleanup. The effect never runs again.
func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// UseEffect registers setup to run after the render when deps change.
//
// A nil deps re-runs after every render; Deps{} runs once after mount. The
// setup captured on the render that changed deps is the one that runs;
// renders with unchanged deps do not replace it.
//
// Example:
//
//	reactive.UseEffect(func() reactive.Cleanup {
//	    l := dom.NewListener(onKey)
//	    win.AddEventListener("keydown", l)
//	    return func() { win.RemoveEventListener("keydown", l) }
//	}, reactive.Deps{win})
func UseEffect(setup func() Cleanup, deps Deps) *Effect {
	o := renderingOwner("UseEffect")
	o.TrackHook(HookEffect)

	e := useSlot[Effect](o, "UseEffect")
	if e == nil {
		e = &Effect{
			id:    nextID(),
			setup: setup,
			deps:  deps,
			owner: o,
		}
		o.SetHookSlot(e)
		o.registerEffect(e)
		e.schedule()
		return e
	}

	if SameDeps(e.deps, deps) {
		return e
	}
	e.setup = setup
	e.deps = deps
	e.schedule()
	return e
}

// OnUnmount registers fn to run when the rendering component is disposed.
// Only the fn passed on the first render is kept.
func OnUnmount(fn func()) {
	o := renderingOwner("OnUnmount")
	o.TrackHook(HookEffect)

	if slot := useSlot[func()](o, "OnUnmount"); slot != nil {
		return
	}
	o.SetHookSlot(&fn)
	o.OnCleanup(fn)
}
