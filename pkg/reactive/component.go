package reactive

import (
	"sync/atomic"
)

// Component is a mounted UI unit: an Owner plus the render function that
// drives its hooks.
//
// Mount, Rerender and Unmount must be called on the loop goroutine (or the
// goroutine pumping the loop with Drain). State changes from anywhere else
// go through MarkDirty, which schedules a re-render on the loop.
type Component struct {
	id     uint64
	owner  *Owner
	render func()
	loop   *Loop

	dirty   atomic.Bool
	renders atomic.Int64
}

// Mount creates a component under parent (nil for a root), renders it once
// and runs its effects.
func Mount(loop *Loop, parent *Owner, render func()) *Component {
	c := &Component{
		id:     nextID(),
		owner:  NewOwner(parent),
		render: render,
		loop:   loop,
	}
	c.owner.invalidate = c.MarkDirty
	c.owner.SetValue(loopKey{}, loop)
	c.Rerender()
	return c
}

type loopKey struct{}

// UseLoop returns the Loop the rendering component was mounted on, or nil
// when its scope is not driven by a Component.
func UseLoop() *Loop {
	o := renderingOwner("UseLoop")
	loop, _ := o.GetValue(loopKey{}).(*Loop)
	return loop
}

// ID returns the unique identifier for this component.
func (c *Component) ID() uint64 {
	return c.id
}

// Owner returns the component's scope.
func (c *Component) Owner() *Owner {
	return c.owner
}

// Loop returns the loop the component re-renders on.
func (c *Component) Loop() *Loop {
	return c.loop
}

// Renders returns how many times the render function has run.
func (c *Component) Renders() int {
	return int(c.renders.Load())
}

// Rerender runs the render function with the component's owner current,
// then runs the effects whose deps changed.
func (c *Component) Rerender() {
	if c.owner.IsDisposed() {
		return
	}
	c.dirty.Store(false)

	WithOwner(c.owner, func() {
		c.owner.StartRender()
		defer c.owner.EndRender()
		c.render()
	})
	c.renders.Add(1)

	c.owner.RunPendingEffects()
}

// MarkDirty schedules a re-render on the loop. Repeated calls before the
// re-render runs coalesce into one.
func (c *Component) MarkDirty() {
	if c.owner.IsDisposed() {
		return
	}
	if !c.dirty.CompareAndSwap(false, true) {
		return
	}
	if err := c.loop.Dispatch(c.flush); err != nil {
		c.dirty.Store(false)
	}
}

// IsDirty reports whether a re-render is scheduled.
func (c *Component) IsDirty() bool {
	return c.dirty.Load()
}

func (c *Component) flush() {
	if !c.dirty.Load() {
		return
	}
	c.Rerender()
}

// Unmount disposes the component's owner: effects are torn down and
// cleanups run. Later state writes are dropped.
func (c *Component) Unmount() {
	c.owner.Dispose()
}
