package reactive

import "testing"

func TestMountRendersOnce(t *testing.T) {
	loop := NewLoop()
	c := Mount(loop, nil, func() {})

	if c.Renders() != 1 {
		t.Errorf("renders = %d, want 1", c.Renders())
	}
	if c.ID() == 0 || c.Owner() == nil || c.Loop() != loop {
		t.Error("component accessors returned zero values")
	}
	if CurrentOwner() != nil {
		t.Error("current owner should be restored after render")
	}
}

func TestMountUnderParentSeesContext(t *testing.T) {
	root := NewOwner(nil)
	root.SetValue("window", "w1")

	var got any
	loop := NewLoop()
	Mount(loop, root, func() {
		got = GetContext("window")
	})

	if got != "w1" {
		t.Errorf("GetContext = %v, want w1", got)
	}
}

func TestSetContextVisibleToChildren(t *testing.T) {
	loop := NewLoop()
	parent := Mount(loop, nil, func() {
		SetContext("theme", "dark")
	})

	var got any
	Mount(loop, parent.Owner(), func() {
		got = GetContext("theme")
	})
	if got != "dark" {
		t.Errorf("child GetContext = %v, want dark", got)
	}
}

func TestMarkDirtyCoalesces(t *testing.T) {
	loop := NewLoop()
	c := Mount(loop, nil, func() {})

	c.MarkDirty()
	c.MarkDirty()
	c.MarkDirty()
	if n := loop.Drain(); n != 1 {
		t.Errorf("Drain ran %d tasks, want 1", n)
	}
	if c.Renders() != 2 {
		t.Errorf("renders = %d, want 2", c.Renders())
	}
}

func TestUnmountStopsRendering(t *testing.T) {
	loop := NewLoop()
	c := Mount(loop, nil, func() {})

	c.MarkDirty()
	c.Unmount()
	loop.Drain()
	c.Rerender()

	if c.Renders() != 1 {
		t.Errorf("renders = %d, want 1", c.Renders())
	}
}

func TestUnmountRunsEffectCleanups(t *testing.T) {
	cleaned := false
	loop := NewLoop()
	c := Mount(loop, nil, func() {
		UseEffect(func() Cleanup {
			return func() { cleaned = true }
		}, Deps{})
	})

	c.Unmount()
	if !cleaned {
		t.Error("unmount should run effect cleanup")
	}
}

func TestMarkDirtyOnClosedLoop(t *testing.T) {
	loop := NewLoop()
	c := Mount(loop, nil, func() {})
	loop.Close()

	c.MarkDirty()
	if c.IsDirty() {
		t.Error("a dispatch that fails should clear the dirty flag")
	}
}

func TestUseLoop(t *testing.T) {
	loop := NewLoop()
	var got *Loop
	Mount(loop, nil, func() {
		got = UseLoop()
	})
	if got != loop {
		t.Error("UseLoop should return the mounting loop")
	}

	var child *Loop
	parent := Mount(loop, nil, func() {})
	Mount(loop, parent.Owner(), func() {
		child = UseLoop()
	})
	if child != loop {
		t.Error("nested component should see its own loop")
	}
}

func TestUseLoopWithoutComponent(t *testing.T) {
	o := NewOwner(nil)
	var got *Loop
	WithOwner(o, func() {
		o.StartRender()
		defer o.EndRender()
		got = UseLoop()
	})
	if got != nil {
		t.Error("bare owner should have no loop")
	}
}
