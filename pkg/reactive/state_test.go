package reactive

import (
	"errors"
	"testing"
)

func TestUseStateRerendersOnChange(t *testing.T) {
	var count *State[int]
	var seen []int

	loop := NewLoop()
	c := Mount(loop, nil, func() {
		count = UseState(0)
		seen = append(seen, count.Get())
	})

	count.Set(1)
	count.Set(2)
	if !c.IsDirty() {
		t.Fatal("component should be dirty after Set")
	}
	loop.Drain()

	if c.Renders() != 2 {
		t.Errorf("renders = %d, want 2 (writes coalesce)", c.Renders())
	}
	if seen[len(seen)-1] != 2 {
		t.Errorf("last render saw %d, want 2", seen[len(seen)-1])
	}
}

func TestUseStateSameValueNoRerender(t *testing.T) {
	var s *State[string]
	loop := NewLoop()
	c := Mount(loop, nil, func() {
		s = UseState("a")
	})

	s.Set("a")
	loop.Drain()

	if c.Renders() != 1 {
		t.Errorf("renders = %d, want 1", c.Renders())
	}
}

func TestUseStateUpdate(t *testing.T) {
	var s *State[[]string]
	loop := NewLoop()
	Mount(loop, nil, func() {
		s = UseState[[]string](nil)
	})

	s.Update(func(v []string) []string { return append(v, "x") })
	s.Update(func(v []string) []string { return append(v, "y") })

	if got := s.Get(); len(got) != 2 || got[1] != "y" {
		t.Errorf("Get() = %v, want [x y]", got)
	}
}

func TestUseStateErrorsCompareByIdentity(t *testing.T) {
	var s *State[error]
	loop := NewLoop()
	c := Mount(loop, nil, func() {
		s = UseState[error](errors.New("x"))
	})

	s.Set(errors.New("x"))
	loop.Drain()

	if c.Renders() != 2 {
		t.Errorf("renders = %d, want 2: a new error value is a change", c.Renders())
	}
}

func TestUseStateAfterUnmountDropped(t *testing.T) {
	var s *State[int]
	loop := NewLoop()
	c := Mount(loop, nil, func() {
		s = UseState(0)
	})
	c.Unmount()

	s.Set(5)
	if s.Get() != 0 {
		t.Errorf("write after unmount should be dropped, got %d", s.Get())
	}
	if n := loop.Drain(); n != 0 {
		t.Errorf("write after unmount queued %d tasks", n)
	}
}

func TestUseStateCustomEquals(t *testing.T) {
	var s *State[int]
	loop := NewLoop()
	c := Mount(loop, nil, func() {
		s = UseState(0).WithEquals(func(a, b int) bool { return a/10 == b/10 })
	})

	s.Set(5)
	loop.Drain()
	if c.Renders() != 1 {
		t.Errorf("renders = %d, want 1 (5 equals 0 under custom equality)", c.Renders())
	}
}
