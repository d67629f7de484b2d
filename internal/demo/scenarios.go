package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vango-dev/uihooks/pkg/dom"
	"github.com/vango-dev/uihooks/pkg/hooks"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

// Scenario is one scripted walk through the hooks.
type Scenario struct {
	Name string
	Run  func(ctx context.Context, s *Script) error
}

// Script is what a scenario drives: a loop pumped by hand and a transcript.
type Script struct {
	Loop *reactive.Loop
	out  io.Writer
}

// Logf writes one indented transcript line.
func (s *Script) Logf(format string, args ...any) {
	fmt.Fprintf(s.out, "  "+format+"\n", args...)
}

// Settle pumps the loop until cond holds or ctx is done.
func (s *Script) Settle(ctx context.Context, cond func() bool) error {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		s.Loop.Drain()
		if cond() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Scenarios returns the built-in scenarios in play order.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "async success", Run: asyncSuccess},
		{Name: "async failure", Run: asyncFailure},
		{Name: "click outside", Run: clickOutside},
		{Name: "dropdown page", Run: dropdownPage},
	}
}

// Run plays scenarios in order, writing a transcript to w. It stops at the
// first failing scenario.
func Run(ctx context.Context, w io.Writer, logger *slog.Logger, scenarios []Scenario) error {
	for _, sc := range scenarios {
		fmt.Fprintf(w, "== %s ==\n", sc.Name)
		s := &Script{
			Loop: reactive.NewLoop(reactive.WithLogger(logger)),
			out:  w,
		}
		err := sc.Run(ctx, s)
		s.Loop.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", sc.Name, err)
		}
	}
	return nil
}

func formatState[T any](st hooks.AsyncState[T]) string {
	return fmt.Sprintf("loading=%t err=%v value=%v", st.Loading, st.Err, st.Value)
}

func asyncSuccess(ctx context.Context, s *Script) error {
	var st hooks.AsyncState[int]
	c := reactive.Mount(s.Loop, nil, func() {
		st = hooks.UseAsync(func(context.Context) (int, error) {
			return 42, nil
		}, reactive.Deps{})
	})
	defer c.Unmount()

	s.Logf("mounted: %s", formatState(st))
	if err := s.Settle(ctx, func() bool { return !st.Loading }); err != nil {
		return err
	}
	s.Logf("settled: %s", formatState(st))
	if st.Value != 42 {
		return fmt.Errorf("value = %d, want 42", st.Value)
	}
	return nil
}

func asyncFailure(ctx context.Context, s *Script) error {
	errX := errors.New("x")
	var st hooks.AsyncState[int]
	c := reactive.Mount(s.Loop, nil, func() {
		st = hooks.UseAsync(func(context.Context) (int, error) {
			return 0, errX
		}, reactive.Deps{})
	})
	defer c.Unmount()

	s.Logf("mounted: %s", formatState(st))
	if err := s.Settle(ctx, func() bool { return !st.Loading }); err != nil {
		return err
	}
	s.Logf("settled: %s", formatState(st))
	if st.Err != errX {
		return fmt.Errorf("err = %v, want x", st.Err)
	}
	return nil
}

func clickOutside(_ context.Context, s *Script) error {
	win := dom.NewWindow()
	span := dom.NewElement("span")
	divA := dom.NewElement("div", span).SetID("a")
	sibling := dom.NewElement("div").SetID("sibling")
	if err := win.Document().AppendChild(dom.NewElement("body", divA, sibling)); err != nil {
		return err
	}

	calls := 0
	root := reactive.NewOwner(nil)
	hooks.ProvideWindow(root, win)
	c := reactive.Mount(s.Loop, root, func() {
		ref := reactive.UseRef(divA)
		hooks.UseClickOutside(ref, func(*dom.Event) { calls++ })
	})
	defer c.Unmount()

	for _, step := range []struct {
		name string
		node *dom.Node
		want int
	}{
		{"span inside divA", span, 0},
		{"divA itself", divA, 0},
		{"sibling", sibling, 1},
	} {
		step.node.Click()
		s.Logf("click %-16s callbacks=%d", step.name, calls)
		if calls != step.want {
			return fmt.Errorf("after %s: callbacks = %d, want %d", step.name, calls, step.want)
		}
	}
	return nil
}

func dropdownPage(ctx context.Context, s *Script) error {
	var fetches atomic.Int32
	p := NewPage(Options{
		Fetch: func(context.Context) (string, error) {
			return fmt.Sprintf("ok #%d", fetches.Add(1)), nil
		},
	})
	p.Mount(s.Loop)
	defer p.Unmount()

	if err := s.Settle(ctx, func() bool { return !p.View().Loading }); err != nil {
		return err
	}
	s.Logf("mounted:        %+v", p.View())

	escape := func() {
		e := dom.NewEvent(dom.EventKeyDown)
		e.Data = map[string]any{"key": "Escape"}
		p.Window.DispatchEvent(e)
	}

	steps := []struct {
		name   string
		action func()
		open   bool
	}{
		{"click toggle", func() { p.Toggle.Click() }, true},
		{"click item", func() { p.Item.Click() }, true},
		{"click outside", func() { p.Outside.Click() }, false},
		{"click toggle", func() { p.Toggle.Click() }, true},
		{"press Escape", escape, false},
	}
	for _, step := range steps {
		step.action()
		s.Loop.Drain()
		v := p.View()
		s.Logf("%-15s %+v", step.name+":", v)
		if v.Open != step.open {
			return fmt.Errorf("after %s: open = %t, want %t", step.name, v.Open, step.open)
		}
	}

	p.Refresh.Click()
	if err := s.Settle(ctx, func() bool { v := p.View(); return v.Refreshes == 1 && !v.Loading }); err != nil {
		return err
	}
	s.Logf("%-15s %+v", "click refresh:", p.View())
	if n := fetches.Load(); n != 2 {
		return fmt.Errorf("fetches = %d, want 2", n)
	}
	return nil
}
