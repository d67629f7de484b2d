package demo

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vango-dev/uihooks/pkg/dom"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

func settle(t *testing.T, loop *reactive.Loop, cond func() bool) {
	t.Helper()
	s := &Script{Loop: loop}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Settle(ctx, cond); err != nil {
		t.Fatalf("settle: %v", err)
	}
}

func TestPageTree(t *testing.T) {
	p := NewPage(Options{})
	doc := p.Window.Document()

	for _, id := range []string{"dropdown", "toggle", "menu", "item", "refresh", "outside"} {
		if doc.FindByID(id) == nil {
			t.Errorf("document has no #%s", id)
		}
	}
	if !p.Dropdown.Contains(p.Item) || p.Dropdown.Contains(p.Outside) {
		t.Error("dropdown should contain the menu items and nothing else")
	}
}

func TestPageDropdown(t *testing.T) {
	loop := reactive.NewLoop()
	p := NewPage(Options{Fetch: func(context.Context) (string, error) { return "ok", nil }})
	p.Mount(loop)
	defer p.Unmount()
	settle(t, loop, func() bool { return !p.View().Loading })

	p.Toggle.Click()
	loop.Drain()
	if !p.View().Open {
		t.Fatal("toggle should open the menu")
	}

	p.Item.Click()
	loop.Drain()
	if !p.View().Open {
		t.Fatal("a click inside the dropdown should keep it open")
	}

	p.Outside.Click()
	loop.Drain()
	if p.View().Open {
		t.Fatal("an outside click should close the menu")
	}

	p.Toggle.Click()
	loop.Drain()
	e := dom.NewEvent(dom.EventKeyDown)
	e.Data = map[string]any{"key": "Escape"}
	p.Window.DispatchEvent(e)
	loop.Drain()
	if p.View().Open {
		t.Error("Escape should close the menu")
	}
}

func TestPageRefreshReloadsStatus(t *testing.T) {
	var fetches atomic.Int32
	loop := reactive.NewLoop()
	p := NewPage(Options{Fetch: func(context.Context) (string, error) {
		if fetches.Add(1) == 1 {
			return "", errors.New("backend down")
		}
		return "ok", nil
	}})
	p.Mount(loop)
	defer p.Unmount()

	settle(t, loop, func() bool { return !p.View().Loading })
	if v := p.View(); v.Error != "backend down" || v.Status != "" {
		t.Fatalf("view = %+v, want the fetch error", v)
	}

	// Re-renders without a refresh must not fetch again.
	p.Toggle.Click()
	loop.Drain()
	if fetches.Load() != 1 {
		t.Fatalf("fetches = %d after an unrelated render, want 1", fetches.Load())
	}

	p.Refresh.Click()
	settle(t, loop, func() bool { v := p.View(); return v.Refreshes == 1 && !v.Loading })
	if v := p.View(); v.Status != "ok" || v.Error != "" {
		t.Errorf("view = %+v, want status ok", v)
	}
	if fetches.Load() != 2 {
		t.Errorf("fetches = %d, want 2", fetches.Load())
	}
}

func TestPageOnView(t *testing.T) {
	var views []View
	loop := reactive.NewLoop()
	p := NewPage(Options{
		Fetch:  func(context.Context) (string, error) { return "ok", nil },
		OnView: func(v View) { views = append(views, v) },
	})
	p.Mount(loop)
	defer p.Unmount()
	settle(t, loop, func() bool { return !p.View().Loading })

	if len(views) != 2 {
		t.Fatalf("views = %+v, want loading then settled", views)
	}
	if !views[0].Loading || views[1].Loading || views[1].Status != "ok" {
		t.Errorf("views = %+v", views)
	}

	data := views[1].Data()
	if data["status"] != "ok" || data["open"] != false {
		t.Errorf("Data() = %v", data)
	}
}
