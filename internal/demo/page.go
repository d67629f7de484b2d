package demo

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vango-dev/uihooks/pkg/dom"
	"github.com/vango-dev/uihooks/pkg/hooks"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

// View is what the page shows.
type View struct {
	Open      bool   `json:"open"`
	Loading   bool   `json:"loading"`
	Status    string `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
	Refreshes int    `json:"refreshes"`
}

// Data returns v as bridge message data.
func (v View) Data() map[string]any {
	return map[string]any{
		"open":      v.Open,
		"loading":   v.Loading,
		"status":    v.Status,
		"error":     v.Error,
		"refreshes": v.Refreshes,
	}
}

// Options configures a Page.
type Options struct {
	// Fetch loads the status line. Default: reports the page's uptime.
	Fetch func(ctx context.Context) (string, error)

	// OnView is called on the loop whenever the view changes.
	OnView func(View)
}

// Page is a dropdown menu that closes on an outside click or Escape, next
// to a status line loaded asynchronously and reloaded by a refresh button.
//
// Element ids match page.html: dropdown, toggle, menu, item, refresh and
// outside.
type Page struct {
	Window   *dom.Window
	Dropdown *dom.Node
	Toggle   *dom.Node
	Menu     *dom.Node
	Item     *dom.Node
	Refresh  *dom.Node
	Outside  *dom.Node

	opts      Options
	component *reactive.Component
	view      atomic.Pointer[View]
}

// NewPage builds the page's document.
func NewPage(opts Options) *Page {
	if opts.Fetch == nil {
		start := time.Now()
		opts.Fetch = func(context.Context) (string, error) {
			return fmt.Sprintf("ok, up %s", time.Since(start).Round(time.Second)), nil
		}
	}

	p := &Page{
		Window:  dom.NewWindow(),
		Toggle:  dom.NewElement("button").SetID("toggle"),
		Item:    dom.NewElement("li").SetID("item"),
		Refresh: dom.NewElement("button").SetID("refresh"),
		Outside: dom.NewElement("p").SetID("outside"),
		opts:    opts,
	}
	p.Menu = dom.NewElement("ul", p.Item).SetID("menu")
	p.Dropdown = dom.NewElement("div", p.Toggle, p.Menu).SetID("dropdown")

	body := dom.NewElement("body", p.Dropdown, p.Refresh, p.Outside)
	// A fresh document always accepts a detached subtree.
	_ = p.Window.Document().AppendChild(body)
	return p
}

// Mount renders the page on loop. It must run on the loop goroutine.
func (p *Page) Mount(loop *reactive.Loop) *reactive.Component {
	root := reactive.NewOwner(nil)
	hooks.ProvideWindow(root, p.Window)
	p.component = reactive.Mount(loop, root, p.render)
	return p.component
}

// Unmount tears the page down. It must run on the loop goroutine.
func (p *Page) Unmount() {
	if p.component != nil {
		p.component.Unmount()
	}
}

// View returns the last rendered view.
func (p *Page) View() View {
	if v := p.view.Load(); v != nil {
		return *v
	}
	return View{}
}

func (p *Page) render() {
	open := reactive.UseState(false)
	refresh := reactive.UseState(reactive.Deps{0})
	dropdown := reactive.UseRef(p.Dropdown)

	hooks.UseEventListener(dom.EventClick, func(*dom.Event) {
		open.Update(func(o bool) bool { return !o })
	}, p.Toggle)

	hooks.UseEventListener(dom.EventClick, func(*dom.Event) {
		refresh.Update(func(d reactive.Deps) reactive.Deps {
			return reactive.Deps{d[0].(int) + 1}
		})
	}, p.Refresh)

	hooks.UseClickOutside(dropdown, func(*dom.Event) {
		open.Set(false)
	})

	hooks.UseWindowEventListener(dom.EventKeyDown, func(e *dom.Event) {
		if e.String("key") == "Escape" {
			open.Set(false)
		}
	})

	// refresh.Get() keeps its identity until the refresh button replaces it.
	status := hooks.UseAsync(p.opts.Fetch, refresh.Get(),
		hooks.WithName("status"),
		hooks.DiscardStale(),
	)

	view := View{
		Open:      open.Get(),
		Loading:   status.Loading,
		Status:    status.Value,
		Refreshes: refresh.Get()[0].(int),
	}
	if status.Err != nil {
		view.Error = status.Err.Error()
	}

	reactive.UseEffect(func() reactive.Cleanup {
		p.view.Store(&view)
		if p.opts.OnView != nil {
			p.opts.OnView(view)
		}
		return nil
	}, reactive.Deps{view})
}
