package hooks

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/uihooks/pkg/dom"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

type page struct {
	win     *dom.Window
	divA    *dom.Node
	span    *dom.Node
	sibling *dom.Node
}

func newPage(t *testing.T) page {
	t.Helper()
	p := page{win: dom.NewWindow()}
	p.span = dom.NewElement("span")
	p.divA = dom.NewElement("div", p.span).SetID("a")
	p.sibling = dom.NewElement("div").SetID("sibling")
	body := dom.NewElement("body", p.divA, p.sibling)
	if err := p.win.Document().AppendChild(body); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	return p
}

func TestUseClickOutside(t *testing.T) {
	p := newPage(t)
	var got []*dom.Event

	loop := reactive.NewLoop()
	mountWithWindow(loop, p.win, func() {
		ref := reactive.UseRef(p.divA)
		UseClickOutside(ref, func(e *dom.Event) {
			got = append(got, e)
		})
	})

	p.span.Click()
	p.divA.Click()
	if len(got) != 0 {
		t.Fatalf("inside clicks fired the callback %d times", len(got))
	}

	e := p.sibling.Click()
	if len(got) != 1 {
		t.Fatalf("outside click fired %d times, want 1", len(got))
	}
	if got[0] != e || got[0].Target != p.sibling {
		t.Error("callback should receive the original event")
	}
}

func TestUseClickOutsideEmptyRef(t *testing.T) {
	p := newPage(t)
	calls := 0
	var ref *reactive.Ref[*dom.Node]

	loop := reactive.NewLoop()
	mountWithWindow(loop, p.win, func() {
		ref = reactive.UseRef[*dom.Node](nil)
		UseClickOutside(ref, func(*dom.Event) { calls++ })
	})

	p.sibling.Click()
	if calls != 0 {
		t.Fatal("clicks should be ignored while the ref is empty")
	}

	ref.Set(p.divA)
	p.span.Click()
	p.sibling.Click()
	if calls != 1 {
		t.Errorf("calls = %d, want 1 after the ref is filled", calls)
	}

	ref.Set(nil)
	p.sibling.Click()
	if calls != 1 {
		t.Error("clicks should be ignored again after the ref is cleared")
	}
}

func TestUseClickOutsideNilRef(t *testing.T) {
	p := newPage(t)
	loop := reactive.NewLoop()
	mountWithWindow(loop, p.win, func() {
		UseClickOutside(nil, func(*dom.Event) {
			t.Error("nil ref should never fire")
		})
	})
	p.sibling.Click()
}

func TestUseClickOutsideUsesLatestCallback(t *testing.T) {
	p := newPage(t)
	label := "first"
	var got []string

	loop := reactive.NewLoop()
	c := mountWithWindow(loop, p.win, func() {
		l := label
		ref := reactive.UseRef(p.divA)
		UseClickOutside(ref, func(*dom.Event) { got = append(got, l) })
	})

	label = "second"
	c.Rerender()
	p.sibling.Click()

	if len(got) != 1 || got[0] != "second" {
		t.Errorf("got %v, want [second]", got)
	}
	if n := p.win.Document().ListenerCount(dom.EventClick); n != 1 {
		t.Errorf("document has %d click listeners, want 1", n)
	}
}

func TestUseClickOutsideStopsAfterUnmount(t *testing.T) {
	p := newPage(t)
	calls := 0

	loop := reactive.NewLoop()
	c := mountWithWindow(loop, p.win, func() {
		ref := reactive.UseRef(p.divA)
		UseClickOutside(ref, func(*dom.Event) { calls++ })
	})

	c.Unmount()
	p.sibling.Click()

	if calls != 0 {
		t.Errorf("calls = %d after unmount", calls)
	}
	if n := p.win.Document().ListenerCount(dom.EventClick); n != 0 {
		t.Errorf("document still has %d click listeners", n)
	}
}

func TestUseClickOutsideStoppedPropagation(t *testing.T) {
	p := newPage(t)
	calls := 0
	p.sibling.AddEventListener(dom.EventClick, dom.NewListener(func(e *dom.Event) {
		e.StopPropagation()
	}))

	loop := reactive.NewLoop()
	mountWithWindow(loop, p.win, func() {
		ref := reactive.UseRef(p.divA)
		UseClickOutside(ref, func(*dom.Event) { calls++ })
	})

	p.sibling.Click()
	if calls != 0 {
		t.Error("a click stopped before the document should not be seen")
	}
}

func TestUseClickOutsideMetrics(t *testing.T) {
	m := enableTestMetrics(t)
	p := newPage(t)
	var ref *reactive.Ref[*dom.Node]

	loop := reactive.NewLoop()
	mountWithWindow(loop, p.win, func() {
		ref = reactive.UseRef[*dom.Node](nil)
		UseClickOutside(ref, func(*dom.Event) {})
	})

	p.sibling.Click()
	ref.Set(p.divA)
	p.span.Click()
	p.sibling.Click()
	p.sibling.Click()

	for verdict, want := range map[string]float64{
		verdictUnset:   1,
		verdictInside:  1,
		verdictOutside: 2,
	} {
		if got := testutil.ToFloat64(m.outsideClicks.WithLabelValues(verdict)); got != want {
			t.Errorf("%s = %v, want %v", verdict, got, want)
		}
	}
}
