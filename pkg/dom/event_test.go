package dom

import "testing"

func TestDispatchBubblesToWindow(t *testing.T) {
	win := NewWindow()
	span := NewElement("span")
	div := NewElement("div", span)
	win.Document().AppendChild(div)

	var order []string
	record := func(name string) *Listener {
		return NewListener(func(e *Event) {
			if e.Target != span {
				t.Errorf("%s saw target %v, want span", name, e.Target)
			}
			order = append(order, name)
		})
	}
	span.AddEventListener(EventClick, record("span"))
	div.AddEventListener(EventClick, record("div"))
	win.Document().AddEventListener(EventClick, record("document"))
	win.AddEventListener(EventClick, record("window"))

	span.Click()

	want := []string{"span", "div", "document", "window"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestStopPropagation(t *testing.T) {
	win := NewWindow()
	inner := NewElement("button")
	win.Document().AppendChild(inner)

	sameTarget := false
	inner.AddEventListener(EventClick, NewListener(func(e *Event) { e.StopPropagation() }))
	inner.AddEventListener(EventClick, NewListener(func(e *Event) { sameTarget = true }))
	reached := false
	win.Document().AddEventListener(EventClick, NewListener(func(e *Event) { reached = true }))

	e := inner.Click()

	if !e.Stopped() {
		t.Error("event should report stopped")
	}
	if !sameTarget {
		t.Error("StopPropagation must not skip listeners on the same target")
	}
	if reached {
		t.Error("StopPropagation should keep the event from reaching the document")
	}
}

func TestStopImmediatePropagation(t *testing.T) {
	n := NewElement("div")
	second := false
	n.AddEventListener(EventClick, NewListener(func(e *Event) { e.StopImmediatePropagation() }))
	n.AddEventListener(EventClick, NewListener(func(e *Event) { second = true }))

	n.Click()
	if second {
		t.Error("StopImmediatePropagation should skip remaining listeners")
	}
}

func TestListenerAddIsIdempotent(t *testing.T) {
	var target EventListeners
	count := 0
	l := NewListener(func(*Event) { count++ })

	target.AddEventListener("ping", l)
	target.AddEventListener("ping", l)
	target.Emit(NewEvent("ping"))

	if count != 1 {
		t.Errorf("listener ran %d times, want 1", count)
	}
	if target.ListenerCount("ping") != 1 {
		t.Errorf("ListenerCount = %d, want 1", target.ListenerCount("ping"))
	}
}

func TestRemoveEventListener(t *testing.T) {
	var target EventListeners
	count := 0
	l := NewListener(func(*Event) { count++ })

	target.AddEventListener("ping", l)
	target.RemoveEventListener("ping", l)
	target.RemoveEventListener("ping", l)
	target.RemoveEventListener("ping", nil)
	target.Emit(NewEvent("ping"))

	if count != 0 {
		t.Errorf("removed listener ran %d times", count)
	}
	if target.ListenerCount("ping") != 0 {
		t.Errorf("ListenerCount = %d, want 0", target.ListenerCount("ping"))
	}
}

func TestListenerRemovedDuringDispatchStillRunsThisEvent(t *testing.T) {
	var target EventListeners
	ran := false
	second := NewListener(func(*Event) { ran = true })
	first := NewListener(func(*Event) { target.RemoveEventListener("ping", second) })

	target.AddEventListener("ping", first)
	target.AddEventListener("ping", second)
	target.Emit(NewEvent("ping"))

	if !ran {
		t.Error("the listener list is fixed when dispatch starts")
	}
	ran = false
	target.Emit(NewEvent("ping"))
	if ran {
		t.Error("removal should apply to the next event")
	}
}

func TestWindowDispatchEvent(t *testing.T) {
	win := NewWindow()
	var got *Event
	win.AddEventListener(EventResize, NewListener(func(e *Event) { got = e }))

	e := NewEvent(EventResize)
	win.DispatchEvent(e)

	if got != e || e.CurrentTarget != win || e.Target != nil {
		t.Errorf("window event = %+v", got)
	}
}

func TestEventAccessors(t *testing.T) {
	e := NewEvent(EventKeyDown)
	e.Data = map[string]any{
		"key":     "Escape",
		"clientX": float64(12),
		"repeat":  "true",
		"ctrlKey": true,
	}

	if e.String("key") != "Escape" {
		t.Errorf("String(key) = %q", e.String("key"))
	}
	if e.Int("clientX") != 12 {
		t.Errorf("Int(clientX) = %d", e.Int("clientX"))
	}
	if !e.Bool("repeat") || !e.Bool("ctrlKey") {
		t.Error("Bool accessors failed")
	}
	if e.String("missing") != "" || e.Int("missing") != 0 || e.Bool("missing") {
		t.Error("missing keys should yield zero values")
	}
}
