package hooks

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/uihooks/pkg/dom"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

// settle pumps loop until cond holds.
func settle(t *testing.T, loop *reactive.Loop, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		loop.Drain()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the loop to settle")
		}
		time.Sleep(time.Millisecond)
	}
}

// mountWithWindow mounts render under a root owner that provides win.
func mountWithWindow(loop *reactive.Loop, win *dom.Window, render func()) *reactive.Component {
	root := reactive.NewOwner(nil)
	ProvideWindow(root, win)
	return reactive.Mount(loop, root, render)
}

// enableTestMetrics turns on metrics against a private registry for the
// duration of the test.
func enableTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m := EnableMetrics(WithRegistry(prometheus.NewRegistry()))
	t.Cleanup(DisableMetrics)
	return m
}

// countingTarget is an EventTarget that counts subscribe calls.
type countingTarget struct {
	dom.EventListeners
	adds    int
	removes int
}

func (c *countingTarget) AddEventListener(eventType string, l *dom.Listener) {
	c.adds++
	c.EventListeners.AddEventListener(eventType, l)
}

func (c *countingTarget) RemoveEventListener(eventType string, l *dom.Listener) {
	c.removes++
	c.EventListeners.RemoveEventListener(eventType, l)
}
