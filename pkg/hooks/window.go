package hooks

import (
	"github.com/vango-dev/uihooks/pkg/dom"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

type windowKey struct{}

// ProvideWindow makes win the global target for every component under o.
func ProvideWindow(o *reactive.Owner, win *dom.Window) {
	o.SetValue(windowKey{}, win)
}

// UseWindow returns the window provided for the rendering component's tree,
// or nil when none was provided.
func UseWindow() *dom.Window {
	win, _ := reactive.GetContext(windowKey{}).(*dom.Window)
	return win
}

// UseDocument returns the document of the provided window, or nil.
func UseDocument() *dom.Node {
	if win := UseWindow(); win != nil {
		return win.Document()
	}
	return nil
}
