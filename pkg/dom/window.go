package dom

// Window is the global event target of a page. It owns the document node;
// events bubbling out of the document reach the window's listeners.
type Window struct {
	EventListeners

	document *Node
}

var _ EventTarget = (*Window)(nil)

// NewWindow creates a window with an empty document.
func NewWindow() *Window {
	w := &Window{}
	w.document = &Node{tag: "#document", window: w}
	return w
}

// Document returns the window's document node.
func (w *Window) Document() *Node {
	return w.document
}

// DispatchEvent delivers e to the window's listeners only (resize, a
// keydown with no focused element, ...).
func (w *Window) DispatchEvent(e *Event) {
	e.CurrentTarget = w
	w.notify(e)
}
