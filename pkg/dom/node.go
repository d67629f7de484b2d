package dom

import (
	"errors"
	"sync"
)

// ErrHierarchy is returned when an append would make a node its own ancestor.
var ErrHierarchy = errors.New("dom: node would contain itself")

// treeMu guards parent/children links of every node. A single lock keeps
// ancestor walks (Contains, bubbling) free of lock ordering concerns.
var treeMu sync.RWMutex

// Node is an element in the tree. Every node is an EventTarget.
type Node struct {
	EventListeners

	tag string
	id  string

	parent   *Node
	children []*Node

	// window is set on a document node only.
	window *Window
}

var _ EventTarget = (*Node)(nil)

// NewElement creates a detached element with the given children appended.
func NewElement(tag string, children ...*Node) *Node {
	n := &Node{tag: tag}
	for _, c := range children {
		// A fresh node cannot be a descendant of c.
		_ = n.AppendChild(c)
	}
	return n
}

// Tag returns the element's tag name.
func (n *Node) Tag() string {
	return n.tag
}

// ID returns the element's id attribute.
func (n *Node) ID() string {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.id
}

// SetID sets the id attribute and returns n.
func (n *Node) SetID(id string) *Node {
	treeMu.Lock()
	defer treeMu.Unlock()
	n.id = id
	return n
}

// Parent returns the parent node, or nil for a detached node or a document.
func (n *Node) Parent() *Node {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.parent
}

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	treeMu.RLock()
	defer treeMu.RUnlock()
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AppendChild moves child under n, detaching it from its previous parent.
func (n *Node) AppendChild(child *Node) error {
	if child == nil {
		return nil
	}

	treeMu.Lock()
	defer treeMu.Unlock()

	if containsLocked(child, n) {
		return ErrHierarchy
	}
	if child.parent != nil {
		child.parent.removeChildLocked(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child from n. It reports whether child was a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	treeMu.Lock()
	defer treeMu.Unlock()

	if child == nil || child.parent != n {
		return false
	}
	n.removeChildLocked(child)
	child.parent = nil
	return true
}

func (n *Node) removeChildLocked(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			return
		}
	}
}

// Contains reports whether other is n or a descendant of n. A nil other is
// never contained.
func (n *Node) Contains(other *Node) bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return containsLocked(n, other)
}

func containsLocked(n, other *Node) bool {
	if n == nil {
		return false
	}
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// FindByID returns the first node in n's subtree (n included, depth first)
// with the given id, or nil.
func (n *Node) FindByID(id string) *Node {
	if id == "" {
		return nil
	}
	treeMu.RLock()
	defer treeMu.RUnlock()
	return findLocked(n, id)
}

func findLocked(n *Node, id string) *Node {
	if n.id == id {
		return n
	}
	for _, c := range n.children {
		if found := findLocked(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Window returns the window whose document this node belongs to, or nil
// for a detached subtree.
func (n *Node) Window() *Window {
	treeMu.RLock()
	defer treeMu.RUnlock()
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root.window
}

// DispatchEvent delivers e at n and bubbles it through n's ancestors, then
// to the window if n is attached to a document. e.Target is set to n when
// the caller left it nil.
func (n *Node) DispatchEvent(e *Event) {
	if e.Target == nil {
		e.Target = n
	}

	treeMu.RLock()
	var path []*Node
	for cur := n; cur != nil; cur = cur.parent {
		path = append(path, cur)
	}
	win := path[len(path)-1].window
	treeMu.RUnlock()

	for _, target := range path {
		e.CurrentTarget = target
		target.notify(e)
		if e.stopped {
			return
		}
	}
	if win != nil {
		e.CurrentTarget = win
		win.notify(e)
	}
}

// Click dispatches a click event at n and returns it.
func (n *Node) Click() *Event {
	e := NewEvent(EventClick)
	n.DispatchEvent(e)
	return e
}
