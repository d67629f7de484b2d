package hooks

import (
	"github.com/vango-dev/uihooks/pkg/dom"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

// Outside-click verdicts, used as the metrics label.
const (
	verdictInside  = "inside"
	verdictOutside = "outside"
	verdictUnset   = "unset"
)

// UseClickOutside calls callback with the click event whenever a click on
// the document lands outside the element held by ref.
//
// A click on the element itself or on any of its descendants is inside.
// While ref holds nil (the element is not rendered yet, or was removed)
// every click is ignored. The element is read at click time, so ref may be
// filled in after this hook runs.
//
//	panel := reactive.UseRef[*dom.Node](nil)
//	hooks.UseClickOutside(panel, func(*dom.Event) { open.Set(false) })
func UseClickOutside(ref *reactive.Ref[*dom.Node], callback func(*dom.Event)) {
	UseDocumentEventListener(dom.EventClick, func(e *dom.Event) {
		var el *dom.Node
		if ref != nil {
			el = ref.Current()
		}
		if el == nil {
			recordOutsideClick(verdictUnset)
			return
		}
		if el.Contains(e.Target) {
			recordOutsideClick(verdictInside)
			return
		}
		recordOutsideClick(verdictOutside)
		if callback != nil {
			callback(e)
		}
	})
}
