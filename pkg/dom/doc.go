// Package dom is an in-memory model of the browser event surface the hooks
// bind to: event targets with named listeners, an element tree with
// containment, and a window that owns a document.
//
// Events dispatched at a node bubble up through its ancestors to the
// document and then to the window, the way a browser click does:
//
//	win := dom.NewWindow()
//	menu := dom.NewElement("div").SetID("menu")
//	item := dom.NewElement("span")
//	menu.AppendChild(item)
//	win.Document().AppendChild(menu)
//
//	win.Document().AddEventListener("click", dom.NewListener(func(e *dom.Event) {
//	    fmt.Println("clicked", e.Target.Tag())
//	}))
//	item.Click() // prints "clicked span"
package dom
