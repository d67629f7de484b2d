// Package reactive is the small component runtime the uihooks hooks run on.
//
// A Component owns an Owner, a scope holding the component's hook state in
// call-order slots. Every render calls the same hooks in the same order;
// each hook finds its state in the slot at its position.
//
// # Hooks
//
// UseState holds a value whose changes re-render the component:
//
//	count := reactive.UseState(0)
//	count.Set(count.Get() + 1)
//
// UseEffect registers a setup that runs after a render when its Deps change,
// with the previous Cleanup always run first:
//
//	reactive.UseEffect(func() reactive.Cleanup {
//	    l := dom.NewListener(onResize)
//	    win.AddEventListener("resize", l)
//	    return func() { win.RemoveEventListener("resize", l) }
//	}, reactive.Deps{win})
//
// UseCallback and UseMemo cache a value keyed by Deps; UseRef keeps a
// mutable cell that writes never re-render.
//
// # Dependencies
//
// Deps are compared by identity (see SameDeps). A nil Deps means "changed
// on every render"; Deps{} means "never changes".
//
// # Threading
//
// Hook state is written on the Loop goroutine. Work done elsewhere reports
// back with Loop.Dispatch; Component.MarkDirty schedules a re-render there.
// In tests, pump the loop with Loop.Drain instead of running it.
package reactive
