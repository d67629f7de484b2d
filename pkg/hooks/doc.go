// Package hooks provides three UI-binding hooks for components running on
// the reactive runtime.
//
// UseEventListener attaches a callback to an event target and keeps the
// subscription in step with the component's lifecycle:
//
//	hooks.UseEventListener(dom.EventKeyDown, func(e *dom.Event) {
//	    if e.String("key") == "Escape" {
//	        open.Set(false)
//	    }
//	}, hooks.UseWindow())
//
// The callback may change on every render without re-subscribing; the
// handler always calls the callback from the latest render. The
// subscription is replaced only when the event type or the target changes.
//
// UseClickOutside calls back when a click lands outside an element:
//
//	menu := reactive.UseRef[*dom.Node](nil)
//	hooks.UseClickOutside(menu, func(*dom.Event) { open.Set(false) })
//
// UseAsync runs an operation and exposes its progress as AsyncState:
//
//	status := hooks.UseAsync(fetchStatus, deps)
//	switch {
//	case status.Loading:
//	    // spinner
//	case status.Err != nil:
//	    // error banner
//	default:
//	    // status.Value
//	}
//
// # Window
//
// Hooks that default to the global target find it through ProvideWindow,
// which the host calls once on the root owner of a component tree.
//
// # Observability
//
// Attach/detach and async outcomes are logged at Debug on the component
// loop's logger. EnableMetrics turns on Prometheus collectors; each async
// run is traced as an OpenTelemetry span named "uihooks.async".
package hooks
