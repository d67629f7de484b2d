package hooks

import (
	"log/slog"
	"reflect"

	"github.com/vango-dev/uihooks/pkg/dom"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

// UseEventListener subscribes callback to eventType events on target for
// as long as the rendering component is mounted.
//
// The callback is stored in a Ref on every render, and the subscribed
// handler reads it from there, so passing a new closure each render never
// re-subscribes. The subscription is torn down and re-created only when
// eventType or target changes, and always torn down on unmount.
//
// A nil target (or a typed nil such as (*dom.Node)(nil)) subscribes to
// nothing. A nil callback is ignored when an event arrives.
func UseEventListener(eventType string, callback func(*dom.Event), target dom.EventTarget) {
	latest := reactive.UseRef(callback)
	latest.Set(callback)

	logger := hookLogger(reactive.UseLoop())

	reactive.UseEffect(func() reactive.Cleanup {
		if isNilTarget(target) {
			return nil
		}

		l := dom.NewListener(func(e *dom.Event) {
			if fn := latest.Current(); fn != nil {
				fn(e)
			}
		})
		target.AddEventListener(eventType, l)
		recordListenerAttach(eventType)
		logger.Debug("listener attached", "event", eventType, "listener", l.ID())

		return func() {
			target.RemoveEventListener(eventType, l)
			recordListenerDetach(eventType)
			logger.Debug("listener detached", "event", eventType, "listener", l.ID())
		}
	}, reactive.Deps{eventType, target})
}

// UseWindowEventListener is UseEventListener bound to the provided window.
// Without a provided window it subscribes to nothing.
func UseWindowEventListener(eventType string, callback func(*dom.Event)) {
	var target dom.EventTarget
	if win := UseWindow(); win != nil {
		target = win
	}
	UseEventListener(eventType, callback, target)
}

// UseDocumentEventListener is UseEventListener bound to the provided
// window's document.
func UseDocumentEventListener(eventType string, callback func(*dom.Event)) {
	var target dom.EventTarget
	if doc := UseDocument(); doc != nil {
		target = doc
	}
	UseEventListener(eventType, callback, target)
}

func isNilTarget(target dom.EventTarget) bool {
	if target == nil {
		return true
	}
	v := reflect.ValueOf(target)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func hookLogger(loop *reactive.Loop) *slog.Logger {
	if loop == nil {
		return slog.Default().With("component", "hooks")
	}
	return loop.Logger().With("component", "hooks")
}
