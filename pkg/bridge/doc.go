// Package bridge carries browser events into the DOM model over a
// WebSocket.
//
// A client sends one JSON message per event:
//
//	{"type": "click", "target": "save-button", "data": {"clientX": 12}}
//
// The bridge looks the target up by id in the window's document and
// dispatches the event there on the component loop, so hooks bound with
// UseEventListener and UseClickOutside see it exactly as they would see a
// local click. An unknown or empty target dispatches at the document; the
// target "window" dispatches at the window.
//
// Messages flow the other way with Broadcast.
//
//	b := bridge.New(loop, win)
//	r := chi.NewRouter()
//	r.Mount("/bridge", b.Routes())
package bridge
