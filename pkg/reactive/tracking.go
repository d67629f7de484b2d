package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the per-goroutine render state.
type trackingContext struct {
	// currentOwner is the Owner whose hooks are being evaluated.
	// Set while a component renders.
	currentOwner *Owner
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns the numeric id of the current goroutine, parsed
// from the header of its stack trace ("goroutine <id> [...]").
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := getGoroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// setCurrentOwner sets the owner for hook evaluation and returns the previous one.
func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	if o == nil {
		// The context holds nothing else.
		trackingContexts.Delete(getGoroutineID())
		return old
	}
	ctx.currentOwner = o
	return old
}

// CurrentOwner returns the owner of the component currently rendering on
// this goroutine, or nil outside a render.
func CurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

// WithOwner runs fn with owner as the current owner.
//
// Hooks called inside fn attach their state to owner. This is what
// Component.Rerender does around the render function; call it directly only
// when driving an Owner by hand (tests, custom hosts).
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}
