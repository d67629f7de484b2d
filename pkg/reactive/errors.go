package reactive

import "errors"

// ErrLoopClosed is returned by Loop.Run after Close and reported when a
// task is dispatched to a closed loop.
var ErrLoopClosed = errors.New("uihooks: loop closed")

// ErrQueueFull is reported when a task cannot be queued because the
// dispatch queue is at capacity.
var ErrQueueFull = errors.New("uihooks: dispatch queue full")

// ErrLoopRunning is returned by Run when another goroutine is already
// running the loop.
var ErrLoopRunning = errors.New("uihooks: loop already running")
