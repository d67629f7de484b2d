package reactive

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Loop is a single-goroutine task queue: the UI thread of a component tree.
//
// All hook state is written from tasks running on the loop. Work that
// happens elsewhere (an async operation, a websocket read) hands its result
// back with Dispatch, which makes the write cooperative: it happens between
// other tasks, never during one.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	base   *slog.Logger
	logger *slog.Logger

	closed    atomic.Bool
	running   atomic.Bool
	closeOnce sync.Once

	executed atomic.Int64
	dropped  atomic.Int64
}

type loopConfig struct {
	queueSize int
	logger    *slog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*loopConfig)

// WithQueueSize sets the dispatch queue capacity (default DefaultQueueSize).
func WithQueueSize(n int) LoopOption {
	return func(c *loopConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithLogger sets the logger used by the loop and by hooks running on it.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(c *loopConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewLoop creates a loop. It does nothing until Run or Drain is called.
func NewLoop(opts ...LoopOption) *Loop {
	cfg := loopConfig{
		queueSize: DefaultQueueSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Loop{
		tasks:  make(chan func(), cfg.queueSize),
		done:   make(chan struct{}),
		base:   cfg.logger,
		logger: cfg.logger.With("component", "loop"),
	}
}

// Logger returns the logger the loop was configured with, without the
// loop's own attributes. Hooks and hosts derive their loggers from it.
func (l *Loop) Logger() *slog.Logger {
	return l.base
}

// Dispatch queues fn to run on the loop. It is safe to call from any
// goroutine and never blocks.
//
// A full queue or a closed loop drops fn; the returned error says which.
func (l *Loop) Dispatch(fn func()) error {
	if l.closed.Load() {
		l.dropped.Add(1)
		return ErrLoopClosed
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		l.dropped.Add(1)
		return ErrLoopClosed
	default:
		l.dropped.Add(1)
		l.logger.Warn("dispatch queue full, discarding task")
		return ErrQueueFull
	}
}

// Post queues fn like Dispatch, but waits for room when the queue is full.
// It fails only when the loop is closed or ctx is done. Post must not be
// called from the loop itself, which is the only goroutine that makes room.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	if l.closed.Load() {
		l.dropped.Add(1)
		return ErrLoopClosed
	}
	select {
	case l.tasks <- fn:
		return nil
	default:
	}

	l.logger.Debug("dispatch queue full, waiting")
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		l.dropped.Add(1)
		return ErrLoopClosed
	case <-ctx.Done():
		l.dropped.Add(1)
		return ctx.Err()
	}
}

// Sync dispatches fn and waits until it has run on the loop.
// It must not be called from the loop itself.
func (l *Loop) Sync(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	if err := l.Dispatch(func() {
		defer close(ran)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-ran:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes queued tasks on the calling goroutine until ctx is done or
// the loop is closed. It returns ctx.Err() on cancellation and nil on Close.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	if l.closed.Load() {
		return ErrLoopClosed
	}

	for {
		select {
		case fn := <-l.tasks:
			l.runTask(fn)
		case <-l.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Drain runs queued tasks on the calling goroutine until the queue is
// empty, including tasks queued by the tasks it runs, and returns how many
// ran. It is meant for tests and hosts that pump the loop by hand; it
// returns 0 while Run is active.
func (l *Loop) Drain() int {
	if !l.running.CompareAndSwap(false, true) {
		return 0
	}
	defer l.running.Store(false)

	n := 0
	for {
		select {
		case fn := <-l.tasks:
			l.runTask(fn)
			n++
		default:
			return n
		}
	}
}

// Close stops the loop. Queued tasks that have not started are discarded.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	return l.closed.Load()
}

// Stats returns how many tasks ran and how many were dropped.
func (l *Loop) Stats() (executed, dropped int64) {
	return l.executed.Load(), l.dropped.Load()
}

// runTask runs fn, recovering a panic so that one bad task does not take
// down the loop.
func (l *Loop) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	l.executed.Add(1)
	fn()
}
