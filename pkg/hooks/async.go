package hooks

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/trace"

	hookerrors "github.com/vango-dev/uihooks/internal/errors"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

// AsyncState is the progress of the most recent UseAsync run.
//
// Loading is true from mount until a run settles, and again whenever a new
// run starts. A settled run leaves exactly one of Err or Value set.
type AsyncState[T any] struct {
	Loading bool
	Err     error
	Value   T
}

// Async run outcomes, used as the metrics label.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomePanic   = "panic"
	outcomeStale   = "stale"
)

type asyncConfig struct {
	name           string
	discardStale   bool
	tracerProvider trace.TracerProvider
}

// AsyncOption configures UseAsync.
type AsyncOption func(*asyncConfig)

// DiscardStale drops the result of a run that finished after a newer run
// started. Without it, overlapping runs race and whichever finishes last
// sets the state.
func DiscardStale() AsyncOption {
	return func(c *asyncConfig) {
		c.discardStale = true
	}
}

// WithName labels the runs in logs, spans and metrics (default "async").
func WithName(name string) AsyncOption {
	return func(c *asyncConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithTracerProvider sets the provider the run spans are created with.
// Default: the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) AsyncOption {
	return func(c *asyncConfig) {
		c.tracerProvider = tp
	}
}

// UseAsync runs operation after mount and again whenever the deps container
// changes identity, and returns the state of the latest run.
//
// Only the identity of deps is compared, never its elements: a Deps literal
// built during render is a new container every render and re-runs the
// operation after every render. Keep the container stable, for example
// with UseMemo keyed on the values it holds:
//
//	deps := reactive.UseMemo(func() reactive.Deps {
//	    return reactive.Deps{userID}
//	}, reactive.Deps{userID})
//	user := hooks.UseAsync(func(ctx context.Context) (*User, error) {
//	    return api.GetUser(ctx, userID)
//	}, deps)
//
// A nil or empty deps runs once. The operation runs on its own goroutine
// and its result is written back on the component's loop, so the state
// changes between renders, never during one. A full loop queue delays the
// write rather than losing it. A run is not cancelled when
// a newer run starts or the component unmounts; results arriving after
// unmount are dropped. A panicking operation settles with a *PanicError.
//
// UseAsync panics with a *errors.HookError (E005) when the component was
// not mounted on a reactive.Loop.
func UseAsync[T any](operation func(ctx context.Context) (T, error), deps reactive.Deps, opts ...AsyncOption) AsyncState[T] {
	cfg := asyncConfig{name: "async"}
	for _, opt := range opts {
		opt(&cfg)
	}

	loop := reactive.UseLoop()
	if loop == nil {
		panic(hookerrors.New("E005").
			WithDetail("UseAsync needs the component's loop to deliver results").
			WithSuggestion("Mount the component with reactive.Mount"))
	}
	logger := hookLogger(loop).With("async", cfg.name)

	state := reactive.UseState(AsyncState[T]{Loading: true}).WithEquals(sameAsyncState[T])
	generation := reactive.UseRef(uint64(0))

	run := reactive.UseCallback(func() {
		id := generation.Current() + 1
		generation.Set(id)
		state.Set(AsyncState[T]{Loading: true})

		tracer := asyncTracer(cfg.tracerProvider)
		go func() {
			start := time.Now()
			value, err := execute(tracer, cfg.name, id, operation)
			elapsed := time.Since(start)

			dispatchErr := loop.Post(context.Background(), func() {
				if cfg.discardStale && generation.Current() != id {
					recordAsyncRun(cfg.name, outcomeStale, elapsed)
					logger.Debug("stale result discarded", "run", id)
					return
				}

				outcome := outcomeSuccess
				next := AsyncState[T]{Value: value}
				if err != nil {
					outcome = outcomeError
					var pe *PanicError
					if errors.As(err, &pe) {
						outcome = outcomePanic
					}
					next = AsyncState[T]{Err: err}
				}
				recordAsyncRun(cfg.name, outcome, elapsed)
				logger.Debug("async run settled", "run", id, "outcome", outcome, "duration", elapsed)
				state.Set(next)
			})
			if dispatchErr != nil {
				logger.Warn("async result dropped", "run", id, "error", dispatchErr)
			}
		}()
	}, reactive.Deps{depsKey(deps)})

	reactive.UseEffect(func() reactive.Cleanup {
		run.Fn()()
		return nil
	}, reactive.Deps{run})

	return state.Get()
}

// sameAsyncState compares two states by identity, so a settlement that
// carries a distinct but deeply equal error or value still replaces the
// previous one.
func sameAsyncState[T any](a, b AsyncState[T]) bool {
	return a.Loading == b.Loading &&
		reactive.SameDeps(reactive.Deps{a.Err, a.Value}, reactive.Deps{b.Err, b.Value})
}

// depsKey is the identity UseAsync keys its runs on. Empty lists share one
// key, so a Deps{} literal built during render does not re-run.
func depsKey(deps reactive.Deps) any {
	if len(deps) == 0 {
		return nil
	}
	return deps
}

// execute runs operation inside a span, turning a panic into a *PanicError.
func execute[T any](tracer trace.Tracer, name string, id uint64, operation func(context.Context) (T, error)) (value T, err error) {
	ctx, span := startAsyncSpan(context.Background(), tracer, name, id)
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value, err = zero, &PanicError{Value: r, Stack: debug.Stack()}
		}
		endAsyncSpan(span, err)
	}()

	return operation(ctx)
}
