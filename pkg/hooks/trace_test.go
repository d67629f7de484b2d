package hooks

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/uihooks/pkg/reactive"
)

func TestUseAsyncSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var inner trace.SpanContext
	var ok, failed AsyncState[int]

	loop := reactive.NewLoop()
	reactive.Mount(loop, nil, func() {
		ok = UseAsync(func(ctx context.Context) (int, error) {
			inner = trace.SpanContextFromContext(ctx)
			return 1, nil
		}, reactive.Deps{}, WithName("profile"), WithTracerProvider(tp))
		failed = UseAsync(func(context.Context) (int, error) {
			return 0, errors.New("unreachable")
		}, reactive.Deps{}, WithName("status"), WithTracerProvider(tp))
	})
	settle(t, loop, func() bool { return !ok.Loading && !failed.Loading })

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}

	byName := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range spans {
		if s.Name() != asyncSpanName {
			t.Errorf("span name = %q, want %q", s.Name(), asyncSpanName)
		}
		for _, kv := range s.Attributes() {
			if kv.Key == attribute.Key("uihooks.async.name") {
				byName[kv.Value.AsString()] = s
			}
		}
	}

	profile, status := byName["profile"], byName["status"]
	if profile == nil || status == nil {
		t.Fatalf("spans by name = %v", byName)
	}
	if profile.Status().Code != codes.Ok {
		t.Errorf("profile status = %v, want Ok", profile.Status().Code)
	}
	if profile.SpanContext().SpanID() != inner.SpanID() {
		t.Error("the operation's context should carry the run span")
	}
	if status.Status().Code != codes.Error || status.Status().Description != "unreachable" {
		t.Errorf("status span = %+v, want Error(unreachable)", status.Status())
	}
	if len(status.Events()) == 0 {
		t.Error("failed run should record the error as a span event")
	}
}
