package hooks

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName    = "github.com/vango-dev/uihooks/pkg/hooks"
	asyncSpanName = "uihooks.async"
)

func asyncTracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(tracerName)
}

func startAsyncSpan(ctx context.Context, tracer trace.Tracer, name string, id uint64) (context.Context, trace.Span) {
	return tracer.Start(ctx, asyncSpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("uihooks.async.name", name),
			attribute.Int64("uihooks.async.run", int64(id)),
		),
	)
}

func endAsyncSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
