package preview

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "krow/preview"

// startEventSpan opens a server span for one client event. The caller ends
// it with endEventSpan once the resulting frame is written.
func (s *session) startEventSpan(ctx context.Context, ev ClientEvent) (context.Context, trace.Span) {
	return s.cfg.Tracer.Start(ctx, "krow."+ev.Type,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.Int64("krow.session_id", int64(s.id)),
			attribute.String("krow.demo", s.demo.Name),
			attribute.String("krow.event_type", ev.Type),
			attribute.Int64("krow.event_target", int64(ev.Node)),
		),
	)
}

func endEventSpan(span trace.Span, listeners, ops int, err error) {
	span.SetAttributes(
		attribute.Int("krow.listeners", listeners),
		attribute.Int("krow.ops", ops),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func defaultTracer() trace.Tracer {
	return otel.Tracer(defaultTracerName)
}
