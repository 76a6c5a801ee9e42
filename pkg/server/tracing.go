package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName is the tracer used when Config.TracerName is empty.
const defaultTracerName = "micro"

// newTracer resolves the tracer from the global OpenTelemetry provider.
// Configure the provider in main before starting the server.
func newTracer(name string) trace.Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return otel.Tracer(name)
}

// startEventSpan opens the span covering one dispatched event. The span name
// carries label; the raw event type stays in the micro.event attribute.
func (s *Session) startEventSpan(msg ClientMessage, label string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("micro.event", msg.Event),
		attribute.String("micro.session_id", s.id),
		attribute.Bool("micro.window", msg.Window),
	}
	if !msg.Window {
		attrs = append(attrs, attribute.IntSlice("micro.path", msg.Path))
	}
	return s.srv.tracer.Start(s.ctx, "micro.event "+label,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
}

// endEventSpan records the outcome of an event and ends its span.
func endEventSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
