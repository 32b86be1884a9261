package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrTextObjectID   = "textobject.id"
	AttrPositionCount  = "textobject.positions"
	AttrFoundCount     = "textobject.found"
	AttrDocumentPath   = "document.path"
	AttrDocumentLength = "document.length"
	AttrCacheHit       = "cache.hit"
	AttrRequestID      = "request.id"
	AttrRequestMethod  = "request.method"
)

// Span names.
const (
	SpanResolve      = "textobject.resolve"
	SpanRequest      = "serve.request"
	SpanLoadDocument = "document.load"
)

// Event names.
const (
	EventDocumentChanged = "document.changed"
)

// StartResolve starts a span around resolving one text object at n positions.
func StartResolve(ctx context.Context, tracer trace.Tracer, id string, n int) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanResolve, trace.WithAttributes(
		attribute.String(AttrTextObjectID, id),
		attribute.Int(AttrPositionCount, n),
	))
}

// EndWithError records err on span, if any, and ends it.
func EndWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
