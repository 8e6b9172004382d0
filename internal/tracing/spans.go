package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrCodeSpace   = "registry.space"
	AttrCode        = "registry.code"
	AttrPeriod      = "registry.period"
	AttrVersion     = "registry.version"
	AttrFound       = "registry.found"
	AttrResultCount = "registry.result_count"
	AttrGeneration  = "registry.generation"
	AttrCacheHit    = "cache.hit"
	AttrCatalogPath = "catalog.path"
)

// Span names.
const (
	SpanGetSpec     = "registry.get_spec"
	SpanGetSpecList = "registry.get_spec_list"
	SpanReload      = "registry.reload"
	SpanLoadCatalog = "catalog.load"
)

// Event names.
const (
	EventSnapshotSwapped = "snapshot.swapped"
	EventCacheFlushed    = "cache.flushed"
)

// Start opens a span named name with attrs on tracer.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed with err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
