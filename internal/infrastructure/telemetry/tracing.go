package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of application spans
const TracerName = "ak-backend"

// Span attribute keys used by the application services
const (
	SpanAttrCompanyID = "company_id"
	SpanAttrEntityID  = "entity_id"
	SpanAttrLogin     = "login"
	SpanAttrQuery     = "query"
	SpanAttrPage      = "page"
	SpanAttrPageSize  = "page_size"
	SpanAttrTotal     = "total"
)

// StartServiceSpan starts a span named {service}.{method}, e.g. "customer.save".
// The caller must end the span.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "save",
//	    attribute.Int64(telemetry.SpanAttrCompanyID, tenant.CompanyID))
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, fmt.Sprintf("%s.%s", service, method),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError records err on the span and marks the span failed.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceID returns the trace id of the span in ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	traceID := trace.SpanContextFromContext(ctx).TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
