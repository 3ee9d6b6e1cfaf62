// Package middleware provides the gin middleware of the HTTP API.
package middleware

import (
	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
	// SkipPathPrefixes are not traced (health probes, metric scrapes).
	SkipPathPrefixes []string
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig(serviceName string) TracingConfig {
	return TracingConfig{
		ServiceName:      serviceName,
		Enabled:          true,
		SkipPathPrefixes: []string{"/health", "/metrics", "/swagger"},
	}
}

// Tracing starts a server span per request through otelgin. Span names
// follow the route pattern ("GET /api/customers/:id").
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(cfg.ServiceName,
		otelgin.WithGinFilter(func(c *gin.Context) bool {
			return !skipPath(c.Request.URL.Path, nil, cfg.SkipPathPrefixes)
		}),
	)
}

// SpanRequestID tags the request span with the request id. It must run
// after RequestID and Tracing. Company and login are added by CurrentUser.
func SpanRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if requestID := c.GetString(logger.GinRequestIDKey); requestID != "" && span.IsRecording() {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		c.Next()
	}
}
