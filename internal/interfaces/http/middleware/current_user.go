package middleware

import (
	"context"
	"errors"

	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/ak/backend/internal/infrastructure/telemetry"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TenantKey is the gin context key of the resolved shared.TenantContext
const TenantKey = "tenant"

// TenantResolver resolves the tenant of validated token claims
type TenantResolver interface {
	Resolve(ctx context.Context, claims *auth.Claims) (shared.TenantContext, error)
}

// CurrentUser resolves the tenant context of the authenticated user and
// stores it in the gin context, the request context and the active span.
// Requests without claims (public paths) pass through untouched.
func CurrentUser(resolver TenantResolver, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		tc, err := resolver.Resolve(ctx, claims)
		if err != nil {
			if errors.Is(err, shared.ErrUnauthorized) || errors.Is(err, shared.ErrNoTenant) {
				AbortWithProblem(c, dto.ErrCodeUnauthorized, "Full authentication is required to access this resource")
				return
			}
			logger.WithLogger(ctx, log).Error("current user resolution failed",
				zap.String("user_login", claims.Login()), zap.Error(err))
			AbortWithProblem(c, dto.ErrCodeInternal, "An unexpected error occurred")
			return
		}

		c.Set(TenantKey, tc)
		c.Request = c.Request.WithContext(logger.WithTenant(ctx, tc))

		span := trace.SpanFromContext(ctx)
		if span.IsRecording() {
			span.SetAttributes(
				attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID),
				attribute.String(telemetry.SpanAttrLogin, tc.Login),
			)
		}
		c.Next()
	}
}

// GetTenant retrieves the tenant context stored by CurrentUser
func GetTenant(c *gin.Context) (shared.TenantContext, bool) {
	if v, exists := c.Get(TenantKey); exists {
		if tc, ok := v.(shared.TenantContext); ok && tc.Valid() {
			return tc, true
		}
	}
	return shared.TenantContext{}, false
}
