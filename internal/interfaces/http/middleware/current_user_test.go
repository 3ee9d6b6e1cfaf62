package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockTenantResolver struct {
	mock.Mock
}

func (m *mockTenantResolver) Resolve(ctx context.Context, claims *auth.Claims) (shared.TenantContext, error) {
	args := m.Called(ctx, claims)
	return args.Get(0).(shared.TenantContext), args.Error(1)
}

func withClaims(claims *auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims != nil {
			c.Set(JWTClaimsKey, claims)
		}
		c.Next()
	}
}

func testClaims() *auth.Claims {
	claims := &auth.Claims{UserID: 7, CompanyID: 42}
	claims.Subject = "jdoe"
	return claims
}

func TestCurrentUser_Resolved(t *testing.T) {
	claims := testClaims()
	tc := shared.TenantContext{UserID: 7, Login: "jdoe", CompanyID: 42}
	resolver := new(mockTenantResolver)
	resolver.On("Resolve", mock.Anything, claims).Return(tc, nil)

	router := gin.New()
	router.Use(withClaims(claims), CurrentUser(resolver, nil))
	router.GET("/api/account", func(c *gin.Context) {
		got, ok := GetTenant(c)
		assert.True(t, ok)
		assert.Equal(t, tc, got)

		fromCtx, ok := logger.GetTenant(c.Request.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(42), fromCtx.CompanyID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/account", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resolver.AssertExpectations(t)
}

func TestCurrentUser_NoClaimsPassesThrough(t *testing.T) {
	resolver := new(mockTenantResolver)

	router := gin.New()
	router.Use(CurrentUser(resolver, nil))
	router.POST("/api/authenticate", func(c *gin.Context) {
		_, ok := GetTenant(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/authenticate", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestCurrentUser_Failures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "unknown user", err: shared.ErrUnauthorized, status: http.StatusUnauthorized, code: dto.ErrCodeUnauthorized},
		{name: "no company", err: shared.ErrNoTenant, status: http.StatusUnauthorized, code: dto.ErrCodeUnauthorized},
		{name: "store down", err: errors.New("connection refused"), status: http.StatusInternalServerError, code: dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := testClaims()
			resolver := new(mockTenantResolver)
			resolver.On("Resolve", mock.Anything, claims).Return(shared.TenantContext{}, tt.err)

			router := gin.New()
			router.Use(withClaims(claims), CurrentUser(resolver, nil))
			router.GET("/api/customers", func(c *gin.Context) {
				t.Fatal("handler must not run")
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeProblem(t, w).Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		tenant *shared.TenantContext
		status int
	}{
		{name: "admin", tenant: &shared.TenantContext{Login: "admin", CompanyID: 1, Admin: true}, status: http.StatusOK},
		{name: "plain user", tenant: &shared.TenantContext{Login: "user", CompanyID: 1}, status: http.StatusForbidden},
		{name: "anonymous", tenant: nil, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.tenant != nil {
					c.Set(TenantKey, *tt.tenant)
				}
				c.Next()
			}, RequireAdmin())
			router.GET("/api/users", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
