package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: expiration,
		RememberMeExpiration:  30 * 24 * time.Hour,
		Issuer:                "test-issuer",
	})
}

func newTestToken(t *testing.T, jwtService *auth.JWTService) string {
	t.Helper()
	token, err := jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:      7,
		Login:       "jdoe",
		CompanyID:   42,
		Authorities: []string{"ROLE_USER"},
	})
	require.NoError(t, err)
	return token.Value
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) dto.Problem {
	t.Helper()
	var problem dto.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	return problem
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	token := newTestToken(t, jwtService)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/customers", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, "jdoe", claims.Login())
		assert.Equal(t, int64(42), claims.CompanyID)
		assert.Equal(t, int64(7), claims.UserID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	expired := newTestToken(t, newTestJWTService(-time.Minute))
	foreign := newTestToken(t, auth.NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Minute,
		Issuer:                "test-issuer",
	}))

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{name: "missing header", header: "", code: dto.ErrCodeUnauthorized},
		{name: "wrong scheme", header: "Basic abc", code: dto.ErrCodeUnauthorized},
		{name: "empty bearer", header: "Bearer ", code: dto.ErrCodeUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", code: dto.ErrCodeTokenInvalid},
		{name: "foreign signature", header: "Bearer " + foreign, code: dto.ErrCodeTokenInvalid},
		{name: "expired token", header: "Bearer " + expired, code: dto.ErrCodeTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(JWTAuthMiddleware(jwtService))
			router.GET("/api/customers", func(c *gin.Context) {
				t.Fatal("handler must not run")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			problem := decodeProblem(t, w)
			assert.Equal(t, tt.code, problem.Code)
			assert.Equal(t, "/api/customers", problem.Path)
		})
	}
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService:       jwtService,
		SkipPaths:        []string{"/api/authenticate"},
		SkipPathPrefixes: []string{"/api/public/"},
	}))
	router.POST("/api/authenticate", func(c *gin.Context) {
		assert.Nil(t, GetJWTClaims(c))
		c.Status(http.StatusOK)
	})
	router.GET("/api/public/info", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/account", func(c *gin.Context) { c.Status(http.StatusOK) })

	for path, want := range map[string]int{
		"/api/authenticate": http.StatusOK,
		"/api/public/info":  http.StatusOK,
		"/api/account":      http.StatusUnauthorized,
	} {
		method := http.MethodGet
		if path == "/api/authenticate" {
			method = http.MethodPost
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}

func TestAbortTokenError_Blacklisted(t *testing.T) {
	router := gin.New()
	router.GET("/x", func(c *gin.Context) { abortTokenError(c, auth.ErrTokenBlacklisted) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenRevoked, decodeProblem(t, w).Code)
}

func TestGetJWTClaims_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetJWTClaims(c))

	c.Set(JWTClaimsKey, "not claims")
	assert.Nil(t, GetJWTClaims(c))
}
