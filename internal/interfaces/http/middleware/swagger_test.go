package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.SwaggerConfig
		remoteAddr string
		status     int
	}{
		{name: "disabled", cfg: config.SwaggerConfig{Enabled: false}, remoteAddr: "127.0.0.1:1234", status: http.StatusNotFound},
		{name: "open", cfg: config.SwaggerConfig{Enabled: true}, remoteAddr: "203.0.113.9:1234", status: http.StatusOK},
		{name: "listed ip", cfg: config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, remoteAddr: "127.0.0.1:1234", status: http.StatusOK},
		{name: "cidr match", cfg: config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, remoteAddr: "10.1.2.3:1234", status: http.StatusOK},
		{name: "not listed", cfg: config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "127.0.0.1"}}, remoteAddr: "203.0.113.9:1234", status: http.StatusForbidden},
		{name: "malformed entries ignored", cfg: config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"nope", "300.0.0.0/8"}}, remoteAddr: "127.0.0.1:1234", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/swagger/*any", SwaggerProtection(tt.cfg), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteAddr
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
