package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Health statuses
const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// HealthCheckTimeout bounds every dependency probe
const HealthCheckTimeout = 3 * time.Second

// Pinger is a dependency probed by the health endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the operational endpoints
type SystemHandler struct {
	BaseHandler
	version   string
	startTime time.Time
	checks    map[string]Pinger
}

// NewSystemHandler creates a SystemHandler probing checks by name
// (for example "db" and "redis"). Nil checks are skipped.
func NewSystemHandler(base BaseHandler, version string, checks map[string]Pinger) *SystemHandler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &SystemHandler{
		BaseHandler: base,
		version:     version,
		startTime:   time.Now(),
		checks:      active,
	}
}

// ComponentHealth is the status of one dependency
type ComponentHealth struct {
	Status string `json:"status" example:"UP"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the body of /health
type HealthResponse struct {
	Status     string                     `json:"status" example:"UP"`
	Components map[string]ComponentHealth `json:"components"`
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  Pings the database and the cache. Answers 503 when any of them is down.
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: StatusUp, Components: make(map[string]ComponentHealth, len(h.checks))}
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.String("component", name), zap.Error(err))
			resp.Components[name] = ComponentHealth{Status: StatusDown, Error: err.Error()}
			resp.Status = StatusDown
			continue
		}
		resp.Components[name] = ComponentHealth{Status: StatusUp}
	}

	status := http.StatusOK
	if resp.Status == StatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// InfoResponse represents the system information response
type InfoResponse struct {
	Name      string `json:"name" example:"akApp"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"goVersion" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// Info godoc
// @ID           info
// @Summary      Get system information
// @Tags         system
// @Produce      json
// @Success      200 {object} InfoResponse
// @Router       /management/info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Name:      h.appName,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
