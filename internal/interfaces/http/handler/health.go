package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salonfin/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HealthCheck checks one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler reports the liveness of the server and its dependencies
type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
	version string
}

// NewHealthHandler creates a HealthHandler running checks with a per-request timeout
func NewHealthHandler(version string, timeout time.Duration, checks map[string]HealthCheck) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{checks: checks, timeout: timeout, version: version}
}

// Health godoc
//
//	@Summary	Health check
//	@Tags		system
//	@Success	200	{object}	map[string]any
//	@Failure	503	{object}	map[string]any
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "healthy"
	code := http.StatusOK
	services := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			logger.L(ctx).Warn("Health check failed", zap.String("check", name), zap.Error(err))
			services[name] = "unhealthy"
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		services[name] = "healthy"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"version":   h.version,
		"services":  services,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
