package handlers

import (
	"net/http"
	"time"

	"housebill/internal/caching"
	"housebill/internal/repositories"

	"github.com/labstack/echo/v4"
)

// JobStatusReporter exposes background job diagnostics for the detailed
// health payload.
type JobStatusReporter interface {
	GetJobStatus() map[string]interface{}
}

// HealthHandlers reports liveness and dependency readiness.
type HealthHandlers struct {
	db        repositories.DB
	cacheSvc  caching.CacheService
	scheduler JobStatusReporter
}

func NewHealthHandlers(db repositories.DB, cacheSvc caching.CacheService, scheduler JobStatusReporter) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc, scheduler: scheduler}
}

// Health handles GET /health
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
}

// Ready handles GET /health/ready, checking database and cache connectivity.
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	healthy := true

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if err := h.cacheSvc.Ping(ctx); err != nil {
		// The cache is an optimization; a redis outage degrades, not breaks.
		checks["cache"] = err.Error()
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]interface{}{
		"status": checks,
	})
}

// Detailed handles GET /health/detailed with per-dependency latencies.
func (h *HealthHandlers) Detailed(c echo.Context) error {
	ctx := c.Request().Context()
	deps := map[string]interface{}{}

	start := time.Now()
	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		deps["database"] = map[string]interface{}{"status": "down", "error": err.Error()}
	} else {
		deps["database"] = map[string]interface{}{"status": "ok", "latency_ms": time.Since(start).Milliseconds()}
	}

	start = time.Now()
	if err := h.cacheSvc.Ping(ctx); err != nil {
		deps["cache"] = map[string]interface{}{"status": "down", "error": err.Error()}
	} else {
		deps["cache"] = map[string]interface{}{"status": "ok", "latency_ms": time.Since(start).Milliseconds()}
	}

	payload := map[string]interface{}{
		"status":       "ok",
		"dependencies": deps,
	}
	if h.scheduler != nil {
		payload["jobs"] = h.scheduler.GetJobStatus()
	}
	return c.JSON(http.StatusOK, payload)
}
