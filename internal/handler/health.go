package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/workout-api/internal/middleware"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

var errNotConfigured = errors.New("not configured")

// HealthHandler serves GET /status.
//
// The database is required: when it fails the endpoint answers 503.
// Redis only backs the reference cache and the job queue, so a Redis
// failure reports "degraded" with a 200.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthResponse is the /status body.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckResult reports one dependency.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	obs := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      StatusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	if obs.HealthCheckEnabled("database") {
		result := h.check(c.Request().Context(), "database", func(ctx context.Context) error {
			if h.server.DB == nil {
				return errNotConfigured
			}
			return h.server.DB.Ping(ctx)
		})
		response.Checks["database"] = result
		if result.Status != StatusHealthy {
			response.Status = StatusUnhealthy
		}
	}

	if obs.HealthCheckEnabled("redis") {
		result := h.check(c.Request().Context(), "redis", func(ctx context.Context) error {
			if h.server.Redis == nil {
				return errNotConfigured
			}
			return h.server.Redis.Ping(ctx).Err()
		})
		response.Checks["redis"] = result
		if result.Status != StatusHealthy && response.Status == StatusHealthy {
			response.Status = StatusDegraded
		}
	}

	if response.Status == StatusUnhealthy {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthEvent(map[string]interface{}{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Str("status", response.Status).
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// check runs fn under the configured timeout and logs the outcome.
func (h *HealthHandler) check(ctx context.Context, name string, fn func(ctx context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	logger := h.server.Logger.With().Str("check_type", name).Logger()

	checkStart := time.Now()
	err := fn(ctx)
	took := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("response_time", took).
			Msg("health check failed")

		h.recordHealthEvent(map[string]interface{}{
			"check_type":       name,
			"error_type":       name + "_unhealthy",
			"response_time_ms": took.Milliseconds(),
			"error_message":    err.Error(),
		})

		return CheckResult{
			Status:       StatusUnhealthy,
			ResponseTime: took.String(),
			Error:        err.Error(),
		}
	}

	logger.Debug().
		Dur("response_time", took).
		Msg("health check passed")

	return CheckResult{
		Status:       StatusHealthy,
		ResponseTime: took.String(),
	}
}

func (h *HealthHandler) recordHealthEvent(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		attrs["operation"] = "health_check"
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
