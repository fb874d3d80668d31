package handler

import (
	"net/http"

	"github.com/deppfellow/workout-api/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsHandler exposes the Prometheus registry.
type MetricsHandler struct {
	Handler
}

func NewMetricsHandler(s *server.Server) *MetricsHandler {
	return &MetricsHandler{
		Handler: NewHandler(s),
	}
}

func (h *MetricsHandler) ServeMetrics(c echo.Context) error {
	if h.server.Metrics == nil {
		return c.NoContent(http.StatusNotFound)
	}
	h.server.Metrics.Handler().ServeHTTP(c.Response(), c.Request())
	return nil
}
