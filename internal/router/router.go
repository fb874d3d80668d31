// Package router builds the Echo instance.
//
// It registers the middleware chain and maps the API routes to their
// handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/workout-api/internal/handler"
	"github.com/deppfellow/workout-api/internal/middleware"
	"github.com/deppfellow/workout-api/internal/model/atleta"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter returns the configured Echo instance.
//
// Middleware order matters: the request id must exist before the logger
// is built, and the New Relic transaction before EnhanceTracing reads it.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// /atletas/ and /atletas resolve to the same route.
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middlewares.Global.Recover(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
	)

	registerSystemRoutes(router, h)

	atletas := router.Group("/atletas", middlewares.RateLimit.Limit())
	registerAtletaRoutes(atletas, h)

	return router
}

func registerAtletaRoutes(g *echo.Group, h *handler.Handlers) {
	ah := h.Atleta

	g.POST("", handler.Handle(ah.Handler, ah.CreateAtleta, http.StatusCreated, &atleta.CreateAtletaRequest{}))
	g.GET("", handler.Handle(ah.Handler, ah.ListAtletas, http.StatusOK, &atleta.ListAtletasRequest{}))
	g.GET("/:id", handler.Handle(ah.Handler, ah.GetAtleta, http.StatusOK, &atleta.GetAtletaRequest{}))
	g.PATCH("/:id", handler.Handle(ah.Handler, ah.UpdateAtleta, http.StatusOK, &atleta.UpdateAtletaRequest{}))
	g.DELETE("/:id", handler.HandleNoContent(ah.Handler, ah.DeleteAtleta, http.StatusNoContent, &atleta.DeleteAtletaRequest{}))
}
