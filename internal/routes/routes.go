package routes

import (
	"net/http"
	"time"

	"jobmarket_backend/internal/handlers"
	"jobmarket_backend/internal/logger"
	"jobmarket_backend/ws"

	"github.com/gin-gonic/gin"
)

// Options are the pieces of the router that depend on configuration.
type Options struct {
	Version string
	// APIMiddleware runs in front of every /api/v1 route, after the global
	// middleware. The global rate limiter lives here.
	APIMiddleware []gin.HandlerFunc
}

// RegisterRoutes registers every HTTP and WebSocket route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guards handlers.Guards,
	wsHandler *ws.Handler,
	opts Options,
) {
	ginRouter.GET("/health", healthHandler(opts.Version))

	api := ginRouter.Group("/api/v1", opts.APIMiddleware...)
	{
		appHandlers.AuthHandler.RegisterRoutes(api, guards)
		appHandlers.CandidateHandler.RegisterRoutes(api, guards)
		appHandlers.EmployerHandler.RegisterRoutes(api, guards)
		appHandlers.VideoHandler.RegisterRoutes(api, guards)
		appHandlers.QuestionHandler.RegisterRoutes(api, guards)
	}

	// The handler authenticates itself: browsers cannot set headers on
	// the upgrade request, so the token may also come in ?token=.
	ginRouter.GET("/ws", wsHandler.ServeWS)
	logger.Info("WebSocket route /ws registered")

	ginRouter.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.Response{
			Success: false,
			Message: "Route not found",
		})
	})
}

func healthHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
		})
	}
}
