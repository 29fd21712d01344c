package main

import (
	"geocortex/internal/middleware"

	"github.com/gin-gonic/gin"
)

// configure all middleware for the router
func (a *App) setupMiddleware() {
	a.Router.Use(gin.Recovery())
	a.Router.Use(middleware.RequestID())
	a.Router.Use(middleware.CORS(a.Config.Server.AllowedOrigins))
	a.Router.Use(middleware.MetricsMiddleware())
	a.Router.Use(middleware.LoggingMiddleware())
	a.Router.Use(middleware.SecureHeaders(a.Config.IsProduction()))
	a.Router.Use(middleware.ErrorHandler())
	a.Router.Use(middleware.RateLimitMiddleware(a.RateLimiter))
}
