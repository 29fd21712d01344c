package main

import (
	_ "geocortex/docs"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupStaticRoutes()
	a.Router.GET("/health", a.HealthHandler.Health)
	a.PropertyHandler.Register(a.Router.Group("/api"))
}

// setupStaticRoutes configures documentation and metrics
func (a *App) setupStaticRoutes() {
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
