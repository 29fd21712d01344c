package handlers

import (
	"context"
	"net/http"
	"time"

	"geocortex/internal/services"
	"geocortex/pkg/logger"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	propertyService *services.PropertyService
}

func NewHealthHandler(propertyService *services.PropertyService) *HealthHandler {
	return &HealthHandler{propertyService: propertyService}
}

// Health godoc
// @Summary Liveness of the store and cache
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks, err := h.propertyService.Health(ctx)
	if err != nil {
		logger.GlobalLogger.Errorf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
