package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler checks the health status of the service
// @Summary      Health check
// @Description  Check service health and per-environment database connectivity
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "Service health status"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	environments := gin.H{}
	for _, env := range h.executor.Environments() {
		if err := h.executor.Ping(ctx, env); err != nil {
			environments[env] = "unreachable"
		} else {
			environments[env] = "connected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"templates":    h.catalog.Len(),
		"environments": environments,
	})
}
