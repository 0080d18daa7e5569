package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flappykiro/leaderboard-service/internal/service"
)

// RegisterTelemetryRoutes registers the best-effort telemetry sink.
//
// POST /api/telemetry accepts any non-empty JSON object and always reports
// success once the payload is accepted; persistence problems stay internal.
func RegisterTelemetryRoutes(r gin.IRoutes, svc *service.Service) {
	r.POST("/api/telemetry", func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil || len(payload) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no data provided"})
			return
		}

		svc.LogEvent(c.Request.Context(), payload)
		c.JSON(http.StatusOK, gin.H{"status": "logged"})
	})
}
