package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flappykiro/leaderboard-service/internal/service"
)

// RegisterHealthRoutes registers the liveness endpoint, which also reports
// the current ledger size.
func RegisterHealthRoutes(r gin.IRoutes, svc *service.Service) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Health())
	})
}
