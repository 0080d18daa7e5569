package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flappykiro/leaderboard-service/internal/leaderboard"
	"github.com/flappykiro/leaderboard-service/internal/models"
	"github.com/flappykiro/leaderboard-service/internal/service"
	"github.com/flappykiro/leaderboard-service/internal/validate"
)

// RegisterScoreRoutes registers the leaderboard endpoints.
//
// GET  /api/scores?limit=N  — ranked entries, default 50
// POST /api/scores          — validate and record a submission
func RegisterScoreRoutes(r gin.IRoutes, svc *service.Service) {
	r.GET("/api/scores", func(c *gin.Context) {
		limit := leaderboard.DefaultLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
				return
			}
			limit = n
		}
		c.JSON(http.StatusOK, svc.Leaderboard(c.Request.Context(), limit))
	})

	r.POST("/api/scores", func(c *gin.Context) {
		var req models.SubmitScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		entry, err := svc.SubmitScore(c.Request.Context(), req)
		if err != nil {
			var ve *validate.Error
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
				return
			}
			// A score that could not be durably recorded is a failure,
			// never a silent success.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit score"})
			return
		}

		c.JSON(http.StatusCreated, models.SubmitScoreResponse{
			Message: "Score submitted successfully",
			Score:   entry,
		})
	})
}
