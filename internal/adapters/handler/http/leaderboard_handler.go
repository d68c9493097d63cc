package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thirtydaygen/challenge-engine/internal/core/services"
)

type LeaderboardHandler struct {
	svc *services.LeaderboardService
}

func NewLeaderboardHandler(svc *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

func (h *LeaderboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/leaderboard", h.Get)
}

// Get godoc
// @Summary      Ranked completed-day counts across users
// @Tags         leaderboard
// @Produce      json
// @Param        limit query int false "Max rows (default 10)"
// @Success      200 {array} domain.LeaderboardEntry
// @Security     BearerAuth
// @Router       /leaderboard [get]
func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.svc.Get(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
