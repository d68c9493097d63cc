package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thirtydaygen/challenge-engine/internal/core/services"
)

type IdeaHandler struct {
	svc *services.IdeaService
}

func NewIdeaHandler(svc *services.IdeaService) *IdeaHandler {
	return &IdeaHandler{svc: svc}
}

func (h *IdeaHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ideas/search", h.Search)
}

// Search godoc
// @Summary      Search the challenge idea catalog
// @Tags         ideas
// @Produce      json
// @Param        q query string true "Search query"
// @Param        limit query int false "Max results (default 20)"
// @Success      200 {array} domain.ChallengeIdea
// @Security     BearerAuth
// @Router       /ideas/search [get]
func (h *IdeaHandler) Search(c *gin.Context) {
	query := c.Query("q")

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	ideas, err := h.svc.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, ideas)
}
