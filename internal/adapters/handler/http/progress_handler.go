package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thirtydaygen/challenge-engine/internal/adapters/handler/http/middleware"
	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
	"github.com/thirtydaygen/challenge-engine/internal/core/services"
)

type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		svc: svc,
	}
}

type toggleProgressRequest struct {
	Date      string `json:"date" binding:"required"`
	Completed bool   `json:"completed"`
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	challenges := router.Group("/challenges/:id")
	{
		challenges.PUT("/progress", h.Toggle)
		challenges.GET("/progress", h.List)
		challenges.DELETE("/progress", h.Reset)
	}
}

// Toggle godoc
// @Summary      Toggle completion for one day of a challenge
// @Tags         progress
// @Accept       json
// @Produce      json
// @Param        id path string true "Challenge ID"
// @Param        request body toggleProgressRequest true "Day to toggle"
// @Success      200 {object} services.ToggleResult
// @Security     BearerAuth
// @Router       /challenges/{id}/progress [put]
func (h *ProgressHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req toggleProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil || date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	result, err := h.svc.Toggle(c.Request.Context(), services.ToggleProgressInput{
		ChallengeID: c.Param("id"),
		UserID:      userID,
		Date:        date,
		Completed:   req.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		case errors.Is(err, services.ErrDateOutOfRange):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "date is outside the challenge range"})
		case errors.Is(err, services.ErrDateNotEditable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "date cannot be edited"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// List godoc
// @Summary      List progress records of a challenge
// @Tags         progress
// @Produce      json
// @Param        id path string true "Challenge ID"
// @Param        from query string false "Lower bound (YYYY-MM-DD)"
// @Param        to query string false "Upper bound (YYYY-MM-DD)"
// @Success      200 {array} domain.DailyProgress
// @Security     BearerAuth
// @Router       /challenges/{id}/progress [get]
func (h *ProgressHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
		return
	}

	records, err := h.svc.ListByChallengeID(c.Request.Context(), c.Param("id"), userID, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Reset godoc
// @Summary      Delete all progress records of a challenge
// @Tags         progress
// @Param        id path string true "Challenge ID"
// @Success      204
// @Security     BearerAuth
// @Router       /challenges/{id}/progress [delete]
func (h *ProgressHandler) Reset(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Reset(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
