package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thirtydaygen/challenge-engine/internal/adapters/handler/http/middleware"
	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
	"github.com/thirtydaygen/challenge-engine/internal/core/services"
)

const dateLayout = "2006-01-02"

type ChallengeHandler struct {
	svc *services.ChallengeService
}

func NewChallengeHandler(svc *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		svc: svc,
	}
}

type createChallengeRequest struct {
	Title       string `json:"title" binding:"required"`
	Wish        string `json:"wish"`
	DailyAction string `json:"daily_action"`
	Icon        string `json:"icon"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type updateChallengeRequest struct {
	Title       string `json:"title"`
	Wish        string `json:"wish"`
	DailyAction string `json:"daily_action"`
	Icon        string `json:"icon"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (h *ChallengeHandler) RegisterRoutes(router *gin.RouterGroup) {
	challenges := router.Group("/challenges")
	{
		challenges.POST("", h.Create)
		challenges.GET("", h.List)
		challenges.GET("/:id", h.Get)
		challenges.PUT("/:id", h.Update)
		challenges.DELETE("/:id", h.Delete)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func writeChallengeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrChallengeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
	case errors.Is(err, domain.ErrChallengeTitleEmpty),
		errors.Is(err, domain.ErrChallengeTitleTooLong),
		errors.Is(err, domain.ErrChallengeWishTooLong),
		errors.Is(err, domain.ErrActionTooLong),
		errors.Is(err, domain.ErrInvalidIcon),
		errors.Is(err, domain.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Create godoc
// @Summary      Create a challenge
// @Tags         challenges
// @Accept       json
// @Produce      json
// @Param        request body createChallengeRequest true "Challenge"
// @Success      201 {object} domain.Challenge
// @Security     BearerAuth
// @Router       /challenges [post]
func (h *ChallengeHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	challenge, err := h.svc.Create(c.Request.Context(), services.CreateChallengeInput{
		UserID:      userID,
		Title:       req.Title,
		Wish:        req.Wish,
		DailyAction: req.DailyAction,
		Icon:        req.Icon,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		writeChallengeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, challenge)
}

// List godoc
// @Summary      List the caller's challenges
// @Tags         challenges
// @Produce      json
// @Success      200 {array} domain.Challenge
// @Security     BearerAuth
// @Router       /challenges [get]
func (h *ChallengeHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary      Fetch one challenge with its calendar grid and metrics
// @Tags         challenges
// @Produce      json
// @Param        id path string true "Challenge ID"
// @Success      200 {object} services.ChallengeView
// @Security     BearerAuth
// @Router       /challenges/{id} [get]
func (h *ChallengeHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	view, err := h.svc.GetView(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Update godoc
// @Summary      Edit a challenge
// @Tags         challenges
// @Accept       json
// @Produce      json
// @Param        id path string true "Challenge ID"
// @Param        request body updateChallengeRequest true "Fields to change"
// @Success      200 {object} domain.Challenge
// @Security     BearerAuth
// @Router       /challenges/{id} [put]
func (h *ChallengeHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	challenge, err := h.svc.Update(c.Request.Context(), services.UpdateChallengeInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Title:       req.Title,
		Wish:        req.Wish,
		DailyAction: req.DailyAction,
		Icon:        req.Icon,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		writeChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// Delete godoc
// @Summary      Delete a challenge and its progress
// @Tags         challenges
// @Param        id path string true "Challenge ID"
// @Success      204
// @Security     BearerAuth
// @Router       /challenges/{id} [delete]
func (h *ChallengeHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeChallengeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
