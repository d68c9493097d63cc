package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thirtydaygen/challenge-engine/internal/adapters/handler/http/middleware"
	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
	"github.com/thirtydaygen/challenge-engine/internal/core/services"
)

type NotificationHandler struct {
	svc *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

type testNotificationRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.POST("/subscribe", h.Subscribe)
		notifications.DELETE("/subscribe", h.Unsubscribe)
		notifications.POST("/test", h.SendTest)
	}
}

// Subscribe godoc
// @Summary      Register a web-push subscription for the caller
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request body subscribeRequest true "Browser push subscription"
// @Success      201 {object} domain.PushSubscription
// @Security     BearerAuth
// @Router       /notifications/subscribe [post]
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.svc.Subscribe(c.Request.Context(), services.SubscribeInput{
		UserID:   userID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSubscription) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription payload"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// Unsubscribe godoc
// @Summary      Drop every push subscription of the caller
// @Tags         notifications
// @Success      204
// @Security     BearerAuth
// @Router       /notifications/subscribe [delete]
func (h *NotificationHandler) Unsubscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Unsubscribe(c.Request.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no subscription found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// SendTest godoc
// @Summary      Send a test notification to the caller's subscriptions
// @Tags         notifications
// @Accept       json
// @Param        request body testNotificationRequest true "Message"
// @Success      202
// @Security     BearerAuth
// @Router       /notifications/test [post]
func (h *NotificationHandler) SendTest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req testNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SendToUser(c.Request.Context(), userID, "Test Notification", req.Message); err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no subscription found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusAccepted)
}
