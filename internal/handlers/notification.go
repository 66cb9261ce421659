// internal/handlers/notification.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/services"
	"github.com/netflix100plus/admin-console/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications := h.notificationService.List()

	utils.SuccessResponseWithMeta(c, notifications, gin.H{
		"unread": h.notificationService.UnreadCount(),
	})
}

// GET /notifications/unread-count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"count": h.notificationService.UnreadCount(),
	})
}

// POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notification, err := h.notificationService.MarkRead(c.Param("id"))
	if errors.Is(err, services.ErrNotificationNotFound) {
		utils.NotFoundResponse(c, "notification")
		return
	}

	utils.SuccessResponse(c, notification)
}
