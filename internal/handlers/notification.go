package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/apierrors"
	"github.com/rentalhub/rentalhub-api/internal/database"
	"github.com/rentalhub/rentalhub-api/internal/middleware"
	"github.com/rentalhub/rentalhub-api/internal/models"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// ListNotifications returns the requester's notifications newest first,
// optionally filtered by read state.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	query := database.GetDB().Where("user_id = ?", user.ID)
	if isRead := c.Query("is_read"); isRead != "" {
		query = query.Where("is_read = ?", isRead == "true")
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead marks one of the requester's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var notification models.Notification
	if err := database.GetDB().First(&notification, id).Error; err != nil {
		apierrors.NotFound(c, "Notification not found")
		return
	}

	if notification.UserID != user.ID {
		apierrors.Forbidden(c, "Not authorized to update this notification")
		return
	}

	notification.IsRead = true
	if err := database.GetDB().Save(&notification).Error; err != nil {
		apierrors.InternalError(c, "Failed to update notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification of the requester as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	err := database.GetDB().Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error
	if err != nil {
		apierrors.InternalError(c, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
