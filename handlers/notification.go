package handlers

import (
	"net/http"
	"strconv"

	"homeserve/services/notification"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes in-app notification endpoints for both roles.
type NotificationHandler struct {
	Service notification.NotificationService
}

// recipientFromContext resolves the authenticated identity and its role.
func recipientFromContext(c *gin.Context) (string, string) {
	if userID := c.GetString("userID"); userID != "" {
		return userID, "user"
	}
	return c.GetString("providerID"), "provider"
}

// ListNotificationsHandler handles GET /api/notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	recipientID, role := recipientFromContext(c)

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	notifications, err := h.Service.ListForRecipient(c, recipientID, role, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkReadHandler handles POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	recipientID, _ := recipientFromContext(c)
	if err := h.Service.MarkRead(c, recipientID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// MarkAllReadHandler handles POST /api/notifications/read-all.
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	recipientID, role := recipientFromContext(c)
	if err := h.Service.MarkAllRead(c, recipientID, role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

// UnreadCountHandler handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	recipientID, role := recipientFromContext(c)
	count, err := h.Service.UnreadCount(c, recipientID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
