package notificationRepo

import "homeserve/models"

// NotificationRepository defines persistence operations for in-app notifications.
type NotificationRepository interface {
	Create(n *models.Notification) error
	ListByRecipient(recipientID, role string, limit int64) ([]models.Notification, error)
	MarkRead(recipientID, notificationID string) error
	MarkAllRead(recipientID, role string) error
	UnreadCount(recipientID, role string) (int64, error)
}
