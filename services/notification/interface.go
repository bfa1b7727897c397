package notification

import (
	"context"

	"homeserve/models"
)

// Booking lifecycle events the notification service knows how to announce.
const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingStarted   = "booking_started"
	EventBookingCompleted = "booking_completed"
	EventBookingCancelled = "booking_cancelled"
	EventPaymentProcessed = "payment_processed"
)

// NotificationService sends FCM pushes and persists in-app notifications.
type NotificationService interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
	SendProviderPush(ctx context.Context, providerID, title, body string, data map[string]string) error
	NotifyBookingEvent(ctx context.Context, booking *models.Booking, event string) error
	NotifyPayment(ctx context.Context, invoice *models.Invoice) error
	ListForRecipient(ctx context.Context, recipientID, role string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllRead(ctx context.Context, recipientID, role string) error
	UnreadCount(ctx context.Context, recipientID, role string) (int64, error)
}
