package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "homeserve/database/repository/notification"
	providerRepo "homeserve/database/repository/provider"
	userRepo "homeserve/database/repository/user"
	"homeserve/models"
	"homeserve/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderRepository
	Repo      notificationRepo.NotificationRepository
}

// SendUserPush looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByIDWithProjection(userID, bson.M{"id": 1, "fcmToken": 1})
	if err != nil {
		return fmt.Errorf("SendUserPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPush: user %s has no FCM token", userID)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "user"
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPush: failed to send FCM message: %w", err)
	}
	return nil
}

// SendProviderPush looks up a provider's FCM token and sends a high-priority push.
func (s *DefaultNotificationService) SendProviderPush(ctx context.Context, providerID, title, body string, data map[string]string) error {
	p, err := s.Providers.GetByIDWithProjection(providerID, bson.M{"id": 1, "security.fcmToken": 1})
	if err != nil {
		return fmt.Errorf("SendProviderPush: could not find provider %s: %w", providerID, err)
	}
	token := p.Security.FCMToken
	if token == "" {
		return fmt.Errorf("SendProviderPush: provider %s has no FCM token", providerID)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "provider"
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendProviderPush: failed to send FCM message: %w", err)
	}
	return nil
}

// bookingEventCopy returns (userTitle, userBody, providerTitle, providerBody).
func bookingEventCopy(b *models.Booking, event string) (string, string, string, string) {
	when := fmt.Sprintf("%s at %02d:%02d", b.Date, b.Start/60, b.Start%60)
	switch event {
	case EventBookingCreated:
		return "Booking requested",
			fmt.Sprintf("Your booking for %s is awaiting provider confirmation.", when),
			"New booking request",
			fmt.Sprintf("You have a new booking request for %s.", when)
	case EventBookingConfirmed:
		return "Booking confirmed",
			fmt.Sprintf("Your booking for %s has been confirmed.", when),
			"Booking confirmed",
			fmt.Sprintf("You confirmed the booking for %s.", when)
	case EventBookingStarted:
		return "Service started",
			"Your provider has started the service.",
			"Service started",
			"You marked the service as started."
	case EventBookingCompleted:
		return "Service completed",
			"Your booking is complete. Leave a review to help others!",
			"Service completed",
			"Nice work! The booking has been marked complete."
	case EventBookingCancelled:
		return "Booking cancelled",
			fmt.Sprintf("Your booking for %s was cancelled.", when),
			"Booking cancelled",
			fmt.Sprintf("The booking for %s was cancelled.", when)
	default:
		return "Booking update", "Your booking was updated.", "Booking update", "A booking was updated."
	}
}

// NotifyBookingEvent records an in-app notification for both parties and
// attempts a push to each. Push failures are logged, not returned: the
// persisted notification is the source of truth.
func (s *DefaultNotificationService) NotifyBookingEvent(ctx context.Context, booking *models.Booking, event string) error {
	logger := utils.GetLogger()
	userTitle, userBody, provTitle, provBody := bookingEventCopy(booking, event)

	data := map[string]string{
		"type":      event,
		"bookingId": booking.ID,
	}

	userNote := models.Notification{
		ID:            uuid.New().String(),
		RecipientID:   booking.UserID,
		RecipientRole: "user",
		Type:          event,
		Title:         userTitle,
		Body:          userBody,
		Data:          data,
		CreatedAt:     time.Now(),
	}
	if err := s.Repo.Create(&userNote); err != nil {
		return fmt.Errorf("NotifyBookingEvent: failed to persist user notification: %w", err)
	}

	provNote := models.Notification{
		ID:            uuid.New().String(),
		RecipientID:   booking.ProviderID,
		RecipientRole: "provider",
		Type:          event,
		Title:         provTitle,
		Body:          provBody,
		Data:          data,
		CreatedAt:     time.Now(),
	}
	if err := s.Repo.Create(&provNote); err != nil {
		return fmt.Errorf("NotifyBookingEvent: failed to persist provider notification: %w", err)
	}

	if err := s.SendUserPush(ctx, booking.UserID, userTitle, userBody, data); err != nil {
		logger.Warn("booking event user push failed", zap.String("bookingId", booking.ID), zap.Error(err))
	}
	if err := s.SendProviderPush(ctx, booking.ProviderID, provTitle, provBody, data); err != nil {
		logger.Warn("booking event provider push failed", zap.String("bookingId", booking.ID), zap.Error(err))
	}
	return nil
}

// NotifyPayment records and pushes a payment notification to the paying user.
func (s *DefaultNotificationService) NotifyPayment(ctx context.Context, invoice *models.Invoice) error {
	logger := utils.GetLogger()
	title := "Payment update"
	body := fmt.Sprintf("Payment of %s %.2f via %s is %s.", invoice.Currency, invoice.Amount, invoice.Method, invoice.Status)
	data := map[string]string{
		"type":      EventPaymentProcessed,
		"invoiceId": invoice.InvoiceID,
		"status":    invoice.Status,
	}

	note := models.Notification{
		ID:            uuid.New().String(),
		RecipientID:   invoice.UserID,
		RecipientRole: "user",
		Type:          EventPaymentProcessed,
		Title:         title,
		Body:          body,
		Data:          data,
		CreatedAt:     time.Now(),
	}
	if err := s.Repo.Create(&note); err != nil {
		return fmt.Errorf("NotifyPayment: failed to persist notification: %w", err)
	}

	if err := s.SendUserPush(ctx, invoice.UserID, title, body, data); err != nil {
		logger.Warn("payment push failed", zap.String("invoiceId", invoice.InvoiceID), zap.Error(err))
	}
	return nil
}

// ListForRecipient returns the recipient's notifications, newest first.
func (s *DefaultNotificationService) ListForRecipient(ctx context.Context, recipientID, role string, limit int64) ([]models.Notification, error) {
	return s.Repo.ListByRecipient(recipientID, role, limit)
}

// MarkRead flags one notification as read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return s.Repo.MarkRead(recipientID, notificationID)
}

// MarkAllRead flags all of the recipient's notifications as read.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, recipientID, role string) error {
	return s.Repo.MarkAllRead(recipientID, role)
}

// UnreadCount counts unread notifications for a recipient.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, recipientID, role string) (int64, error) {
	return s.Repo.UnreadCount(recipientID, role)
}
