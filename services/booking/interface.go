package booking

import (
	"context"

	bookingRepo "homeserve/database/repository/booking"
	providerRepo "homeserve/database/repository/provider"
	serviceRepo "homeserve/database/repository/service"
	"homeserve/models"
	"homeserve/services/notification"
	"homeserve/services/payment"
	"homeserve/services/tasks"
)

type BookingService interface {
	// Quote prices a booking request without creating anything.
	Quote(req models.BookingRequest) (*models.Quote, error)
	// CreateBooking persists a pending booking, opens its payment, and
	// schedules the pre-appointment reminder.
	CreateBooking(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, *models.Invoice, error)
	GetBooking(bookingID string) (*models.Booking, error)

	// Lifecycle. Each transition is provider-driven except Cancel, which
	// either party may perform while the booking is pending or confirmed.
	ConfirmBooking(ctx context.Context, providerID, bookingID string) (*models.Booking, error)
	StartBooking(ctx context.Context, providerID, bookingID string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, providerID, bookingID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, actorID, actorRole, bookingID, reason string) (*models.Booking, error)

	ListForUser(userID, status string) ([]models.Booking, error)
	ListForProvider(providerID, status string) ([]models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
	Services  serviceRepo.ServiceRepository
	Payments  payment.PaymentProcessor
	Notifier  notification.NotificationService
	Scheduler tasks.Scheduler
}
