package bookingRepo

import (
	"errors"

	"homeserve/models"
)

// ErrStatusConflict is returned when a conditional status update matched a
// booking whose status has moved on since it was read.
var ErrStatusConflict = errors.New("booking status changed concurrently")

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(booking *models.Booking) error
	Update(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	// UpdateStatus moves a booking from one status to another atomically:
	// the update only applies when the stored status still equals from.
	UpdateStatus(id, from, to string) error
	SetCancelled(id, from, reason string) error
	SetInvoice(id, invoiceID string) error
	ListByUser(userID, status string) ([]models.Booking, error)
	ListByProvider(providerID, status string) ([]models.Booking, error)
}
