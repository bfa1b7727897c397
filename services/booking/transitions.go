package booking

import (
	"errors"
	"fmt"

	"homeserve/models"
)

// ErrInvalidTransition is returned when a lifecycle operation is attempted on
// a booking whose current status does not allow it.
var ErrInvalidTransition = errors.New("invalid booking status transition")

var allowedTransitions = map[string][]string{
	models.BookingStatusPending:    {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed:  {models.BookingStatusInProgress, models.BookingStatusCancelled},
	models.BookingStatusInProgress: {models.BookingStatusCompleted},
}

func canTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to string) error {
	if !canTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
