package booking

import (
	"testing"

	"homeserve/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to confirmed", models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{"pending to cancelled", models.BookingStatusPending, models.BookingStatusCancelled, true},
		{"confirmed to in_progress", models.BookingStatusConfirmed, models.BookingStatusInProgress, true},
		{"confirmed to cancelled", models.BookingStatusConfirmed, models.BookingStatusCancelled, true},
		{"in_progress to completed", models.BookingStatusInProgress, models.BookingStatusCompleted, true},

		{"pending to in_progress", models.BookingStatusPending, models.BookingStatusInProgress, false},
		{"pending to completed", models.BookingStatusPending, models.BookingStatusCompleted, false},
		{"confirmed to completed", models.BookingStatusConfirmed, models.BookingStatusCompleted, false},
		{"in_progress to cancelled", models.BookingStatusInProgress, models.BookingStatusCancelled, false},
		{"completed to anything", models.BookingStatusCompleted, models.BookingStatusCancelled, false},
		{"cancelled to anything", models.BookingStatusCancelled, models.BookingStatusConfirmed, false},
		{"no self loop", models.BookingStatusPending, models.BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, canTransition(tt.from, tt.to))
		})
	}
}

func TestCheckTransitionError(t *testing.T) {
	err := checkTransition(models.BookingStatusCompleted, models.BookingStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.NoError(t, checkTransition(models.BookingStatusPending, models.BookingStatusConfirmed))
}
