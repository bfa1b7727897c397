package reviewRepo

import "homeserve/models"

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id string) error
	GetByID(id string) (*models.Review, error)
	// GetByBookingID returns (nil, nil) when the booking has no review yet.
	GetByBookingID(bookingID string) (*models.Review, error)
	ListByProvider(providerID string) ([]models.Review, error)
	// AverageForProvider aggregates the provider's reviews and returns the
	// average rating and review count.
	AverageForProvider(providerID string) (float64, int, error)
}
