package review

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "homeserve/database/repository/booking"
	providerRepo "homeserve/database/repository/provider"
	reviewRepo "homeserve/database/repository/review"
	"homeserve/models"
	"homeserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAlreadyReviewed is returned when a booking already has a review.
var ErrAlreadyReviewed = errors.New("booking has already been reviewed")

type ReviewService interface {
	// CreateReview rates a completed booking the user owns. One per booking.
	CreateReview(userID string, req models.ReviewRequest) (*models.Review, error)
	UpdateReview(userID, reviewID string, rating float64, comment string) (*models.Review, error)
	DeleteReview(userID, reviewID string) error
	// RemoveReview deletes a review regardless of owner. Back-office only.
	RemoveReview(reviewID string) error
	ListProviderReviews(providerID string) ([]models.Review, error)
	GetBookingReview(bookingID string) (*models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Reviews   reviewRepo.ReviewRepository
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
}

func validateRating(rating float64) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

// CreateReview verifies the booking is completed, owned by the reviewer, and
// not yet reviewed, then persists the review and refreshes the provider's
// denormalised rating.
func (s *DefaultReviewService) CreateReview(userID string, req models.ReviewRequest) (*models.Review, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	bk, err := s.Bookings.GetByID(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if bk == nil || bk.UserID != userID {
		return nil, fmt.Errorf("booking not found")
	}
	if bk.Status != models.BookingStatusCompleted {
		return nil, fmt.Errorf("only completed bookings can be reviewed")
	}

	existing, err := s.Reviews.GetByBookingID(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing review: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	rev := models.Review{
		ID:         uuid.New().String(),
		BookingID:  bk.ID,
		UserID:     userID,
		ProviderID: bk.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := s.Reviews.Create(&rev); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.refreshProviderRating(bk.ProviderID)
	return &rev, nil
}

// UpdateReview edits the reviewer's own review.
func (s *DefaultReviewService) UpdateReview(userID, reviewID string, rating float64, comment string) (*models.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	rev, err := s.Reviews.GetByID(reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}
	if rev == nil || rev.UserID != userID {
		return nil, fmt.Errorf("review not found")
	}

	rev.Rating = rating
	rev.Comment = comment
	rev.UpdatedAt = time.Now()
	if err := s.Reviews.Update(rev); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.refreshProviderRating(rev.ProviderID)
	return rev, nil
}

// DeleteReview removes the reviewer's own review.
func (s *DefaultReviewService) DeleteReview(userID, reviewID string) error {
	rev, err := s.Reviews.GetByID(reviewID)
	if err != nil {
		return fmt.Errorf("failed to fetch review: %w", err)
	}
	if rev == nil || rev.UserID != userID {
		return fmt.Errorf("review not found")
	}
	if err := s.Reviews.Delete(reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.refreshProviderRating(rev.ProviderID)
	return nil
}

// RemoveReview is the moderation path: no ownership check.
func (s *DefaultReviewService) RemoveReview(reviewID string) error {
	rev, err := s.Reviews.GetByID(reviewID)
	if err != nil {
		return fmt.Errorf("failed to fetch review: %w", err)
	}
	if rev == nil {
		return fmt.Errorf("review not found")
	}
	if err := s.Reviews.Delete(reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.refreshProviderRating(rev.ProviderID)
	return nil
}

func (s *DefaultReviewService) ListProviderReviews(providerID string) ([]models.Review, error) {
	return s.Reviews.ListByProvider(providerID)
}

func (s *DefaultReviewService) GetBookingReview(bookingID string) (*models.Review, error) {
	rev, err := s.Reviews.GetByBookingID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}
	if rev == nil {
		return nil, fmt.Errorf("review not found")
	}
	return rev, nil
}

// refreshProviderRating recomputes the aggregate and writes it onto the
// provider profile. Failures are logged, not surfaced; the aggregate heals on
// the next review mutation.
func (s *DefaultReviewService) refreshProviderRating(providerID string) {
	avg, count, err := s.Reviews.AverageForProvider(providerID)
	if err != nil {
		utils.GetLogger().Warn("refreshProviderRating: aggregation failed",
			zap.String("providerID", providerID), zap.Error(err))
		return
	}
	if err := s.Providers.SetRating(providerID, avg, count); err != nil {
		utils.GetLogger().Warn("refreshProviderRating: failed to store rating",
			zap.String("providerID", providerID), zap.Error(err))
	}
}
