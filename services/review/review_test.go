package review

import (
	"testing"

	"homeserve/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeReviewRepo struct {
	reviews map[string]*models.Review
}

func (f *fakeReviewRepo) Create(r *models.Review) error { f.reviews[r.ID] = r; return nil }
func (f *fakeReviewRepo) Update(r *models.Review) error { f.reviews[r.ID] = r; return nil }
func (f *fakeReviewRepo) Delete(id string) error        { delete(f.reviews, id); return nil }
func (f *fakeReviewRepo) GetByID(id string) (*models.Review, error) {
	return f.reviews[id], nil
}
func (f *fakeReviewRepo) GetByBookingID(bookingID string) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.BookingID == bookingID {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakeReviewRepo) ListByProvider(providerID string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.ProviderID == providerID {
			out = append(out, *r)
		}
	}
	return out, nil
}
func (f *fakeReviewRepo) AverageForProvider(providerID string) (float64, int, error) {
	var sum float64
	var count int
	for _, r := range f.reviews {
		if r.ProviderID == providerID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func (f *fakeBookingRepo) Create(b *models.Booking) error             { f.bookings[b.ID] = b; return nil }
func (f *fakeBookingRepo) Update(b *models.Booking) error             { f.bookings[b.ID] = b; return nil }
func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) { return f.bookings[id], nil }
func (f *fakeBookingRepo) UpdateStatus(id, from, to string) error     { return nil }
func (f *fakeBookingRepo) SetCancelled(id, from, reason string) error { return nil }
func (f *fakeBookingRepo) SetInvoice(id, invoiceID string) error      { return nil }
func (f *fakeBookingRepo) ListByUser(userID, status string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingRepo) ListByProvider(providerID, status string) ([]models.Booking, error) {
	return nil, nil
}

type fakeProviderRepo struct {
	rating float64
	count  int
}

func (f *fakeProviderRepo) Create(p *models.Provider) error                     { return nil }
func (f *fakeProviderRepo) Update(p *models.Provider) error                     { return nil }
func (f *fakeProviderRepo) UpdateSetDocument(id string, updateDoc bson.M) error { return nil }
func (f *fakeProviderRepo) Delete(id string) error                              { return nil }
func (f *fakeProviderRepo) GetByID(id string) (*models.Provider, error)         { return nil, nil }
func (f *fakeProviderRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Provider, error) {
	return nil, nil
}
func (f *fakeProviderRepo) GetByEmail(email string) (*models.Provider, error) { return nil, nil }
func (f *fakeProviderRepo) GetAll() ([]models.Provider, error)                { return nil, nil }
func (f *fakeProviderRepo) SetRating(id string, rating float64, count int) error {
	f.rating = rating
	f.count = count
	return nil
}
func (f *fakeProviderRepo) IncrementCompletedBookings(id string) error { return nil }

func newTestService() (*DefaultReviewService, *fakeReviewRepo, *fakeBookingRepo, *fakeProviderRepo) {
	reviews := &fakeReviewRepo{reviews: map[string]*models.Review{}}
	bookings := &fakeBookingRepo{bookings: map[string]*models.Booking{
		"bk-1": {
			ID:         "bk-1",
			UserID:     "user-1",
			ProviderID: "prov-1",
			Status:     models.BookingStatusCompleted,
		},
		"bk-2": {
			ID:         "bk-2",
			UserID:     "user-1",
			ProviderID: "prov-1",
			Status:     models.BookingStatusConfirmed,
		},
	}}
	providers := &fakeProviderRepo{}
	svc := &DefaultReviewService{Reviews: reviews, Bookings: bookings, Providers: providers}
	return svc, reviews, bookings, providers
}

func TestCreateReview(t *testing.T) {
	svc, _, _, providers := newTestService()

	rev, err := svc.CreateReview("user-1", models.ReviewRequest{
		BookingID: "bk-1",
		Rating:    4,
		Comment:   "great job",
	})
	require.NoError(t, err)

	assert.Equal(t, "prov-1", rev.ProviderID)
	assert.Equal(t, 4.0, rev.Rating)
	assert.Equal(t, 4.0, providers.rating)
	assert.Equal(t, 1, providers.count)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateReview("user-1", models.ReviewRequest{BookingID: "bk-1", Rating: 4})
	require.NoError(t, err)

	_, err = svc.CreateReview("user-1", models.ReviewRequest{BookingID: "bk-1", Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReviewRejectsIncompleteBooking(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateReview("user-1", models.ReviewRequest{BookingID: "bk-2", Rating: 4})
	assert.ErrorContains(t, err, "completed")
}

func TestCreateReviewRejectsStranger(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateReview("user-2", models.ReviewRequest{BookingID: "bk-1", Rating: 4})
	assert.Error(t, err)
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	svc, _, _, _ := newTestService()

	for _, rating := range []float64{0, 0.5, 5.5, -1} {
		_, err := svc.CreateReview("user-1", models.ReviewRequest{BookingID: "bk-1", Rating: rating})
		assert.Error(t, err, "rating %v should be rejected", rating)
	}
}

func TestUpdateReviewRefreshesRating(t *testing.T) {
	svc, _, _, providers := newTestService()

	rev, err := svc.CreateReview("user-1", models.ReviewRequest{BookingID: "bk-1", Rating: 2})
	require.NoError(t, err)

	_, err = svc.UpdateReview("user-1", rev.ID, 5, "they came back and fixed it")
	require.NoError(t, err)
	assert.Equal(t, 5.0, providers.rating)

	// Someone else cannot edit it.
	_, err = svc.UpdateReview("user-2", rev.ID, 1, "")
	assert.Error(t, err)
}

func TestDeleteReviewResetsRating(t *testing.T) {
	svc, reviews, _, providers := newTestService()

	rev, err := svc.CreateReview("user-1", models.ReviewRequest{BookingID: "bk-1", Rating: 3})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview("user-1", rev.ID))
	assert.Empty(t, reviews.reviews)
	assert.Equal(t, 0.0, providers.rating)
	assert.Equal(t, 0, providers.count)
}

func TestRemoveReviewSkipsOwnershipCheck(t *testing.T) {
	svc, reviews, _, providers := newTestService()

	rev, err := svc.CreateReview("user-1", models.ReviewRequest{BookingID: "bk-1", Rating: 3})
	require.NoError(t, err)

	// Owner-gated delete rejects other callers; the moderation path does not.
	require.Error(t, svc.DeleteReview("user-2", rev.ID))
	require.NoError(t, svc.RemoveReview(rev.ID))
	assert.Empty(t, reviews.reviews)
	assert.Equal(t, 0, providers.count)

	assert.Error(t, svc.RemoveReview("missing"))
}
