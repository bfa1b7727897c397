package models

import "time"

// Review is a user's rating of a completed booking. One per booking.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	UserID     string    `bson:"userId" json:"userId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Rating     float64   `bson:"rating" json:"rating"` // 1 to 5
	Comment    string    `bson:"comment" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReviewRequest is the payload to create or update a review.
type ReviewRequest struct {
	BookingID string  `json:"bookingId" binding:"required"`
	Rating    float64 `json:"rating" binding:"required"`
	Comment   string  `json:"comment"`
}
