package models

import "time"

// Booking statuses. Transitions are enforced in the booking service.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Booking represents a user's booking of a provider service.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	ProviderID    string    `bson:"providerId" json:"providerId"`
	ServiceID     string    `bson:"serviceId" json:"serviceId"`
	Date          string    `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start         int       `bson:"start" json:"start"` // minutes from midnight
	End           int       `bson:"end" json:"end"`
	Units         int       `bson:"units" json:"units"`
	UnitType      string    `bson:"unitType" json:"unitType"`
	TotalPrice    float64   `bson:"totalPrice" json:"totalPrice"`
	Currency      string    `bson:"currency" json:"currency"`
	PaymentMethod string    `bson:"paymentMethod" json:"paymentMethod"` // "card" or "cash"
	InvoiceID     string    `bson:"invoiceId,omitempty" json:"invoiceId,omitempty"`
	Status        string    `bson:"status" json:"status"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CancelReason  string    `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingRequest is the payload to create a booking.
type BookingRequest struct {
	ServiceID     string `json:"serviceId" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Start         int    `json:"start"`
	End           int    `json:"end"`
	Units         int    `json:"units" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	Notes         string `json:"notes"`
}

// Quote is a priced preview of a booking request.
type Quote struct {
	ServiceID  string  `json:"serviceId"`
	Units      int     `json:"units"`
	UnitType   string  `json:"unitType"`
	BaseRate   float64 `json:"baseRate"`
	Subtotal   float64 `json:"subtotal"`
	Commission float64 `json:"commission"`
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
}
