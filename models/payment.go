package models

import "time"

// PaymentRequest describes a charge to process for a booking.
type PaymentRequest struct {
	UserID      string            `json:"userId"`
	ProviderID  string            `json:"providerId"`
	BookingID   string            `json:"bookingId"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Method      string            `json:"method"` // "card" or "cash"
	Idempotency string            `json:"idempotency,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Invoice statuses.
const (
	InvoiceStatusPending  = "pending"
	InvoiceStatusPaid     = "paid"
	InvoiceStatusRefunded = "refunded"
	InvoiceStatusFailed   = "failed"
)

// Invoice is the persisted record of a processed payment.
type Invoice struct {
	InvoiceID  string    `bson:"invoiceId" json:"invoiceId"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	UserID     string    `bson:"userId" json:"userId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Amount     float64   `bson:"amount" json:"amount"`
	Currency   string    `bson:"currency" json:"currency"`
	Method     string    `bson:"method" json:"method"`
	Status     string    `bson:"status" json:"status"`
	PaymentID  string    `bson:"paymentId,omitempty" json:"paymentId,omitempty"` // gateway payment intent ID
	RefundID   string    `bson:"refundId,omitempty" json:"refundId,omitempty"`
	Error      string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
