package payment

import (
	"context"
	"errors"

	"homeserve/models"
)

// ErrInvoiceNotRefundable is returned when a refund is requested for an
// invoice that was never paid.
var ErrInvoiceNotRefundable = errors.New("invoice is not in a refundable state")

// PaymentProcessor handles charges and refunds for bookings.
type PaymentProcessor interface {
	// ProcessPayment opens a payment for a booking. Card payments create a
	// gateway payment intent and stay pending until confirmed; cash payments
	// stay pending until the booking completes.
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
	// ConfirmCardPayment checks the gateway intent and marks the invoice paid
	// once the gateway reports success.
	ConfirmCardPayment(ctx context.Context, invoiceID string) (*models.Invoice, error)
	// SettleCash marks a pending cash invoice as paid.
	SettleCash(ctx context.Context, invoiceID string) (*models.Invoice, error)
	// Refund reverses a paid invoice through the gateway.
	Refund(ctx context.Context, invoiceID, reason string) (*models.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error)
	ListUserInvoices(ctx context.Context, userID string) ([]models.Invoice, error)
}
