package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	invoiceRepo "homeserve/database/repository/invoice"
	"homeserve/models"
	"homeserve/services/notification"
	"homeserve/services/tasks"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// StripePaymentHandler processes card payments through Stripe and records
// cash payments for offline settlement.
type StripePaymentHandler struct {
	Logger    *zap.Logger
	Invoices  invoiceRepo.InvoiceRepository
	Notifier  notification.NotificationService
	Scheduler tasks.Scheduler
}

// NewStripePaymentHandler constructs the production payment processor.
func NewStripePaymentHandler(logger *zap.Logger, invoices invoiceRepo.InvoiceRepository, notifier notification.NotificationService, scheduler tasks.Scheduler) *StripePaymentHandler {
	return &StripePaymentHandler{
		Logger:    logger,
		Invoices:  invoices,
		Notifier:  notifier,
		Scheduler: scheduler,
	}
}

// ProcessPayment validates the request and opens an invoice for the booking.
func (h *StripePaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	now := time.Now()
	inv := &models.Invoice{
		InvoiceID:  uuid.New().String(),
		BookingID:  req.BookingID,
		UserID:     req.UserID,
		ProviderID: req.ProviderID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Method:     req.Method,
		Status:     models.InvoiceStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	switch req.Method {
	case "card":
		return h.processCardPayment(ctx, req, inv)
	case "cash":
		return h.processCashPayment(ctx, req, inv)
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

// processCardPayment opens a Stripe PaymentIntent for the invoice amount. The
// invoice stays pending until ConfirmCardPayment observes the intent succeed.
func (h *StripePaymentHandler) processCardPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(req.Amount)),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.Idempotency != "" {
		params.SetIdempotencyKey(req.Idempotency)
	}
	params.AddMetadata("invoiceId", inv.InvoiceID)
	params.AddMetadata("bookingId", req.BookingID)
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		inv.Status = models.InvoiceStatusFailed
		inv.Error = err.Error()
		if createErr := h.Invoices.Create(inv); createErr != nil {
			h.Logger.Error("failed to persist failed invoice", zap.Error(createErr))
		}
		return nil, fmt.Errorf("stripe payment intent failed: %w", err)
	}

	inv.PaymentID = pi.ID
	if err := h.Invoices.Create(inv); err != nil {
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}

	h.Logger.Info("Card payment intent created",
		zap.String("invoice", inv.InvoiceID),
		zap.String("paymentIntent", pi.ID))
	return inv, nil
}

// processCashPayment records a cash invoice; it stays pending until the
// booking completes.
func (h *StripePaymentHandler) processCashPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	if err := h.Invoices.Create(inv); err != nil {
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}

	h.Logger.Info("Cash payment recorded", zap.String("invoice", inv.InvoiceID))
	return inv, nil
}

// ConfirmCardPayment re-reads the gateway intent and, if it succeeded, marks
// the invoice paid, notifies the user, and queues a receipt push.
func (h *StripePaymentHandler) ConfirmCardPayment(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	inv, err := h.Invoices.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Method != "card" {
		return nil, fmt.Errorf("invoice %s is not a card payment", invoiceID)
	}
	if inv.Status == models.InvoiceStatusPaid {
		return inv, nil
	}

	pi, err := paymentintent.Get(inv.PaymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent %s: %w", inv.PaymentID, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("payment intent %s not settled yet (status %s)", pi.ID, pi.Status)
	}

	inv.Status = models.InvoiceStatusPaid
	if err := h.Invoices.Update(inv); err != nil {
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	h.afterSettlement(ctx, inv)
	return inv, nil
}

// SettleCash marks a pending cash invoice as paid.
func (h *StripePaymentHandler) SettleCash(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	inv, err := h.Invoices.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Method != "cash" {
		return nil, fmt.Errorf("invoice %s is not a cash payment", invoiceID)
	}
	if inv.Status == models.InvoiceStatusPaid {
		return inv, nil
	}

	inv.Status = models.InvoiceStatusPaid
	if err := h.Invoices.Update(inv); err != nil {
		return nil, fmt.Errorf("failed to settle cash invoice: %w", err)
	}

	h.afterSettlement(ctx, inv)
	return inv, nil
}

// Refund reverses a paid card invoice through Stripe. Cash invoices are
// flipped to refunded directly; the offline repayment is the provider's
// responsibility.
func (h *StripePaymentHandler) Refund(ctx context.Context, invoiceID, reason string) (*models.Invoice, error) {
	inv, err := h.Invoices.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvoiceStatusPaid {
		return nil, ErrInvoiceNotRefundable
	}

	if inv.Method == "card" {
		params := &stripe.RefundParams{
			PaymentIntent: stripe.String(inv.PaymentID),
		}
		params.AddMetadata("invoiceId", inv.InvoiceID)
		if reason != "" {
			params.AddMetadata("reason", reason)
		}
		ref, err := refund.New(params)
		if err != nil {
			return nil, fmt.Errorf("stripe refund failed: %w", err)
		}
		inv.RefundID = ref.ID
	}

	inv.Status = models.InvoiceStatusRefunded
	if err := h.Invoices.Update(inv); err != nil {
		return nil, fmt.Errorf("failed to mark invoice refunded: %w", err)
	}

	if err := h.Notifier.NotifyPayment(ctx, inv); err != nil {
		h.Logger.Warn("refund notification failed", zap.String("invoice", inv.InvoiceID), zap.Error(err))
	}

	h.Logger.Info("Invoice refunded", zap.String("invoice", inv.InvoiceID))
	return inv, nil
}

// GetInvoice fetches a single invoice.
func (h *StripePaymentHandler) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	return h.Invoices.GetByID(invoiceID)
}

// ListUserInvoices fetches a user's invoices.
func (h *StripePaymentHandler) ListUserInvoices(ctx context.Context, userID string) ([]models.Invoice, error) {
	return h.Invoices.ListByUser(userID)
}

// afterSettlement notifies the user and enqueues a receipt push.
func (h *StripePaymentHandler) afterSettlement(ctx context.Context, inv *models.Invoice) {
	if err := h.Notifier.NotifyPayment(ctx, inv); err != nil {
		h.Logger.Warn("payment notification failed", zap.String("invoice", inv.InvoiceID), zap.Error(err))
	}
	receipt := models.ReceiptPayload{
		InvoiceID: inv.InvoiceID,
		UserID:    inv.UserID,
		Amount:    inv.Amount,
		Currency:  inv.Currency,
		Method:    inv.Method,
	}
	if err := h.Scheduler.EnqueueReceipt(receipt); err != nil {
		h.Logger.Warn("receipt enqueue failed", zap.String("invoice", inv.InvoiceID), zap.Error(err))
	}
}

// minorUnits converts a decimal amount to the gateway's integer minor units.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// validateRequest checks the payment request fields.
func validateRequest(req models.PaymentRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid payment amount")
	}
	if req.UserID == "" {
		return errors.New("missing user ID")
	}
	if req.BookingID == "" {
		return errors.New("missing booking ID")
	}
	if req.Currency == "" {
		return errors.New("missing currency")
	}
	if req.Method != "card" && req.Method != "cash" {
		return errors.New("unsupported method")
	}
	return nil
}
