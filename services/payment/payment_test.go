package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"homeserve/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInvoiceRepo struct {
	invoices map[string]*models.Invoice
}

func (f *fakeInvoiceRepo) Create(inv *models.Invoice) error {
	f.invoices[inv.InvoiceID] = inv
	return nil
}
func (f *fakeInvoiceRepo) Update(inv *models.Invoice) error {
	if _, ok := f.invoices[inv.InvoiceID]; !ok {
		return errors.New("invoice not found")
	}
	f.invoices[inv.InvoiceID] = inv
	return nil
}
func (f *fakeInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, errors.New("invoice not found")
	}
	return inv, nil
}
func (f *fakeInvoiceRepo) ListByUser(userID string) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	payments []string
}

func (f *fakeNotifier) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	return nil
}
func (f *fakeNotifier) SendProviderPush(ctx context.Context, providerID, title, body string, data map[string]string) error {
	return nil
}
func (f *fakeNotifier) NotifyBookingEvent(ctx context.Context, booking *models.Booking, event string) error {
	return nil
}
func (f *fakeNotifier) NotifyPayment(ctx context.Context, invoice *models.Invoice) error {
	f.payments = append(f.payments, invoice.InvoiceID)
	return nil
}
func (f *fakeNotifier) ListForRecipient(ctx context.Context, recipientID, role string, limit int64) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeNotifier) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return nil
}
func (f *fakeNotifier) MarkAllRead(ctx context.Context, recipientID, role string) error { return nil }
func (f *fakeNotifier) UnreadCount(ctx context.Context, recipientID, role string) (int64, error) {
	return 0, nil
}

type fakeScheduler struct {
	receipts []models.ReceiptPayload
}

func (f *fakeScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	return nil
}
func (f *fakeScheduler) EnqueueReceipt(payload models.ReceiptPayload) error {
	f.receipts = append(f.receipts, payload)
	return nil
}

func newTestHandler() (*StripePaymentHandler, *fakeInvoiceRepo, *fakeNotifier, *fakeScheduler) {
	invoices := &fakeInvoiceRepo{invoices: map[string]*models.Invoice{}}
	notifier := &fakeNotifier{}
	scheduler := &fakeScheduler{}
	h := NewStripePaymentHandler(zap.NewNop(), invoices, notifier, scheduler)
	return h, invoices, notifier, scheduler
}

func cashRequest() models.PaymentRequest {
	return models.PaymentRequest{
		UserID:     "user-1",
		ProviderID: "prov-1",
		BookingID:  "bk-1",
		Amount:     55.0,
		Currency:   "usd",
		Method:     "cash",
	}
}

func TestProcessPaymentCashStaysPending(t *testing.T) {
	h, invoices, _, _ := newTestHandler()

	inv, err := h.ProcessPayment(context.Background(), cashRequest())
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusPending, inv.Status)
	assert.Equal(t, "cash", inv.Method)
	assert.Empty(t, inv.PaymentID)
	assert.Contains(t, invoices.invoices, inv.InvoiceID)
}

func TestProcessPaymentValidation(t *testing.T) {
	h, _, _, _ := newTestHandler()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.PaymentRequest)
	}{
		{"zero amount", func(r *models.PaymentRequest) { r.Amount = 0 }},
		{"negative amount", func(r *models.PaymentRequest) { r.Amount = -5 }},
		{"missing user", func(r *models.PaymentRequest) { r.UserID = "" }},
		{"missing booking", func(r *models.PaymentRequest) { r.BookingID = "" }},
		{"missing currency", func(r *models.PaymentRequest) { r.Currency = "" }},
		{"bad method", func(r *models.PaymentRequest) { r.Method = "barter" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := cashRequest()
			tt.mutate(&req)
			_, err := h.ProcessPayment(ctx, req)
			assert.Error(t, err)
		})
	}
}

func TestSettleCash(t *testing.T) {
	h, _, notifier, scheduler := newTestHandler()
	ctx := context.Background()

	inv, err := h.ProcessPayment(ctx, cashRequest())
	require.NoError(t, err)

	settled, err := h.SettleCash(ctx, inv.InvoiceID)
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusPaid, settled.Status)
	assert.Equal(t, []string{inv.InvoiceID}, notifier.payments)
	require.Len(t, scheduler.receipts, 1)
	assert.Equal(t, inv.InvoiceID, scheduler.receipts[0].InvoiceID)
	assert.Equal(t, 55.0, scheduler.receipts[0].Amount)
}

func TestSettleCashIsIdempotent(t *testing.T) {
	h, _, notifier, _ := newTestHandler()
	ctx := context.Background()

	inv, err := h.ProcessPayment(ctx, cashRequest())
	require.NoError(t, err)

	_, err = h.SettleCash(ctx, inv.InvoiceID)
	require.NoError(t, err)
	_, err = h.SettleCash(ctx, inv.InvoiceID)
	require.NoError(t, err)

	// Only the first settlement notifies.
	assert.Len(t, notifier.payments, 1)
}

func TestSettleCashRejectsCardInvoice(t *testing.T) {
	h, invoices, _, _ := newTestHandler()

	invoices.invoices["inv-card"] = &models.Invoice{
		InvoiceID: "inv-card",
		Method:    "card",
		Status:    models.InvoiceStatusPending,
	}

	_, err := h.SettleCash(context.Background(), "inv-card")
	assert.ErrorContains(t, err, "not a cash payment")
}

func TestRefundRejectsUnpaidInvoice(t *testing.T) {
	h, _, _, _ := newTestHandler()
	ctx := context.Background()

	inv, err := h.ProcessPayment(ctx, cashRequest())
	require.NoError(t, err)

	_, err = h.Refund(ctx, inv.InvoiceID, "changed mind")
	assert.ErrorIs(t, err, ErrInvoiceNotRefundable)
}

func TestRefundPaidCashInvoice(t *testing.T) {
	h, _, notifier, _ := newTestHandler()
	ctx := context.Background()

	inv, err := h.ProcessPayment(ctx, cashRequest())
	require.NoError(t, err)
	_, err = h.SettleCash(ctx, inv.InvoiceID)
	require.NoError(t, err)

	refunded, err := h.Refund(ctx, inv.InvoiceID, "provider no-show")
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusRefunded, refunded.Status)
	// Settlement + refund both notify.
	assert.Len(t, notifier.payments, 2)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5500), minorUnits(55.0))
	assert.Equal(t, int64(1999), minorUnits(19.99))
	assert.Equal(t, int64(10), minorUnits(0.1))
	assert.Equal(t, int64(333), minorUnits(3.329999))
}
