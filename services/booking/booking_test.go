package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"homeserve/config"
	"homeserve/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// --- fakes ---

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func (f *fakeServiceRepo) Create(s *models.Service) error { f.services[s.ID] = s; return nil }
func (f *fakeServiceRepo) Update(s *models.Service) error { f.services[s.ID] = s; return nil }
func (f *fakeServiceRepo) Delete(id string) error         { delete(f.services, id); return nil }
func (f *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	return f.services[id], nil
}
func (f *fakeServiceRepo) ListByProvider(providerID string) ([]models.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) ListActiveByCategory(category string) ([]models.Service, error) {
	return nil, nil
}

type fakeProviderRepo struct {
	providers  map[string]*models.Provider
	increments int
}

func (f *fakeProviderRepo) Create(p *models.Provider) error                   { f.providers[p.ID] = p; return nil }
func (f *fakeProviderRepo) Update(p *models.Provider) error                   { f.providers[p.ID] = p; return nil }
func (f *fakeProviderRepo) UpdateSetDocument(id string, updateDoc bson.M) error { return nil }
func (f *fakeProviderRepo) Delete(id string) error                            { return nil }
func (f *fakeProviderRepo) GetByID(id string) (*models.Provider, error)       { return f.providers[id], nil }
func (f *fakeProviderRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Provider, error) {
	return f.providers[id], nil
}
func (f *fakeProviderRepo) GetByEmail(email string) (*models.Provider, error) { return nil, nil }
func (f *fakeProviderRepo) GetAll() ([]models.Provider, error)                { return nil, nil }
func (f *fakeProviderRepo) SetRating(id string, rating float64, count int) error {
	return nil
}
func (f *fakeProviderRepo) IncrementCompletedBookings(id string) error {
	f.increments++
	return nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func (f *fakeBookingRepo) Create(b *models.Booking) error { f.bookings[b.ID] = b; return nil }
func (f *fakeBookingRepo) Update(b *models.Booking) error { f.bookings[b.ID] = b; return nil }
func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}
func (f *fakeBookingRepo) UpdateStatus(id, from, to string) error {
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return errors.New("booking status changed concurrently")
	}
	b.Status = to
	return nil
}
func (f *fakeBookingRepo) SetCancelled(id, from, reason string) error {
	if err := f.UpdateStatus(id, from, models.BookingStatusCancelled); err != nil {
		return err
	}
	f.bookings[id].CancelReason = reason
	return nil
}
func (f *fakeBookingRepo) SetInvoice(id, invoiceID string) error {
	f.bookings[id].InvoiceID = invoiceID
	return nil
}
func (f *fakeBookingRepo) ListByUser(userID, status string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingRepo) ListByProvider(providerID, status string) ([]models.Booking, error) {
	return nil, nil
}

type fakePayments struct {
	invoices    map[string]*models.Invoice
	refundErr   error
	refunded    []string
	cashSettled []string
}

func (f *fakePayments) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	inv := &models.Invoice{
		InvoiceID: "inv-" + req.BookingID,
		BookingID: req.BookingID,
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    models.InvoiceStatusPending,
	}
	f.invoices[inv.InvoiceID] = inv
	return inv, nil
}
func (f *fakePayments) ConfirmCardPayment(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	return f.invoices[invoiceID], nil
}
func (f *fakePayments) SettleCash(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	f.cashSettled = append(f.cashSettled, invoiceID)
	inv := f.invoices[invoiceID]
	inv.Status = models.InvoiceStatusPaid
	return inv, nil
}
func (f *fakePayments) Refund(ctx context.Context, invoiceID, reason string) (*models.Invoice, error) {
	if f.refundErr != nil {
		return nil, f.refundErr
	}
	f.refunded = append(f.refunded, invoiceID)
	inv := f.invoices[invoiceID]
	inv.Status = models.InvoiceStatusRefunded
	return inv, nil
}
func (f *fakePayments) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	return f.invoices[invoiceID], nil
}
func (f *fakePayments) ListUserInvoices(ctx context.Context, userID string) ([]models.Invoice, error) {
	return nil, nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	return nil
}
func (f *fakeNotifier) SendProviderPush(ctx context.Context, providerID, title, body string, data map[string]string) error {
	return nil
}
func (f *fakeNotifier) NotifyBookingEvent(ctx context.Context, booking *models.Booking, event string) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeNotifier) NotifyPayment(ctx context.Context, invoice *models.Invoice) error { return nil }
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
	reminders []models.ReminderPayload
	receipts  []models.ReceiptPayload
}

func (f *fakeScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	f.reminders = append(f.reminders, payload)
	return nil
}
func (f *fakeScheduler) EnqueueReceipt(payload models.ReceiptPayload) error {
	f.receipts = append(f.receipts, payload)
	return nil
}

// --- helpers ---

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakePayments, *fakeNotifier, *fakeProviderRepo, *fakeScheduler) {
	config.AppConfig.CommissionRate = 0.10
	config.AppConfig.ReminderLeadMinutes = 60

	services := &fakeServiceRepo{services: map[string]*models.Service{
		"svc-1": {
			ID:         "svc-1",
			ProviderID: "prov-1",
			Category:   "cleaning",
			Name:       "Deep clean",
			UnitType:   "hour",
			BaseRate:   25.0,
			Currency:   "usd",
			Active:     true,
		},
	}}
	providers := &fakeProviderRepo{providers: map[string]*models.Provider{
		"prov-1": {
			ID:     "prov-1",
			Status: models.AccountStatusActive,
			Verification: models.Verification{
				VerificationStatus: models.VerificationVerified,
			},
			PayoutDetails: models.PayoutDetails{AcceptsCash: true},
		},
	}}
	bookings := &fakeBookingRepo{bookings: map[string]*models.Booking{}}
	payments := &fakePayments{invoices: map[string]*models.Invoice{}}
	notifier := &fakeNotifier{}
	scheduler := &fakeScheduler{}

	svc := &DefaultBookingService{
		Bookings:  bookings,
		Providers: providers,
		Services:  services,
		Payments:  payments,
		Notifier:  notifier,
		Scheduler: scheduler,
	}
	return svc, bookings, payments, notifier, providers, scheduler
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

// --- tests ---

func TestQuotePricing(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	quote, err := svc.Quote(models.BookingRequest{ServiceID: "svc-1", Units: 3})
	require.NoError(t, err)

	assert.Equal(t, 75.0, quote.Subtotal)
	assert.Equal(t, 7.5, quote.Commission)
	assert.Equal(t, 82.5, quote.Total)
	assert.Equal(t, "hour", quote.UnitType)
	assert.Equal(t, "usd", quote.Currency)
}

func TestQuoteRejectsUnknownOrInactiveService(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	_, err := svc.Quote(models.BookingRequest{ServiceID: "missing", Units: 1})
	assert.Error(t, err)

	_, err = svc.Quote(models.BookingRequest{ServiceID: "svc-1", Units: 0})
	assert.Error(t, err)
}

func TestCreateBookingCash(t *testing.T) {
	svc, bookings, _, notifier, _, scheduler := newTestService()

	bk, inv, err := svc.CreateBooking(context.Background(), "user-1", models.BookingRequest{
		ServiceID:     "svc-1",
		Date:          futureDate(),
		Start:         10 * 60,
		End:           12 * 60,
		Units:         2,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.NotNil(t, bk)
	require.NotNil(t, inv)

	assert.Equal(t, models.BookingStatusPending, bk.Status)
	assert.Equal(t, 55.0, bk.TotalPrice) // 2 * 25 + 10% commission
	assert.Equal(t, inv.InvoiceID, bk.InvoiceID)

	stored, _ := bookings.GetByID(bk.ID)
	assert.Equal(t, inv.InvoiceID, stored.InvoiceID)
	assert.Contains(t, notifier.events, "booking_created")
	require.Len(t, scheduler.reminders, 1)
	assert.Equal(t, "user-1", scheduler.reminders[0].ID)
}

func TestCreateBookingRejectsCashWhenNotAccepted(t *testing.T) {
	svc, _, _, _, providers, _ := newTestService()
	providers.providers["prov-1"].PayoutDetails.AcceptsCash = false

	_, _, err := svc.CreateBooking(context.Background(), "user-1", models.BookingRequest{
		ServiceID:     "svc-1",
		Date:          futureDate(),
		Units:         1,
		PaymentMethod: "cash",
	})
	assert.ErrorContains(t, err, "cash")
}

func TestCreateBookingRejectsUnverifiedProvider(t *testing.T) {
	svc, _, _, _, providers, _ := newTestService()
	providers.providers["prov-1"].Verification.VerificationStatus = models.VerificationPending

	_, _, err := svc.CreateBooking(context.Background(), "user-1", models.BookingRequest{
		ServiceID:     "svc-1",
		Date:          futureDate(),
		Units:         1,
		PaymentMethod: "card",
	})
	assert.ErrorContains(t, err, "not verified")
}

func TestLifecycleHappyPath(t *testing.T) {
	svc, _, payments, notifier, providers, _ := newTestService()
	ctx := context.Background()

	bk, _, err := svc.CreateBooking(ctx, "user-1", models.BookingRequest{
		ServiceID:     "svc-1",
		Date:          futureDate(),
		Units:         2,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(ctx, "prov-1", bk.ID)
	require.NoError(t, err)
	_, err = svc.StartBooking(ctx, "prov-1", bk.ID)
	require.NoError(t, err)
	done, err := svc.CompleteBooking(ctx, "prov-1", bk.ID)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCompleted, done.Status)
	assert.Equal(t, []string{bk.InvoiceID}, payments.cashSettled)
	assert.Equal(t, 1, providers.increments)
	assert.Equal(t, []string{"booking_created", "booking_confirmed", "booking_started", "booking_completed"}, notifier.events)
}

func TestTransitionRejectsWrongProvider(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	bk, _, err := svc.CreateBooking(ctx, "user-1", models.BookingRequest{
		ServiceID:     "svc-1",
		Date:          futureDate(),
		Units:         1,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(ctx, "someone-else", bk.ID)
	assert.Error(t, err)
}

func TestTransitionRejectsSkippedState(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	bk, _, err := svc.CreateBooking(ctx, "user-1", models.BookingRequest{
		ServiceID:     "svc-1",
		Date:          futureDate(),
		Units:         1,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	// pending -> in_progress skips confirmation.
	_, err = svc.StartBooking(ctx, "prov-1", bk.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelRefundsPaidInvoice(t *testing.T) {
	svc, bookings, payments, notifier, _, _ := newTestService()
	ctx := context.Background()

	bk, inv, err := svc.CreateBooking(ctx, "user-1", models.BookingRequest{
		ServiceID:     "svc-1",
		Date:          futureDate(),
		Units:         1,
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	inv.Status = models.InvoiceStatusPaid

	cancelled, err := svc.CancelBooking(ctx, "user-1", "user", bk.ID, "change of plans")
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, []string{inv.InvoiceID}, payments.refunded)
	assert.Contains(t, notifier.events, "booking_cancelled")

	stored, _ := bookings.GetByID(bk.ID)
	assert.Equal(t, "change of plans", stored.CancelReason)
}

func TestCancelKeepsBookingWhenRefundFails(t *testing.T) {
	svc, bookings, payments, _, _, _ := newTestService()
	ctx := context.Background()

	bk, inv, err := svc.CreateBooking(ctx, "user-1", models.BookingRequest{
		ServiceID:     "svc-1",
		Date:          futureDate(),
		Units:         1,
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	inv.Status = models.InvoiceStatusPaid
	payments.refundErr = errors.New("gateway unavailable")

	_, err = svc.CancelBooking(ctx, "user-1", "user", bk.ID, "no show")
	require.Error(t, err)

	stored, _ := bookings.GetByID(bk.ID)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
}

func TestCancelRejectsStranger(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	bk, _, err := svc.CreateBooking(ctx, "user-1", models.BookingRequest{
		ServiceID:     "svc-1",
		Date:          futureDate(),
		Units:         1,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, "user-2", "user", bk.ID, "")
	assert.Error(t, err)
}
