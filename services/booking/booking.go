package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"homeserve/config"
	"homeserve/models"
	"homeserve/services/notification"
	"homeserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote prices a booking request: units x base rate plus platform commission.
func (s *DefaultBookingService) Quote(req models.BookingRequest) (*models.Quote, error) {
	if req.Units <= 0 {
		return nil, fmt.Errorf("units must be positive")
	}
	svc, err := s.Services.GetByID(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, fmt.Errorf("service not found")
	}

	subtotal := roundMoney(float64(req.Units) * svc.BaseRate)
	commission := roundMoney(subtotal * config.AppConfig.CommissionRate)
	return &models.Quote{
		ServiceID:  svc.ID,
		Units:      req.Units,
		UnitType:   svc.UnitType,
		BaseRate:   svc.BaseRate,
		Subtotal:   subtotal,
		Commission: commission,
		Total:      roundMoney(subtotal + commission),
		Currency:   svc.Currency,
	}, nil
}

func (s *DefaultBookingService) validateRequest(req models.BookingRequest) error {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	if req.Start < 0 || req.Start >= 24*60 || req.End > 24*60 {
		return fmt.Errorf("start and end must fall within the day")
	}
	if req.End != 0 && req.End <= req.Start {
		return fmt.Errorf("end must be after start")
	}
	switch req.PaymentMethod {
	case "card", "cash":
	default:
		return fmt.Errorf("payment method must be card or cash")
	}
	return nil
}

// CreateBooking creates a pending booking, opens its invoice, announces the
// event, and schedules a reminder ahead of the start time.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, *models.Invoice, error) {
	logger := utils.GetLogger()

	if err := s.validateRequest(req); err != nil {
		return nil, nil, err
	}
	quote, err := s.Quote(req)
	if err != nil {
		return nil, nil, err
	}

	svc, err := s.Services.GetByID(req.ServiceID)
	if err != nil || svc == nil {
		return nil, nil, fmt.Errorf("service not found")
	}
	prov, err := s.Providers.GetByID(svc.ProviderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil || prov.Status == models.AccountStatusDeleted {
		return nil, nil, fmt.Errorf("provider not found")
	}
	if prov.Verification.VerificationStatus != models.VerificationVerified {
		return nil, nil, fmt.Errorf("provider is not verified")
	}
	if req.PaymentMethod == "cash" && !prov.PayoutDetails.AcceptsCash {
		return nil, nil, fmt.Errorf("provider does not accept cash payments")
	}

	bk := models.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		ProviderID:    prov.ID,
		ServiceID:     svc.ID,
		Date:          req.Date,
		Start:         req.Start,
		End:           req.End,
		Units:         req.Units,
		UnitType:      quote.UnitType,
		TotalPrice:    quote.Total,
		Currency:      quote.Currency,
		PaymentMethod: req.PaymentMethod,
		Status:        models.BookingStatusPending,
		Notes:         req.Notes,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.Bookings.Create(&bk); err != nil {
		return nil, nil, fmt.Errorf("failed to create booking: %w", err)
	}

	invoice, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
		UserID:      userID,
		ProviderID:  prov.ID,
		BookingID:   bk.ID,
		Amount:      bk.TotalPrice,
		Currency:    bk.Currency,
		Method:      bk.PaymentMethod,
		Idempotency: bk.ID,
		Description: fmt.Sprintf("%s on %s", svc.Name, bk.Date),
	})
	if err != nil {
		// Leave the booking pending without an invoice; the client can retry
		// payment or cancel.
		logger.Error("CreateBooking: payment failed",
			zap.String("bookingID", bk.ID), zap.Error(err))
		return &bk, nil, fmt.Errorf("failed to open payment: %w", err)
	}
	if err := s.Bookings.SetInvoice(bk.ID, invoice.InvoiceID); err != nil {
		logger.Error("CreateBooking: failed to attach invoice",
			zap.String("bookingID", bk.ID), zap.String("invoiceID", invoice.InvoiceID), zap.Error(err))
	}
	bk.InvoiceID = invoice.InvoiceID

	if err := s.Notifier.NotifyBookingEvent(ctx, &bk, notification.EventBookingCreated); err != nil {
		logger.Warn("CreateBooking: notify failed", zap.String("bookingID", bk.ID), zap.Error(err))
	}
	s.scheduleReminder(&bk, svc.Name)

	return &bk, invoice, nil
}

// scheduleReminder enqueues a reminder push ahead of the booking start. Past
// or imminent fire times are skipped.
func (s *DefaultBookingService) scheduleReminder(bk *models.Booking, serviceName string) {
	day, err := time.Parse("2006-01-02", bk.Date)
	if err != nil {
		return
	}
	start := day.Add(time.Duration(bk.Start) * time.Minute)
	fireAt := start.Add(-time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute)
	if !fireAt.After(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		ReminderID: uuid.New().String(),
		Target:     "user",
		ID:         bk.UserID,
		Title:      "Upcoming booking",
		Body:       fmt.Sprintf("Your %s booking starts at %02d:%02d.", serviceName, bk.Start/60, bk.Start%60),
		FireDate:   fireAt.Format(time.RFC3339),
	}
	if err := s.Scheduler.ScheduleReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("scheduleReminder: enqueue failed",
			zap.String("bookingID", bk.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) GetBooking(bookingID string) (*models.Booking, error) {
	bk, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if bk == nil {
		return nil, fmt.Errorf("booking not found")
	}
	return bk, nil
}

// transition loads the booking, checks ownership and the status machine, and
// applies the move atomically.
func (s *DefaultBookingService) transition(providerID, bookingID, to string) (*models.Booking, error) {
	bk, err := s.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if bk.ProviderID != providerID {
		return nil, fmt.Errorf("booking not found")
	}
	if err := checkTransition(bk.Status, to); err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateStatus(bookingID, bk.Status, to); err != nil {
		return nil, err
	}
	bk.Status = to
	return bk, nil
}

func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, providerID, bookingID string) (*models.Booking, error) {
	bk, err := s.transition(providerID, bookingID, models.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if err := s.Notifier.NotifyBookingEvent(ctx, bk, notification.EventBookingConfirmed); err != nil {
		utils.GetLogger().Warn("ConfirmBooking: notify failed", zap.String("bookingID", bk.ID), zap.Error(err))
	}
	return bk, nil
}

func (s *DefaultBookingService) StartBooking(ctx context.Context, providerID, bookingID string) (*models.Booking, error) {
	bk, err := s.transition(providerID, bookingID, models.BookingStatusInProgress)
	if err != nil {
		return nil, err
	}
	if err := s.Notifier.NotifyBookingEvent(ctx, bk, notification.EventBookingStarted); err != nil {
		utils.GetLogger().Warn("StartBooking: notify failed", zap.String("bookingID", bk.ID), zap.Error(err))
	}
	return bk, nil
}

// CompleteBooking closes out a job: cash invoices settle on completion, the
// provider's completed count increments, and the user is prompted to review.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, providerID, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	bk, err := s.transition(providerID, bookingID, models.BookingStatusCompleted)
	if err != nil {
		return nil, err
	}

	if bk.PaymentMethod == "cash" && bk.InvoiceID != "" {
		if _, err := s.Payments.SettleCash(ctx, bk.InvoiceID); err != nil {
			logger.Warn("CompleteBooking: cash settlement failed",
				zap.String("bookingID", bk.ID), zap.String("invoiceID", bk.InvoiceID), zap.Error(err))
		}
	}

	if err := s.Providers.IncrementCompletedBookings(bk.ProviderID); err != nil {
		logger.Warn("CompleteBooking: failed to increment completed count",
			zap.String("providerID", bk.ProviderID), zap.Error(err))
	}

	if err := s.Notifier.NotifyBookingEvent(ctx, bk, notification.EventBookingCompleted); err != nil {
		logger.Warn("CompleteBooking: notify failed", zap.String("bookingID", bk.ID), zap.Error(err))
	}
	return bk, nil
}

// CancelBooking cancels a pending or confirmed booking. A paid invoice is
// refunded first; if the refund fails the booking keeps its current status.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, actorID, actorRole, bookingID, reason string) (*models.Booking, error) {
	bk, err := s.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	switch actorRole {
	case "user":
		if bk.UserID != actorID {
			return nil, fmt.Errorf("booking not found")
		}
	case "provider":
		if bk.ProviderID != actorID {
			return nil, fmt.Errorf("booking not found")
		}
	default:
		return nil, fmt.Errorf("invalid actor role")
	}
	if err := checkTransition(bk.Status, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	if bk.InvoiceID != "" {
		inv, err := s.Payments.GetInvoice(ctx, bk.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch invoice: %w", err)
		}
		if inv != nil && inv.Status == models.InvoiceStatusPaid {
			if _, err := s.Payments.Refund(ctx, bk.InvoiceID, reason); err != nil {
				return nil, fmt.Errorf("refund failed, booking left unchanged: %w", err)
			}
		}
	}

	if err := s.Bookings.SetCancelled(bookingID, bk.Status, reason); err != nil {
		return nil, err
	}
	bk.Status = models.BookingStatusCancelled
	bk.CancelReason = reason

	if err := s.Notifier.NotifyBookingEvent(ctx, bk, notification.EventBookingCancelled); err != nil {
		utils.GetLogger().Warn("CancelBooking: notify failed", zap.String("bookingID", bk.ID), zap.Error(err))
	}
	return bk, nil
}

func (s *DefaultBookingService) ListForUser(userID, status string) ([]models.Booking, error) {
	return s.Bookings.ListByUser(userID, status)
}

func (s *DefaultBookingService) ListForProvider(providerID, status string) ([]models.Booking, error) {
	return s.Bookings.ListByProvider(providerID, status)
}
