package handlers

import (
	"errors"
	"net/http"

	bookingRepo "homeserve/database/repository/booking"
	"homeserve/models"
	"homeserve/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, booking.ErrInvalidTransition), errors.Is(err, bookingRepo.ErrStatusConflict):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// QuoteHandler handles POST /api/bookings/quote.
func (h *BookingHandler) QuoteHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	quote, err := h.Service.Quote(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userID := c.GetString("userID")
	bk, invoice, err := h.Service.CreateBooking(c, userID, req)
	if err != nil {
		logger.Error("Failed to create booking", zap.String("userID", userID), zap.Error(err))
		// The booking may exist without a payment; return it so the client
		// can retry or cancel.
		if bk != nil {
			c.JSON(http.StatusAccepted, gin.H{"booking": bk, "error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": bk, "invoice": invoice})
}

// GetBookingHandler handles GET /api/bookings/:id. Only a party to the
// booking may fetch it.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	bk, err := h.Service.GetBooking(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	actorID := c.GetString("userID")
	if actorID == "" {
		actorID = c.GetString("providerID")
	}
	if bk.UserID != actorID && bk.ProviderID != actorID {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, bk)
}

// ConfirmBookingHandler handles POST /api/bookings/:id/confirm (provider).
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	bk, err := h.Service.ConfirmBooking(c, c.GetString("providerID"), c.Param("id"))
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bk)
}

// StartBookingHandler handles POST /api/bookings/:id/start (provider).
func (h *BookingHandler) StartBookingHandler(c *gin.Context) {
	bk, err := h.Service.StartBooking(c, c.GetString("providerID"), c.Param("id"))
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bk)
}

// CompleteBookingHandler handles POST /api/bookings/:id/complete (provider).
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	bk, err := h.Service.CompleteBooking(c, c.GetString("providerID"), c.Param("id"))
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bk)
}

// CancelBookingHandler handles POST /api/bookings/:id/cancel. Works for both
// user and provider tokens.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	actorID := c.GetString("userID")
	actorRole := "user"
	if actorID == "" {
		actorID = c.GetString("providerID")
		actorRole = "provider"
	}

	bk, err := h.Service.CancelBooking(c, actorID, actorRole, c.Param("id"), req.Reason)
	if err != nil {
		logger.Error("Cancel failed", zap.String("bookingID", c.Param("id")), zap.Error(err))
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bk)
}

// ListUserBookingsHandler handles GET /api/bookings. The status query
// parameter is optional.
func (h *BookingHandler) ListUserBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListForUser(c.GetString("userID"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListProviderBookingsHandler handles GET /api/bookings/provider.
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListForProvider(c.GetString("providerID"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}
