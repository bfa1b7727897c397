package handlers

import (
	"net/http"

	"homeserve/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes invoice endpoints.
type PaymentHandler struct {
	Processor payment.PaymentProcessor
}

// ConfirmCardPaymentHandler handles POST /api/payments/:invoiceId/confirm.
// The client calls this after completing the gateway's payment sheet.
func (h *PaymentHandler) ConfirmCardPaymentHandler(c *gin.Context) {
	logger := getLogger(c)

	invoiceID := c.Param("invoiceId")
	existing, err := h.Processor.GetInvoice(c, invoiceID)
	if err != nil || existing.UserID != c.GetString("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}

	inv, err := h.Processor.ConfirmCardPayment(c, invoiceID)
	if err != nil {
		logger.Error("Card confirmation failed", zap.String("invoiceID", invoiceID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// GetInvoiceHandler handles GET /api/payments/:invoiceId.
func (h *PaymentHandler) GetInvoiceHandler(c *gin.Context) {
	inv, err := h.Processor.GetInvoice(c, c.Param("invoiceId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	actorID := c.GetString("userID")
	if actorID == "" {
		actorID = c.GetString("providerID")
	}
	if inv.UserID != actorID && inv.ProviderID != actorID {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// ListMyInvoicesHandler handles GET /api/payments.
func (h *PaymentHandler) ListMyInvoicesHandler(c *gin.Context) {
	invoices, err := h.Processor.ListUserInvoices(c, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}
