package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"homeserve/models"
	"homeserve/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes provider account and catalogue endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
}

// RegisterProviderHandler handles POST /api/providers/register.
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ProviderRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid provider registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	device, err := deviceFromContext(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Service.RegisterProvider(req, device)
	if err != nil {
		logger.Error("Provider registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateProviderHandler handles POST /api/providers/login.
func (h *ProviderHandler) AuthenticateProviderHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	device, err := deviceFromContext(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Service.AuthenticateProvider(req.Email, req.Password, device)
	if err != nil {
		logger.Error("Provider login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProviderProfileHandler returns the authenticated provider's full record.
func (h *ProviderHandler) GetProviderProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	providerID := c.GetString("providerID")
	prov, err := h.Service.GetProviderByID(providerID)
	if err != nil {
		logger.Error("Provider not found", zap.String("id", providerID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prov)
}

// GetPublicProfileHandler handles GET /api/providers/:id — the public view.
func (h *ProviderHandler) GetPublicProfileHandler(c *gin.Context) {
	id := c.Param("id")
	prov, err := h.Service.GetPublicProfile(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prov)
}

// UpdateProviderHandler handles PATCH /api/providers/me.
func (h *ProviderHandler) UpdateProviderHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ProviderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.GetString("providerID")

	prov, err := h.Service.UpdateProvider(req)
	if err != nil {
		logger.Error("Failed to update provider", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prov)
}

// DeleteProviderHandler handles DELETE /api/providers/me.
func (h *ProviderHandler) DeleteProviderHandler(c *gin.Context) {
	logger := getLogger(c)

	providerID := c.GetString("providerID")
	if err := h.Service.DeleteProvider(providerID); err != nil {
		logger.Error("Delete error", zap.String("id", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Provider deleted"})
}

// UpdatePayoutDetailsHandler handles PUT /api/providers/me/payout.
func (h *ProviderHandler) UpdatePayoutDetailsHandler(c *gin.Context) {
	var req models.PayoutDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Service.UpdatePayoutDetails(c.GetString("providerID"), req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payout details updated"})
}

// UpdateProviderFCMTokenHandler handles PUT /api/providers/me/fcm-token.
func (h *ProviderHandler) UpdateProviderFCMTokenHandler(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Service.UpdateFCMToken(c.GetString("providerID"), req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM token updated"})
}

// RevokeProviderAuthTokenHandler handles DELETE /api/providers/me/devices/:deviceId.
func (h *ProviderHandler) RevokeProviderAuthTokenHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	deviceID := c.Param("deviceId")
	if err := h.Service.RevokeProviderAuthToken(providerID, deviceID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device signed out"})
}

// SubmitKYPHandler handles POST /api/providers/me/kyp. It accepts a multipart
// form with the identity document under "document".
func (h *ProviderHandler) SubmitKYPHandler(c *gin.Context) {
	logger := getLogger(c)

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	providerID := c.GetString("providerID")
	legalName := c.PostForm("legalName")

	prov, err := h.Service.SubmitKYPDocument(c, providerID, legalName, tempFilePath)
	if err != nil {
		logger.Error("KYP submission failed", zap.String("id", providerID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":            "Document submitted for review",
		"verificationStatus": prov.Verification.VerificationStatus,
	})
}
