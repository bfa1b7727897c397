package handlers

import (
	"net/http"

	"homeserve/models"
	"homeserve/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes user account endpoints.
type UserHandler struct {
	Service user.UserService
}

// InitiateRegistrationHandler handles POST /api/users/register.
func (h *UserHandler) InitiateRegistrationHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.UserBasicRegistrationData
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	device, err := deviceFromContext(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, code, err := h.Service.InitiateRegistration(req, device)
	if err != nil {
		logger.Error("Registration initiation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "code": code})
}

// VerifyRegistrationOTPHandler handles POST /api/users/register/verify-otp.
func (h *UserHandler) VerifyRegistrationOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		SessionID string `json:"sessionId" binding:"required"`
		OTP       string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	deviceID, _, err := GetDeviceDetails(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.Service.VerifyRegistrationOTP(req.SessionID, deviceID, req.OTP)
	if err != nil {
		logger.Error("OTP verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

// FinalizeRegistrationHandler handles POST /api/users/register/finalize.
func (h *UserHandler) FinalizeRegistrationHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.FinalizeRegistration(req.SessionID)
	if err != nil {
		logger.Error("Registration finalization failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler handles POST /api/users/login.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
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

	resp, err := h.Service.Authenticate(req.Email, req.Password, device)
	if err != nil {
		logger.Error("Login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfileHandler returns the authenticated user's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := c.GetString("userID")
	usr, err := h.Service.GetUserByID(userID)
	if err != nil {
		logger.Error("User not found", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateUserHandler handles PATCH /api/users/me.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.GetString("userID")

	usr, err := h.Service.UpdateUser(req)
	if err != nil {
		logger.Error("Failed to update user", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteUserHandler handles DELETE /api/users/me.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := c.GetString("userID")
	if err := h.Service.DeleteUser(userID); err != nil {
		logger.Error("Delete error", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// UpdateUserPasswordHandler handles PUT /api/users/me/password.
// It expects a JSON payload with "currentPassword" and "newPassword".
func (h *UserHandler) UpdateUserPasswordHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userID := c.GetString("userID")
	deviceID, _, err := GetDeviceDetails(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	usr, err := h.Service.UpdateUserPassword(userID, req.CurrentPassword, req.NewPassword, deviceID)
	if err != nil {
		logger.Error("Password update failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateFCMTokenHandler handles PUT /api/users/me/fcm-token.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Service.UpdateFCMToken(c.GetString("userID"), req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM token updated"})
}
