package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetUserDevicesHandler handles GET /api/users/me/devices.
func (h *UserHandler) GetUserDevicesHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := c.GetString("userID")
	devices, err := h.Service.GetUserDevices(userID)
	if err != nil {
		logger.Error("Failed to list devices", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, devices)
}

// SignOutOtherDevicesHandler handles POST /api/users/me/devices/sign-out-others.
func (h *UserHandler) SignOutOtherDevicesHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := c.GetString("userID")
	deviceID, _, err := GetDeviceDetails(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.SignOutOtherDevices(userID, deviceID); err != nil {
		logger.Error("Failed to sign out other devices", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Other devices signed out"})
}

// RevokeUserAuthTokenHandler handles DELETE /api/users/me/devices/:deviceId.
func (h *UserHandler) RevokeUserAuthTokenHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := c.GetString("userID")
	deviceID := c.Param("deviceId")
	if err := h.Service.RevokeUserAuthToken(userID, deviceID); err != nil {
		logger.Error("Failed to revoke token", zap.String("id", userID), zap.String("deviceId", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device signed out"})
}
