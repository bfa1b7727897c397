package handlers

import (
	"errors"
	"time"

	"homeserve/models"

	"github.com/gin-gonic/gin"
)

// GetDeviceDetails reads the device identity placed in context by
// DeviceDetailsMiddleware.
func GetDeviceDetails(c *gin.Context) (deviceID string, deviceName string, err error) {
	deviceIDValue, exists := c.Get("deviceID")
	if !exists {
		return "", "", errors.New("missing device details: deviceID")
	}
	deviceNameValue, exists := c.Get("deviceName")
	if !exists {
		return "", "", errors.New("missing device details: deviceName")
	}

	deviceID, ok := deviceIDValue.(string)
	if !ok {
		return "", "", errors.New("invalid deviceID in context")
	}
	deviceName, ok = deviceNameValue.(string)
	if !ok {
		return "", "", errors.New("invalid deviceName in context")
	}
	return deviceID, deviceName, nil
}

// deviceFromContext builds a Device record from the request context.
func deviceFromContext(c *gin.Context) (models.Device, error) {
	deviceID, deviceName, err := GetDeviceDetails(c)
	if err != nil {
		return models.Device{}, err
	}
	return models.Device{
		DeviceID:   deviceID,
		DeviceName: deviceName,
		IP:         c.GetString("deviceIP"),
		LastLogin:  time.Now(),
	}, nil
}
