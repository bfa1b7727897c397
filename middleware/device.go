package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeviceDetailsMiddleware requires the client to identify its device. The
// device ID is what auth tokens are bound to.
func DeviceDetailsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader("X-Device-ID")
		deviceName := c.GetHeader("X-Device-Name")
		if deviceID == "" || deviceName == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Missing required device details: X-Device-ID and X-Device-Name",
			})
			return
		}

		c.Set("deviceID", deviceID)
		c.Set("deviceName", deviceName)
		c.Set("deviceIP", getClientIP(c))
		c.Next()
	}
}
