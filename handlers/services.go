package handlers

import (
	"net/http"

	"homeserve/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateServiceHandler handles POST /api/services.
func (h *ProviderHandler) CreateServiceHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	svc, err := h.Service.CreateService(c.GetString("providerID"), req)
	if err != nil {
		logger.Error("Failed to create service", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateServiceHandler handles PATCH /api/services/:id.
func (h *ProviderHandler) UpdateServiceHandler(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	svc, err := h.Service.UpdateService(c.GetString("providerID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteServiceHandler handles DELETE /api/services/:id.
func (h *ProviderHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Service.DeleteService(c.GetString("providerID"), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// ListMyServicesHandler handles GET /api/services/mine.
func (h *ProviderHandler) ListMyServicesHandler(c *gin.Context) {
	services, err := h.Service.ListProviderServices(c.GetString("providerID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// BrowseServicesHandler handles GET /api/services. The category query
// parameter is optional.
func (h *ProviderHandler) BrowseServicesHandler(c *gin.Context) {
	services, err := h.Service.BrowseServices(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListProviderServicesHandler handles GET /api/providers/:id/services — the
// public view of one provider's active catalogue.
func (h *ProviderHandler) ListProviderServicesHandler(c *gin.Context) {
	services, err := h.Service.ListProviderServices(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	active := services[:0]
	for _, svc := range services {
		if svc.Active {
			active = append(active, svc)
		}
	}
	c.JSON(http.StatusOK, active)
}
