package handlers

import (
	"net/http"

	"homeserve/services/provider"
	"homeserve/services/review"
	"homeserve/services/user"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes back-office endpoints.
type AdminHandler struct {
	Users     user.UserService
	Providers provider.ProviderService
	Reviews   review.ReviewService
}

// GetAllUsersHandler handles GET /api/admin/users.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.Users.GetAllUsers()
	if err != nil {
		getLogger(c).Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUserHandler handles DELETE /api/admin/users/:id. Soft-deletes the
// account and revokes its sessions.
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	userID := c.Param("id")
	if err := h.Users.DeleteUser(userID); err != nil {
		getLogger(c).Error("Admin user deletion failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// GetAllProvidersHandler handles GET /api/admin/providers.
func (h *AdminHandler) GetAllProvidersHandler(c *gin.Context) {
	providers, err := h.Providers.GetAllProviders()
	if err != nil {
		getLogger(c).Error("Failed to list providers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, providers)
}

// SetVerificationStatusHandler handles PUT /api/admin/providers/:id/verification.
func (h *AdminHandler) SetVerificationStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	providerID := c.Param("id")
	if err := h.Providers.SetVerificationStatus(providerID, req.Status); err != nil {
		getLogger(c).Error("Verification decision failed", zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification status updated"})
}

// RemoveReviewHandler handles DELETE /api/admin/reviews/:id. Moderation
// removal; the provider's rating aggregate is refreshed by the service.
func (h *AdminHandler) RemoveReviewHandler(c *gin.Context) {
	reviewID := c.Param("id")
	if err := h.Reviews.RemoveReview(reviewID); err != nil {
		getLogger(c).Error("Review removal failed", zap.String("reviewID", reviewID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review removed"})
}

// HealthHandler handles GET /api/admin/health — detailed dependency health.
func (h *AdminHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
