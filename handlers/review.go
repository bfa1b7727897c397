package handlers

import (
	"errors"
	"net/http"

	"homeserve/models"
	"homeserve/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes review endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

// CreateReviewHandler handles POST /api/reviews.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rev, err := h.Service.CreateReview(c.GetString("userID"), req)
	if err != nil {
		logger.Error("Failed to create review", zap.String("bookingID", req.BookingID), zap.Error(err))
		if errors.Is(err, review.ErrAlreadyReviewed) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// UpdateReviewHandler handles PATCH /api/reviews/:id.
func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	var req struct {
		Rating  float64 `json:"rating" binding:"required"`
		Comment string  `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rev, err := h.Service.UpdateReview(c.GetString("userID"), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rev)
}

// DeleteReviewHandler handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	if err := h.Service.DeleteReview(c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// ListProviderReviewsHandler handles GET /api/providers/:id/reviews — public.
func (h *ReviewHandler) ListProviderReviewsHandler(c *gin.Context) {
	reviews, err := h.Service.ListProviderReviews(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reviews)
}
