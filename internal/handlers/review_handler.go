package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/roamstay/hotel-booking-backend/internal/middleware"
	"github.com/roamstay/hotel-booking-backend/internal/models"
	"github.com/roamstay/hotel-booking-backend/internal/services"
)

// ReviewHandler serves review submission and hotel review listings
type ReviewHandler struct {
	reviews *services.ReviewService
	logger  *logrus.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews *services.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger,
	}
}

// AddReview handles POST /api/v1/bookings/:id/review
func (h *ReviewHandler) AddReview(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "User context not found",
		})
		return
	}

	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body",
		})
		return
	}

	review, err := h.reviews.Add(userCtx.UserID.String(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListHotelReviews handles GET /api/v1/hotels/:id/reviews
func (h *ReviewHandler) ListHotelReviews(c *gin.Context) {
	hotelID := c.Param("id")

	reviews, err := h.reviews.ListForHotel(hotelID)
	if err != nil {
		h.logger.WithError(err).WithField("hotel_id", hotelID).Error("Failed to list reviews")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
