package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roamstay/hotel-booking-backend/internal/models"
	"github.com/roamstay/hotel-booking-backend/pkg/validator"
)

// respondError translates domain errors into HTTP responses so each handler
// does not repeat the mapping.
func respondError(c *gin.Context, err error) {
	var dateErr *validator.DateError
	if errors.As(err, &dateErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_date_range",
			"message": dateErr.Error(),
			"code":    dateErr.Code,
		})
		return
	}

	var rangeErr *validator.RangeError
	if errors.As(err, &rangeErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_value",
			"message": rangeErr.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrHotelNotFound),
		errors.Is(err, models.ErrRoomTypeNotFound),
		errors.Is(err, models.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "capacity_exceeded",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrBookingNotCompleted),
		errors.Is(err, models.ErrDuplicateReview):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "conflict",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "An unexpected error occurred",
		})
	}
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation_failed",
		"message": err.Error(),
	})
}
