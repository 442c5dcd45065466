package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/roamstay/hotel-booking-backend/internal/database"
	"github.com/roamstay/hotel-booking-backend/internal/models"
	"github.com/roamstay/hotel-booking-backend/pkg/validator"
)

// HotelHandler serves the public hotel catalog and availability lookups
type HotelHandler struct {
	hotels *database.HotelRepository
	ledger *database.LedgerRepository
	logger *logrus.Logger
}

// NewHotelHandler creates a new HotelHandler
func NewHotelHandler(hotels *database.HotelRepository, ledger *database.LedgerRepository, logger *logrus.Logger) *HotelHandler {
	return &HotelHandler{
		hotels: hotels,
		ledger: ledger,
		logger: logger,
	}
}

// ListHotels handles GET /api/v1/hotels?sort=name|price|rating
func (h *HotelHandler) ListHotels(c *gin.Context) {
	sortKey := c.DefaultQuery("sort", database.SortByName)
	switch sortKey {
	case database.SortByName, database.SortByPrice, database.SortByRating:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_sort_key",
			"message": "sort must be one of: name, price, rating",
		})
		return
	}

	hotels, err := h.hotels.List(sortKey)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list hotels")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hotels": hotels,
		"count":  len(hotels),
		"sort":   sortKey,
	})
}

// GetHotel handles GET /api/v1/hotels/:id
func (h *HotelHandler) GetHotel(c *gin.Context) {
	hotelID := c.Param("id")

	hotel, err := h.hotels.GetByID(hotelID)
	if err != nil {
		if err != models.ErrHotelNotFound {
			h.logger.WithError(err).WithField("hotel_id", hotelID).Error("Failed to get hotel")
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, hotel)
}

// GetAvailability handles
// GET /api/v1/hotels/:id/availability?room_type=X&check_in=Y&check_out=Z
func (h *HotelHandler) GetAvailability(c *gin.Context) {
	hotelID := c.Param("id")
	roomTypeCode := c.Query("room_type")
	if roomTypeCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_room_type",
			"message": "room_type query parameter is required",
		})
		return
	}

	checkIn, err := validator.ParseDate(c.Query("check_in"))
	if err != nil {
		respondValidationError(c, err)
		return
	}
	checkOut, err := validator.ParseDate(c.Query("check_out"))
	if err != nil {
		respondValidationError(c, err)
		return
	}
	if dateErr := validator.ValidateDateRange(checkIn, checkOut, time.Now().UTC()); dateErr != nil {
		respondError(c, dateErr)
		return
	}

	available, err := h.ledger.CheckAvailability(hotelID, roomTypeCode, checkIn, checkOut)
	if err != nil {
		if err != models.ErrRoomTypeNotFound {
			h.logger.WithError(err).WithFields(logrus.Fields{
				"hotel_id":  hotelID,
				"room_type": roomTypeCode,
			}).Error("Failed to check availability")
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AvailabilityResponse{
		HotelID:        hotelID,
		RoomTypeCode:   roomTypeCode,
		CheckIn:        checkIn.Format(validator.DateLayout),
		CheckOut:       checkOut.Format(validator.DateLayout),
		AvailableUnits: available,
	})
}
