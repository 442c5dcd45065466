package services

import (
	"fmt"
	"time"

	"github.com/roamstay/hotel-booking-backend/internal/models"
	"github.com/roamstay/hotel-booking-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

// AvailabilityLedger is the booking lifecycle's view of the availability
// ledger: the single serialization point for room inventory.
type AvailabilityLedger interface {
	CheckAvailability(hotelID, roomTypeCode string, checkIn, checkOut time.Time) (int, error)
	Reserve(hotelID, roomTypeCode string, checkIn, checkOut time.Time, units int) (*models.Reservation, error)
	Release(reservationID string) error
}

// BookingStore persists bookings
type BookingStore interface {
	Create(booking *models.Booking) error
	GetByID(bookingID string) (*models.Booking, error)
	ListByUser(userID string) ([]models.Booking, error)
	MarkCancelled(bookingID string) error
	MarkCompleted(bookingID string) error
}

// RoomTypeFinder resolves room types for price snapshots
type RoomTypeFinder interface {
	GetRoomType(hotelID, code string) (*models.RoomType, error)
}

// BookingConfig holds booking policy limits
type BookingConfig struct {
	MaxUnitsPerBooking int
	MaxStayNights      int
}

// DefaultBookingConfig returns default booking policy limits
func DefaultBookingConfig() BookingConfig {
	return BookingConfig{
		MaxUnitsPerBooking: 5,
		MaxStayNights:      30,
	}
}

// BookingService drives the booking state machine: pending -> confirmed,
// pending/confirmed -> cancelled, confirmed -> completed. All inventory
// effects go through the availability ledger.
type BookingService struct {
	ledger   AvailabilityLedger
	bookings BookingStore
	hotels   RoomTypeFinder
	config   BookingConfig
	logger   *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	ledger AvailabilityLedger,
	bookings BookingStore,
	hotels RoomTypeFinder,
	config BookingConfig,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		ledger:   ledger,
		bookings: bookings,
		hotels:   hotels,
		config:   config,
		logger:   logger,
	}
}

// Create validates the request, reserves inventory and creates the booking
// in confirmed status. There is no payment step, so pending is reserved for
// future extension. On capacity failure nothing is created; if persisting
// the booking fails after the reservation committed, the reservation is
// released again so no inventory stays held without a booking.
func (s *BookingService) Create(userID string, req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Units > s.config.MaxUnitsPerBooking {
		return nil, fmt.Errorf("maximum %d rooms can be booked at once", s.config.MaxUnitsPerBooking)
	}

	checkIn, err := validator.ParseDate(req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := validator.ParseDate(req.CheckOut)
	if err != nil {
		return nil, err
	}
	if derr := validator.ValidateDateRange(checkIn, checkOut, time.Now().UTC()); derr != nil {
		return nil, derr
	}

	nights := validator.Nights(checkIn, checkOut)
	if nights > s.config.MaxStayNights {
		return nil, fmt.Errorf("stay cannot exceed %d nights", s.config.MaxStayNights)
	}

	roomType, err := s.hotels.GetRoomType(req.HotelID, req.RoomTypeCode)
	if err != nil {
		return nil, err
	}

	reservation, err := s.ledger.Reserve(req.HotelID, req.RoomTypeCode, checkIn, checkOut, req.Units)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		HotelID:       req.HotelID,
		RoomTypeCode:  req.RoomTypeCode,
		GuestUserID:   userID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Units:         req.Units,
		NightlyPrice:  roomType.NightlyPrice,
		TotalPrice:    roomType.NightlyPrice * float64(nights) * float64(req.Units),
		Status:        models.BookingStatusConfirmed,
		ReservationID: reservation.ID,
	}

	if err := s.bookings.Create(booking); err != nil {
		// Give the held capacity back; Release is idempotent
		if rerr := s.ledger.Release(reservation.ID); rerr != nil {
			s.logger.WithError(rerr).WithField("reservation_id", reservation.ID).
				Error("Failed to release reservation after booking insert failure")
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"hotel_id":       booking.HotelID,
		"room_type_code": booking.RoomTypeCode,
		"guest_user_id":  booking.GuestUserID,
		"check_in":       req.CheckIn,
		"check_out":      req.CheckOut,
		"units":          booking.Units,
		"total_price":    booking.TotalPrice,
	}).Info("Booking created")

	return booking, nil
}

// Cancel cancels a booking on behalf of its guest. The ledger release is
// durably recorded before the status flip; Release is idempotent, so a crash
// between the two steps is repaired by retrying the cancellation.
func (s *BookingService) Cancel(bookingID, userID string) error {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking.GuestUserID != userID {
		return models.ErrForbidden
	}
	if !booking.CanBeCancelled() {
		return models.ErrInvalidTransition
	}

	if err := s.ledger.Release(booking.ReservationID); err != nil {
		return fmt.Errorf("failed to release reservation: %w", err)
	}

	if err := s.bookings.MarkCancelled(bookingID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":    bookingID,
		"guest_user_id": userID,
	}).Info("Booking cancelled")

	return nil
}

// Complete flips a confirmed booking whose stay has ended to completed.
// No inventory effect: the stay was counted through check-out already.
func (s *BookingService) Complete(bookingID string) error {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return err
	}
	if !booking.CanBeCompleted() {
		return models.ErrInvalidTransition
	}
	return s.bookings.MarkCompleted(bookingID)
}

// Get retrieves a booking scoped to its guest
func (s *BookingService) Get(bookingID, userID string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestUserID != userID {
		return nil, models.ErrForbidden
	}
	return booking, nil
}

// ListForUser retrieves a user's bookings, newest first
func (s *BookingService) ListForUser(userID string) ([]models.Booking, error) {
	return s.bookings.ListByUser(userID)
}
