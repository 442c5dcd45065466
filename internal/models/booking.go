package models

import (
	"errors"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking represents a guest's stay reservation. Bookings are never deleted;
// cancellation is a status change so the audit trail survives.
type Booking struct {
	ID            string        `json:"id" db:"id"`
	HotelID       string        `json:"hotel_id" db:"hotel_id"`
	RoomTypeCode  string        `json:"room_type_code" db:"room_type_code"`
	GuestUserID   string        `json:"guest_user_id" db:"guest_user_id"`
	CheckIn       time.Time     `json:"check_in" db:"check_in"`
	CheckOut      time.Time     `json:"check_out" db:"check_out"`
	Units         int           `json:"units" db:"units"`
	NightlyPrice  float64       `json:"nightly_price" db:"nightly_price"`
	TotalPrice    float64       `json:"total_price" db:"total_price"`
	Status        BookingStatus `json:"status" db:"status"`
	ReservationID string        `json:"reservation_id" db:"reservation_id"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateBookingRequest represents the request to create a booking.
// Dates are ISO-8601 calendar days (2006-01-02).
type CreateBookingRequest struct {
	HotelID      string `json:"hotel_id" binding:"required"`
	RoomTypeCode string `json:"room_type_code" binding:"required"`
	CheckIn      string `json:"check_in" binding:"required"`
	CheckOut     string `json:"check_out" binding:"required"`
	Units        int    `json:"units"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if r.Units == 0 {
		r.Units = 1
	}
	if r.Units < 1 {
		return errors.New("units must be at least 1")
	}
	if r.Units > 5 {
		return errors.New("maximum 5 rooms can be booked at once")
	}
	return nil
}

// Nights returns the number of nights covered by the booking
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// CanBeCancelled checks if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// CanBeCompleted checks if the booking can transition to completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == BookingStatusConfirmed
}

// IsActive reports whether the booking currently holds inventory
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
