package models

import "errors"

// Domain errors shared by repositories, services and handlers. Handlers map
// these to HTTP statuses; anything else is treated as an infrastructure
// failure and surfaced as a 500.
var (
	ErrHotelNotFound       = errors.New("hotel not found")
	ErrRoomTypeNotFound    = errors.New("room type not found")
	ErrCapacityExceeded    = errors.New("not enough rooms available for the requested dates")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrForbidden           = errors.New("booking belongs to another user")
	ErrInvalidTransition   = errors.New("booking status does not allow this operation")
	ErrBookingNotCompleted = errors.New("review requires a completed stay")
	ErrDuplicateReview     = errors.New("booking already has a review")
)
