package models

import "time"

// Review represents a guest review tied to a completed booking.
// At most one review exists per booking, enforced by a unique index.
type Review struct {
	ID        string    `json:"id" db:"id"`
	HotelID   string    `json:"hotel_id" db:"hotel_id"`
	BookingID string    `json:"booking_id" db:"booking_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AddReviewRequest represents the request to review a completed stay
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}
