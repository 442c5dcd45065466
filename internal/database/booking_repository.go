package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/roamstay/hotel-booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, hotel_id, room_type_code, guest_user_id,
			check_in, check_out, units, nightly_price, total_price,
			status, reservation_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING created_at, updated_at
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		booking.ID, booking.HotelID, booking.RoomTypeCode, booking.GuestUserID,
		booking.CheckIn, booking.CheckOut, booking.Units, booking.NightlyPrice, booking.TotalPrice,
		booking.Status, booking.ReservationID,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `
		SELECT id, hotel_id, room_type_code, guest_user_id,
		       check_in, check_out, units, nightly_price, total_price,
		       status, reservation_id, cancelled_at, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking models.Booking
	err := r.db.Get(&booking, query, bookingID)
	if err == sql.ErrNoRows {
		return nil, models.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// ListByUser retrieves all bookings for a user, newest first
func (r *BookingRepository) ListByUser(userID string) ([]models.Booking, error) {
	query := `
		SELECT id, hotel_id, room_type_code, guest_user_id,
		       check_in, check_out, units, nightly_price, total_price,
		       status, reservation_id, cancelled_at, created_at, updated_at
		FROM bookings
		WHERE guest_user_id = $1
		ORDER BY created_at DESC
	`

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// MarkCancelled flips a pending or confirmed booking to cancelled.
// The status guard in the WHERE clause makes the flip safe against
// concurrent transitions; a lost race reports ErrInvalidTransition.
func (r *BookingRepository) MarkCancelled(bookingID string) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`

	result, err := r.db.Exec(query, bookingID)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if rows == 0 {
		return models.ErrInvalidTransition
	}

	return nil
}

// MarkCompleted flips a confirmed booking to completed
func (r *BookingRepository) MarkCompleted(bookingID string) error {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
	`

	result, err := r.db.Exec(query, bookingID)
	if err != nil {
		return fmt.Errorf("failed to complete booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to complete booking: %w", err)
	}
	if rows == 0 {
		return models.ErrInvalidTransition
	}

	return nil
}

// CompleteDue flips every confirmed booking whose check-out has passed to
// completed and returns the number of bookings transitioned. Inventory is
// untouched: the stay was counted through check-out already.
func (r *BookingRepository) CompleteDue(today time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed' AND check_out <= $1
	`

	result, err := r.db.Exec(query, today)
	if err != nil {
		return 0, fmt.Errorf("failed to complete due bookings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to complete due bookings: %w", err)
	}
	return rows, nil
}
