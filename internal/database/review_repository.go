package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/roamstay/hotel-booking-backend/internal/models"
)

// ReviewRepository handles database operations for reviews and keeps the
// per-hotel aggregate rating in step with them
type ReviewRepository struct {
	db DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review and recomputes the hotel's aggregate rating
// (arithmetic mean rounded to one decimal) in the same transaction.
// A second review for the same booking trips the unique index and reports
// ErrDuplicateReview.
func (r *ReviewRepository) Create(review *models.Review) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}

	err = tx.QueryRowx(`
		INSERT INTO reviews (id, hotel_id, booking_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, review.ID, review.HotelID, review.BookingID, review.UserID, review.Rating, review.Comment,
	).Scan(&review.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return models.ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE hotels
		SET rating = agg.avg_rating, review_count = agg.cnt, updated_at = NOW()
		FROM (
			SELECT ROUND(AVG(rating)::numeric, 1) AS avg_rating, COUNT(*) AS cnt
			FROM reviews
			WHERE hotel_id = $1
		) agg
		WHERE hotels.id = $1
	`, review.HotelID)
	if err != nil {
		return fmt.Errorf("failed to update hotel rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review: %w", err)
	}
	return nil
}

// GetByBookingID retrieves the review for a booking, or nil if none exists
func (r *ReviewRepository) GetByBookingID(bookingID string) (*models.Review, error) {
	query := `
		SELECT id, hotel_id, booking_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE booking_id = $1
	`

	reviews := []models.Review{}
	if err := r.db.Select(&reviews, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if len(reviews) == 0 {
		return nil, nil
	}
	return &reviews[0], nil
}

// ListByHotel retrieves all reviews for a hotel, newest first
func (r *ReviewRepository) ListByHotel(hotelID string) ([]models.Review, error) {
	query := `
		SELECT id, hotel_id, booking_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE hotel_id = $1
		ORDER BY created_at DESC
	`

	reviews := []models.Review{}
	if err := r.db.Select(&reviews, query, hotelID); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
