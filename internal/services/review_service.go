package services

import (
	"github.com/roamstay/hotel-booking-backend/internal/models"
	"github.com/roamstay/hotel-booking-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

// ReviewStore persists reviews and maintains the hotel aggregate rating
type ReviewStore interface {
	Create(review *models.Review) error
	GetByBookingID(bookingID string) (*models.Review, error)
	ListByHotel(hotelID string) ([]models.Review, error)
}

// ReviewService gates reviews behind completed stays and keeps them
// exactly-once per booking
type ReviewService struct {
	reviews  ReviewStore
	bookings BookingStore
	logger   *logrus.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviews ReviewStore, bookings BookingStore, logger *logrus.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		bookings: bookings,
		logger:   logger,
	}
}

// Add records a review for a completed booking and recomputes the hotel's
// aggregate rating. The booking must belong to the reviewer and be in
// completed status; a booking carries at most one review.
func (s *ReviewService) Add(userID, bookingID string, req *models.AddReviewRequest) (*models.Review, error) {
	if verr := validator.ValidateRating(req.Rating); verr != nil {
		return nil, verr
	}

	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestUserID != userID {
		return nil, models.ErrForbidden
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, models.ErrBookingNotCompleted
	}

	existing, err := s.reviews.GetByBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrDuplicateReview
	}

	review := &models.Review{
		HotelID:   booking.HotelID,
		BookingID: bookingID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	// The unique index on booking_id backs this up under concurrent submits
	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"review_id":  review.ID,
		"hotel_id":   review.HotelID,
		"booking_id": bookingID,
		"rating":     review.Rating,
	}).Info("Review recorded")

	return review, nil
}

// ListForHotel retrieves a hotel's reviews, newest first
func (s *ReviewService) ListForHotel(hotelID string) ([]models.Review, error) {
	return s.reviews.ListByHotel(hotelID)
}
