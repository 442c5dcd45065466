package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/roamstay/hotel-booking-backend/internal/models"
)

// Hotel list sort keys
const (
	SortByName   = "name"
	SortByPrice  = "price"
	SortByRating = "rating"
)

// HotelRepository handles database operations for the hotel catalog
type HotelRepository struct {
	db DB
}

// NewHotelRepository creates a new HotelRepository
func NewHotelRepository(db DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// Create inserts a hotel and its room types in one transaction.
// Used by the seed tool and the administrative path.
func (r *HotelRepository) Create(hotel *models.Hotel) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if hotel.ID == "" {
		hotel.ID = uuid.New().String()
	}

	err = tx.QueryRowx(`
		INSERT INTO hotels (id, name, location, description, image_url, amenities)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, hotel.ID, hotel.Name, hotel.Location, hotel.Description, hotel.ImageURL, hotel.Amenities,
	).Scan(&hotel.CreatedAt, &hotel.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}

	for i := range hotel.RoomTypes {
		rt := &hotel.RoomTypes[i]
		rt.HotelID = hotel.ID
		_, err = tx.Exec(`
			INSERT INTO room_types (hotel_id, code, name, nightly_price, total_units)
			VALUES ($1, $2, $3, $4, $5)
		`, rt.HotelID, rt.Code, rt.Name, rt.NightlyPrice, rt.TotalUnits)
		if err != nil {
			return fmt.Errorf("failed to create room type %s: %w", rt.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit hotel: %w", err)
	}
	return nil
}

// List retrieves the hotel catalog ordered by the given sort key
// (name, price or rating)
func (r *HotelRepository) List(sortKey string) ([]models.Hotel, error) {
	orderBy := "name ASC"
	switch sortKey {
	case SortByPrice:
		orderBy = "(SELECT MIN(rt.nightly_price) FROM room_types rt WHERE rt.hotel_id = hotels.id) ASC"
	case SortByRating:
		orderBy = "rating DESC, review_count DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, name, location, description, image_url, amenities,
		       rating, review_count, created_at, updated_at
		FROM hotels
		ORDER BY %s
	`, orderBy)

	hotels := []models.Hotel{}
	if err := r.db.Select(&hotels, query); err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	return hotels, nil
}

// GetByID retrieves a hotel with its room types
func (r *HotelRepository) GetByID(hotelID string) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.Get(&hotel, `
		SELECT id, name, location, description, image_url, amenities,
		       rating, review_count, created_at, updated_at
		FROM hotels
		WHERE id = $1
	`, hotelID)
	if err == sql.ErrNoRows {
		return nil, models.ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}

	roomTypes := []models.RoomType{}
	err = r.db.Select(&roomTypes, `
		SELECT hotel_id, code, name, nightly_price, total_units
		FROM room_types
		WHERE hotel_id = $1
		ORDER BY nightly_price
	`, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room types: %w", err)
	}
	hotel.RoomTypes = roomTypes

	return &hotel, nil
}

// GetRoomType retrieves a single room type by hotel and code
func (r *HotelRepository) GetRoomType(hotelID, code string) (*models.RoomType, error) {
	var rt models.RoomType
	err := r.db.Get(&rt, `
		SELECT hotel_id, code, name, nightly_price, total_units
		FROM room_types
		WHERE hotel_id = $1 AND code = $2
	`, hotelID, code)
	if err == sql.ErrNoRows {
		return nil, models.ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room type: %w", err)
	}
	return &rt, nil
}
