package models

import (
	"time"

	"github.com/lib/pq"
)

// Hotel represents a bookable property in the catalog
type Hotel struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Location    string         `json:"location" db:"location"`
	Description string         `json:"description" db:"description"`
	ImageURL    string         `json:"image_url" db:"image_url"`
	Amenities   pq.StringArray `json:"amenities" db:"amenities"`
	Rating      float64        `json:"rating" db:"rating"`
	ReviewCount int            `json:"review_count" db:"review_count"`
	RoomTypes   []RoomType     `json:"room_types,omitempty" db:"-"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// RoomType represents one bookable room category within a hotel
type RoomType struct {
	HotelID      string  `json:"hotel_id" db:"hotel_id"`
	Code         string  `json:"code" db:"code"`
	Name         string  `json:"name" db:"name"`
	NightlyPrice float64 `json:"nightly_price" db:"nightly_price"`
	TotalUnits   int     `json:"total_units" db:"total_units"`
}

// AvailabilityResponse is the answer to an availability query: the number of
// units free on the tightest night of the requested span
type AvailabilityResponse struct {
	HotelID        string `json:"hotel_id"`
	RoomTypeCode   string `json:"room_type_code"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	AvailableUnits int    `json:"available_units"`
}
