package database

import "fmt"

// schemaStatements creates the tables and indexes the service needs.
// Note: in production, use a proper migration tool.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS hotels (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		amenities TEXT[] NOT NULL DEFAULT '{}',
		rating NUMERIC(2,1) NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS room_types (
		hotel_id UUID NOT NULL REFERENCES hotels(id),
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		nightly_price NUMERIC(10,2) NOT NULL,
		total_units INTEGER NOT NULL CHECK (total_units >= 0),
		PRIMARY KEY (hotel_id, code)
	)`,

	`CREATE TABLE IF NOT EXISTS room_inventory (
		hotel_id UUID NOT NULL,
		room_type_code TEXT NOT NULL,
		day DATE NOT NULL,
		units_held INTEGER NOT NULL DEFAULT 0 CHECK (units_held >= 0),
		PRIMARY KEY (hotel_id, room_type_code, day),
		FOREIGN KEY (hotel_id, room_type_code) REFERENCES room_types(hotel_id, code)
	)`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id UUID PRIMARY KEY,
		hotel_id UUID NOT NULL,
		room_type_code TEXT NOT NULL,
		check_in DATE NOT NULL,
		check_out DATE NOT NULL,
		units INTEGER NOT NULL CHECK (units > 0),
		released_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (check_out > check_in)
	)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		hotel_id UUID NOT NULL REFERENCES hotels(id),
		room_type_code TEXT NOT NULL,
		guest_user_id UUID NOT NULL,
		check_in DATE NOT NULL,
		check_out DATE NOT NULL,
		units INTEGER NOT NULL CHECK (units > 0),
		nightly_price NUMERIC(10,2) NOT NULL,
		total_price NUMERIC(10,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		reservation_id UUID NOT NULL REFERENCES reservations(id),
		cancelled_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (check_out > check_in)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_bookings_guest_user_id ON bookings (guest_user_id, created_at DESC)`,

	`CREATE INDEX IF NOT EXISTS idx_bookings_status_check_out ON bookings (status, check_out)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY,
		hotel_id UUID NOT NULL REFERENCES hotels(id),
		booking_id UUID NOT NULL REFERENCES bookings(id),
		user_id UUID NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_booking_id ON reviews (booking_id)`,

	`CREATE INDEX IF NOT EXISTS idx_reviews_hotel_id ON reviews (hotel_id, created_at DESC)`,
}

// EnsureSchema creates all required tables and indexes if they do not exist
func EnsureSchema(db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
