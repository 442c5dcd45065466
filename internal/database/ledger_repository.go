package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/roamstay/hotel-booking-backend/internal/models"
)

// LedgerRepository is the single source of truth for per-day room occupancy.
// Every (hotel, room type, day) triple is an independent counter in
// room_inventory; a reservation spans N counters that must all succeed
// together. Counters are only ever adjusted inside ledger transactions.
type LedgerRepository struct {
	db DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CheckAvailability returns the minimum free-unit count across every night in
// [checkIn, checkOut). Days without an inventory row count as fully free.
func (r *LedgerRepository) CheckAvailability(hotelID, roomTypeCode string, checkIn, checkOut time.Time) (int, error) {
	query := `
		SELECT rt.total_units - COALESCE((
			SELECT MAX(inv.units_held)
			FROM room_inventory inv
			WHERE inv.hotel_id = rt.hotel_id
			  AND inv.room_type_code = rt.code
			  AND inv.day >= $3 AND inv.day < $4
		), 0)
		FROM room_types rt
		WHERE rt.hotel_id = $1 AND rt.code = $2
	`

	var available int
	err := r.db.QueryRow(query, hotelID, roomTypeCode, checkIn, checkOut).Scan(&available)
	if err == sql.ErrNoRows {
		return 0, models.ErrRoomTypeNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check availability: %w", err)
	}

	if available < 0 {
		available = 0
	}
	return available, nil
}

// Reserve atomically holds the requested unit count for every night in
// [checkIn, checkOut). The per-day counters are locked, checked against the
// room type's total, and incremented in one transaction; if any single night
// lacks capacity the whole span is rolled back and ErrCapacityExceeded is
// returned. The returned handle is durably committed before the caller sees
// it, so an abandoned request never leaves partially-applied state behind.
func (r *LedgerRepository) Reserve(hotelID, roomTypeCode string, checkIn, checkOut time.Time, units int) (*models.Reservation, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var totalUnits int
	err = tx.QueryRowx(`
		SELECT total_units FROM room_types
		WHERE hotel_id = $1 AND code = $2
	`, hotelID, roomTypeCode).Scan(&totalUnits)
	if err == sql.ErrNoRows {
		return nil, models.ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room type: %w", err)
	}

	// Make sure a counter row exists for every night in the span
	_, err = tx.Exec(`
		INSERT INTO room_inventory (hotel_id, room_type_code, day, units_held)
		SELECT $1, $2, d::date, 0
		FROM generate_series($3::date, $4::date - INTERVAL '1 day', INTERVAL '1 day') AS d
		ON CONFLICT (hotel_id, room_type_code, day) DO NOTHING
	`, hotelID, roomTypeCode, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare inventory rows: %w", err)
	}

	// Lock the span; concurrent reservations for overlapping nights serialize here
	rows, err := tx.Queryx(`
		SELECT day, units_held FROM room_inventory
		WHERE hotel_id = $1 AND room_type_code = $2
		  AND day >= $3 AND day < $4
		ORDER BY day
		FOR UPDATE
	`, hotelID, roomTypeCode, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to lock inventory rows: %w", err)
	}

	for rows.Next() {
		var day time.Time
		var held int
		if err := rows.Scan(&day, &held); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		if held+units > totalUnits {
			rows.Close()
			return nil, models.ErrCapacityExceeded
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to read inventory rows: %w", err)
	}
	rows.Close()

	_, err = tx.Exec(`
		UPDATE room_inventory
		SET units_held = units_held + $1
		WHERE hotel_id = $2 AND room_type_code = $3
		  AND day >= $4 AND day < $5
	`, units, hotelID, roomTypeCode, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to hold inventory: %w", err)
	}

	reservation := &models.Reservation{
		ID:           uuid.New().String(),
		HotelID:      hotelID,
		RoomTypeCode: roomTypeCode,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Units:        units,
	}
	err = tx.QueryRowx(`
		INSERT INTO reservations (id, hotel_id, room_type_code, check_in, check_out, units)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, reservation.ID, reservation.HotelID, reservation.RoomTypeCode,
		reservation.CheckIn, reservation.CheckOut, reservation.Units,
	).Scan(&reservation.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	return reservation, nil
}

// Release returns the held capacity for a reservation. Releasing an unknown
// or already-released handle is a no-op, never an error, so callers can
// retry safely after partial failures.
func (r *LedgerRepository) Release(reservationID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var res models.Reservation
	err = tx.QueryRowx(`
		SELECT id, hotel_id, room_type_code, check_in, check_out, units, released_at, created_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE
	`, reservationID).Scan(
		&res.ID, &res.HotelID, &res.RoomTypeCode, &res.CheckIn, &res.CheckOut,
		&res.Units, &res.ReleasedAt, &res.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load reservation: %w", err)
	}

	if res.ReleasedAt != nil {
		return nil
	}

	_, err = tx.Exec(`
		UPDATE room_inventory
		SET units_held = GREATEST(units_held - $1, 0)
		WHERE hotel_id = $2 AND room_type_code = $3
		  AND day >= $4 AND day < $5
	`, res.Units, res.HotelID, res.RoomTypeCode, res.CheckIn, res.CheckOut)
	if err != nil {
		return fmt.Errorf("failed to release inventory: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE reservations SET released_at = NOW() WHERE id = $1
	`, reservationID)
	if err != nil {
		return fmt.Errorf("failed to mark reservation released: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit release: %w", err)
	}
	return nil
}

// ReleaseOrphans releases reservations created before the cutoff that no
// active booking references. A crash between committing a reservation and
// inserting its booking can strand held capacity; this sweep reclaims it.
func (r *LedgerRepository) ReleaseOrphans(cutoff time.Time) (int, error) {
	var ids []string
	err := r.db.Select(&ids, `
		SELECT res.id
		FROM reservations res
		WHERE res.released_at IS NULL
		  AND res.created_at < $1
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.reservation_id = res.id
			  AND b.status IN ('pending', 'confirmed')
		  )
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find orphan reservations: %w", err)
	}

	released := 0
	for _, id := range ids {
		if err := r.Release(id); err != nil {
			return released, err
		}
		released++
	}
	return released, nil
}
