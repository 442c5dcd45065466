package models

import "time"

// Reservation is the opaque handle returned by the availability ledger when
// capacity is committed. It records the exact span and unit count that were
// held so the same capacity can be released later. Per-day counts live in
// room_inventory and are only adjusted inside ledger transactions.
type Reservation struct {
	ID           string     `json:"id" db:"id"`
	HotelID      string     `json:"hotel_id" db:"hotel_id"`
	RoomTypeCode string     `json:"room_type_code" db:"room_type_code"`
	CheckIn      time.Time  `json:"check_in" db:"check_in"`
	CheckOut     time.Time  `json:"check_out" db:"check_out"`
	Units        int        `json:"units" db:"units"`
	ReleasedAt   *time.Time `json:"released_at,omitempty" db:"released_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// IsReleased reports whether the held capacity has been returned
func (r *Reservation) IsReleased() bool {
	return r.ReleasedAt != nil
}
