package models

import "time"

// TripSeat is a reservation record pairing one seat with one trip. Its
// existence marks the seat unavailable on that trip; the database enforces
// UNIQUE (trip_id, seat_id) so two reservations for the same pair can never
// both commit.
type TripSeat struct {
	ID        string    `json:"id" db:"id"`
	TripID    string    `json:"trip_id" db:"trip_id"`
	SeatID    string    `json:"seat_id" db:"seat_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
