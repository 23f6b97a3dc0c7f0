package models

// Seat represents a physical seat on a bus. Seats are created with the bus
// and never change afterwards; deleting the bus removes its seats.
type Seat struct {
	ID        string `json:"id" db:"id"`
	BusID     string `json:"bus_id" db:"bus_id"`
	SeatLabel string `json:"seat_label" db:"seat_label"`
}
