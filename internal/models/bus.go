package models

import (
	"errors"
	"time"
)

// BusAirType represents the air conditioning class of a bus
type BusAirType string

const (
	BusAirTypeAC    BusAirType = "AC"
	BusAirTypeNonAC BusAirType = "NON_AC"
)

// BusSeatType represents the seating class of a bus
type BusSeatType string

const (
	BusSeatTypeSleeper BusSeatType = "Sleeper"
	BusSeatTypeSeater  BusSeatType = "Seater"
)

// Bus represents a bus operated on one or more trips
type Bus struct {
	ID        string      `json:"id" db:"id"`
	Operator  string      `json:"operator" db:"operator"`
	BusNumber string      `json:"bus_number" db:"bus_number"`
	AirType   BusAirType  `json:"air_type" db:"air_type"`
	SeatType  BusSeatType `json:"seat_type" db:"seat_type"`
	TotalSeat int         `json:"total_seat" db:"total_seat"`
	Rating    float64     `json:"rating" db:"rating"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// CreateBusRequest represents the request to register a bus.
// Seats are generated from total_seat when the bus is created.
type CreateBusRequest struct {
	Operator  string  `json:"operator" binding:"required"`
	BusNumber string  `json:"bus_number" binding:"required"`
	AirType   string  `json:"air_type" binding:"required"`
	SeatType  string  `json:"seat_type" binding:"required"`
	TotalSeat int     `json:"total_seat" binding:"required,min=1"`
	Rating    float64 `json:"rating" binding:"min=0,max=5"`
}

// Validate validates the create bus request
func (r *CreateBusRequest) Validate() error {
	if r.AirType != string(BusAirTypeAC) && r.AirType != string(BusAirTypeNonAC) {
		return errors.New("air_type must be 'AC' or 'NON_AC'")
	}
	if r.SeatType != string(BusSeatTypeSleeper) && r.SeatType != string(BusSeatTypeSeater) {
		return errors.New("seat_type must be 'Sleeper' or 'Seater'")
	}
	if r.TotalSeat <= 0 {
		return errors.New("total_seat must be at least 1")
	}
	return nil
}
