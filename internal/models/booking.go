package models

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed purchase of one seat on one trip by one
// user. Price and seat association are immutable after creation; only the
// status changes afterwards.
type Booking struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"user_id" db:"user_id"`
	TripID        string        `json:"trip_id" db:"trip_id"`
	TripSeatID    *string       `json:"trip_seat_id,omitempty" db:"trip_seat_id"`
	SeatLabel     string        `json:"seat_label" db:"seat_label"`
	Price         int           `json:"price" db:"price"`
	BookingStatus BookingStatus `json:"booking_status" db:"booking_status"`
	BookedAt      time.Time     `json:"booked_at" db:"booked_at"`
}

// SeatRequest is one requested seat within a booking call
type SeatRequest struct {
	SeatID string `json:"seat_id" binding:"required"`
	Price  int    `json:"price" binding:"required,min=1"`
}

// CreateBookingRequest represents a multi-seat purchase for one trip.
// Each seat produces its own booking row; the purchase is all-or-nothing.
type CreateBookingRequest struct {
	TripID string        `json:"trip_id" binding:"required"`
	Seats  []SeatRequest `json:"seats" binding:"required,min=1,dive"`
}

// BookingView is the passenger-facing display record of a booking, joined
// with trip schedule, bus, and route data.
type BookingView struct {
	ID            string        `json:"id"`
	BookingStatus BookingStatus `json:"booking_status"`
	SeatLabel     string        `json:"seat_label"`
	Operator      string        `json:"operator"`
	AirType       BusAirType    `json:"air_type"`
	SeatType      BusSeatType   `json:"seat_type"`
	StartCity     string        `json:"start_city"`
	EndCity       string        `json:"end_city"`
	DepartureTime string        `json:"departure_time"`
	ArrivalTime   string        `json:"arrival_time"`
	Price         int           `json:"price"`
	BookedAt      time.Time     `json:"booked_at"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if len(r.Seats) == 0 {
		return errors.New("at least one seat is required")
	}
	seen := make(map[string]bool, len(r.Seats))
	for _, s := range r.Seats {
		if s.SeatID == "" {
			return errors.New("seat_id is required for every seat")
		}
		if s.Price <= 0 {
			return errors.New("price must be at least 1 for every seat")
		}
		if seen[s.SeatID] {
			return errors.New("duplicate seat in request: " + s.SeatID)
		}
		seen[s.SeatID] = true
	}
	return nil
}
