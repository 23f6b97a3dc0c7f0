package models

import (
	"errors"
	"time"
)

// Trip represents one scheduled run of a bus along a route.
// Seat availability is never stored on the trip; it is derived from
// trip_seats at read time.
type Trip struct {
	ID            string    `json:"id" db:"id"`
	BusID         string    `json:"bus_id" db:"bus_id"`
	RouteID       string    `json:"route_id" db:"route_id"`
	DepartureTime string    `json:"departure_time" db:"departure_time"`
	ArrivalTime   string    `json:"arrival_time" db:"arrival_time"`
	Price         int       `json:"price" db:"price"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CreateTripRequest represents the request to schedule a trip. The bus is
// referenced by its number and the route by its city pair, matching how
// operators enter trips.
type CreateTripRequest struct {
	BusNumber     string `json:"bus_number" binding:"required"`
	StartCity     string `json:"start_city" binding:"required"`
	EndCity       string `json:"end_city" binding:"required"`
	DepartureTime string `json:"departure_time" binding:"required"`
	ArrivalTime   string `json:"arrival_time" binding:"required"`
	Price         int    `json:"price" binding:"required,min=1"`
}

// TripSearchResult is the passenger-facing view of a bookable trip
type TripSearchResult struct {
	ID             string      `json:"id" db:"id"`
	Operator       string      `json:"operator" db:"operator"`
	BusID          string      `json:"bus_id" db:"bus_id"`
	AirType        BusAirType  `json:"air_type" db:"air_type"`
	SeatType       BusSeatType `json:"seat_type" db:"seat_type"`
	Rating         float64     `json:"rating" db:"rating"`
	DepartureTime  string      `json:"departure_time" db:"departure_time"`
	ArrivalTime    string      `json:"arrival_time" db:"arrival_time"`
	Price          int         `json:"price" db:"price"`
	SeatsAvailable int         `json:"seats_available" db:"seats_available"`
}

// Validate validates the create trip request
func (r *CreateTripRequest) Validate() error {
	for _, v := range []string{r.DepartureTime, r.ArrivalTime} {
		if _, err := time.Parse("15:04", v); err != nil {
			return errors.New("departure_time and arrival_time must be in HH:MM format")
		}
	}
	if r.Price <= 0 {
		return errors.New("price must be at least 1")
	}
	return nil
}
