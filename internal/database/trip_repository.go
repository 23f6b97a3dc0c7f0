package database

import (
	"database/sql"
	"fmt"

	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TripRepository handles trip database operations
type TripRepository struct {
	db *sqlx.DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

// CreateTrip inserts a trip for the given bus and route
func (r *TripRepository) CreateTrip(busID, routeID, departureTime, arrivalTime string, price int) (*models.Trip, error) {
	trip := &models.Trip{
		ID:            uuid.New().String(),
		BusID:         busID,
		RouteID:       routeID,
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
		Price:         price,
	}

	query := `
		INSERT INTO trips (id, bus_id, route_id, departure_time, arrival_time, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowx(query,
		trip.ID, trip.BusID, trip.RouteID, trip.DepartureTime, trip.ArrivalTime, trip.Price,
	).Scan(&trip.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	return trip, nil
}

// GetByID retrieves a trip by ID, or nil if not found
func (r *TripRepository) GetByID(tripID string) (*models.Trip, error) {
	var trip models.Trip

	query := `
		SELECT id, bus_id, route_id, departure_time, arrival_time, price, created_at
		FROM trips
		WHERE id = $1
	`

	err := r.db.Get(&trip, query, tripID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return &trip, nil
}

// SearchByRoute returns bookable trips on a route with bus details and
// seats available computed from the reservation table. Availability is
// always derived, never stored, so it cannot drift from the trip_seats
// rows that actually exist.
func (r *TripRepository) SearchByRoute(routeID string) ([]models.TripSearchResult, error) {
	var results []models.TripSearchResult

	query := `
		SELECT t.id, b.operator, b.id AS bus_id, b.air_type, b.seat_type, b.rating,
		       t.departure_time, t.arrival_time, t.price,
		       b.total_seat - COUNT(ts.id) AS seats_available
		FROM trips t
		JOIN buses b ON b.id = t.bus_id
		LEFT JOIN trip_seats ts ON ts.trip_id = t.id
		WHERE t.route_id = $1
		GROUP BY t.id, b.id
		ORDER BY t.departure_time
	`

	if err := r.db.Select(&results, query, routeID); err != nil {
		return nil, fmt.Errorf("failed to search trips: %w", err)
	}

	return results, nil
}
