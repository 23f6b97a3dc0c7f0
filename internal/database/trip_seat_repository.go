package database

import (
	"errors"
	"fmt"

	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrSeatTaken is returned when a seat is already reserved for the trip
var ErrSeatTaken = errors.New("seat already reserved for this trip")

// TripSeatRepository handles trip seat reservation records. The
// trip_seats_trip_id_seat_id_key unique constraint is the sole guard
// against double booking: reservation is a plain insert, and a concurrent
// insert for the same (trip, seat) pair is rejected by the store itself.
type TripSeatRepository struct {
	db *sqlx.DB
}

// NewTripSeatRepository creates a new TripSeatRepository
func NewTripSeatRepository(db *sqlx.DB) *TripSeatRepository {
	return &TripSeatRepository{db: db}
}

// Reserve inserts a reservation for (tripID, seatID) within the caller's
// transaction and returns the new trip seat ID. Returns ErrSeatTaken if the
// pair is already reserved. No check-then-insert: the unique constraint
// decides the race.
func (r *TripSeatRepository) Reserve(tx *sqlx.Tx, tripID, seatID string) (string, error) {
	id := uuid.New().String()

	query := `INSERT INTO trip_seats (id, trip_id, seat_id) VALUES ($1, $2, $3)`

	if _, err := tx.Exec(query, id, tripID, seatID); err != nil {
		if isUniqueViolation(err) {
			return "", ErrSeatTaken
		}
		return "", fmt.Errorf("failed to reserve seat: %w", err)
	}

	return id, nil
}

// Release deletes a reservation within the caller's transaction, freeing
// the seat for resale on that trip. Deleting an already-released
// reservation is a no-op, which makes cancellation idempotent.
func (r *TripSeatRepository) Release(tx *sqlx.Tx, tripSeatID string) error {
	if _, err := tx.Exec(`DELETE FROM trip_seats WHERE id = $1`, tripSeatID); err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}
	return nil
}

// GetByTripID returns all reservations for a trip
func (r *TripSeatRepository) GetByTripID(tripID string) ([]models.TripSeat, error) {
	var seats []models.TripSeat

	query := `
		SELECT id, trip_id, seat_id, created_at
		FROM trip_seats
		WHERE trip_id = $1
		ORDER BY created_at
	`

	if err := r.db.Select(&seats, query, tripID); err != nil {
		return nil, fmt.Errorf("failed to get trip seats: %w", err)
	}

	return seats, nil
}

// CountByTripID returns the number of reserved seats on a trip
func (r *TripSeatRepository) CountByTripID(tripID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM trip_seats WHERE trip_id = $1`, tripID)
	if err != nil {
		return 0, fmt.Errorf("failed to count trip seats: %w", err)
	}
	return count, nil
}
