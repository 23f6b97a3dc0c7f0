package database

import (
	"database/sql"
	"fmt"

	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/jmoiron/sqlx"
)

// SeatRepository handles seat lookups
type SeatRepository struct {
	db *sqlx.DB
}

// NewSeatRepository creates a new SeatRepository
func NewSeatRepository(db *sqlx.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// GetByBusID returns all seats of a bus ordered by label
func (r *SeatRepository) GetByBusID(busID string) ([]models.Seat, error) {
	var seats []models.Seat

	query := `
		SELECT id, bus_id, seat_label
		FROM seats
		WHERE bus_id = $1
		ORDER BY seat_label
	`

	if err := r.db.Select(&seats, query, busID); err != nil {
		return nil, fmt.Errorf("failed to get seats for bus: %w", err)
	}

	return seats, nil
}

// GetLabelTx returns the label of a seat within the caller's transaction,
// scoped to the given bus so a seat from another bus cannot be booked onto
// this trip. Returns sql.ErrNoRows if no such seat exists on the bus.
func (r *SeatRepository) GetLabelTx(tx *sqlx.Tx, seatID, busID string) (string, error) {
	var label string
	err := tx.Get(&label, `SELECT seat_label FROM seats WHERE id = $1 AND bus_id = $2`, seatID, busID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", err
		}
		return "", fmt.Errorf("failed to get seat label: %w", err)
	}
	return label, nil
}
