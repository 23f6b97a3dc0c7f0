package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrDuplicateBusNumber is returned when registering an already-used bus number
var ErrDuplicateBusNumber = errors.New("bus number already registered")

// seatColumns are the seat positions within one row of a bus
var seatColumns = []string{"A", "B", "C", "D"}

// BusRepository handles bus and seat database operations
type BusRepository struct {
	db *sqlx.DB
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db *sqlx.DB) *BusRepository {
	return &BusRepository{db: db}
}

// CreateBus inserts a bus and generates its seat rows in one transaction.
// Seats are labelled row by row ("1A".."1D", "2A"..) until total_seat is
// reached and never change afterwards.
func (r *BusRepository) CreateBus(req *models.CreateBusRequest) (*models.Bus, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	bus := &models.Bus{
		ID:        uuid.New().String(),
		Operator:  req.Operator,
		BusNumber: req.BusNumber,
		AirType:   models.BusAirType(req.AirType),
		SeatType:  models.BusSeatType(req.SeatType),
		TotalSeat: req.TotalSeat,
		Rating:    req.Rating,
	}

	busQuery := `
		INSERT INTO buses (id, operator, bus_number, air_type, seat_type, total_seat, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err = tx.QueryRowx(busQuery,
		bus.ID, bus.Operator, bus.BusNumber, bus.AirType, bus.SeatType, bus.TotalSeat, bus.Rating,
	).Scan(&bus.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBusNumber
		}
		return nil, fmt.Errorf("failed to create bus: %w", err)
	}

	seatQuery := `INSERT INTO seats (id, bus_id, seat_label) VALUES ($1, $2, $3)`
	for i := 0; i < bus.TotalSeat; i++ {
		label := fmt.Sprintf("%d%s", i/len(seatColumns)+1, seatColumns[i%len(seatColumns)])
		if _, err := tx.Exec(seatQuery, uuid.New().String(), bus.ID, label); err != nil {
			return nil, fmt.Errorf("failed to create seat %s: %w", label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bus, nil
}

// GetByID retrieves a bus by ID, or nil if not found
func (r *BusRepository) GetByID(busID string) (*models.Bus, error) {
	var bus models.Bus

	query := `
		SELECT id, operator, bus_number, air_type, seat_type, total_seat, rating, created_at
		FROM buses
		WHERE id = $1
	`

	err := r.db.Get(&bus, query, busID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bus: %w", err)
	}

	return &bus, nil
}

// GetByNumber retrieves a bus by its registration number, or nil if not found
func (r *BusRepository) GetByNumber(busNumber string) (*models.Bus, error) {
	var bus models.Bus

	query := `
		SELECT id, operator, bus_number, air_type, seat_type, total_seat, rating, created_at
		FROM buses
		WHERE bus_number = $1
	`

	err := r.db.Get(&bus, query, busNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bus by number: %w", err)
	}

	return &bus, nil
}
