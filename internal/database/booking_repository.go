package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrBookingNotFound is returned when a status update matches no booking row
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository handles booking database operations
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateTx inserts a booking row within the caller's transaction. The
// booking references the trip seat created in the same transaction, so
// neither row outlives a rollback without the other.
func (r *BookingRepository) CreateTx(tx *sqlx.Tx, userID, tripID, tripSeatID, seatLabel string, price int) (*models.Booking, error) {
	booking := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		TripID:        tripID,
		TripSeatID:    &tripSeatID,
		SeatLabel:     seatLabel,
		Price:         price,
		BookingStatus: models.BookingStatusUpcoming,
	}

	query := `
		INSERT INTO bookings (id, user_id, trip_id, trip_seat_id, seat_label, price, booking_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING booked_at
	`

	err := tx.QueryRowx(query,
		booking.ID, booking.UserID, booking.TripID, booking.TripSeatID,
		booking.SeatLabel, booking.Price, booking.BookingStatus,
	).Scan(&booking.BookedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// GetByID retrieves a booking by ID, or nil if not found
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	var booking models.Booking

	query := `
		SELECT id, user_id, trip_id, trip_seat_id, seat_label, price, booking_status, booked_at
		FROM bookings
		WHERE id = $1
	`

	err := r.db.Get(&booking, query, bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// GetByUserID retrieves all bookings for a user, newest first
func (r *BookingRepository) GetByUserID(userID string) ([]models.Booking, error) {
	var bookings []models.Booking

	query := `
		SELECT id, user_id, trip_id, trip_seat_id, seat_label, price, booking_status, booked_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY booked_at DESC
	`

	if err := r.db.Select(&bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get bookings for user: %w", err)
	}

	return bookings, nil
}

// UpdateStatusTx updates the booking status within the caller's transaction
func (r *BookingRepository) UpdateStatusTx(tx *sqlx.Tx, bookingID string, status models.BookingStatus) error {
	result, err := tx.Exec(
		`UPDATE bookings SET booking_status = $2 WHERE id = $1`,
		bookingID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Beginx starts a transaction on the underlying pool. Reservation and
// booking writes share one transaction per call.
func (r *BookingRepository) Beginx() (*sqlx.Tx, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}
