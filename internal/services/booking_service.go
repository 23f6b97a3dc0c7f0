package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Sushanth105/busResSys/internal/database"
	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/sirupsen/logrus"
)

// Errors surfaced by the booking service. Only a seat conflict is
// retryable by the caller (with a different seat); the not-found values
// are terminal for the request.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrTripNotFound    = errors.New("trip not found")
	ErrSeatNotFound    = errors.New("seat not found on this bus")
	ErrBookingNotFound = errors.New("booking not found")
)

// SeatConflictError reports which requested seat is already reserved for
// the trip. The whole booking call is rolled back when it occurs.
type SeatConflictError struct {
	SeatID string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat %s is already booked for this trip", e.SeatID)
}

// BookingService coordinates seat reservation and booking creation. Every
// write path runs in a single transaction: a multi-seat purchase either
// produces one booking per requested seat or nothing at all.
type BookingService struct {
	userRepo     *database.UserRepository
	tripRepo     *database.TripRepository
	busRepo      *database.BusRepository
	routeRepo    *database.RouteRepository
	seatRepo     *database.SeatRepository
	tripSeatRepo *database.TripSeatRepository
	bookingRepo  *database.BookingRepository
	logger       *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	userRepo *database.UserRepository,
	tripRepo *database.TripRepository,
	busRepo *database.BusRepository,
	routeRepo *database.RouteRepository,
	seatRepo *database.SeatRepository,
	tripSeatRepo *database.TripSeatRepository,
	bookingRepo *database.BookingRepository,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		userRepo:     userRepo,
		tripRepo:     tripRepo,
		busRepo:      busRepo,
		routeRepo:    routeRepo,
		seatRepo:     seatRepo,
		tripSeatRepo: tripSeatRepo,
		bookingRepo:  bookingRepo,
		logger:       logger,
	}
}

// BookSeats reserves every requested seat on the trip and creates one
// booking per seat, all in one transaction. If any seat is already taken
// the transaction is aborted and the conflicting seat is reported; no
// partial purchase ever survives. Price is taken from the request as
// trusted input from the pricing layer.
func (s *BookingService) BookSeats(userID, tripID string, requests []models.SeatRequest) ([]models.Booking, error) {
	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	trip, err := s.tripRepo.GetByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	tx, err := s.bookingRepo.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	bookings := make([]models.Booking, 0, len(requests))
	for _, req := range requests {
		tripSeatID, err := s.tripSeatRepo.Reserve(tx, tripID, req.SeatID)
		if err != nil {
			if errors.Is(err, database.ErrSeatTaken) {
				return nil, &SeatConflictError{SeatID: req.SeatID}
			}
			return nil, err
		}

		seatLabel, err := s.seatRepo.GetLabelTx(tx, req.SeatID, trip.BusID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrSeatNotFound
			}
			return nil, err
		}

		booking, err := s.bookingRepo.CreateTx(tx, userID, tripID, tripSeatID, seatLabel, req.Price)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"trip_id": tripID,
		"seats":   len(bookings),
	}).Info("Booking confirmed")

	return bookings, nil
}

// CancelBooking sets the booking to cancelled and releases its seat
// reservation in one transaction, freeing the seat for resale on that
// trip. Cancelling an already-cancelled booking is a no-op success.
// Bookings of other users are reported as not found.
func (s *BookingService) CancelBooking(userID, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking == nil || booking.UserID != userID {
		return ErrBookingNotFound
	}

	if booking.BookingStatus == models.BookingStatusCancelled {
		return nil
	}

	tx, err := s.bookingRepo.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.bookingRepo.UpdateStatusTx(tx, bookingID, models.BookingStatusCancelled); err != nil {
		return err
	}

	if booking.TripSeatID != nil {
		if err := s.tripSeatRepo.Release(tx, *booking.TripSeatID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"booking_id": bookingID,
	}).Info("Booking cancelled")

	return nil
}

// ListBookings returns the display view of every booking owned by the
// user. A booking whose trip, bus, or route has been deleted is skipped
// rather than failing the whole listing.
func (s *BookingService) ListBookings(userID string) ([]models.BookingView, error) {
	bookings, err := s.bookingRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.BookingView, 0, len(bookings))
	for _, booking := range bookings {
		view, err := s.buildView(&booking)
		if err != nil {
			return nil, err
		}
		if view == nil {
			s.logger.WithFields(logrus.Fields{
				"booking_id": booking.ID,
				"trip_id":    booking.TripID,
			}).Warn("Skipping booking with missing trip, bus, or route")
			continue
		}
		views = append(views, *view)
	}

	return views, nil
}

// GetBookingView returns the display view of one booking owned by the
// user, for ticket rendering.
func (s *BookingService) GetBookingView(userID, bookingID string) (*models.BookingView, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.UserID != userID {
		return nil, ErrBookingNotFound
	}

	view, err := s.buildView(booking)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, ErrTripNotFound
	}
	return view, nil
}

// buildView joins a booking with its trip, bus, and route. Returns nil
// (not an error) when any of them no longer exists.
func (s *BookingService) buildView(booking *models.Booking) (*models.BookingView, error) {
	trip, err := s.tripRepo.GetByID(booking.TripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, nil
	}

	bus, err := s.busRepo.GetByID(trip.BusID)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, nil
	}

	route, err := s.routeRepo.GetByID(trip.RouteID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, nil
	}

	return &models.BookingView{
		ID:            booking.ID,
		BookingStatus: booking.BookingStatus,
		SeatLabel:     booking.SeatLabel,
		Operator:      bus.Operator,
		AirType:       bus.AirType,
		SeatType:      bus.SeatType,
		StartCity:     route.StartCity,
		EndCity:       route.EndCity,
		DepartureTime: trip.DepartureTime,
		ArrivalTime:   trip.ArrivalTime,
		Price:         booking.Price,
		BookedAt:      booking.BookedAt,
	}, nil
}
