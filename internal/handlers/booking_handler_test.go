package handlers

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Sushanth105/busResSys/internal/database"
	"github.com/Sushanth105/busResSys/internal/middleware"
	"github.com/Sushanth105/busResSys/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	pg := &database.PostgresDB{DB: sqlxDB}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	bookingService := services.NewBookingService(
		database.NewUserRepository(pg),
		database.NewTripRepository(sqlxDB),
		database.NewBusRepository(sqlxDB),
		database.NewRouteRepository(pg),
		database.NewSeatRepository(sqlxDB),
		database.NewTripSeatRepository(sqlxDB),
		database.NewBookingRepository(sqlxDB),
		logger,
	)
	ticketService := services.NewTicketService(bookingService)

	return NewBookingHandler(bookingService, ticketService), mock
}

// fakeAuth injects a user context the way AuthMiddleware would after
// validating a token.
func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, middleware.UserContext{
			UserID: userID,
			Email:  "asha@example.com",
			Role:   "user",
		})
		c.Next()
	}
}

func TestCreateBookingHandler_SeatConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, mock := newTestBookingHandler(t)

	userID := uuid.New().String()
	tripID := uuid.New().String()
	seatID := uuid.New().String()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id`).
		WithArgs(tripID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "bus_id", "route_id", "departure_time", "arrival_time", "price", "created_at",
		}).AddRow(tripID, uuid.New().String(), uuid.New().String(), "08:30", "12:45", 1500, time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO trip_seats`).
		WithArgs(sqlmock.AnyArg(), tripID, seatID).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "trip_seats_trip_id_seat_id_key"})
	mock.ExpectRollback()

	router := gin.New()
	router.POST("/bookings", fakeAuth(userID), handler.CreateBooking)

	body := `{"trip_id":"` + tripID + `","seats":[{"seat_id":"` + seatID + `","price":1500}]}`
	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Seat already booked")
	assert.Contains(t, w.Body.String(), seatID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingHandler_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, mock := newTestBookingHandler(t)

	router := gin.New()
	router.POST("/bookings", fakeAuth(uuid.New().String()), handler.CreateBooking)

	// Empty seat list never reaches the service
	body := `{"trip_id":"trip-1","seats":[]}`
	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingHandler_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, mock := newTestBookingHandler(t)

	userID := uuid.New().String()
	bookingID := uuid.New().String()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
		WithArgs(bookingID).
		WillReturnError(sql.ErrNoRows)

	router := gin.New()
	router.POST("/bookings/:id/cancel", fakeAuth(userID), handler.CancelBooking)

	req := httptest.NewRequest("POST", "/bookings/"+bookingID+"/cancel", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Booking not found")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingHandler_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, mock := newTestBookingHandler(t)

	userID := uuid.New().String()
	bookingID := uuid.New().String()
	tripSeatID := uuid.New().String()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "trip_id", "trip_seat_id", "seat_label", "price", "booking_status", "booked_at",
		}).AddRow(bookingID, userID, uuid.New().String(), tripSeatID, "1A", 1500, "upcoming", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE bookings SET booking_status`).
		WithArgs(bookingID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM trip_seats WHERE id`).
		WithArgs(tripSeatID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/bookings/:id/cancel", fakeAuth(userID), handler.CancelBooking)

	req := httptest.NewRequest("POST", "/bookings/"+bookingID+"/cancel", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking cancelled successfully")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingsHandler_NoAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newTestBookingHandler(t)

	router := gin.New()
	router.GET("/bookings", handler.GetBookings)

	req := httptest.NewRequest("GET", "/bookings", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
