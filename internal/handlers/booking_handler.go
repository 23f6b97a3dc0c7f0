package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Sushanth105/busResSys/internal/middleware"
	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/Sushanth105/busResSys/internal/services"
	"github.com/gin-gonic/gin"
)

// BookingHandler handles seat booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
	ticketService  *services.TicketService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *services.BookingService, ticketService *services.TicketService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		ticketService:  ticketService,
	}
}

// CreateBooking books one or more seats on a trip atomically
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookings, err := h.bookingService.BookSeats(userCtx.UserID, req.TripID, req.Seats)
	if err != nil {
		var conflict *services.SeatConflictError
		switch {
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Seat already booked",
				"seat_id": conflict.SeatID,
			})
		case errors.Is(err, services.ErrTripNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		case errors.Is(err, services.ErrSeatNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Seat not found on this bus"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"data":    bookings,
		"count":   len(bookings),
	})
}

// GetBookings lists the caller's bookings, newest first
// GET /api/v1/bookings
func (h *BookingHandler) GetBookings(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	views, err := h.bookingService.ListBookings(userCtx.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"count": len(views),
	})
}

// GetBooking returns one of the caller's bookings
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, err := h.bookingService.GetBookingView(userCtx.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

// CancelBooking cancels a booking and frees its seat
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.bookingService.CancelBooking(userCtx.UserID, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// GetTicket streams the booking's e-ticket as a PDF
// GET /api/v1/bookings/:id/ticket
func (h *BookingHandler) GetTicket(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pdf, filename, err := h.ticketService.GenerateETicket(userCtx.UserID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, services.ErrBookingCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot generate a ticket for a cancelled booking"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate ticket"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
