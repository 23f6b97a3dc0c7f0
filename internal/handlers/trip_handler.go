package handlers

import (
	"net/http"
	"strings"

	"github.com/Sushanth105/busResSys/internal/database"
	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/gin-gonic/gin"
)

// TripHandler handles trip scheduling and search endpoints
type TripHandler struct {
	tripRepo     *database.TripRepository
	tripSeatRepo *database.TripSeatRepository
	busRepo      *database.BusRepository
	routeRepo    *database.RouteRepository
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(
	tripRepo *database.TripRepository,
	tripSeatRepo *database.TripSeatRepository,
	busRepo *database.BusRepository,
	routeRepo *database.RouteRepository,
) *TripHandler {
	return &TripHandler{
		tripRepo:     tripRepo,
		tripSeatRepo: tripSeatRepo,
		busRepo:      busRepo,
		routeRepo:    routeRepo,
	}
}

// CreateTrip schedules a bus on a route
// POST /api/v1/trips (admin)
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bus, err := h.busRepo.GetByNumber(req.BusNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}
	if bus == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		return
	}

	route, err := h.routeRepo.GetByCities(req.StartCity, req.EndCity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}
	if route == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}

	trip, err := h.tripRepo.CreateTrip(bus.ID, route.ID, req.DepartureTime, req.ArrivalTime, req.Price)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Trip created successfully",
		"data":    trip,
	})
}

// GetTrip returns a trip by ID
// GET /api/v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trip"})
		return
	}
	if trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": trip})
}

// SearchTrips lists trips between two cities with live seat availability
// GET /api/v1/trips/search?from=colombo&to=kandy
func (h *TripHandler) SearchTrips(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameters 'from' and 'to' are required"})
		return
	}

	route, err := h.routeRepo.GetByCities(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search trips"})
		return
	}
	if route == nil {
		c.JSON(http.StatusOK, gin.H{"data": []models.TripSearchResult{}, "count": 0})
		return
	}

	trips, err := h.tripRepo.SearchByRoute(route.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search trips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  trips,
		"count": len(trips),
	})
}

// GetTripSeats returns the reserved seats for a trip
// GET /api/v1/trips/:id/seats
func (h *TripHandler) GetTripSeats(c *gin.Context) {
	tripID := c.Param("id")

	trip, err := h.tripRepo.GetByID(tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trip"})
		return
	}
	if trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	bus, err := h.busRepo.GetByID(trip.BusID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trip"})
		return
	}

	reserved, err := h.tripSeatRepo.GetByTripID(tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trip seats"})
		return
	}

	reservedCount, err := h.tripSeatRepo.CountByTripID(tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trip seats"})
		return
	}

	available := 0
	if bus != nil {
		available = bus.TotalSeat - reservedCount
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"trip_id":         tripID,
			"reserved_seats":  reserved,
			"seats_available": available,
		},
	})
}
