package handlers

import (
	"errors"
	"net/http"

	"github.com/Sushanth105/busResSys/internal/database"
	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/gin-gonic/gin"
)

// BusHandler handles bus catalog endpoints
type BusHandler struct {
	busRepo  *database.BusRepository
	seatRepo *database.SeatRepository
}

// NewBusHandler creates a new BusHandler
func NewBusHandler(busRepo *database.BusRepository, seatRepo *database.SeatRepository) *BusHandler {
	return &BusHandler{
		busRepo:  busRepo,
		seatRepo: seatRepo,
	}
}

// CreateBus registers a bus and generates its seat map
// POST /api/v1/buses (admin)
func (h *BusHandler) CreateBus(c *gin.Context) {
	var req models.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bus, err := h.busRepo.CreateBus(&req)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateBusNumber) {
			c.JSON(http.StatusConflict, gin.H{"error": "Bus number already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bus"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bus created successfully",
		"data":    bus,
	})
}

// GetBus returns a bus by ID
// GET /api/v1/buses/:id
func (h *BusHandler) GetBus(c *gin.Context) {
	bus, err := h.busRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bus"})
		return
	}
	if bus == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bus})
}

// GetBusByNumber returns a bus by its registration number
// GET /api/v1/buses/number/:number
func (h *BusHandler) GetBusByNumber(c *gin.Context) {
	bus, err := h.busRepo.GetByNumber(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bus"})
		return
	}
	if bus == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bus})
}

// GetBusSeats returns the seat map for a bus
// GET /api/v1/buses/:id/seats
func (h *BusHandler) GetBusSeats(c *gin.Context) {
	busID := c.Param("id")

	bus, err := h.busRepo.GetByID(busID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bus"})
		return
	}
	if bus == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		return
	}

	seats, err := h.seatRepo.GetByBusID(busID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get seats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"bus_id": busID,
			"seats":  seats,
			"count":  len(seats),
		},
	})
}
