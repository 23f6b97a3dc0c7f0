package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sushanth105/busResSys/internal/database"
	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/gin-gonic/gin"
)

// RouteHandler handles route catalog endpoints
type RouteHandler struct {
	routeRepo *database.RouteRepository
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeRepo *database.RouteRepository) *RouteHandler {
	return &RouteHandler{routeRepo: routeRepo}
}

// CreateRoute registers a city pair
// POST /api/v1/routes (admin)
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := h.routeRepo.CreateRoute(&req)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateRoute) {
			c.JSON(http.StatusConflict, gin.H{"error": "Route already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create route"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Route created successfully",
		"data":    route,
	})
}

// GetRoute returns a route by ID
// GET /api/v1/routes/:id
func (h *RouteHandler) GetRoute(c *gin.Context) {
	route, err := h.routeRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get route"})
		return
	}
	if route == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": route})
}

// FindRoute looks up a route by its city pair
// GET /api/v1/routes/search?from=colombo&to=kandy
func (h *RouteHandler) FindRoute(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameters 'from' and 'to' are required"})
		return
	}

	route, err := h.routeRepo.GetByCities(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search routes"})
		return
	}
	if route == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": route})
}
