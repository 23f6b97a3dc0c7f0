package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/google/uuid"
)

// ErrDuplicateRoute is returned when adding a city pair that already exists
var ErrDuplicateRoute = errors.New("route already exists for this city pair")

// RouteRepository handles route database operations
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// CreateRoute inserts a route. Cities are stored lowercase so lookups are
// case-insensitive.
func (r *RouteRepository) CreateRoute(req *models.CreateRouteRequest) (*models.Route, error) {
	route := &models.Route{
		ID:         uuid.New().String(),
		StartCity:  strings.ToLower(req.StartCity),
		EndCity:    strings.ToLower(req.EndCity),
		DistanceKM: req.DistanceKM,
	}

	query := `
		INSERT INTO routes (id, start_city, end_city, distance_km)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(query, route.ID, route.StartCity, route.EndCity, route.DistanceKM)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateRoute
		}
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	return route, nil
}

// GetByID retrieves a route by ID, or nil if not found
func (r *RouteRepository) GetByID(routeID string) (*models.Route, error) {
	var route models.Route

	query := `
		SELECT id, start_city, end_city, distance_km
		FROM routes
		WHERE id = $1
	`

	err := r.db.Get(&route, query, routeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return &route, nil
}

// GetByCities retrieves a route by its city pair, or nil if not found
func (r *RouteRepository) GetByCities(startCity, endCity string) (*models.Route, error) {
	var route models.Route

	query := `
		SELECT id, start_city, end_city, distance_km
		FROM routes
		WHERE start_city = $1 AND end_city = $2
	`

	err := r.db.Get(&route, query, strings.ToLower(startCity), strings.ToLower(endCity))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get route by cities: %w", err)
	}

	return &route, nil
}
