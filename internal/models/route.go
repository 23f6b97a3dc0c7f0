package models

import (
	"errors"
	"strings"
)

// Route represents a city pair served by trips
type Route struct {
	ID         string `json:"id" db:"id"`
	StartCity  string `json:"start_city" db:"start_city"`
	EndCity    string `json:"end_city" db:"end_city"`
	DistanceKM int    `json:"distance_km" db:"distance_km"`
}

// CreateRouteRequest represents the request to add a route
type CreateRouteRequest struct {
	StartCity  string `json:"start_city" binding:"required"`
	EndCity    string `json:"end_city" binding:"required"`
	DistanceKM int    `json:"distance_km" binding:"required,min=1"`
}

// Validate validates the create route request
func (r *CreateRouteRequest) Validate() error {
	if strings.EqualFold(strings.TrimSpace(r.StartCity), strings.TrimSpace(r.EndCity)) {
		return errors.New("start_city and end_city must differ")
	}
	if r.DistanceKM <= 0 {
		return errors.New("distance_km must be at least 1")
	}
	return nil
}
