package database

import "fmt"

// schema holds the idempotent DDL applied at startup. The UNIQUE constraint
// on trip_seats(trip_id, seat_id) is the concurrency control for seat
// reservation: a second inserter for the same pair is rejected by the store
// at insert time, not by application logic.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL,
		device_type TEXT,
		os TEXT,
		browser TEXT,
		ip_address TEXT,
		user_agent TEXT,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_used_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS buses (
		id UUID PRIMARY KEY,
		operator TEXT NOT NULL,
		bus_number TEXT NOT NULL UNIQUE,
		air_type TEXT NOT NULL,
		seat_type TEXT NOT NULL,
		total_seat INT NOT NULL CHECK (total_seat > 0),
		rating DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		id UUID PRIMARY KEY,
		bus_id UUID NOT NULL REFERENCES buses(id) ON DELETE CASCADE,
		seat_label TEXT NOT NULL,
		UNIQUE (bus_id, seat_label)
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		id UUID PRIMARY KEY,
		start_city TEXT NOT NULL,
		end_city TEXT NOT NULL,
		distance_km INT NOT NULL CHECK (distance_km > 0),
		UNIQUE (start_city, end_city)
	)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id UUID PRIMARY KEY,
		bus_id UUID NOT NULL REFERENCES buses(id) ON DELETE CASCADE,
		route_id UUID NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
		departure_time TEXT NOT NULL,
		arrival_time TEXT NOT NULL,
		price INT NOT NULL CHECK (price > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS trip_seats (
		id UUID PRIMARY KEY,
		trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		seat_id UUID NOT NULL REFERENCES seats(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT trip_seats_trip_id_seat_id_key UNIQUE (trip_id, seat_id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		trip_seat_id UUID REFERENCES trip_seats(id) ON DELETE SET NULL,
		seat_label TEXT NOT NULL,
		price INT NOT NULL,
		booking_status TEXT NOT NULL DEFAULT 'upcoming',
		booked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trip_seats_trip_id ON trip_seats(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_route_id ON trips(route_id)`,
}

// Migrate applies the schema statements in order
func Migrate(db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
