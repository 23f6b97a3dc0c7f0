package models

import "time"

// RefreshToken holds the stored hash of a user's refresh token along with
// device information parsed from the login User-Agent. One row per user;
// issuing a new token replaces the previous one.
type RefreshToken struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"user_id" db:"user_id"`
	TokenHash  string     `json:"-" db:"token_hash"`
	DeviceType *string    `json:"device_type,omitempty" db:"device_type"`
	OS         *string    `json:"os,omitempty" db:"os"`
	Browser    *string    `json:"browser,omitempty" db:"browser"`
	IPAddress  *string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  *string    `json:"user_agent,omitempty" db:"user_agent"`
	ExpiresAt  time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
}
