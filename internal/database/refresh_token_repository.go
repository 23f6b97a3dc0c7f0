package database

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/google/uuid"
)

// RefreshTokenRepository handles refresh token database operations
type RefreshTokenRepository struct {
	db DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// hashToken creates a SHA-256 hash of the token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// StoreRefreshToken stores a refresh token for the user, replacing any
// previously issued one.
func (r *RefreshTokenRepository) StoreRefreshToken(
	userID, token string,
	deviceType, osName, browser, ipAddress, userAgent string,
	expiresAt time.Time,
) error {
	tokenHash := hashToken(token)

	query := `
		INSERT INTO refresh_tokens (
			id, user_id, token_hash, device_type, os, browser,
			ip_address, user_agent, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			token_hash = EXCLUDED.token_hash,
			device_type = EXCLUDED.device_type,
			os = EXCLUDED.os,
			browser = EXCLUDED.browser,
			ip_address = EXCLUDED.ip_address,
			user_agent = EXCLUDED.user_agent,
			expires_at = EXCLUDED.expires_at,
			created_at = NOW(),
			last_used_at = NULL
	`

	var deviceTypeVal, osVal, browserVal, ipVal, userAgentVal interface{}
	if deviceType != "" {
		deviceTypeVal = deviceType
	}
	if osName != "" {
		osVal = osName
	}
	if browser != "" {
		browserVal = browser
	}
	if ipAddress != "" {
		ipVal = ipAddress
	}
	if userAgent != "" {
		userAgentVal = userAgent
	}

	_, err := r.db.Exec(
		query,
		uuid.New().String(),
		userID,
		tokenHash,
		deviceTypeVal,
		osVal,
		browserVal,
		ipVal,
		userAgentVal,
		expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// GetRefreshToken retrieves the stored token record for a user, or nil if
// none exists.
func (r *RefreshTokenRepository) GetRefreshToken(userID string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken

	query := `
		SELECT id, user_id, token_hash, device_type, os, browser,
		       ip_address, user_agent, expires_at, created_at, last_used_at
		FROM refresh_tokens
		WHERE user_id = $1
	`

	err := r.db.Get(&refreshToken, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &refreshToken, nil
}

// Matches reports whether the presented token matches the stored hash for
// the user and has not expired.
func (r *RefreshTokenRepository) Matches(userID, token string) (bool, error) {
	stored, err := r.GetRefreshToken(userID)
	if err != nil {
		return false, err
	}
	if stored == nil {
		return false, nil
	}
	if stored.ExpiresAt.Before(time.Now()) {
		return false, nil
	}
	return stored.TokenHash == hashToken(token), nil
}

// TouchLastUsed records that the stored token was used for a refresh
func (r *RefreshTokenRepository) TouchLastUsed(userID string) error {
	_, err := r.db.Exec(`UPDATE refresh_tokens SET last_used_at = NOW() WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token usage: %w", err)
	}
	return nil
}

// Revoke deletes the stored refresh token for a user. Deleting a token that
// does not exist is not an error.
func (r *RefreshTokenRepository) Revoke(userID string) error {
	_, err := r.db.Exec(`DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
