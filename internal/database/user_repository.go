package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned when registering an already-used email
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository handles user database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user with the given credentials
func (r *UserRepository) CreateUser(name, email, passwordHash string, role models.UserRole) (*models.User, error) {
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Role:         role,
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRow(query, user.ID, user.Name, user.Email, user.PasswordHash, user.Role).
		Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email, or nil if not found
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User

	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	err := r.db.Get(&user, query, strings.ToLower(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID, or nil if not found
func (r *UserRepository) GetUserByID(userID string) (*models.User, error) {
	var user models.User

	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`

	err := r.db.Get(&user, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

// Exists reports whether a user with the given ID exists
func (r *UserRepository) Exists(userID string) (bool, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM users WHERE id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}
