package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	sqlxDB, mock := newMockSqlxDB(t)
	return &PostgresDB{sqlxDB}, mock
}

func TestCreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "Asha Perera", "asha@example.com", sqlmock.AnyArg(), models.RoleUser).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		user, err := repo.CreateUser("Asha Perera", "Asha@Example.com", "bcrypt-hash", models.RoleUser)
		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.Equal(t, models.RoleUser, user.Role)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "Asha Perera", "asha@example.com", sqlmock.AnyArg(), models.RoleUser).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		user, err := repo.CreateUser("Asha Perera", "asha@example.com", "bcrypt-hash", models.RoleUser)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "Asha Perera", "asha@example.com", sqlmock.AnyArg(), models.RoleUser).
			WillReturnError(fmt.Errorf("database error"))

		user, err := repo.CreateUser("Asha Perera", "asha@example.com", "bcrypt-hash", models.RoleUser)
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "failed to create user")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("asha@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
				AddRow(userID, "Asha Perera", "asha@example.com", "bcrypt-hash", "user", now))

		user, err := repo.GetUserByEmail("Asha@Example.com")
		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "asha@example.com", user.Email)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByEmail("ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("asha@example.com").
			WillReturnError(fmt.Errorf("database error"))

		user, err := repo.GetUserByEmail("asha@example.com")
		assert.Error(t, err)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
				AddRow(userID, "Asha Perera", "asha@example.com", "bcrypt-hash", "user", now))

		user, err := repo.GetUserByID(userID)
		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, userID, user.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User Not Found", func(t *testing.T) {
		userID := uuid.New().String()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(userID)
		require.NoError(t, err)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Exists", func(t *testing.T) {
		userID := uuid.New().String()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.Exists(userID)
		require.NoError(t, err)
		assert.True(t, exists)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Does Not Exist", func(t *testing.T) {
		userID := uuid.New().String()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.Exists(userID)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
