package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSqlxDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestReserve(t *testing.T) {
	sqlxDB, mock := newMockSqlxDB(t)
	repo := NewTripSeatRepository(sqlxDB)

	tripID := uuid.New().String()
	seatID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO trip_seats`).
			WithArgs(sqlmock.AnyArg(), tripID, seatID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := sqlxDB.Beginx()
		require.NoError(t, err)

		tripSeatID, err := repo.Reserve(tx, tripID, seatID)
		require.NoError(t, err)
		assert.NotEmpty(t, tripSeatID)

		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Seat Already Taken", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO trip_seats`).
			WithArgs(sqlmock.AnyArg(), tripID, seatID).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "trip_seats_trip_id_seat_id_key"})
		mock.ExpectRollback()

		tx, err := sqlxDB.Beginx()
		require.NoError(t, err)

		tripSeatID, err := repo.Reserve(tx, tripID, seatID)
		assert.ErrorIs(t, err, ErrSeatTaken)
		assert.Empty(t, tripSeatID)

		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO trip_seats`).
			WithArgs(sqlmock.AnyArg(), tripID, seatID).
			WillReturnError(fmt.Errorf("database error"))
		mock.ExpectRollback()

		tx, err := sqlxDB.Beginx()
		require.NoError(t, err)

		_, err = repo.Reserve(tx, tripID, seatID)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrSeatTaken)
		assert.Contains(t, err.Error(), "failed to reserve seat")

		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRelease(t *testing.T) {
	sqlxDB, mock := newMockSqlxDB(t)
	repo := NewTripSeatRepository(sqlxDB)

	tripSeatID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM trip_seats WHERE id`).
			WithArgs(tripSeatID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := sqlxDB.Beginx()
		require.NoError(t, err)

		require.NoError(t, repo.Release(tx, tripSeatID))
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Released Is No-Op", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM trip_seats WHERE id`).
			WithArgs(tripSeatID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		tx, err := sqlxDB.Beginx()
		require.NoError(t, err)

		require.NoError(t, repo.Release(tx, tripSeatID))
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM trip_seats WHERE id`).
			WithArgs(tripSeatID).
			WillReturnError(fmt.Errorf("database error"))
		mock.ExpectRollback()

		tx, err := sqlxDB.Beginx()
		require.NoError(t, err)

		err = repo.Release(tx, tripSeatID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to release seat")

		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByTripID(t *testing.T) {
	sqlxDB, mock := newMockSqlxDB(t)
	repo := NewTripSeatRepository(sqlxDB)

	tripID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM trip_seats WHERE trip_id`).
			WithArgs(tripID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "seat_id", "created_at"}).
				AddRow(uuid.New().String(), tripID, uuid.New().String(), now).
				AddRow(uuid.New().String(), tripID, uuid.New().String(), now))

		seats, err := repo.GetByTripID(tripID)
		require.NoError(t, err)
		assert.Len(t, seats, 2)
		assert.Equal(t, tripID, seats[0].TripID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Trip", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM trip_seats WHERE trip_id`).
			WithArgs(tripID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "seat_id", "created_at"}))

		seats, err := repo.GetByTripID(tripID)
		require.NoError(t, err)
		assert.Len(t, seats, 0)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountByTripID(t *testing.T) {
	sqlxDB, mock := newMockSqlxDB(t)
	repo := NewTripSeatRepository(sqlxDB)

	tripID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trip_seats WHERE trip_id`).
			WithArgs(tripID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.CountByTripID(tripID)
		require.NoError(t, err)
		assert.Equal(t, 12, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trip_seats WHERE trip_id`).
			WithArgs(tripID).
			WillReturnError(fmt.Errorf("database error"))

		count, err := repo.CountByTripID(tripID)
		assert.Error(t, err)
		assert.Equal(t, 0, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
