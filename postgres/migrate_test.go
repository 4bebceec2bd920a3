package postgres_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark/postgres"
	"gorm.io/gorm"
)

func expectMigrationsTable(mock sqlmock.Sqlmock, ran ...string) {
	mock.ExpectExec(`CREATE SCHEMA IF NOT EXISTS public`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS migrations`).WillReturnResult(sqlmock.NewResult(0, 0))

	rows := sqlmock.NewRows([]string{"key"})
	for _, key := range ran {
		rows.AddRow(key)
	}
	mock.ExpectQuery(`SELECT key FROM migrations`).WillReturnRows(rows)
}

func TestMigrateUp(t *testing.T) {
	// Arrange
	store, mock := newMock(t)

	var called []string
	record := func(key string) func(*gorm.DB) error {
		return func(*gorm.DB) error {
			called = append(called, key)
			return nil
		}
	}

	migrations := []postgres.Migration{
		{Key: "one", Executor: record("one")},
		{Key: "two", Executor: record("two")},
	}

	expectMigrationsTable(mock, "one")
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO migrations`).
		WithArgs("two", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Act
	err := postgres.MigrateUp(store.DB(), "public", migrations)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"two"}, called)
	require.Nil(t, mock.ExpectationsWereMet())
}

func TestMigrateUpStopsOnFailure(t *testing.T) {
	// Arrange
	store, mock := newMock(t)

	var called []string
	migrations := []postgres.Migration{
		{Key: "one", Executor: func(*gorm.DB) error { return errors.New("boom") }},
		{Key: "two", Executor: func(*gorm.DB) error { called = append(called, "two"); return nil }},
	}

	expectMigrationsTable(mock)
	mock.ExpectBegin()
	mock.ExpectRollback()

	// Act
	err := postgres.MigrateUp(store.DB(), "public", migrations)

	// Assert
	require.ErrorIs(t, err, postgres.ErrMigration)
	require.Empty(t, called)
	require.Nil(t, mock.ExpectationsWereMet())
}

func TestMigrateUpNoTable(t *testing.T) {
	// Arrange
	store, mock := newMock(t)
	mock.ExpectExec(`CREATE SCHEMA IF NOT EXISTS public`).WillReturnError(errors.New("permission denied"))

	// Act
	err := postgres.MigrateUp(store.DB(), "public", postgres.Migrations())

	// Assert
	require.ErrorIs(t, err, postgres.ErrMigration)
	require.Nil(t, mock.ExpectationsWereMet())
}
