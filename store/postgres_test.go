package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "demand_forecasting"`).WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewPostgresStore(db, "", zerolog.Nop())
	require.NoError(t, s.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := sampleRecord()
	mock.ExpectExec(`INSERT INTO "forecasts"`).
		WithArgs(rec.ID, "widget", sqlmock.AnyArg(), 2, sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), 20.0, rec.GraphData,
			13, 88.1, 90.4, nil, nil, sqlmock.AnyArg(), rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewPostgresStore(db, "forecasts", zerolog.Nop())
	require.NoError(t, s.Insert(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertWithoutDiagnostics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := &Record{ID: "all-failed", Demand: []float64{0}, ForecastSteps: 4}
	mock.ExpectExec(`INSERT INTO`).
		WithArgs(rec.ID, nil, sqlmock.AnyArg(), 4, sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "",
			nil, nil, nil, nil, nil, sqlmock.AnyArg(), rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewPostgresStore(db, "", zerolog.Nop())
	require.NoError(t, s.Insert(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("relation does not exist")
	mock.ExpectExec(`INSERT INTO`).WillReturnError(boom)

	s := NewPostgresStore(db, "", zerolog.Nop())
	err = s.Insert(context.Background(), &Record{ID: "x", Demand: []float64{1}})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectClose()
	s := NewPostgresStore(db, "", zerolog.Nop())
	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
