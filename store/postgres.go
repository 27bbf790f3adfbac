package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// PostgresStore writes records to a PostgreSQL table named after the
// collection, one row per run.
type PostgresStore struct {
	db    *sql.DB
	table string
	log   zerolog.Logger
}

// OpenPostgres opens dsn with the lib/pq driver, waits for the server with
// backoff and creates the table if needed.
func OpenPostgres(ctx context.Context, dsn, table string, connectTimeout time.Duration, logger zerolog.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if connectTimeout == 0 {
		connectTimeout = 10 * time.Second
	}
	if err := pingWithBackoff(ctx, connectTimeout, db.PingContext); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	s := NewPostgresStore(db, table, logger)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStore wraps an open database.
func NewPostgresStore(db *sql.DB, table string, logger zerolog.Logger) *PostgresStore {
	if table == "" {
		table = DefaultCollection
	}
	return &PostgresStore{db: db, table: table, log: logger}
}

// EnsureSchema creates the table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+pq.QuoteIdentifier(s.table)+` (
			id UUID PRIMARY KEY,
			product_name TEXT,
			demand DOUBLE PRECISION[] NOT NULL,
			forecast_steps INTEGER NOT NULL,
			predictions DOUBLE PRECISION[] NOT NULL,
			sales_data DOUBLE PRECISION[],
			marketing_cost DOUBLE PRECISION[],
			price DOUBLE PRECISION,
			graph_data TEXT,
			n_obs INTEGER,
			aic DOUBLE PRECISION,
			bic DOUBLE PRECISION,
			ljung_box_p DOUBLE PRECISION,
			durbin_watson DOUBLE PRECISION,
			residual_lags INTEGER[],
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Insert writes rec as one row. Diagnostics columns are NULL when the run
// had no successful fit.
func (s *PostgresStore) Insert(ctx context.Context, rec *Record) error {
	var (
		nObs         sql.NullInt64
		aic, bic     sql.NullFloat64
		ljungBoxP    sql.NullFloat64
		durbinWatson sql.NullFloat64
		lags         []int64
	)
	if d := rec.Diagnostics; d != nil {
		nObs = sql.NullInt64{Int64: int64(d.NObs), Valid: true}
		aic, bic = nullFloat(d.AIC), nullFloat(d.BIC)
		ljungBoxP, durbinWatson = nullFloat(d.LjungBoxP), nullFloat(d.DurbinWatson)
		for _, l := range d.ResidualLags {
			lags = append(lags, int64(l))
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO `+pq.QuoteIdentifier(s.table)+` (
			id, product_name, demand, forecast_steps, predictions,
			sales_data, marketing_cost, price, graph_data,
			n_obs, aic, bic, ljung_box_p, durbin_watson, residual_lags, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		rec.ID, nullString(rec.ProductName), pq.Array(rec.Demand), rec.ForecastSteps, pq.Array(nonNil(rec.Predictions)),
		pq.Array(rec.Sales), pq.Array(rec.MarketingCost), nullFloat(rec.Price), rec.GraphData,
		nObs, aic, bic, ljungBoxP, durbinWatson, pq.Array(lags), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres insert: %w", err)
	}
	s.log.Debug().Str("id", rec.ID).Str("table", s.table).Msg("stored forecast run")
	return nil
}

// Close closes the database.
func (s *PostgresStore) Close(context.Context) error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}
