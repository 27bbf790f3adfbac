// Package store persists forecast runs to a document store.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Default database and collection names.
const (
	DefaultDatabase   = "Demand"
	DefaultCollection = "demand_forecasting"
)

// ErrClosed is returned by a store that has been closed.
var ErrClosed = errors.New("store is closed")

// Record is the persisted form of one forecast run.
type Record struct {
	ID            string       `bson:"_id" json:"id"`
	ProductName   string       `bson:"product_name,omitempty" json:"product_name,omitempty"`
	Demand        []float64    `bson:"demand" json:"demand"`
	ForecastSteps int          `bson:"forecast_steps" json:"forecast_steps"`
	Predictions   []float64    `bson:"predictions" json:"predictions"`
	Sales         []float64    `bson:"sales_data,omitempty" json:"sales_data,omitempty"`
	MarketingCost []float64    `bson:"marketing_cost,omitempty" json:"marketing_cost,omitempty"`
	Price         *float64     `bson:"price,omitempty" json:"price,omitempty"`
	GraphData     string       `bson:"graph_data" json:"graph_data"`
	Diagnostics   *Diagnostics `bson:"diagnostics,omitempty" json:"diagnostics,omitempty"`
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
}

// Diagnostics describes the last successful model fit of a run. Nil
// statistics were undefined for that fit.
type Diagnostics struct {
	NObs         int      `bson:"n_obs" json:"n_obs"`
	AIC          *float64 `bson:"aic,omitempty" json:"aic,omitempty"`
	BIC          *float64 `bson:"bic,omitempty" json:"bic,omitempty"`
	LjungBoxP    *float64 `bson:"ljung_box_p,omitempty" json:"ljung_box_p,omitempty"`
	DurbinWatson *float64 `bson:"durbin_watson,omitempty" json:"durbin_watson,omitempty"`
	ResidualLags []int    `bson:"residual_lags,omitempty" json:"residual_lags,omitempty"`
}

// Store inserts records. Implementations report failures and never retry
// an insert.
type Store interface {
	Insert(ctx context.Context, rec *Record) error
	Close(ctx context.Context) error
}

// MemoryStore keeps records in process. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	closed  bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert stores a copy of rec.
func (s *MemoryStore) Insert(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.records = append(s.records, *rec)
	return nil
}

// Records returns the stored records in insertion order.
func (s *MemoryStore) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

// Close marks the store closed.
func (s *MemoryStore) Close(context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Nop discards records. It backs "--store none".
type Nop struct{}

// Insert discards the record.
func (Nop) Insert(context.Context, *Record) error { return nil }

// Close does nothing.
func (Nop) Close(context.Context) error { return nil }

// pingWithBackoff retries ping with exponential backoff until it succeeds,
// maxElapsed passes or ctx is done.
func pingWithBackoff(ctx context.Context, maxElapsed time.Duration, ping func(context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = maxElapsed

	return backoff.Retry(func() error {
		return ping(ctx)
	}, backoff.WithContext(b, ctx))
}
