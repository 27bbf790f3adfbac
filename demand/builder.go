// Package demand builds the twelve-month demand series a forecast run
// starts from.
package demand

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sartorproj/demandwise/timeseries"
)

// Periods is the number of monthly periods in every demand series.
const Periods = 12

// Driver weights of the demand formula.
const (
	SalesWeight     = 0.6
	MarketingWeight = 0.4
	PriceWeight     = 0.3
)

// Start is the first period of every demand series.
var Start = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	// ErrShape is returned when an input sequence does not have Periods values.
	ErrShape = errors.New("input must have one value per period")

	// ErrNotNumeric is returned when user input cannot be parsed as numbers.
	ErrNotNumeric = errors.New("input is not numeric")
)

// FromDrivers computes demand per period as
// 0.6*sales + 0.4*marketingCost - 0.3*price, with price applied to every period.
func FromDrivers(sales, marketingCost []float64, price float64) (*timeseries.Series, error) {
	if err := checkLen("sales", sales); err != nil {
		return nil, err
	}
	if err := checkLen("marketing cost", marketingCost); err != nil {
		return nil, err
	}

	values := make([]float64, Periods)
	for i := range values {
		values[i] = SalesWeight*sales[i] + MarketingWeight*marketingCost[i] - PriceWeight*price
	}
	return monthly(values), nil
}

// FromHistory uses the given demand values as the series.
func FromHistory(values []float64) (*timeseries.Series, error) {
	if err := checkLen("demand", values); err != nil {
		return nil, err
	}
	return monthly(values), nil
}

// FromSeries aligns a loaded series (for example from CSV) to the standard
// monthly range. Its own timestamps are discarded.
func FromSeries(s *timeseries.Series) (*timeseries.Series, error) {
	return FromHistory(s.Values)
}

// ParseList parses a comma-separated list of numbers such as "100, 120,130".
func ParseList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty list", ErrNotNumeric)
	}

	parts := strings.Split(s, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := ParseNumber(p)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

// ParseNumber parses a single finite numeric field.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return v, nil
}

func checkLen(name string, values []float64) error {
	if len(values) != Periods {
		return fmt.Errorf("%w: %s has %d values, want %d", ErrShape, name, len(values), Periods)
	}
	return nil
}

func monthly(values []float64) *timeseries.Series {
	s := timeseries.NewMonthly(Start, values)
	s.Name = "demand"
	return s
}
