package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sartorproj/demandwise/arima"
	"github.com/sartorproj/demandwise/demand"
	"github.com/sartorproj/demandwise/timeseries"
)

// ErrInputMode is returned when an Input mixes or omits both input modes.
var ErrInputMode = errors.New("provide either sales, marketing cost and price, or demand history")

// Mode says how the demand series of a run is obtained.
type Mode string

const (
	ModeDrivers Mode = "drivers"
	ModeHistory Mode = "history"
)

// Input holds what the user supplied for one run.
type Input struct {
	ProductName   string
	Sales         []float64
	MarketingCost []float64
	Price         *float64
	Demand        []float64
	Steps         int
}

// Mode infers the input mode. It returns ErrInputMode when both or neither
// mode is populated.
func (in Input) Mode() (Mode, error) {
	drivers := in.Sales != nil || in.MarketingCost != nil || in.Price != nil
	history := in.Demand != nil
	switch {
	case drivers && history, !drivers && !history:
		return "", ErrInputMode
	case history:
		return ModeHistory, nil
	}
	if in.Sales == nil || in.MarketingCost == nil || in.Price == nil {
		return "", fmt.Errorf("%w: drivers mode needs sales, marketing cost and price", ErrInputMode)
	}
	return ModeDrivers, nil
}

// Series validates the input and builds its demand series.
func (in Input) Series() (*timeseries.Series, error) {
	if in.Steps < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSteps, in.Steps)
	}
	mode, err := in.Mode()
	if err != nil {
		return nil, err
	}
	var series *timeseries.Series
	if mode == ModeHistory {
		series, err = demand.FromHistory(in.Demand)
	} else {
		series, err = demand.FromDrivers(in.Sales, in.MarketingCost, *in.Price)
	}
	if err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// Run carries one forecast from input to storage. It is created per user
// action and not retained afterwards.
type Run struct {
	ID        string
	CreatedAt time.Time
	Input     Input
	Mode      Mode
	Series    *timeseries.Series
	Order     arima.Order

	Outcome *Outcome  // fresh or rebuilt from the cache
	Raw     []float64 // predictions before noise
	Noisy   []float64 // Raw plus display noise
	Cached  bool

	ChartPath string
	RenderErr error
	StoreErr  error
}

// NewRun validates in and builds its series. Input errors are returned
// before any forecasting work happens.
func NewRun(in Input) (*Run, error) {
	series, err := in.Series()
	if err != nil {
		return nil, err
	}
	mode, _ := in.Mode()
	return &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Input:     in,
		Mode:      mode,
		Series:    series,
		Order:     DefaultOrder,
	}, nil
}

// Failed returns the number of iterations that produced no value.
func (r *Run) Failed() int {
	if r.Outcome == nil {
		return 0
	}
	return len(r.Outcome.Failures())
}

// ForecastPeriods returns the month starts of the noisy predictions.
func (r *Run) ForecastPeriods() []time.Time {
	return r.Series.NextPeriods(len(r.Noisy))
}

// Extended returns the demand series followed by the noisy predictions.
func (r *Run) Extended() *timeseries.Series {
	return r.Series.Extend(r.Noisy)
}
