// Package forecast extends a demand series by iterative one-step-ahead
// forecasting and adds reproducible display noise.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sartorproj/demandwise/arima"
)

// ErrNegativeSteps is returned when a negative step count is requested.
var ErrNegativeSteps = errors.New("forecast steps must not be negative")

// StepResult is the outcome of one forecasting iteration: a value on
// success, the fit or forecast error otherwise.
type StepResult struct {
	Step     int // zero-based iteration index
	Value    float64
	Err      error
	Duration time.Duration
}

// OK reports whether the step produced a value.
func (r StepResult) OK() bool {
	return r.Err == nil
}

// Outcome aggregates the iterations of one forecast.
type Outcome struct {
	Predictions []float64    // successful values, in order
	Steps       []StepResult // every iteration, including failures
	History     []float64    // input values followed by Predictions
	Summary     *FitSummary  // diagnostics of the last successful fit, nil if none
}

// Failures returns the failed iterations.
func (o *Outcome) Failures() []StepResult {
	var failed []StepResult
	for _, s := range o.Steps {
		if !s.OK() {
			failed = append(failed, s)
		}
	}
	return failed
}

// Forecaster produces forecasts by refitting a model on the whole working
// history before every step.
type Forecaster struct {
	Fitter Fitter
	Order  arima.Order
	Logger zerolog.Logger

	// OnStep, when set, is called after every iteration.
	OnStep func(StepResult)
}

// NewForecaster returns a Forecaster using the ARIMA fitter and DefaultOrder.
func NewForecaster(logger zerolog.Logger) *Forecaster {
	return &Forecaster{
		Fitter: ARIMAFitter{},
		Order:  DefaultOrder,
		Logger: logger,
	}
}

// Forecast runs steps iterations over a copy of history. A failed iteration
// is logged and skipped without touching the working history, so the result
// may hold fewer than steps predictions.
func (f *Forecaster) Forecast(history []float64, steps int) (*Outcome, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSteps, steps)
	}

	working := make([]float64, len(history), len(history)+steps)
	copy(working, history)

	out := &Outcome{
		Predictions: make([]float64, 0, steps),
		Steps:       make([]StepResult, 0, steps),
	}

	var last Model
	for i := 0; i < steps; i++ {
		res, model := f.step(i, working)
		out.Steps = append(out.Steps, res)
		if f.OnStep != nil {
			f.OnStep(res)
		}

		if !res.OK() {
			f.Logger.Warn().Err(res.Err).Int("step", i).Int("history", len(working)).
				Str("order", f.Order.String()).Msg("fit failed, skipping step")
			continue
		}

		last = model
		out.Predictions = append(out.Predictions, res.Value)
		working = append(working, res.Value)
		f.Logger.Debug().Int("step", i).Float64("value", res.Value).Dur("took", res.Duration).Msg("forecast step")
	}

	out.History = working
	if s, ok := last.(Summarizer); ok {
		out.Summary = NewFitSummary(s.Summary())
	}
	return out, nil
}

func (f *Forecaster) step(i int, working []float64) (StepResult, Model) {
	start := time.Now()
	res := StepResult{Step: i}

	model, err := f.fitter().Fit(working, f.Order)
	if err == nil {
		res.Value, err = model.Forecast()
	}
	res.Err = err
	res.Duration = time.Since(start)
	return res, model
}

func (f *Forecaster) fitter() Fitter {
	if f.Fitter == nil {
		return ARIMAFitter{}
	}
	return f.Fitter
}
