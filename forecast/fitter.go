package forecast

import (
	"github.com/sartorproj/demandwise/arima"
	"github.com/sartorproj/demandwise/timeseries"
)

// DefaultOrder is the ARIMA order used for every run.
var DefaultOrder = arima.Order{P: 2, D: 1, Q: 1}

// Model is a fitted model that can forecast the next value.
type Model interface {
	Forecast() (float64, error)
}

// Summarizer is implemented by models that report fit diagnostics.
type Summarizer interface {
	Summary() *arima.Summary
}

// Fitter fits a model of the given order to a history.
type Fitter interface {
	Fit(history []float64, order arima.Order) (Model, error)
}

// FitterFunc adapts a function to the Fitter interface.
type FitterFunc func(history []float64, order arima.Order) (Model, error)

// Fit calls f(history, order).
func (f FitterFunc) Fit(history []float64, order arima.Order) (Model, error) {
	return f(history, order)
}

// ARIMAFitter fits arima.Model values.
type ARIMAFitter struct{}

// Fit fits a fresh ARIMA model to history.
func (ARIMAFitter) Fit(history []float64, order arima.Order) (Model, error) {
	m := arima.New(order.P, order.D, order.Q)
	if err := m.Fit(timeseries.New(history)); err != nil {
		return nil, err
	}
	return m, nil
}
