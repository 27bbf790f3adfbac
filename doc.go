// Package demandwise forecasts monthly product demand with ARIMA models.
//
// A run builds a twelve-month demand series, either from sales, marketing
// cost and price drivers or from raw history, then extends it by repeated
// one-step-ahead ARIMA(2,1,1) forecasts. Each forecast is appended to the
// working history before the next model is fitted. Reproducible N(0, 10)
// noise is added for display, the result is rendered as a chart and the run
// is stored in a document store.
//
// # Packages
//
//   - timeseries: monthly series type, differencing, CSV
//   - stats: ACF and residual diagnostics
//   - arima: ARIMA model fitting and forecasting
//   - demand: series construction from user input
//   - forecast: iterative forecaster, noise injector, run value
//   - plot: bar and line charts
//   - store: MongoDB, PostgreSQL and in-memory persistence
//   - cache: Redis and in-memory prediction cache
//   - metrics: Prometheus instrumentation
//   - config: environment and run-file configuration
//   - pipeline: one end-to-end run
//
// The demandwise command in cmd/demandwise exposes all of it on the command line.
package demandwise
