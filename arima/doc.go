// Package arima implements AutoRegressive Integrated Moving Average (ARIMA) models.
//
// An ARIMA(p,d,q) model combines:
//   - AR(p): AutoRegressive component with p lags
//   - I(d): Integration (differencing) of order d
//   - MA(q): Moving Average component with q lags
//
// Parameters are estimated by Conditional Sum of Squares, seeded from
// Yule-Walker estimates. The model is built for short business series, so
// Fit accepts as few as p+d+q+2 observations.
//
// # Basic Usage
//
//	model := arima.New(2, 1, 1)
//	if err := model.Fit(series); err != nil {
//	    // errors.Is(err, arima.ErrDegenerateSeries) etc.
//	}
//	next, err := model.Forecast()   // one step ahead
//	path, err := model.Predict(6)   // six steps ahead
//
// # Failure Modes
//
// Fit reports why a series cannot be modelled:
//   - ErrInsufficientData: fewer than Order.MinObservations() points
//   - ErrDegenerateSeries: the differenced series is identically zero (an
//     all-zero or constant history for d=1)
//
// A differenced series with constant non-zero values, such as a perfectly
// linear trend for d=1, is a pure drift: the coefficients stay zero and the
// forecast continues the trend.
//   - ErrNotConverged: estimation produced non-finite parameters
//
// # Residual Analysis
//
// Summary reports information criteria plus Ljung-Box and Durbin-Watson
// statistics of the residuals.
package arima
