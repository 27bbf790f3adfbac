// Package stats provides autocorrelation and residual diagnostics for ARIMA
// fitting.
//
// ACF seeds the Yule-Walker estimates of the AR coefficients:
//
//	acf := stats.ACF(series, 10)
//	lags := stats.SignificantLags(acf, stats.ConfidenceBound(series.Len()))
//
// After a fit, the residuals can be checked for leftover autocorrelation:
//
//	lb := stats.LjungBox(timeseries.New(residuals), 10, p+q)
//	if lb != nil && lb.PValue < 0.05 {
//	    // residuals are autocorrelated; the order may be too small
//	}
//	dw := stats.DurbinWatson(residuals)
package stats
