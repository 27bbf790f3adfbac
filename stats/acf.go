// Package stats provides the autocorrelation and residual diagnostics used
// by the ARIMA fitter.
package stats

import (
	"math"

	"github.com/sartorproj/demandwise/timeseries"
)

// ACF calculates the Autocorrelation Function for the given series.
// Returns ACF values for lags 0 to maxLag, or nil when the series has no
// variance.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := series.Mean()
	centered := make([]float64, n)
	denom := 0.0
	for i, v := range series.Values {
		centered[i] = v - mean
		denom += centered[i] * centered[i]
	}
	if denom == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := range acf {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += centered[i] * centered[i-k]
		}
		acf[k] = sum / denom
	}
	return acf
}

// ConfidenceBound returns the 95% white-noise bound (1.96/sqrt(n)) for ACF
// values of a series of length n.
func ConfidenceBound(n int) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return 1.96 / math.Sqrt(float64(n))
}

// SignificantLags returns the lags (excluding lag 0) whose ACF value exceeds
// the confidence bound.
func SignificantLags(acf []float64, bound float64) []int {
	var lags []int
	for k := 1; k < len(acf); k++ {
		if math.Abs(acf[k]) > bound {
			lags = append(lags, k)
		}
	}
	return lags
}
