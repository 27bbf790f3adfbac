// Package arima implements AutoRegressive Integrated Moving Average (ARIMA) models.
package arima

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/demandwise/stats"
	"github.com/sartorproj/demandwise/timeseries"
)

var (
	// ErrInsufficientData is returned when the series is too short for the order.
	ErrInsufficientData = errors.New("insufficient data points for the specified order")

	// ErrDegenerateSeries is returned when the differenced series is
	// identically zero, as for an all-zero or constant history.
	ErrDegenerateSeries = errors.New("differenced series is identically zero")

	// ErrNotConverged is returned when estimation produces non-finite values.
	ErrNotConverged = errors.New("estimation did not converge")

	// ErrNotFitted is returned by forecasting methods on an unfitted model.
	ErrNotFitted = errors.New("model must be fitted before prediction")
)

const (
	maxIter      = 100
	tolerance    = 1e-6
	learningRate = 0.01
	coeffBound   = 0.99
	summaryLags  = 10
)

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int // AR order (number of autoregressive terms)
	D int // Differencing order
	Q int // MA order (number of moving average terms)
}

// String formats the order as "(p,d,q)".
func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
}

// MinObservations is the shortest series Fit accepts for this order.
func (o Order) MinObservations() int {
	return o.P + o.D + o.Q + 2
}

// Model represents an ARIMA model.
type Model struct {
	Order     Order
	ARCoeffs  []float64 // AR coefficients (phi)
	MACoeffs  []float64 // MA coefficients (theta)
	Intercept float64
	Variance  float64 // Residual variance
	AIC       float64
	AICc      float64 // Corrected AIC for small sample sizes
	BIC       float64
	LogLik    float64
	fitted    bool
	data      *timeseries.Series
	diffData  *timeseries.Series
	residuals []float64
}

// New creates a new ARIMA model with the specified order.
func New(p, d, q int) *Model {
	return &Model{
		Order:    Order{P: p, D: d, Q: q},
		ARCoeffs: make([]float64, p),
		MACoeffs: make([]float64, q),
	}
}

// Fit fits the ARIMA model to the given time series data.
func (m *Model) Fit(series *timeseries.Series) error {
	m.fitted = false
	if need := m.Order.MinObservations(); series.Len() < need {
		return fmt.Errorf("%w: have %d, need %d for ARIMA%s", ErrInsufficientData, series.Len(), need, m.Order)
	}

	diffSeries := series
	for i := 0; i < m.Order.D; i++ {
		diffSeries = diffSeries.Diff()
	}
	mean := diffSeries.Mean()
	flat := diffSeries.Std() <= 1e-12*(1+math.Abs(mean))
	if flat && math.Abs(mean) <= 1e-12 {
		return ErrDegenerateSeries
	}

	m.data = series
	m.diffData = diffSeries
	m.ARCoeffs = make([]float64, m.Order.P)
	m.MACoeffs = make([]float64, m.Order.Q)

	if flat {
		// Constant non-zero differences: pure drift, nothing to estimate.
		m.Intercept = mean
		m.residuals = m.filter(diffSeries.Values)
		m.Variance = m.residualVariance()
	} else {
		m.fitCSS()
	}
	if !m.finite() {
		return ErrNotConverged
	}

	m.calculateIC()
	m.fitted = true
	return nil
}

// fitCSS fits the model by Conditional Sum of Squares. AR terms start from
// Yule-Walker estimates, MA terms from 0.1, and both are refined by bounded
// gradient steps.
func (m *Model) fitCSS() {
	y := m.diffData.Values
	m.Intercept = m.diffData.Mean()

	if m.Order.P > 0 {
		if acf := stats.ACF(m.diffData, m.Order.P); len(acf) > m.Order.P {
			copy(m.ARCoeffs, yuleWalker(acf, m.Order.P))
		}
	}
	for i := range m.MACoeffs {
		m.MACoeffs[i] = 0.1
	}

	if m.Order.P > 0 || m.Order.Q > 0 {
		m.optimizeCSS(y)
	}

	m.residuals = m.filter(y)
	m.Variance = m.residualVariance()
}

// filter runs the ARMA recursion over y and returns one-step residuals.
// Observations before max(p, q) are predicted by the intercept.
func (m *Model) filter(y []float64) []float64 {
	n := len(y)
	residuals := make([]float64, n)
	start := max(m.Order.P, m.Order.Q)

	for t := 0; t < n; t++ {
		pred := m.Intercept
		if t >= start {
			for i, phi := range m.ARCoeffs {
				pred += phi * (y[t-i-1] - m.Intercept)
			}
			for i, theta := range m.MACoeffs {
				pred += theta * residuals[t-i-1]
			}
		}
		residuals[t] = y[t] - pred
	}
	return residuals
}

// sse is the conditional sum of squares from max(p, q) onwards.
func (m *Model) sse(residuals []float64) float64 {
	sum := 0.0
	for _, r := range residuals[max(m.Order.P, m.Order.Q):] {
		sum += r * r
	}
	return sum
}

func (m *Model) optimizeCSS(y []float64) {
	n := float64(len(y))
	start := max(m.Order.P, m.Order.Q)

	for iter := 0; iter < maxIter; iter++ {
		residuals := m.filter(y)
		prevSSE := m.sse(residuals)

		arGrad := make([]float64, m.Order.P)
		maGrad := make([]float64, m.Order.Q)
		for t := start; t < len(y); t++ {
			for i := range arGrad {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.Intercept)
			}
			for i := range maGrad {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
		}

		// Bounds keep the AR part stationary and the MA part invertible.
		for i := range m.ARCoeffs {
			m.ARCoeffs[i] = clamp(m.ARCoeffs[i]-learningRate*arGrad[i]/n, coeffBound)
		}
		for i := range m.MACoeffs {
			m.MACoeffs[i] = clamp(m.MACoeffs[i]-learningRate*maGrad[i]/n, coeffBound)
		}

		residuals = m.filter(y)
		if math.Abs(prevSSE-m.sse(residuals)) < tolerance {
			break
		}
	}
}

func (m *Model) residualVariance() float64 {
	start := max(m.Order.P, m.Order.Q)
	count := len(m.residuals) - start
	if count <= 0 {
		return 0
	}
	k := m.Order.P + m.Order.Q + 1
	if count > k {
		return m.sse(m.residuals) / float64(count-k)
	}
	return m.sse(m.residuals) / float64(count)
}

func (m *Model) finite() bool {
	ok := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	if !ok(m.Intercept) || !ok(m.Variance) {
		return false
	}
	for _, c := range m.ARCoeffs {
		if !ok(c) {
			return false
		}
	}
	for _, c := range m.MACoeffs {
		if !ok(c) {
			return false
		}
	}
	return true
}

// calculateIC calculates AIC, AICc, and BIC under Gaussian errors.
func (m *Model) calculateIC() {
	n := float64(len(m.residuals))
	k := float64(m.Order.P + m.Order.Q + 1) // AR + MA + intercept

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}

	if m.Variance > 0 {
		m.LogLik = -n/2*math.Log(2*math.Pi) - n/2*math.Log(m.Variance) - sse/(2*m.Variance)
	} else {
		m.LogLik = math.Inf(-1)
	}

	m.AIC = -2*m.LogLik + 2*k
	if n-k-1 > 0 {
		m.AICc = m.AIC + 2*k*(k+1)/(n-k-1)
	} else {
		m.AICc = math.Inf(1)
	}
	m.BIC = -2*m.LogLik + k*math.Log(n)
}

// Forecast returns the single next value after the fitted data.
func (m *Model) Forecast() (float64, error) {
	out, err := m.Predict(1)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(out[0]) || math.IsInf(out[0], 0) {
		return 0, ErrNotConverged
	}
	return out[0], nil
}

// Predict generates forecasts for the specified number of steps ahead.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}

	y := m.diffData.Values
	n := len(y)

	ext := make([]float64, n+steps)
	copy(ext, y)
	// Future shocks have expectation zero, so only observed residuals feed MA terms.
	shocks := make([]float64, n+steps)
	copy(shocks, m.residuals)

	for t := n; t < n+steps; t++ {
		pred := m.Intercept
		for i, phi := range m.ARCoeffs {
			if t-i-1 >= 0 {
				pred += phi * (ext[t-i-1] - m.Intercept)
			}
		}
		for i, theta := range m.MACoeffs {
			if t-i-1 >= 0 {
				pred += theta * shocks[t-i-1]
			}
		}
		ext[t] = pred
	}

	forecasts := ext[n:]
	if m.Order.D > 0 {
		forecasts = m.integrate(forecasts)
	}
	return forecasts, nil
}

// integrate undoes differencing to return forecasts on the original scale.
// Each pass rebuilds one differencing level from the last value at that level.
func (m *Model) integrate(forecasts []float64) []float64 {
	levels := make([][]float64, m.Order.D+1)
	levels[0] = m.data.Values
	for i := 1; i <= m.Order.D; i++ {
		levels[i] = timeseries.New(levels[i-1]).Diff().Values
	}

	result := make([]float64, len(forecasts))
	copy(result, forecasts)
	for lvl := m.Order.D - 1; lvl >= 0; lvl-- {
		prev := levels[lvl][len(levels[lvl])-1]
		for j := range result {
			result[j] += prev
			prev = result[j]
		}
	}
	return result
}

// Summary describes a fitted model.
type Summary struct {
	Order        Order
	ARCoeffs     []float64
	MACoeffs     []float64
	Intercept    float64
	Variance     float64
	AIC          float64
	AICc         float64 // Corrected AIC
	BIC          float64
	LogLik       float64
	NObs         int
	LjungBox     *stats.LjungBoxResult // nil when too few residuals
	DurbinWatson float64
	ResidualLags []int // residual ACF lags outside the 95% white-noise bound
}

// Summary returns a summary of the fitted model, or nil before Fit.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	resid := timeseries.New(m.residuals)
	return &Summary{
		Order:        m.Order,
		ARCoeffs:     append([]float64(nil), m.ARCoeffs...),
		MACoeffs:     append([]float64(nil), m.MACoeffs...),
		Intercept:    m.Intercept,
		Variance:     m.Variance,
		AIC:          m.AIC,
		AICc:         m.AICc,
		BIC:          m.BIC,
		LogLik:       m.LogLik,
		NObs:         m.data.Len(),
		LjungBox:     stats.LjungBox(resid, summaryLags, m.Order.P+m.Order.Q),
		DurbinWatson: stats.DurbinWatson(m.residuals),
		ResidualLags: stats.SignificantLags(stats.ACF(resid, summaryLags), stats.ConfidenceBound(resid.Len())),
	}
}

func clamp(v, bound float64) float64 {
	return math.Max(-bound, math.Min(bound, v))
}

// yuleWalker estimates AR coefficients from autocorrelations with the
// Levinson-Durbin recursion.
func yuleWalker(acf []float64, order int) []float64 {
	if order <= 0 || len(acf) <= order {
		return nil
	}

	phi := make([]float64, order)
	phi[0] = acf[1]
	v := 1 - phi[0]*phi[0]

	for k := 1; k < order && v > 0; k++ {
		lambda := acf[k+1]
		for j := 0; j < k; j++ {
			lambda -= phi[j] * acf[k-j]
		}
		lambda /= v

		prev := append([]float64(nil), phi[:k]...)
		for j := 0; j < k; j++ {
			phi[j] = prev[j] - lambda*prev[k-1-j]
		}
		phi[k] = lambda
		v *= 1 - lambda*lambda
	}

	for i := range phi {
		phi[i] = clamp(phi[i], coeffBound)
	}
	return phi
}
