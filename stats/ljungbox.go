package stats

import (
	"math"

	"github.com/sartorproj/demandwise/timeseries"
)

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // Degrees of freedom
}

// LjungBox performs the Ljung-Box test for autocorrelation in residuals.
// fitdf is the number of estimated ARMA parameters (p + q). Series shorter
// than six points, or without variance, yield nil.
func LjungBox(series *timeseries.Series, lags, fitdf int) *LjungBoxResult {
	n := series.Len()
	if n < 6 || lags < 1 {
		return nil
	}
	lags = min(lags, n-1)

	acf := ACF(series, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += acf[k] * acf[k] / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := max(lags-fitdf, 1)

	return &LjungBoxResult{
		Statistic: q,
		PValue:    1 - chiSquaredCDF(q, dof),
		Lags:      lags,
		DOF:       dof,
	}
}

// DurbinWatson returns the Durbin-Watson statistic of the residuals, or NaN
// when it is undefined. Values near 2 mean no first-order autocorrelation.
func DurbinWatson(residuals []float64) float64 {
	if len(residuals) < 2 {
		return math.NaN()
	}

	num, den := 0.0, residuals[0]*residuals[0]
	for i := 1; i < len(residuals); i++ {
		d := residuals[i] - residuals[i-1]
		num += d * d
		den += residuals[i] * residuals[i]
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// chiSquaredCDF is the regularized lower incomplete gamma P(k/2, x/2).
func chiSquaredCDF(x float64, k int) float64 {
	if x <= 0 {
		return 0
	}
	a, z := float64(k)/2, x/2
	lg, _ := math.Lgamma(a)
	prefix := math.Exp(-z + a*math.Log(z) - lg)

	const (
		maxIter = 200
		eps     = 1e-12
		tiny    = 1e-300
	)

	if z < a+1 {
		// series expansion
		term := 1 / a
		sum := term
		for n := 1; n < maxIter; n++ {
			term *= z / (a + float64(n))
			sum += term
			if math.Abs(term) < math.Abs(sum)*eps {
				break
			}
		}
		return math.Min(1, sum*prefix)
	}

	// Lentz continued fraction for the upper tail
	b := z + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d
	for i := 1; i < maxIter; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		delta := d * c
		h *= delta
		if math.Abs(delta-1) < eps {
			break
		}
	}
	return math.Max(0, 1-prefix*h)
}
