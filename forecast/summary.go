package forecast

import (
	"math"

	"github.com/sartorproj/demandwise/arima"
)

// FitSummary is the part of an arima.Summary kept with a run. Statistics
// that are undefined for the fit (NaN or infinite) are nil.
type FitSummary struct {
	NObs         int      `json:"n_obs"`
	AIC          *float64 `json:"aic,omitempty"`
	BIC          *float64 `json:"bic,omitempty"`
	LjungBoxP    *float64 `json:"ljung_box_p,omitempty"`
	DurbinWatson *float64 `json:"durbin_watson,omitempty"`
	ResidualLags []int    `json:"residual_lags,omitempty"`
}

// NewFitSummary converts s. It returns nil for a nil summary.
func NewFitSummary(s *arima.Summary) *FitSummary {
	if s == nil {
		return nil
	}
	fs := &FitSummary{
		NObs:         s.NObs,
		AIC:          finite(s.AIC),
		BIC:          finite(s.BIC),
		DurbinWatson: finite(s.DurbinWatson),
		ResidualLags: s.ResidualLags,
	}
	if s.LjungBox != nil {
		fs.LjungBoxP = finite(s.LjungBox.PValue)
	}
	return fs
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
