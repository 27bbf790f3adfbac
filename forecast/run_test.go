package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/demandwise/demand"
)

func constants(v float64) []float64 {
	out := make([]float64, demand.Periods)
	for i := range out {
		out[i] = v
	}
	return out
}

func price(v float64) *float64 { return &v }

func TestNewRun_Drivers(t *testing.T) {
	run, err := NewRun(Input{
		Sales:         constants(100),
		MarketingCost: constants(50),
		Price:         price(20),
		Steps:         3,
	})
	require.NoError(t, err)

	assert.Equal(t, ModeDrivers, run.Mode)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, DefaultOrder, run.Order)
	for _, v := range run.Series.Values {
		assert.InDelta(t, 74.0, v, 1e-9)
	}
}

func TestNewRun_History(t *testing.T) {
	run, err := NewRun(Input{ProductName: "widget", Demand: monthlyDemand, Steps: 2})
	require.NoError(t, err)

	assert.Equal(t, ModeHistory, run.Mode)
	assert.Equal(t, monthlyDemand, run.Series.Values)

	run.Noisy = []float64{1, 2}
	periods := run.ForecastPeriods()
	require.Len(t, periods, 2)
	assert.Equal(t, run.Series.Timestamps[11].AddDate(0, 1, 0), periods[0])

	ext := run.Extended()
	assert.Equal(t, 14, ext.Len())
	assert.NoError(t, ext.Validate())
	assert.Equal(t, 0, run.Failed())
}

func TestNewRun_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		err  error
	}{
		{"empty", Input{Steps: 1}, ErrInputMode},
		{"both modes", Input{Demand: monthlyDemand, Sales: constants(1), Steps: 1}, ErrInputMode},
		{"missing price", Input{Sales: constants(1), MarketingCost: constants(1), Steps: 1}, ErrInputMode},
		{"short history", Input{Demand: monthlyDemand[:5], Steps: 1}, demand.ErrShape},
		{"short sales", Input{Sales: constants(1)[:3], MarketingCost: constants(1), Price: price(1)}, demand.ErrShape},
		{"negative steps", Input{Demand: monthlyDemand, Steps: -2}, ErrNegativeSteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRun(tt.in)
			assert.Nil(t, run)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
