package demand

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/demandwise/timeseries"
)

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestFromDrivers_ConstantInputs(t *testing.T) {
	s, err := FromDrivers(repeat(100, 12), repeat(50, 12), 20)
	require.NoError(t, err)

	require.Equal(t, Periods, s.Len())
	for i, v := range s.Values {
		assert.InDelta(t, 74.0, v, 1e-9, "period %d", i)
	}
}

func TestFromDrivers_Formula(t *testing.T) {
	sales := make([]float64, 12)
	marketing := make([]float64, 12)
	for i := range sales {
		sales[i] = 90 + 7*float64(i)
		marketing[i] = 40 - 1.5*float64(i)
	}
	price := 19.99

	s, err := FromDrivers(sales, marketing, price)
	require.NoError(t, err)

	for i := range sales {
		want := 0.6*sales[i] + 0.4*marketing[i] - 0.3*price
		assert.InDelta(t, want, s.Values[i], 1e-9, "period %d", i)
	}
}

func TestFromDrivers_LengthMismatch(t *testing.T) {
	_, err := FromDrivers(repeat(1, 11), repeat(1, 12), 1)
	assert.ErrorIs(t, err, ErrShape)

	_, err = FromDrivers(repeat(1, 12), repeat(1, 13), 1)
	assert.ErrorIs(t, err, ErrShape)
}

func TestFromHistory(t *testing.T) {
	in := []float64{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	s, err := FromHistory(in)
	require.NoError(t, err)

	assert.Equal(t, in, s.Values)
	in[0] = 99
	assert.Equal(t, 5.0, s.Values[0], "input must be copied")

	_, err = FromHistory(in[:3])
	assert.ErrorIs(t, err, ErrShape)
}

func TestSeriesPeriods(t *testing.T) {
	s, err := FromHistory(repeat(1, 12))
	require.NoError(t, err)

	require.NoError(t, s.Validate())
	assert.True(t, s.Timestamps[0].Equal(Start))
	for i := 1; i < s.Len(); i++ {
		assert.True(t, s.Timestamps[i].After(s.Timestamps[i-1]))
		assert.Equal(t, s.Timestamps[i-1].AddDate(0, 1, 0), s.Timestamps[i])
	}
	assert.Equal(t, time.December, s.Timestamps[11].Month())
}

func TestFromSeries(t *testing.T) {
	loaded := timeseries.New(repeat(3, 12))
	s, err := FromSeries(loaded)
	require.NoError(t, err)
	assert.NoError(t, s.Validate())
}

func TestParseList(t *testing.T) {
	values, err := ParseList(" 100, 120.5 ,-3,1e2")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 120.5, -3, 100}, values)

	_, err = ParseList("100,abc,3")
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = ParseList("1,,2")
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = ParseList("  ")
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber(" 20 ")
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)

	_, err = ParseNumber("twenty")
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = ParseNumber("NaN")
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = ParseNumber("-Inf")
	assert.ErrorIs(t, err, ErrNotNumeric)
}
