// Package timeseries provides the monthly series type shared by the builder,
// the ARIMA fitter and the chart renderer.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrLengthMismatch is returned when timestamps and values disagree in length.
	ErrLengthMismatch = errors.New("timestamps and values must have the same length")

	// ErrNotMonthly is returned by Validate when periods are not consecutive months.
	ErrNotMonthly = errors.New("periods must be consecutive month starts")
)

// Series represents a time series with timestamps and values.
// Timestamps may be empty for index-only series, which is how the fitter
// sees a working history.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates an index-only series from values. The slice is not copied.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, ErrLengthMismatch
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// NewMonthly creates a series with one month-start period per value,
// beginning at the month containing start.
func NewMonthly(start time.Time, values []float64) *Series {
	first := MonthStart(start)
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = first.AddDate(0, i, 0)
	}
	v := make([]float64, len(values))
	copy(v, values)
	return &Series{
		Timestamps: timestamps,
		Values:     v,
	}
}

// MonthStart truncates t to midnight on the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Validate checks that the series carries one timestamp per value and that
// the timestamps are consecutive month starts.
func (s *Series) Validate() error {
	if len(s.Timestamps) != len(s.Values) {
		return ErrLengthMismatch
	}
	for i, ts := range s.Timestamps {
		if !ts.Equal(MonthStart(ts)) {
			return fmt.Errorf("%w: period %d (%s) is not a month start", ErrNotMonthly, i, ts.Format("2006-01-02"))
		}
		if i == 0 {
			continue
		}
		if want := s.Timestamps[i-1].AddDate(0, 1, 0); !ts.Equal(want) {
			return fmt.Errorf("%w: period %d is %s, want %s", ErrNotMonthly, i, ts.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
	return nil
}

// NextPeriods returns the k month starts following the last period.
func (s *Series) NextPeriods(k int) []time.Time {
	if k <= 0 || len(s.Timestamps) == 0 {
		return nil
	}
	last := s.Timestamps[len(s.Timestamps)-1]
	out := make([]time.Time, k)
	for i := range out {
		out[i] = last.AddDate(0, i+1, 0)
	}
	return out
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Last returns the final value, or NaN for an empty series.
func (s *Series) Last() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return s.Values[len(s.Values)-1]
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	lo := s.Values[0]
	for _, v := range s.Values[1:] {
		lo = math.Min(lo, v)
	}
	return lo
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	hi := s.Values[0]
	for _, v := range s.Values[1:] {
		hi = math.Max(hi, v)
	}
	return hi
}

// Diff calculates the first difference of the series (d=1).
func (s *Series) Diff() *Series {
	return s.DiffN(1)
}

// DiffN calculates the lag-n difference of the series.
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-n)
	for i := n; i < len(s.Values); i++ {
		result[i-n] = s.Values[i] - s.Values[i-n]
	}

	var timestamps []time.Time
	if len(s.Timestamps) == len(s.Values) {
		timestamps = make([]time.Time, len(result))
		copy(timestamps, s.Timestamps[n:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_diff",
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Extend returns a copy of the series with values appended on the following
// monthly periods.
func (s *Series) Extend(values []float64) *Series {
	out := s.Copy()
	out.Values = append(out.Values, values...)
	if len(s.Timestamps) == len(s.Values) {
		out.Timestamps = append(out.Timestamps, s.NextPeriods(len(values))...)
	}
	return out
}
