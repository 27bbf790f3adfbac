package timeseries

import (
	"errors"
	"math"
	"testing"
	"time"
)

var jan2023 = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}
	if len(s.Timestamps) != 0 {
		t.Errorf("Expected index-only series, got %d timestamps", len(s.Timestamps))
	}
}

func TestNewWithTimestampsMismatch(t *testing.T) {
	_, err := NewWithTimestamps([]time.Time{jan2023}, []float64{1, 2})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestNewMonthly(t *testing.T) {
	values := make([]float64, 12)
	s := NewMonthly(jan2023.Add(36*time.Hour), values)

	if s.Len() != 12 {
		t.Fatalf("Expected 12 periods, got %d", s.Len())
	}
	if !s.Timestamps[0].Equal(jan2023) {
		t.Errorf("Expected first period %v, got %v", jan2023, s.Timestamps[0])
	}
	for i := 1; i < s.Len(); i++ {
		if !s.Timestamps[i].After(s.Timestamps[i-1]) {
			t.Errorf("Period %d not after period %d", i, i-1)
		}
		if s.Timestamps[i].Day() != 1 {
			t.Errorf("Period %d is not a month start: %v", i, s.Timestamps[i])
		}
	}
	if s.Timestamps[11].Month() != time.December {
		t.Errorf("Expected last period in December, got %v", s.Timestamps[11].Month())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	values[0] = 42
	if s.Values[0] != 0 {
		t.Error("NewMonthly should copy its input")
	}
}

func TestValidateGap(t *testing.T) {
	s := NewMonthly(jan2023, []float64{1, 2, 3})
	s.Timestamps[2] = s.Timestamps[2].AddDate(0, 1, 0)

	if err := s.Validate(); !errors.Is(err, ErrNotMonthly) {
		t.Errorf("Expected ErrNotMonthly, got %v", err)
	}
}

func TestNextPeriods(t *testing.T) {
	s := NewMonthly(jan2023, make([]float64, 12))
	next := s.NextPeriods(3)

	expected := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, ts := range expected {
		if !next[i].Equal(ts) {
			t.Errorf("Period %d: expected %v, got %v", i, ts, next[i])
		}
	}

	if New([]float64{1}).NextPeriods(2) != nil {
		t.Error("Index-only series has no next periods")
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(tt.values).Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestVarianceStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	if math.Abs(s.Variance()-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, s.Variance())
	}
	if math.Abs(s.Std()-math.Sqrt(expected)) > 1e-10 {
		t.Errorf("Expected std %f, got %f", math.Sqrt(expected), s.Std())
	}
}

func TestMinMaxLast(t *testing.T) {
	s := New([]float64{5, 2, 8, 1, 9, 3})

	if s.Min() != 1 {
		t.Errorf("Expected min 1, got %f", s.Min())
	}
	if s.Max() != 9 {
		t.Errorf("Expected max 9, got %f", s.Max())
	}
	if s.Last() != 3 {
		t.Errorf("Expected last 3, got %f", s.Last())
	}
	if !math.IsNaN(New(nil).Last()) {
		t.Error("Expected NaN for empty series")
	}
}

func TestDiff(t *testing.T) {
	s := NewMonthly(jan2023, []float64{1, 3, 6, 10, 15})
	diff := s.Diff()

	expected := []float64{2, 3, 4, 5}
	if len(diff.Values) != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), len(diff.Values))
	}
	for i, v := range diff.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
	if !diff.Timestamps[0].Equal(s.Timestamps[1]) {
		t.Errorf("Differenced series should start at the second period")
	}
}

func TestDiffN(t *testing.T) {
	diff2 := New([]float64{1, 3, 6, 10, 15, 21}).DiffN(2)

	expected := []float64{5, 7, 9, 11}
	if len(diff2.Values) != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), len(diff2.Values))
	}
	for i, v := range diff2.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}

	if New([]float64{1}).Diff().Len() != 0 {
		t.Error("Differencing a single value should be empty")
	}
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3})
	copied := s.Copy()

	s.Values[0] = 100

	if copied.Values[0] != 1 {
		t.Errorf("Copy was modified when original changed")
	}
}

func TestExtend(t *testing.T) {
	s := NewMonthly(jan2023, make([]float64, 12))
	ext := s.Extend([]float64{7, 8})

	if ext.Len() != 14 || s.Len() != 12 {
		t.Fatalf("Expected 14 and 12 values, got %d and %d", ext.Len(), s.Len())
	}
	if err := ext.Validate(); err != nil {
		t.Errorf("Extended series should stay monthly: %v", err)
	}
	if ext.Values[13] != 8 {
		t.Errorf("Expected appended value 8, got %f", ext.Values[13])
	}
}
