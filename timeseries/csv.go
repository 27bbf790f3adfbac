package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoData is returned when a CSV source holds no data rows.
var ErrNoData = errors.New("no data rows found in CSV")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for periods (optional)
	ValueColumn string // Column name for values (default: "demand")
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:  "date",
		ValueColumn: "demand",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// LoadCSV loads a series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a series from an io.Reader. Unlike a lenient
// loader, any unparsable value is an error: user-supplied history must be
// rejected before forecasting starts.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	valueIdx, dateIdx := 0, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err == io.EOF {
			return nil, ErrNoData
		}
		if err != nil {
			return nil, err
		}
		valueIdx = -1
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case strings.EqualFold(h, opts.ValueColumn):
				valueIdx = i
			case opts.DateColumn != "" && strings.EqualFold(h, opts.DateColumn):
				dateIdx = i
			}
		}
		if valueIdx == -1 {
			return nil, fmt.Errorf("value column %q not found in header", opts.ValueColumn)
		}
	} else if opts.DateColumn != "" {
		dateIdx, valueIdx = 0, 1
	}

	var values []float64
	var timestamps []time.Time

	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if valueIdx >= len(record) {
			return nil, fmt.Errorf("row %d: missing value column", row)
		}

		raw := strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: value %q is not numeric", row, raw)
		}
		values = append(values, val)

		if dateIdx >= 0 && dateIdx < len(record) {
			ts, err := time.Parse(opts.DateFormat, strings.TrimSpace(record[dateIdx]))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			timestamps = append(timestamps, ts)
		}
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}
	if len(timestamps) == len(values) {
		return NewWithTimestamps(timestamps, values)
	}
	return New(values), nil
}

// WriteCSV writes the series as "date,<valueColumn>" rows. Index-only series
// use a 1-based "index" column instead of dates.
func WriteCSV(w io.Writer, series *Series, valueColumn string) error {
	writer := csv.NewWriter(w)

	dated := len(series.Timestamps) == len(series.Values)
	first := "index"
	if dated {
		first = "date"
	}
	if err := writer.Write([]string{first, valueColumn}); err != nil {
		return err
	}

	for i, v := range series.Values {
		key := strconv.Itoa(i + 1)
		if dated {
			key = series.Timestamps[i].Format("2006-01-02")
		}
		if err := writer.Write([]string{key, strconv.FormatFloat(v, 'f', -1, 64)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes the series to a file, see WriteCSV.
func SaveCSV(series *Series, filename, valueColumn string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, series, valueColumn); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
