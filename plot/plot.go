// Package plot renders demand series and forecasts as PNG charts.
package plot

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sartorproj/demandwise/timeseries"
)

// Kind selects the chart type.
type Kind string

const (
	Bar  Kind = "bar"
	Line Kind = "line"
)

// Title is drawn on every chart.
const Title = "Demand Forecasting with ARIMA"

const (
	width      = 1000
	height     = 600
	barWidth   = 40
	barSpacing = 16
)

var (
	actualColor = drawing.ColorFromHex("118ab2")
	lineColor   = drawing.ColorFromHex("ef8a17")
	belowColor  = drawing.ColorFromHex("d62828").WithAlpha(102)
	aboveColor  = drawing.ColorFromHex("2a9d8f").WithAlpha(102)
)

// ParseKind parses "bar" or "line".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Bar, Line:
		return k, nil
	}
	return "", fmt.Errorf("unknown chart kind %q (want bar or line)", s)
}

// Render draws the series and its forecast as a PNG.
func Render(w io.Writer, kind Kind, series *timeseries.Series, predictions []float64) error {
	if series.Len() == 0 {
		return fmt.Errorf("plot: empty series")
	}
	if len(series.Timestamps) != series.Len() {
		return fmt.Errorf("plot: series has no periods")
	}

	switch kind {
	case Bar:
		return renderBar(w, series, predictions)
	case Line:
		return renderLine(w, series, predictions)
	}
	return fmt.Errorf("plot: unknown chart kind %q", kind)
}

// SaveFile renders into path, creating parent directories, and returns path.
func SaveFile(path string, kind Kind, series *timeseries.Series, predictions []float64) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := Render(&buf, kind, series, predictions); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// BarFrames renders one bar chart per animation frame. Frame k shows the
// history and the first k predictions, so there are len(predictions)+1 frames.
func BarFrames(series *timeseries.Series, predictions []float64) ([][]byte, error) {
	frames := make([][]byte, 0, len(predictions)+1)
	for k := 0; k <= len(predictions); k++ {
		var buf bytes.Buffer
		if err := Render(&buf, Bar, series, predictions[:k]); err != nil {
			return nil, fmt.Errorf("frame %d: %w", k, err)
		}
		frames = append(frames, buf.Bytes())
	}
	return frames, nil
}

// SaveFrames writes BarFrames to dir as <prefix>_000.png, <prefix>_001.png, ...
func SaveFrames(dir, prefix string, series *timeseries.Series, predictions []float64) ([]string, error) {
	frames, err := BarFrames(series, predictions)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, len(frames))
	for i, frame := range frames {
		paths[i] = filepath.Join(dir, fmt.Sprintf("%s_%03d.png", prefix, i))
		if err := os.WriteFile(paths[i], frame, 0o644); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func renderLine(w io.Writer, series *timeseries.Series, predictions []float64) error {
	graph := chart.Chart{
		Title:  Title,
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: chart.YAxis{
			Name:  "Demand",
			Range: valueRange(series.Values, predictions, false),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Actual Demand",
				XValues: series.Timestamps,
				YValues: series.Values,
				Style: chart.Style{
					StrokeColor: actualColor,
					StrokeWidth: 2,
					DotColor:    actualColor,
					DotWidth:    4,
				},
			},
		},
	}

	if len(predictions) > 0 {
		// Start the forecast line at the last observed point so the two connect.
		xs := append([]time.Time{series.Timestamps[series.Len()-1]}, series.NextPeriods(len(predictions))...)
		ys := append([]float64{series.Last()}, predictions...)
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    "Forecasted Demand",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor:     lineColor,
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
				DotColor:        lineColor,
				DotWidth:        4,
			},
		})
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

func renderBar(w io.Writer, series *timeseries.Series, predictions []float64) error {
	december := series.Last()
	bars := make([]chart.Value, 0, series.Len()+len(predictions))

	for i, v := range series.Values {
		bars = append(bars, chart.Value{
			Value: v,
			Label: series.Timestamps[i].Format("Jan"),
			Style: chart.Style{FillColor: actualColor, StrokeColor: actualColor, StrokeWidth: 1},
		})
	}
	for i, ts := range series.NextPeriods(len(predictions)) {
		c := barColor(predictions[i], december)
		bars = append(bars, chart.Value{
			Value: predictions[i],
			Label: ts.Format("Jan 06"),
			Style: chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1},
		})
	}

	bc := chart.BarChart{
		Title:      Title,
		Width:      max(width, len(bars)*(barWidth+barSpacing)+120),
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: chart.YAxis{
			Name:  "Demand",
			Range: valueRange(series.Values, predictions, true),
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

// barColor marks forecasts below the reference (December) demand red and
// the rest green.
func barColor(v, reference float64) drawing.Color {
	if v < reference {
		return belowColor
	}
	return aboveColor
}

// valueRange pads the value span by 10% so flat series still get a
// non-empty axis. Bar charts always include zero.
func valueRange(values, predictions []float64, includeZero bool) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, set := range [][]float64{values, predictions} {
		for _, v := range set {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if includeZero {
		lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	}

	pad := 0.1 * (hi - lo)
	if pad == 0 {
		pad = math.Max(1, 0.1*math.Abs(hi))
	}
	if includeZero && lo == 0 {
		return &chart.ContinuousRange{Min: 0, Max: hi + pad}
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
