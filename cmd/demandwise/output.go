package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sartorproj/demandwise/forecast"
)

// printSummary reports diagnostics of the last fit.
func printSummary(w io.Writer, s *forecast.FitSummary) {
	if s == nil {
		return
	}
	fmt.Fprintf(w, "Last fit: %d obs, AIC=%s, BIC=%s, Ljung-Box p=%s, Durbin-Watson=%s\n",
		s.NObs, stat(s.AIC), stat(s.BIC), stat(s.LjungBoxP), stat(s.DurbinWatson))
	if len(s.ResidualLags) > 0 {
		fmt.Fprintf(w, "   Residual autocorrelation at lags %v\n", s.ResidualLags)
	}
}

func stat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}

func printRun(w io.Writer, run *forecast.Run) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	title := "Demand forecast"
	if run.Input.ProductName != "" {
		title += " - " + run.Input.ProductName
	}
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "Run %s, ARIMA%s, %s input\n", run.ID, run.Order, run.Mode)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "\n%d observations (%.2f to %.2f)\n", run.Series.Len(), run.Series.Min(), run.Series.Max())
	fmt.Fprintf(w, "\n%-10s %12s\n", "Month", "Demand")
	fmt.Fprintln(w, strings.Repeat("-", 23))
	for i, v := range run.Series.Values {
		fmt.Fprintf(w, "%-10s %12.2f\n", run.Series.Timestamps[i].Format("Jan 2006"), v)
	}

	fmt.Fprintf(w, "\n%-10s %12s %12s\n", "Month", "Forecast", "Raw")
	fmt.Fprintln(w, strings.Repeat("-", 36))
	periods := run.ForecastPeriods()
	for i, v := range run.Noisy {
		fmt.Fprintf(w, "%-10s %12.2f %12.2f\n", periods[i].Format("Jan 2006"), v, run.Raw[i])
	}
	if len(run.Noisy) == 0 {
		fmt.Fprintln(w, "(no predictions)")
	}

	fmt.Fprintln(w)
	if run.Cached {
		fmt.Fprintln(w, "Predictions served from cache")
	}
	if run.Outcome != nil {
		for _, s := range run.Outcome.Failures() {
			fmt.Fprintf(w, "Step %d skipped: %v\n", s.Step+1, s.Err)
		}
		printSummary(w, run.Outcome.Summary)
	}

	switch {
	case run.RenderErr != nil:
		fmt.Fprintf(w, "Chart: failed (%v)\n", run.RenderErr)
	case run.ChartPath != "":
		fmt.Fprintf(w, "Chart: %s\n", run.ChartPath)
	}
	if run.StoreErr != nil {
		fmt.Fprintf(w, "Storage: failed (%v)\n", run.StoreErr)
	} else {
		fmt.Fprintln(w, "Storage: ok")
	}
}
