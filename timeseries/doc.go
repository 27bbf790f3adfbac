// Package timeseries provides time series data structures and utilities.
//
// A Series pairs values with optional timestamps. Monthly series are built
// with NewMonthly and keep one month-start period per value:
//
//	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
//	series := timeseries.NewMonthly(start, values)
//	if err := series.Validate(); err != nil {
//	    // periods are not consecutive month starts
//	}
//
// Index-only series, as used for a working history during fitting, come from
// New:
//
//	history := timeseries.New([]float64{100, 102, 105, 103})
//
// # Transformations
//
//	diff := series.Diff()           // First difference
//	diff2 := series.DiffN(2)        // Lag-2 difference
//	next := series.NextPeriods(6)   // Six month starts after the last period
//	full := series.Extend(forecast) // History plus forecast on following months
//
// # CSV
//
// History files use a "date,demand" layout by default:
//
//	series, err := timeseries.LoadCSV("history.csv", nil)
//	err = timeseries.SaveCSV(full, "forecast.csv", "demand")
package timeseries
