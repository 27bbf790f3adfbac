package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sartorproj/demandwise/config"
	"github.com/sartorproj/demandwise/demand"
	"github.com/sartorproj/demandwise/forecast"
	"github.com/sartorproj/demandwise/timeseries"
)

func newDriversCmd(a *app) *cobra.Command {
	var product, sales, marketing, price string
	var steps int

	cmd := &cobra.Command{
		Use:   "drivers",
		Short: "Derive demand from twelve months of sales, marketing cost and a price",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := demand.ParseList(sales)
			if err != nil {
				return fmt.Errorf("sales: %w", err)
			}
			m, err := demand.ParseList(marketing)
			if err != nil {
				return fmt.Errorf("marketing cost: %w", err)
			}
			p, err := demand.ParseNumber(price)
			if err != nil {
				return fmt.Errorf("price: %w", err)
			}
			return a.execute(cmd.Context(), forecast.Input{
				ProductName:   product,
				Sales:         s,
				MarketingCost: m,
				Price:         &p,
				Steps:         steps,
			})
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "product name")
	cmd.Flags().StringVar(&sales, "sales", "", "12 comma-separated monthly sales values")
	cmd.Flags().StringVar(&marketing, "marketing-cost", "", "12 comma-separated monthly marketing costs")
	cmd.Flags().StringVar(&price, "price", "", "unit price")
	cmd.Flags().IntVar(&steps, "steps", 6, "months to forecast")
	_ = cmd.MarkFlagRequired("sales")
	_ = cmd.MarkFlagRequired("marketing-cost")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var product, values, file string
	var steps int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Forecast from twelve months of demand history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var history []float64
			switch {
			case values != "" && file != "":
				return fmt.Errorf("use either --demand or --demand-file")
			case file != "":
				loaded, err := timeseries.LoadCSV(file, nil)
				if err != nil {
					return fmt.Errorf("demand file: %w", err)
				}
				series, err := demand.FromSeries(loaded)
				if err != nil {
					return fmt.Errorf("demand file: %w", err)
				}
				history = series.Values
			default:
				parsed, err := demand.ParseList(values)
				if err != nil {
					return fmt.Errorf("demand: %w", err)
				}
				history = parsed
			}
			return a.execute(cmd.Context(), forecast.Input{
				ProductName: product,
				Demand:      history,
				Steps:       steps,
			})
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "product name")
	cmd.Flags().StringVar(&values, "demand", "", "12 comma-separated monthly demand values")
	cmd.Flags().StringVar(&file, "demand-file", "", "CSV file with date,demand columns")
	cmd.Flags().IntVar(&steps, "steps", 6, "months to forecast")
	return cmd
}

func newRunFileCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Forecast from a YAML run file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rf, err := config.LoadRunFile(file)
			if err != nil {
				return err
			}
			return a.execute(cmd.Context(), rf.Input())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "run file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
