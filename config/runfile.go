package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/demandwise/forecast"
)

// RunFile describes one forecast run in YAML. Either the three driver fields
// or demand is set:
//
//	product_name: widget
//	demand: [74, 74, 74, 74, 74, 74, 74, 74, 74, 74, 74, 74]
//	forecast_steps: 6
type RunFile struct {
	ProductName   string    `yaml:"product_name"`
	Sales         []float64 `yaml:"sales"`
	MarketingCost []float64 `yaml:"marketing_cost"`
	Price         *float64  `yaml:"price"`
	Demand        []float64 `yaml:"demand"`
	ForecastSteps int       `yaml:"forecast_steps"`
}

// LoadRunFile parses a YAML run file.
func LoadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRunFile(data)
}

// ParseRunFile parses YAML run file contents.
func ParseRunFile(data []byte) (*RunFile, error) {
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse run file: %w", err)
	}
	return &rf, nil
}

// Input converts the run file to a forecast input.
func (rf *RunFile) Input() forecast.Input {
	return forecast.Input{
		ProductName:   rf.ProductName,
		Sales:         rf.Sales,
		MarketingCost: rf.MarketingCost,
		Price:         rf.Price,
		Demand:        rf.Demand,
		Steps:         rf.ForecastSteps,
	}
}
