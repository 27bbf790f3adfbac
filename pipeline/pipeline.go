// Package pipeline wires one forecast run end to end: series building,
// cached or fresh forecasting, display noise, chart rendering and storage.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/sartorproj/demandwise/cache"
	"github.com/sartorproj/demandwise/forecast"
	"github.com/sartorproj/demandwise/metrics"
	"github.com/sartorproj/demandwise/plot"
	"github.com/sartorproj/demandwise/store"
)

// Runner executes forecast runs. Nil Store, Cache and Metrics are skipped;
// an empty ChartKind disables rendering.
type Runner struct {
	Forecaster *forecast.Forecaster
	Noise      forecast.Noise
	Store      store.Store
	Cache      cache.Cache
	Metrics    *metrics.Recorder
	Logger     zerolog.Logger

	ChartDir  string
	ChartKind plot.Kind
	Frames    bool
}

// NewRunner returns a Runner with the ARIMA forecaster, default noise and
// no collaborators.
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{
		Forecaster: forecast.NewForecaster(logger),
		Noise:      forecast.DefaultNoise,
		Logger:     logger,
		ChartDir:   ".",
	}
}

// Run performs one forecast. Only input errors are returned; render, cache
// and store failures are logged and recorded on the returned Run.
func (r *Runner) Run(ctx context.Context, in forecast.Input) (*forecast.Run, error) {
	r.Metrics.RunStarted()

	run, err := forecast.NewRun(in)
	if err != nil {
		return nil, err
	}
	fc := r.forecaster()
	run.Order = fc.Order
	log := r.Logger.With().Str("run", run.ID).Str("mode", string(run.Mode)).Logger()

	key := forecast.CacheKey(run.Series.Values, run.Order, in.Steps)
	if out, ok := r.lookup(ctx, log, key, run.Series.Values); ok {
		run.Outcome = out
		run.Cached = true
	} else {
		out, err := fc.Forecast(run.Series.Values, in.Steps)
		if err != nil {
			return nil, err
		}
		run.Outcome = out
		r.remember(ctx, log, key, out)
	}
	run.Raw = run.Outcome.Predictions

	run.Noisy = r.Noise.Apply(run.Raw)
	log.Info().Int("requested", in.Steps).Int("predicted", len(run.Raw)).
		Int("failed", run.Failed()).Bool("cached", run.Cached).Msg("forecast complete")

	r.render(log, run)
	r.persist(ctx, log, run)
	return run, nil
}

func (r *Runner) forecaster() *forecast.Forecaster {
	fc := r.Forecaster
	if fc == nil {
		fc = forecast.NewForecaster(r.Logger)
	}
	if r.Metrics == nil {
		return fc
	}

	instrumented := *fc
	next := fc.OnStep
	instrumented.OnStep = func(res forecast.StepResult) {
		r.Metrics.Step(res.OK(), res.Duration)
		if next != nil {
			next(res)
		}
	}
	return &instrumented
}

func (r *Runner) lookup(ctx context.Context, log zerolog.Logger, key string, history []float64) (*forecast.Outcome, bool) {
	if r.Cache == nil {
		return nil, false
	}
	data, found, err := r.Cache.Get(ctx, key)
	var out *forecast.Outcome
	if err == nil && found {
		out, err = forecast.DecodeOutcome(data, history)
	}
	r.Metrics.CacheLookup(found && err == nil, err)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
		return nil, false
	}
	return out, found
}

func (r *Runner) remember(ctx context.Context, log zerolog.Logger, key string, out *forecast.Outcome) {
	if r.Cache == nil {
		return
	}
	data, err := forecast.EncodeOutcome(out)
	if err == nil {
		err = r.Cache.Set(ctx, key, data)
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache store failed")
	}
}

func (r *Runner) render(log zerolog.Logger, run *forecast.Run) {
	if r.ChartKind == "" {
		return
	}

	name := chartName(r.ChartKind, run.Input.ProductName)
	path, err := plot.SaveFile(filepath.Join(r.ChartDir, name+".png"), r.ChartKind, run.Series, run.Noisy)
	if err != nil {
		run.RenderErr = err
		log.Error().Err(err).Msg("chart rendering failed")
		return
	}
	run.ChartPath = path
	log.Info().Str("path", path).Msg("chart saved")

	if r.Frames {
		frames, err := plot.SaveFrames(filepath.Join(r.ChartDir, name+"_frames"), "frame", run.Series, run.Noisy)
		if err != nil {
			log.Error().Err(err).Msg("frame rendering failed")
			return
		}
		log.Info().Int("frames", len(frames)).Msg("frames saved")
	}
}

func (r *Runner) persist(ctx context.Context, log zerolog.Logger, run *forecast.Run) {
	if r.Store == nil {
		return
	}
	err := r.Store.Insert(ctx, Record(run))
	r.Metrics.StoreInsert(err)
	if err != nil {
		run.StoreErr = err
		log.Error().Err(err).Msg("storing forecast failed")
		return
	}
	log.Info().Msg("forecast stored")
}

// Record converts a run to its persisted form. Predictions are the values
// shown to the user, noise included.
func Record(run *forecast.Run) *store.Record {
	in := run.Input
	return &store.Record{
		ID:            run.ID,
		ProductName:   in.ProductName,
		Demand:        run.Series.Values,
		ForecastSteps: in.Steps,
		Predictions:   run.Noisy,
		Sales:         in.Sales,
		MarketingCost: in.MarketingCost,
		Price:         in.Price,
		GraphData:     run.ChartPath,
		Diagnostics:   diagnostics(run.Outcome),
		CreatedAt:     run.CreatedAt,
	}
}

func diagnostics(out *forecast.Outcome) *store.Diagnostics {
	if out == nil || out.Summary == nil {
		return nil
	}
	s := out.Summary
	return &store.Diagnostics{
		NObs:         s.NObs,
		AIC:          s.AIC,
		BIC:          s.BIC,
		LjungBoxP:    s.LjungBoxP,
		DurbinWatson: s.DurbinWatson,
		ResidualLags: s.ResidualLags,
	}
}

// chartName gives forecast_plot_<product> for named products and
// <kind>_plot otherwise.
func chartName(kind plot.Kind, product string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, strings.TrimSpace(product))
	if clean == "" {
		return string(kind) + "_plot"
	}
	return "forecast_plot_" + clean
}
