package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sartorproj/demandwise/cache"
	"github.com/sartorproj/demandwise/config"
	"github.com/sartorproj/demandwise/forecast"
	"github.com/sartorproj/demandwise/metrics"
	"github.com/sartorproj/demandwise/pipeline"
	"github.com/sartorproj/demandwise/plot"
	"github.com/sartorproj/demandwise/store"
	"github.com/sartorproj/demandwise/timeseries"
)

// app holds flag values and the state built from them before a command runs.
type app struct {
	envFile     string
	chart       string
	chartDir    string
	frames      bool
	storeDriver string
	csvOut      string
	metricsFile string

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "demandwise",
		Short:         "Forecast monthly product demand with ARIMA",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.envFile, "env-file", ".env", "optional .env file with DEMANDWISE_* settings")
	f.StringVar(&a.chart, "chart", "", "chart kind: bar or line (default from DEMANDWISE_CHART)")
	f.StringVar(&a.chartDir, "chart-dir", "", "directory for chart images (default from DEMANDWISE_CHART_DIR)")
	f.BoolVar(&a.frames, "frames", false, "also write one bar chart per forecast step")
	f.StringVar(&a.storeDriver, "store", "", "mongo, postgres, memory or none (default from DEMANDWISE_STORE)")
	f.StringVar(&a.csvOut, "csv-out", "", "write history plus forecast to this CSV file")
	f.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	root.AddCommand(newDriversCmd(a), newHistoryCmd(a), newRunFileCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.chart != "" {
		cfg.ChartKind = a.chart
	}
	if a.chartDir != "" {
		cfg.ChartDir = a.chartDir
	}
	if a.storeDriver != "" {
		cfg.StoreDriver = a.storeDriver
	}
	if a.metricsFile != "" {
		cfg.MetricsFile = a.metricsFile
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// execute runs one forecast and prints it.
func (a *app) execute(ctx context.Context, in forecast.Input) error {
	kind, err := plot.ParseKind(a.cfg.ChartKind)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(a.logger)
	runner.ChartDir = a.cfg.ChartDir
	runner.ChartKind = kind
	runner.Frames = a.frames
	runner.Metrics = metrics.New()

	st := a.openStore(ctx)
	defer st.Close(context.Background())
	runner.Store = st

	if a.cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(a.cfg.RedisAddr, a.cfg.CacheTTL)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			a.logger.Warn().Err(err).Str("addr", a.cfg.RedisAddr).Msg("cache unavailable, fitting every run")
		} else {
			runner.Cache = rc
		}
	}

	run, err := runner.Run(ctx, in)
	if err != nil {
		return err
	}
	printRun(os.Stdout, run)

	if a.csvOut != "" {
		if err := timeseries.SaveCSV(run.Extended(), a.csvOut, "demand"); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Printf("CSV: %s\n", a.csvOut)
	}
	if a.cfg.MetricsFile != "" {
		if err := runner.Metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			a.logger.Error().Err(err).Str("path", a.cfg.MetricsFile).Msg("writing metrics failed")
		}
	}
	return nil
}

// openStore connects the configured store. A store that cannot be opened is
// replaced by one whose inserts report the connection error, so the run
// still completes and shows the storage failure.
func (a *app) openStore(ctx context.Context) store.Store {
	cfg := a.cfg
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout+time.Second)
	defer cancel()

	var (
		st  store.Store
		err error
	)
	switch cfg.StoreDriver {
	case "none", "":
		return store.Nop{}
	case "memory":
		return store.NewMemoryStore()
	case "mongo":
		st, err = store.OpenMongo(ctx, store.MongoOptions{
			URI:            cfg.MongoURI,
			Database:       cfg.Database,
			Collection:     cfg.Collection,
			ConnectTimeout: cfg.ConnectTimeout,
			Logger:         a.logger,
		})
	case "postgres":
		st, err = store.OpenPostgres(ctx, cfg.PostgresDSN, cfg.Collection, cfg.ConnectTimeout, a.logger)
	default:
		err = fmt.Errorf("unknown store %q", cfg.StoreDriver)
	}
	if err != nil {
		a.logger.Error().Err(err).Str("store", cfg.StoreDriver).Msg("store unavailable")
		return unavailable{err: err}
	}
	return st
}

type unavailable struct{ err error }

func (u unavailable) Insert(context.Context, *store.Record) error { return u.err }
func (u unavailable) Close(context.Context) error                 { return nil }
