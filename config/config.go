// Package config loads DemandWise settings from the environment, an optional
// .env file and YAML run files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds process-wide settings. Every field has a default, so an empty
// environment yields a usable configuration.
type Config struct {
	StoreDriver    string        `env:"DEMANDWISE_STORE,default=mongo"`
	MongoURI       string        `env:"DEMANDWISE_MONGO_URI,default=mongodb://127.0.0.1:27017"`
	Database       string        `env:"DEMANDWISE_DATABASE,default=Demand"`
	Collection     string        `env:"DEMANDWISE_COLLECTION,default=demand_forecasting"`
	PostgresDSN    string        `env:"DEMANDWISE_POSTGRES_DSN"`
	ConnectTimeout time.Duration `env:"DEMANDWISE_CONNECT_TIMEOUT,default=10s"`

	RedisAddr string        `env:"DEMANDWISE_REDIS_ADDR"`
	CacheTTL  time.Duration `env:"DEMANDWISE_CACHE_TTL,default=1h"`

	ChartDir  string `env:"DEMANDWISE_CHART_DIR,default=."`
	ChartKind string `env:"DEMANDWISE_CHART,default=line"`

	MetricsFile string `env:"DEMANDWISE_METRICS_FILE"`

	LogLevel  string `env:"DEMANDWISE_LOG_LEVEL,default=info"`
	LogFormat string `env:"DEMANDWISE_LOG_FORMAT,default=console"`
}

// Load reads the given .env files, when present, and decodes the
// environment. Missing env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}

// NewLogger builds a zerolog logger writing to w. Format "json" gives JSON
// lines; anything else a console writer.
func NewLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if !strings.EqualFold(format, "json") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
