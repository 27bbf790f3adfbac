// Package metrics counts forecast runs, steps, store inserts and cache
// lookups on a private Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns one registry and the collectors registered on it.
type Recorder struct {
	Registry *prometheus.Registry

	runs         prometheus.Counter
	steps        *prometheus.CounterVec
	fitDuration  prometheus.Histogram
	storeInserts *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// New builds a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "demandwise",
			Name:      "runs_total",
			Help:      "Forecast runs started.",
		}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demandwise",
			Name:      "forecast_steps_total",
			Help:      "Forecast steps by outcome.",
		}, []string{"outcome"}),
		fitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "demandwise",
			Name:      "fit_duration_seconds",
			Help:      "Time spent fitting one ARIMA step.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 100us to ~1.6s
		}),
		storeInserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demandwise",
			Name:      "store_inserts_total",
			Help:      "Run record inserts by status.",
		}, []string{"status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demandwise",
			Name:      "cache_lookups_total",
			Help:      "Prediction cache lookups by result.",
		}, []string{"result"}),
	}

	r.Registry.MustRegister(r.runs, r.steps, r.fitDuration, r.storeInserts, r.cacheLookups)
	return r
}

// RunStarted counts one run.
func (r *Recorder) RunStarted() {
	if r == nil {
		return
	}
	r.runs.Inc()
}

// Step records a forecast step and its fit time.
func (r *Recorder) Step(ok bool, d time.Duration) {
	if r == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	r.steps.WithLabelValues(outcome).Inc()
	r.fitDuration.Observe(d.Seconds())
}

// StoreInsert records the status of an insert.
func (r *Recorder) StoreInsert(err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.storeInserts.WithLabelValues(status).Inc()
}

// CacheLookup records a hit, miss or error.
func (r *Recorder) CacheLookup(hit bool, err error) {
	if r == nil {
		return
	}
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// WriteTextfile writes the registry in text exposition format, for the
// node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
