// Package metrics exposes prometheus collectors describing solver runs.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeLabel = "outcome"
	Solved       = "solved"
	Unsolved     = "unsolved"
)

// Recorder holds the run collectors. A nil *Recorder ignores every call.
type Recorder struct {
	registry *prometheus.Registry

	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	gap      prometheus.Histogram
}

// NewRecorder creates a Recorder with its collectors registered on a private
// registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genetic_maxsat_runs_total",
				Help: "Number of completed solver runs",
			},
			[]string{OutcomeLabel},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "genetic_maxsat_run_duration_seconds",
				Help:    "Wall time of a solver run",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
		gap: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "genetic_maxsat_optimality_gap",
				Help:    "Relative distance of a solved run below the exact optimum",
				Buckets: prometheus.LinearBuckets(0, 0.05, 11),
			},
		),
	}
	r.registry.MustRegister(r.runs, r.duration, r.gap)
	return r
}

// Registry returns the registry the collectors live in.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRun records one finished run.
func (r *Recorder) ObserveRun(solved bool, d time.Duration) {
	if r == nil {
		return
	}
	outcome := Unsolved
	if solved {
		outcome = Solved
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.duration.Observe(d.Seconds())
}

// ObserveGap records the optimality gap of a solved run.
func (r *Recorder) ObserveGap(gap float64) {
	if r == nil {
		return
	}
	r.gap.Observe(gap)
}

// WriteFile writes the current values in the text exposition format, for
// pickup by the node exporter textfile collector.
func (r *Recorder) WriteFile(path string) error {
	if r == nil {
		return nil
	}
	return errors.Wrapf(prometheus.WriteToTextfile(path, r.registry), "writing metrics to %s", path)
}
