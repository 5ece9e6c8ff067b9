// Package metrics provides Prometheus metrics for the estimator
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeError labels requests that failed instead of producing an estimate.
const OutcomeError = "error"

// Recorder owns the estimator metrics and the registry they live in.
type Recorder struct {
	registry *prometheus.Registry

	outcomes           *prometheus.CounterVec
	extractionDuration prometheus.Histogram
	extractionFailures prometheus.Counter
}

// NewRecorder registers the estimator metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estimator_outcomes_total",
				Help: "Total number of analyzed drawings by outcome",
			},
			[]string{"outcome"},
		),
		extractionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "estimator_extraction_duration_seconds",
				Help:    "Time taken to extract text from uploaded drawings",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		extractionFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "estimator_extraction_failures_total",
				Help: "Total number of drawings whose text could not be extracted",
			},
		),
	}
	reg.MustRegister(
		r.outcomes,
		r.extractionDuration,
		r.extractionFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RecordOutcome counts one analyzed drawing.
func (r *Recorder) RecordOutcome(outcome string) {
	r.outcomes.WithLabelValues(outcome).Inc()
}

// RecordExtraction observes one text extraction.
func (r *Recorder) RecordExtraction(duration time.Duration, err error) {
	r.extractionDuration.Observe(duration.Seconds())
	if err != nil {
		r.extractionFailures.Inc()
	}
}

// Registry returns the registry holding the estimator metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
