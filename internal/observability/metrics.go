// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for ADS requests.
const (
	OutcomeOK        = "ok"
	OutcomeTransient = "transient"
	OutcomeAuth      = "auth"
	OutcomeCancelled = "cancelled"
)

// Metrics holds the counters for one CLI run. Every Metrics owns its own
// registry, so several can coexist in one process (tests, library use).
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts ADS bulk requests, labeled by outcome.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes ADS request latency in seconds.
	RequestDuration prometheus.Histogram

	// BatchFailures counts batches lost to transient errors.
	BatchFailures prometheus.Counter

	// PapersFound counts records returned by ADS.
	PapersFound prometheus.Counter

	// PapersNotFound counts requested bibcodes without a record.
	PapersNotFound prometheus.Counter

	// RecordsSkipped counts response documents dropped by validation.
	RecordsSkipped prometheus.Counter

	// RateLimitRemaining is the tightest X-RateLimit-Remaining observed.
	RateLimitRemaining prometheus.Gauge

	// WordsCounted counts tokens fed to the frequency table.
	WordsCounted prometheus.Counter
}

// NewMetrics creates and registers all metrics under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ads_requests_total",
			Help:      "ADS bulk requests issued, by outcome",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ads_request_duration_seconds",
			Help:      "ADS request latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		BatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_failures_total",
			Help:      "Batches recorded as not found after a transient error",
		}),
		PapersFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "papers_found_total",
			Help:      "Paper records retrieved from ADS",
		}),
		PapersNotFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "papers_not_found_total",
			Help:      "Requested bibcodes with no record",
		}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "ADS documents dropped because a mandatory field was missing",
		}),
		RateLimitRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ratelimit_remaining",
			Help:      "Lowest X-RateLimit-Remaining value seen during the run",
		}),
		WordsCounted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_counted_total",
			Help:      "Tokens counted by the text-analysis pipeline",
		}),
	}
	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.BatchFailures,
		m.PapersFound,
		m.PapersNotFound,
		m.RecordsSkipped,
		m.RateLimitRemaining,
		m.WordsCounted,
	)
	return m
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest records one ADS request and its latency.
func (m *Metrics) RecordRequest(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(outcome).Inc()
	m.RequestDuration.Observe(seconds)
}

// RecordBatchFailure counts one batch lost to a transient error.
func (m *Metrics) RecordBatchFailure() {
	if m == nil {
		return
	}
	m.BatchFailures.Inc()
}

// RecordPapers adds found, not-found, and skipped totals.
func (m *Metrics) RecordPapers(found, notFound, skipped int) {
	if m == nil {
		return
	}
	m.PapersFound.Add(float64(found))
	m.PapersNotFound.Add(float64(notFound))
	m.RecordsSkipped.Add(float64(skipped))
}

// RecordRateLimit sets the remaining-quota gauge.
func (m *Metrics) RecordRateLimit(remaining int) {
	if m == nil {
		return
	}
	m.RateLimitRemaining.Set(float64(remaining))
}

// RecordWords adds n counted tokens.
func (m *Metrics) RecordWords(n int) {
	if m == nil {
		return
	}
	m.WordsCounted.Add(float64(n))
}

// WriteTextfile writes the registry in Prometheus text format, suitable for
// the node-exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
