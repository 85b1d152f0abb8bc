package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects translation pipeline counters. Prometheus holds the
// exported series; atomic mirrors back the Snapshot method so callers can
// read counts without scraping the registry.
type Metrics struct {
	registry *prometheus.Registry

	translationsTotal   *prometheus.CounterVec
	fieldsTranslated    prometheus.Counter
	fieldsPreserved     prometheus.Counter
	fieldsSkipped       prometheus.Counter
	violationsPrevented prometheus.Counter
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	duration            prometheus.Histogram

	translated  atomic.Int64
	preserved   atomic.Int64
	skipped     atomic.Int64
	violations  atomic.Int64
	runs        atomic.Int64
	fallbacks   atomic.Int64
	hitCount    atomic.Int64
	missCount   atomic.Int64
}

// Snapshot is a point-in-time view of the pipeline counters.
type Snapshot struct {
	Runs                int64 `json:"runs"`
	Fallbacks           int64 `json:"fallbacks"`
	FieldsTranslated    int64 `json:"fields_translated"`
	FieldsPreserved     int64 `json:"fields_preserved"`
	FieldsSkipped       int64 `json:"fields_skipped"`
	ViolationsPrevented int64 `json:"violations_prevented"`
	CacheHits           int64 `json:"cache_hits"`
	CacheMisses         int64 `json:"cache_misses"`
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		translationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medtranslate",
			Name:      "translations_total",
			Help:      "Summary translation runs by outcome status",
		}, []string{"status"}),
		fieldsTranslated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "medtranslate",
			Name:      "fields_translated_total",
			Help:      "Fields sent through the translation engine",
		}),
		fieldsPreserved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "medtranslate",
			Name:      "fields_preserved_total",
			Help:      "Fields kept in the source language",
		}),
		fieldsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "medtranslate",
			Name:      "fields_skipped_total",
			Help:      "Translatable fields left untranslated after engine failures",
		}),
		violationsPrevented: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "medtranslate",
			Name:      "violations_prevented_total",
			Help:      "Restoration failures caught before output left the service",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "medtranslate",
			Name:      "cache_hits_total",
			Help:      "Translation cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "medtranslate",
			Name:      "cache_misses_total",
			Help:      "Translation cache misses",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "medtranslate",
			Name:      "translation_duration_seconds",
			Help:      "End-to-end summary translation duration",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.translationsTotal,
		m.fieldsTranslated,
		m.fieldsPreserved,
		m.fieldsSkipped,
		m.violationsPrevented,
		m.cacheHits,
		m.cacheMisses,
		m.duration,
	)

	return m
}

// RecordRun records a finished summary run with its outcome status.
func (m *Metrics) RecordRun(status string, seconds float64) {
	m.translationsTotal.WithLabelValues(status).Inc()
	m.duration.Observe(seconds)
	m.runs.Add(1)
	if status == "fallback" {
		m.fallbacks.Add(1)
	}
}

// AddFieldsTranslated increments the translated-field counter.
func (m *Metrics) AddFieldsTranslated(n int) {
	m.fieldsTranslated.Add(float64(n))
	m.translated.Add(int64(n))
}

// AddFieldsPreserved increments the preserved-field counter.
func (m *Metrics) AddFieldsPreserved(n int) {
	m.fieldsPreserved.Add(float64(n))
	m.preserved.Add(int64(n))
}

// AddFieldsSkipped increments the skipped-field counter.
func (m *Metrics) AddFieldsSkipped(n int) {
	m.fieldsSkipped.Add(float64(n))
	m.skipped.Add(int64(n))
}

// RecordViolationPrevented counts a restoration failure caught by verification.
func (m *Metrics) RecordViolationPrevented() {
	m.violationsPrevented.Inc()
	m.violations.Add(1)
}

// RecordCacheHit counts a translation served from cache.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Inc()
	m.hitCount.Add(1)
}

// RecordCacheMiss counts a translation that had to call the engine.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Inc()
	m.missCount.Add(1)
}

// Snapshot returns current counter values.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Runs:                m.runs.Load(),
		Fallbacks:           m.fallbacks.Load(),
		FieldsTranslated:    m.translated.Load(),
		FieldsPreserved:     m.preserved.Load(),
		FieldsSkipped:       m.skipped.Load(),
		ViolationsPrevented: m.violations.Load(),
		CacheHits:           m.hitCount.Load(),
		CacheMisses:         m.missCount.Load(),
	}
}

// Handler returns an HTTP handler exposing the registry in Prometheus format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
