// Package metrics defines the Prometheus collectors for index builds and
// retrievals and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors. A nil *Metrics records nothing.
type Metrics struct {
	RetrievalsTotal   *prometheus.CounterVec
	RetrieveDuration  *prometheus.HistogramVec
	RetrieveResults   prometheus.Histogram
	IndexBuildSeconds *prometheus.HistogramVec
	DictionaryWords   prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg uses a
// fresh private registry, which keeps tests from colliding on the default one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		RetrievalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordmatch_retrievals_total",
				Help: "Total retrievals by planner method.",
			},
			[]string{"method"},
		),
		RetrieveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordmatch_retrieve_duration_seconds",
				Help:    "Retrieval latency in seconds by planner method.",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"method"},
		),
		RetrieveResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wordmatch_retrieve_results",
				Help:    "Number of words returned per retrieval.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
			},
		),
		IndexBuildSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordmatch_index_build_seconds",
				Help:    "Index structure build time in seconds.",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"structure"},
		),
		DictionaryWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordmatch_dictionary_words",
				Help: "Number of words in the indexed dictionary.",
			},
		),
	}

	reg.MustRegister(
		m.RetrievalsTotal,
		m.RetrieveDuration,
		m.RetrieveResults,
		m.IndexBuildSeconds,
		m.DictionaryWords,
	)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// ObserveRetrieve records one retrieval.
func (m *Metrics) ObserveRetrieve(method string, took time.Duration, results int) {
	if m == nil {
		return
	}
	m.RetrievalsTotal.WithLabelValues(method).Inc()
	m.RetrieveDuration.WithLabelValues(method).Observe(took.Seconds())
	m.RetrieveResults.Observe(float64(results))
}

// ObserveBuild records the build time of one index structure.
func (m *Metrics) ObserveBuild(structure string, took time.Duration) {
	if m == nil {
		return
	}
	m.IndexBuildSeconds.WithLabelValues(structure).Observe(took.Seconds())
}

// SetDictionaryWords records the dictionary size.
func (m *Metrics) SetDictionaryWords(n int) {
	if m == nil {
		return
	}
	m.DictionaryWords.Set(float64(n))
}

// Handler returns the scrape handler for the registry the collectors live
// in, or the default handler when that registry cannot be gathered.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
