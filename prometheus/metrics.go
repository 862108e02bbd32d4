// Package prometheus records scrape outcomes as Prometheus metrics.
package prometheus

import (
	"context"

	"github.com/fwojciec/pagescrape"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for scrape records.
type Metrics struct {
	registry *prometheus.Registry

	ResultsTotal *prometheus.CounterVec
	WordCount    prometheus.Histogram
	MediaEntries *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ResultsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagescrape_results_total",
			Help: "The total number of scrape records produced",
		}, []string{"outcome", "error_type"}),
		WordCount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pagescrape_word_count",
			Help:    "Words of main text per successful scrape",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7),
		}),
		MediaEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagescrape_media_entries_total",
			Help: "The total number of media entries found, by kind",
		}, []string{"type"}),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one scrape record.
func (m *Metrics) Observe(r *pagescrape.ScrapeResult) {
	if !r.Success {
		m.ResultsTotal.WithLabelValues("failure", string(r.ErrorType)).Inc()
		return
	}
	m.ResultsTotal.WithLabelValues("success", "").Inc()
	m.WordCount.Observe(float64(r.WordCount))

	count := r.MediaCount()
	m.MediaEntries.WithLabelValues(string(pagescrape.MediaImage)).Add(float64(count.Images))
	m.MediaEntries.WithLabelValues(string(pagescrape.MediaVideo)).Add(float64(count.Videos))
	m.MediaEntries.WithLabelValues(string(pagescrape.MediaDocument)).Add(float64(count.Documents))
}

// WriteTextfile writes the metrics to path in the node exporter textfile
// collector format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry())
}

// Ensure MetricsSink implements pagescrape.ResultSink at compile time.
var _ pagescrape.ResultSink = (*MetricsSink)(nil)

// MetricsSink wraps a ResultSink and observes every record it accepts.
type MetricsSink struct {
	next    pagescrape.ResultSink
	metrics *Metrics
}

// NewMetricsSink creates a new MetricsSink.
func NewMetricsSink(next pagescrape.ResultSink, metrics *Metrics) *MetricsSink {
	return &MetricsSink{next: next, metrics: metrics}
}

// Push forwards r and records it once the wrapped sink has accepted it.
func (s *MetricsSink) Push(ctx context.Context, r *pagescrape.ScrapeResult) error {
	if err := s.next.Push(ctx, r); err != nil {
		return err
	}
	s.metrics.Observe(r)
	return nil
}
