// internal/pkg/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of a single checker run. Each run owns its
// registry, so nothing leaks into prometheus.DefaultRegisterer.
type Metrics struct {
	Registry *prometheus.Registry

	// --- Outbound (client) metrics ---
	HTTPClientRequestsTotal   *prometheus.CounterVec
	HTTPClientRequestDuration *prometheus.HistogramVec
	HTTPClientErrorsTotal     *prometheus.CounterVec

	// --- Checker metrics ---
	ProbesTotal       *prometheus.CounterVec
	ReferencesFound   prometheus.Gauge
	ReferencesSkipped prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPClientRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_client_requests_total",
				Help: "Total number of outbound HTTP requests.",
			},
			[]string{"method", "code"},
		),
		HTTPClientRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_client_request_duration_seconds",
				Help:    "Latency of outbound HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "code"},
		),
		HTTPClientErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_client_request_errors_total",
				Help: "Total number of outbound HTTP requests that failed before a response arrived.",
			},
			[]string{"method"},
		),
		ProbesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_checker_probes_total",
				Help: "Asset probes by outcome; code is the HTTP status or ERROR.",
			},
			[]string{"code"},
		),
		ReferencesFound: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "asset_checker_references_found",
				Help: "Unique src/href references found in the checked page.",
			},
		),
		ReferencesSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "asset_checker_references_skipped_total",
				Help: "References skipped without a probe (anchors and mailto links).",
			},
		),
	}
}

// InstrumentRoundTripper wraps next with the client request counter and
// latency histogram.
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperDuration(
		m.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(m.HTTPClientRequestsTotal, next))
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
