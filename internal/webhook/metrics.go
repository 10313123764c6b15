package webhook

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the listener's Prometheus collectors, held in a private
// registry so several listeners can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// result: accepted|bad_signature|bad_payload|forbidden_ip|forward_error
	Requests *prometheus.CounterVec
	Events   *prometheus.CounterVec
	Duration prometheus.Histogram
}

// NewMetrics creates and registers the listener collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paystack_webhook_requests_total",
				Help: "Webhook deliveries by result.",
			},
			[]string{"result"},
		),
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paystack_webhook_events_total",
				Help: "Verified webhook events by event name.",
			},
			[]string{"event"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "paystack_webhook_handle_duration_seconds",
				Help:    "Time spent handling a webhook delivery.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
		),
	}
	m.registry.MustRegister(m.Requests, m.Events, m.Duration)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
