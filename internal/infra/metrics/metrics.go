// Package metrics collects Prometheus metrics for authentication, reconciliation,
// webhooks and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"midatopay/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "midatopay"

// Collector is the Prometheus-backed AuthMetrics implementation.
type Collector struct {
	authOutcomes    *prometheus.CounterVec
	reconciliations *prometheus.CounterVec
	webhooks        *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

var _ service.AuthMetrics = (*Collector)(nil)

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// NewCollector creates the collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_outcomes_total",
			Help:      "Authentication gate decisions by path and result.",
		}, []string{"path", "result"}),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliations_total",
			Help:      "Identity reconciliation outcomes.",
		}, []string{"outcome"}),
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Processed identity provider webhook events.",
		}, []string{"type", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.authOutcomes,
		c.reconciliations,
		c.webhooks,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func (c *Collector) ObserveAuthentication(path, result string) {
	c.authOutcomes.WithLabelValues(path, result).Inc()
}

func (c *Collector) ObserveReconciliation(outcome string) {
	c.reconciliations.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveWebhook(eventType, result string) {
	c.webhooks.WithLabelValues(eventType, result).Inc()
}

// ObserveHTTPRequest records one served request. route is the registered path pattern.
func (c *Collector) ObserveHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
