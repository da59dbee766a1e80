package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const NAMESPACE = "sosiol"

// Metrics holds the Prometheus collectors for one process. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	tips       *prometheus.CounterVec
	tipVolume  *prometheus.CounterVec
	throttles  *prometheus.CounterVec
	reconciled prometheus.Counter
}

// New creates a registry with the API collectors and the Go runtime collectors registered
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: NAMESPACE,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		tips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: "tips",
			Name:      "recorded_total",
			Help:      "Tips recorded by status.",
		}, []string{"status"}),
		tipVolume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: "tips",
			Name:      "volume_usdc_total",
			Help:      "Sum of recorded tip amounts in USDC by status.",
		}, []string{"status"}),
		throttles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: "http",
			Name:      "throttled_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"route"}),
		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: "creators",
			Name:      "totals_reconciled_total",
			Help:      "Creator totals corrected by reconciliation.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.durations,
		m.tips,
		m.tipVolume,
		m.throttles,
		m.reconciled,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.durations.WithLabelValues(route, method).Observe(duration.Seconds())
}

// TipRecorded counts a newly stored tip
func (m *Metrics) TipRecorded(status string, amountUSDC float64) {
	if m == nil {
		return
	}
	m.tips.WithLabelValues(status).Inc()
	m.tipVolume.WithLabelValues(status).Add(amountUSDC)
}

// Throttled counts a request rejected by the rate limiter
func (m *Metrics) Throttled(route string) {
	if m == nil {
		return
	}
	m.throttles.WithLabelValues(route).Inc()
}

// TotalsReconciled counts creators whose totals were corrected
func (m *Metrics) TotalsReconciled(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.reconciled.Add(float64(n))
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
