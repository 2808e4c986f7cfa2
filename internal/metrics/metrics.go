// Package metrics holds the Prometheus collectors of the indicator service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// Metrics holds every collector exposed on /metrics. Collectors are registered on the
// registry passed to NewMetrics, so separate servers never share counters.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec   // labels: route, status
	RequestDuration *prometheus.HistogramVec // labels: route

	ComputeDuration prometheus.Histogram
	BarsTotal       prometheus.Counter
	ComputeErrors   *prometheus.CounterVec // labels: code

	SessionsActive   prometheus.Gauge
	SessionsTorndown prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indicators_http_requests_total",
			Help: "HTTP requests served, by route and status code",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indicators_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "indicators_compute_duration_seconds",
			Help:    "Latency of one indicator computation over a bar series",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		BarsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indicators_bars_total",
			Help: "Bars processed by successful computations",
		}),
		ComputeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indicators_compute_errors_total",
			Help: "Failed computations by error code",
		}, []string{"code"}),

		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "indicators_sessions_active",
			Help: "Sessions currently stored",
		}),
		SessionsTorndown: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indicators_sessions_torndown_total",
			Help: "Sessions deleted, replaced or evicted",
		}),

		gatherer: registry,
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ComputeDuration,
		m.BarsTotal,
		m.ComputeErrors,
		m.SessionsActive,
		m.SessionsTorndown,
	)

	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveCompute records a computation outcome. A nil err counts the bars.
func (m *Metrics) ObserveCompute(bars int, elapsed time.Duration, err error) {
	if err != nil {
		m.ComputeErrors.WithLabelValues(strconv.Itoa(int(errors.GetCode(err)))).Inc()

		return
	}

	m.ComputeDuration.Observe(elapsed.Seconds())
	m.BarsTotal.Add(float64(bars))
}

// SetSessions sets the number of stored sessions.
func (m *Metrics) SetSessions(n int) {
	m.SessionsActive.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
