// Package metrics собирает Prometheus-метрики HTTP-слоя и резолвера коротких ссылок.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы резолва короткого кода.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics держит коллекторы на собственном реестре, чтобы тесты не конфликтовали.
// Методы безопасны на nil-получателе.
type Metrics struct {
	registry          *prometheus.Registry
	requests          *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	resolutions       *prometheus.CounterVec
	incrementFailures prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkshortener_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "linkshortener_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkshortener_resolutions_total",
			Help: "Short code resolutions by outcome",
		}, []string{"outcome"}),
		incrementFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkshortener_access_count_increment_failures_total",
			Help: "Resolutions redirected without persisting the access count",
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.resolutions, m.incrementFailures)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveResolution(outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementFailed() {
	if m == nil {
		return
	}
	m.incrementFailures.Inc()
}

// Handler отдаёт метрики в формате экспозиции Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry нужен тестам для чтения значений.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
