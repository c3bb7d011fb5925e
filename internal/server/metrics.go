package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP-level series and the handler for the registry they
// live on. The registry is shared with the coordination metrics so a single
// scrape returns both.
type Metrics struct {
	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
	handler        http.Handler
}

// NewMetrics registers the HTTP series on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "npcready",
			Name:      "http_active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "npcready",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by path and status code.",
		}, []string{"path", "code"}),
		handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}
	reg.MustRegister(m.activeRequests, m.requestsTotal)
	return m
}

// IncrementActiveRequests increments the in-flight gauge.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests decrements the in-flight gauge.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest counts a finished request.
func (m *Metrics) ObserveRequest(path string, code int) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// WritePrometheus serves the registry.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
