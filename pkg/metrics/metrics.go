package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллекторы prometheus для исходящих запросов к backend API
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New создает и регистрирует коллекторы метрик.
// clientName попадает в constant labels, чтобы различать инстансы клиента.
func New(clientName string) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "backend_requests_total",
				Help:        "Total number of requests sent to the backend API",
				ConstLabels: prometheus.Labels{"client": clientName},
			},
			[]string{"operation", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "backend_request_duration_seconds",
				Help:        "Duration of requests to the backend API",
				ConstLabels: prometheus.Labels{"client": clientName},
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	prometheus.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

// ObserveRequest фиксирует один запрос к backend API.
// outcome: "ok", "unauthorized", "validation", "conflict", "network", "error".
func (m *Metrics) ObserveRequest(operation, outcome string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(operation, outcome).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
