// Package metrics defines the service's prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the collectors the server records into.
type Metrics struct {
	// RequestDuration observes HTTP request latency per route/status.
	RequestDuration *prometheus.HistogramVec
	// QueriesTotal counts ticket queries by outcome: ok, empty,
	// invalid, error.
	QueriesTotal *prometheus.CounterVec
	// TicketsLoadedTotal counts tickets persisted by the seed endpoint.
	TicketsLoadedTotal prometheus.Counter
}

// Query outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "railtix",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "railtix",
			Name:      "ticket_queries_total",
			Help:      "Ticket queries by outcome.",
		}, []string{"outcome"}),
		TicketsLoadedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "railtix",
			Name:      "tickets_loaded_total",
			Help:      "Tickets persisted by the seed endpoint.",
		}),
	}
	reg.MustRegister(m.RequestDuration, m.QueriesTotal, m.TicketsLoadedTotal)
	return m
}
